package admin

import (
	"context"
	"net/http"
	"strconv"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/catalog"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/handlerutils"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/servererrors"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/validate"
	"github.com/go-chi/chi"
)

type servicer interface {
	getDashboardStats(ctx context.Context) (*DashboardStats, error)
	getAllProducts(ctx context.Context) ([]*catalog.Product, error)
	createProduct(ctx context.Context, payload *CreateProductRequest) (*catalog.Product, error)
	updateProduct(ctx context.Context, productID int, payload *UpdateProductRequest) error
	deleteProduct(ctx context.Context, productID int) error
}

type handler struct {
	service servicer
}

func NewHandler(adminService servicer) *handler {
	return &handler{
		service: adminService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/admin/stats",
		handlerutils.MakeHandler(
			h.getStatsHandler,
		),
	)

	router.Get(
		"/admin/products",
		handlerutils.MakeHandler(
			h.getAllProductsHandler,
		),
	)

	router.Post(
		"/admin/products",
		handlerutils.MakeHandler(
			h.createProductHandler,
		),
	)

	router.Put(
		"/admin/products/{productID}",
		handlerutils.MakeHandler(
			h.updateProductHandler,
		),
	)

	router.Delete(
		"/admin/products/{productID}",
		handlerutils.MakeHandler(
			h.deleteProductHandler,
		),
	)
}

func (h *handler) getStatsHandler(w http.ResponseWriter, r *http.Request) error {
	stats, err := h.service.getDashboardStats(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"dashboard stats retrieved",
		stats,
	)
}

func (h *handler) getAllProductsHandler(w http.ResponseWriter, r *http.Request) error {
	products, err := h.service.getAllProducts(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all admin products retrieved",
		products,
	)
}

func (h *handler) createProductHandler(w http.ResponseWriter, r *http.Request) error {
	var payload *CreateProductRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if fieldErrs := validate.StructFields(payload); fieldErrs != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			fieldErrs,
		)
	}

	created, err := h.service.createProduct(r.Context(), payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"product created",
		created,
	)
}

func (h *handler) updateProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := parseProductID(r)
	if err != nil {
		return err
	}

	var payload *UpdateProductRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := h.service.updateProduct(r.Context(), productID, payload); err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product updated",
		nil,
	)
}

func (h *handler) deleteProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := parseProductID(r)
	if err != nil {
		return err
	}

	if err := h.service.deleteProduct(r.Context(), productID); err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product deleted",
		nil,
	)
}

func parseProductID(r *http.Request) (int, error) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		return 0, servererrors.New(
			http.StatusBadRequest,
			"product id must be an integer",
			nil,
		)
	}

	return productID, nil
}

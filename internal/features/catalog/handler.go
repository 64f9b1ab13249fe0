package catalog

import (
	"net/http"
	"strconv"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/handlerutils"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/servererrors"
	"github.com/go-chi/chi"
)

type servicer interface {
	FindAll(filter *FilterOpts) []*Product
	FindByID(productID int) (*Product, error)
}

type handler struct {
	service servicer
}

func NewHandler(catalogService servicer) *handler {
	return &handler{
		service: catalogService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/products",
		handlerutils.MakeHandler(
			h.getAllProductsHandler,
		),
	)

	router.Get(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.getProductHandler,
		),
	)
}

func (h *handler) getAllProductsHandler(w http.ResponseWriter, r *http.Request) error {
	queries := r.URL.Query()

	products := h.service.FindAll(
		&FilterOpts{
			Category: queries.Get("category"),
			Search:   queries.Get("search"),
		},
	)

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all products retrieved",
		products,
	)
}

func (h *handler) getProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"product id must be an integer",
			nil,
		)
	}

	product, err := h.service.FindByID(productID)
	if err != nil {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrProductNotFound.Error(),
			nil,
		)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product found",
		product,
	)
}

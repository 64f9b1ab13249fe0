package cart

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/catalog"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/handlerutils"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/servererrors"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/validate"
	"github.com/go-chi/chi"
)

type servicer interface {
	AddItem(ctx context.Context, product *catalog.Product, quantity int) ([]*LineItem, error)
	RemoveItem(ctx context.Context, productID int) error
	UpdateQuantity(ctx context.Context, productID int, quantity int) error
	Total() float64
	ItemCount() int
	Items() []*LineItem
	Clear(ctx context.Context) error
}

type productFinder interface {
	FindByID(productID int) (*catalog.Product, error)
}

type handler struct {
	service servicer
	catalog productFinder
}

func NewHandler(cartService servicer, catalogService productFinder) *handler {
	return &handler{
		service: cartService,
		catalog: catalogService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/cart",
		handlerutils.MakeHandler(
			h.getCartHandler,
		),
	)

	router.Post(
		"/cart/items",
		handlerutils.MakeHandler(
			h.addItemHandler,
		),
	)

	router.Patch(
		"/cart/items/{productID}",
		handlerutils.MakeHandler(
			h.updateQuantityHandler,
		),
	)

	router.Delete(
		"/cart/items/{productID}",
		handlerutils.MakeHandler(
			h.removeItemHandler,
		),
	)

	router.Delete(
		"/cart",
		handlerutils.MakeHandler(
			h.clearCartHandler,
		),
	)
}

func (h *handler) getCartHandler(w http.ResponseWriter, r *http.Request) error {
	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"cart retrieved",
		h.cartResponse(),
	)
}

func (h *handler) addItemHandler(w http.ResponseWriter, r *http.Request) error {
	var payload *AddItemRequest
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

	product, err := h.catalog.FindByID(payload.ProductID)
	if err != nil {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrProductNotFound.Error(),
			nil,
		)
	}

	if _, err := h.service.AddItem(r.Context(), product, payload.Quantity); err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"item added to cart",
		h.cartResponse(),
	)
}

func (h *handler) updateQuantityHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := parseProductID(r)
	if err != nil {
		return err
	}

	var payload *UpdateQuantityRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := h.service.UpdateQuantity(r.Context(), productID, payload.Quantity); err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"cart updated",
		h.cartResponse(),
	)
}

func (h *handler) removeItemHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := parseProductID(r)
	if err != nil {
		return err
	}

	if err := h.service.RemoveItem(r.Context(), productID); err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"item removed from cart",
		h.cartResponse(),
	)
}

func (h *handler) clearCartHandler(w http.ResponseWriter, r *http.Request) error {
	if err := h.service.Clear(r.Context()); err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"cart cleared",
		h.cartResponse(),
	)
}

func (h *handler) cartResponse() *CartResponse {
	return &CartResponse{
		Items:     h.service.Items(),
		Total:     RoundAmount(h.service.Total()),
		ItemCount: h.service.ItemCount(),
	}
}

// RoundAmount rounds to the fixed 2-decimal display precision.
func RoundAmount(amount float64) float64 {
	return math.Round(amount*100) / 100
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

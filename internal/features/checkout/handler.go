package checkout

import (
	"context"
	"errors"
	"net/http"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/features/order"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/handlerutils"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/servererrors"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/validate"
	"github.com/go-chi/chi"
)

type servicer interface {
	Methods() []*MethodInfo
	Checkout(ctx context.Context, method order.Method) (*CheckoutResult, error)
	Confirm(ctx context.Context, orderID string) (*order.Order, error)
}

type handler struct {
	service servicer
}

func NewHandler(checkoutService servicer) *handler {
	return &handler{
		service: checkoutService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/checkout/methods",
		handlerutils.MakeHandler(
			h.getMethodsHandler,
		),
	)

	router.Post(
		"/checkout",
		handlerutils.MakeHandler(
			h.checkoutHandler,
		),
	)

	router.Post(
		"/checkout/{orderID}/confirm",
		handlerutils.MakeHandler(
			h.confirmHandler,
		),
	)
}

func (h *handler) getMethodsHandler(w http.ResponseWriter, r *http.Request) error {
	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"payment methods retrieved",
		h.service.Methods(),
	)
}

func (h *handler) checkoutHandler(w http.ResponseWriter, r *http.Request) error {
	var payload *CheckoutRequest
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

	result, err := h.service.Checkout(
		r.Context(),
		order.Method(payload.Method),
	)
	if err != nil {
		return mapCheckoutError(err)
	}

	message := "order completed"
	if result.AwaitingConfirmation {
		message = "awaiting payment confirmation"
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		message,
		result,
	)
}

func (h *handler) confirmHandler(w http.ResponseWriter, r *http.Request) error {
	orderID := chi.URLParam(r, "orderID")

	confirmed, err := h.service.Confirm(r.Context(), orderID)
	if err != nil {
		return mapCheckoutError(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order completed",
		confirmed,
	)
}

func mapCheckoutError(err error) error {
	switch {
	case errors.Is(err, servererrors.ErrEmptyCart),
		errors.Is(err, servererrors.ErrInvalidPaymentAmount),
		errors.Is(err, servererrors.ErrUnknownPaymentMethod),
		errors.Is(err, servererrors.ErrPaymentMethodDisabled):
		return servererrors.New(
			http.StatusBadRequest,
			err.Error(),
			nil,
		)

	case errors.Is(err, servererrors.ErrPendingOrderNotFound):
		return servererrors.New(
			http.StatusNotFound,
			err.Error(),
			nil,
		)

	case errors.Is(err, servererrors.ErrPaymentFailed):
		return servererrors.New(
			http.StatusBadGateway,
			err.Error(),
			nil,
		)

	default:
		return err
	}
}

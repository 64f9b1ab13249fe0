package inquiry

import (
	"context"
	"net/http"
	"strconv"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/handlerutils"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/servererrors"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/validate"
	"github.com/go-chi/chi"
)

type servicer interface {
	createInquiry(ctx context.Context, payload *CreateInquiryRequest) (*Inquiry, error)
	getAllInquiries(ctx context.Context) ([]*Inquiry, error)
	respondToInquiry(ctx context.Context, index int) error
}

type handler struct {
	service servicer
}

func NewHandler(inquiryService servicer) *handler {
	return &handler{
		service: inquiryService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/inquiries",
		handlerutils.MakeHandler(
			h.createInquiryHandler,
		),
	)

	router.Get(
		"/inquiries",
		handlerutils.MakeHandler(
			h.getAllInquiriesHandler,
		),
	)

	router.Patch(
		"/inquiries/{index}/status",
		handlerutils.MakeHandler(
			h.updateStatusHandler,
		),
	)
}

func (h *handler) createInquiryHandler(w http.ResponseWriter, r *http.Request) error {
	var payload *CreateInquiryRequest
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

	created, err := h.service.createInquiry(r.Context(), payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"inquiry submitted",
		created,
	)
}

func (h *handler) getAllInquiriesHandler(w http.ResponseWriter, r *http.Request) error {
	inquiries, err := h.service.getAllInquiries(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all inquiries retrieved",
		inquiries,
	)
}

func (h *handler) updateStatusHandler(w http.ResponseWriter, r *http.Request) error {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"inquiry index must be an integer",
			nil,
		)
	}

	var payload *UpdateStatusRequest
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

	// absent indexes are a silent no-op by design
	if err := h.service.respondToInquiry(r.Context(), index); err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"inquiry status updated",
		nil,
	)
}

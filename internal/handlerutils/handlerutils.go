// Package handlerutils holds the shared handler plumbing: the error-returning
// handler type, centralized error mapping and JSON request/response helpers.
package handlerutils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/servererrors"
)

// APIHandler is an http handler that returns an error so error handling can
// be centralized in MakeHandler.
type APIHandler func(w http.ResponseWriter, r *http.Request) error

// MakeHandler adapts an APIHandler into an http.HandlerFunc and gives all
// routes one place for error logging and error-to-response mapping. Handlers
// return a *servererrors.ServerError for user-facing failures; anything else
// is logged and surfaced as a 500.
func MakeHandler(h APIHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			log.Println(err)

			var serverError *servererrors.ServerError
			if errors.As(err, &serverError) {
				WriteErrorJSON(
					w,
					serverError.StatusCode,
					serverError.Error(),
					serverError.Errors,
				)
				return
			}

			WriteErrorJSON(
				w,
				http.StatusInternalServerError,
				"something went wrong",
				nil,
			)
		}
	}
}

type successResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

func ParseJSON(r *http.Request, payload any) error {
	if r.Body == nil {
		return errors.New("missing request body")
	}

	return json.NewDecoder(r.Body).Decode(payload)
}

func WriteJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(v)
}

func WriteSuccessJSON(w http.ResponseWriter, statusCode int, message string, data any) error {
	return WriteJSON(
		w,
		statusCode,
		successResponse{
			Status:  "success",
			Message: message,
			Data:    data,
		},
	)
}

func WriteErrorJSON(w http.ResponseWriter, statusCode int, message string, errs any) error {
	return WriteJSON(
		w,
		statusCode,
		errorResponse{
			Status:  "error",
			Message: message,
			Errors:  errs,
		},
	)
}

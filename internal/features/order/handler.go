package order

import (
	"context"
	"net/http"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/handlerutils"
	"github.com/go-chi/chi"
)

type ledgerReader interface {
	FindAll(ctx context.Context) ([]*Order, error)
}

type transactionReader interface {
	FindAll(ctx context.Context) ([]*TransactionRecord, error)
}

type handler struct {
	ledger       ledgerReader
	transactions transactionReader
}

func NewHandler(ledger ledgerReader, transactions transactionReader) *handler {
	return &handler{
		ledger:       ledger,
		transactions: transactions,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/orders",
		handlerutils.MakeHandler(
			h.getAllOrdersHandler,
		),
	)

	router.Get(
		"/transactions",
		handlerutils.MakeHandler(
			h.getAllTransactionsHandler,
		),
	)
}

func (h *handler) getAllOrdersHandler(w http.ResponseWriter, r *http.Request) error {
	orders, err := h.ledger.FindAll(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all orders retrieved",
		orders,
	)
}

func (h *handler) getAllTransactionsHandler(w http.ResponseWriter, r *http.Request) error {
	records, err := h.transactions.FindAll(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all transactions retrieved",
		records,
	)
}

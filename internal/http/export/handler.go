package export

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pandukaz/debtbook/internal/export"
	"github.com/pandukaz/debtbook/internal/http/middleware"
	"github.com/pandukaz/debtbook/internal/ledger"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/transactions", h.transactions)
}

func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter := ledger.ListFilter{}

	if s := r.URL.Query().Get("type"); s != "" {
		typ := ledger.Type(s)
		filter.Type = &typ
	}

	if s := r.URL.Query().Get("status"); s != "" {
		status := ledger.Status(s)
		filter.Status = &status
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)

	if err := h.svc.WriteCSV(r.Context(), sess.UserID, filter, w); err != nil {
		// The header is already written; nothing left to do but log.
		slog.Error("exporting transactions failed", "user_id", sess.UserID, "error", err)
	}
}

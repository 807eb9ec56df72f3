package ledger

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pandukaz/debtbook/internal/http/middleware"
	"github.com/pandukaz/debtbook/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/payments", h.recordPayment)
	r.Get("/{id}/payments", h.listPayments)
	r.Post("/{id}/settle", h.settle)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(errorResponse{Error: msg, Code: code}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// writeLedgerError maps the ledger error taxonomy onto HTTP statuses. The
// two validation failures carry stable codes so the SPA can re-prompt
// instead of showing a generic failure toast.
func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		writeError(w, http.StatusUnprocessableEntity, "invalid_amount", "payment amount must be positive")
	case errors.Is(err, ledger.ErrExceedsOutstanding):
		writeError(w, http.StatusUnprocessableEntity, "exceeds_outstanding", "payment exceeds outstanding amount")
	case errors.Is(err, ledger.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "transaction not found")
	default:
		slog.Error("ledger operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

type createTransactionRequest struct {
	Type        ledger.Type `json:"type"`
	ContactID   uuid.UUID   `json:"contact_id"`
	CategoryID  uuid.UUID   `json:"category_id"`
	Amount      int64       `json:"amount"`
	Description string      `json:"description"`
	DueDate     *time.Time  `json:"due_date,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Type != ledger.TypeDebt && req.Type != ledger.TypeReceivable {
		writeError(w, http.StatusBadRequest, "invalid_type", "type must be debt or receivable")
		return
	}

	tx, err := h.svc.Create(r.Context(), sess.UserID, ledger.CreateParams{
		Type:        req.Type,
		ContactID:   req.ContactID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
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

	if s := r.URL.Query().Get("contact_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.ContactID = &id
		}
	}

	if s := r.URL.Query().Get("category_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.CategoryID = &id
		}
	}

	txs, err := h.svc.List(r.Context(), sess.UserID, filter)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	totals, err := h.svc.Totals(r.Context(), sess.UserID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSummaryResponse(totals)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), sess.UserID, id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateTransactionRequest struct {
	ContactID   *uuid.UUID `json:"contact_id,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// update edits descriptive fields only. Balance and status never change
// here; they move through the payment endpoints.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), sess.UserID, id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	if req.ContactID != nil {
		tx.ContactID = *req.ContactID
	}

	if req.CategoryID != nil {
		tx.CategoryID = *req.CategoryID
	}

	if req.Description != nil {
		tx.Description = *req.Description
	}

	if req.DueDate != nil {
		tx.DueDate = req.DueDate
	}

	if err := h.svc.Update(r.Context(), tx); err != nil {
		writeLedgerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), sess.UserID, id); err != nil {
		writeLedgerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type recordPaymentRequest struct {
	Amount int64 `json:"amount"`
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, payment, err := h.svc.RecordPayment(r.Context(), sess.UserID, id, req.Amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toPaymentResultResponse(tx, payment)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	payments, err := h.svc.ListPayments(r.Context(), sess.UserID, id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toPaymentResponseList(payments)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) settle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.MarkFullyPaid(r.Context(), sess.UserID, id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

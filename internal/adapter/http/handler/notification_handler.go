package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lenddesk/loanledger/internal/adapter/http/dto"
	"github.com/lenddesk/loanledger/internal/domain"
	"github.com/lenddesk/loanledger/internal/usecase"
)

// NotificationHandler exposes borrower notifications.
type NotificationHandler struct {
	notificationRepo usecase.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(repo usecase.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepo: repo}
}

// ListByUser handles GET /users/{id}/notifications.
func (h *NotificationHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	limit, offset := domain.ValidatePagination(
		parseIntQuery(r, "limit", 0),
		parseIntQuery(r, "offset", 0),
	)

	notifications, err := h.notificationRepo.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list notifications", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NotificationsFromDomain(notifications))
}

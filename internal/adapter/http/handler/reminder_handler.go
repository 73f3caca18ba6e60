package handler

import (
	"net/http"
	"time"

	"github.com/lenddesk/loanledger/internal/adapter/http/dto"
	"github.com/lenddesk/loanledger/internal/usecase"
)

// ReminderHandler exposes the due-window read queries.
type ReminderHandler struct {
	reminderUC *usecase.ReminderUseCase
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderUC *usecase.ReminderUseCase) *ReminderHandler {
	return &ReminderHandler{reminderUC: reminderUC}
}

// Upcoming handles GET /reminders/upcoming. An optional date query
// (YYYY-MM-DD) selects the target day; default is 3 days from now.
func (h *ReminderHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	target := time.Now().AddDate(0, 0, 3)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date", err.Error())
			return
		}
		target = parsed
	}

	reminders, err := h.reminderUC.UpcomingLoans(r.Context(), target)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to query upcoming loans", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RemindersFromDomain(reminders))
}

// Overdue handles GET /reminders/overdue.
func (h *ReminderHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.reminderUC.OverdueLoans(r.Context(), time.Now())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to query overdue loans", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RemindersFromDomain(reminders))
}

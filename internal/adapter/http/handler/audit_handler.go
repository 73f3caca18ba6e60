package handler

import (
	"net/http"

	"github.com/lenddesk/loanledger/internal/adapter/http/dto"
	"github.com/lenddesk/loanledger/internal/domain"
	"github.com/lenddesk/loanledger/internal/usecase"
)

// AuditHandler exposes the audit trail.
type AuditHandler struct {
	auditRepo usecase.AuditRepository
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditRepo usecase.AuditRepository) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo}
}

// List handles GET /audit-logs with optional user_id and action
// filters.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.AuditFilter{
		UserID: r.URL.Query().Get("user_id"),
		Action: domain.AuditAction(r.URL.Query().Get("action")),
		Limit:  parseIntQuery(r, "limit", 0),
		Offset: parseIntQuery(r, "offset", 0),
	}

	logs, err := h.auditRepo.List(r.Context(), filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list audit logs", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}

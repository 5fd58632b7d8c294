package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/materna-backend/internal/platform/logger"
	"github.com/yungbote/materna-backend/internal/simulation"
)

type AuditHandler struct {
	log   *logger.Logger
	store *simulation.Store
}

func NewAuditHandler(log *logger.Logger, store *simulation.Store) *AuditHandler {
	return &AuditHandler{
		log:   log.With("handler", "AuditHandler"),
		store: store,
	}
}

// GET /api/audit
// Recomputes the fairness report against the live model and cohort on every
// call; nothing is cached across retrains.
func (h *AuditHandler) GetAudit(c *gin.Context) {
	report, err := h.store.Current().Audit()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "audit_failed", err)
		return
	}
	RespondOK(c, report)
}

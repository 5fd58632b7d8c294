package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/materna-backend/internal/cohort"
	"github.com/yungbote/materna-backend/internal/platform/logger"
	"github.com/yungbote/materna-backend/internal/simulation"
)

const defaultCohortPageSize = 50

type CohortHandler struct {
	log   *logger.Logger
	store *simulation.Store
}

func NewCohortHandler(log *logger.Logger, store *simulation.Store) *CohortHandler {
	return &CohortHandler{
		log:   log.With("handler", "CohortHandler"),
		store: store,
	}
}

type CohortResponse struct {
	Total   int                    `json:"total"`
	Records []cohort.PatientRecord `json:"records"`
}

// GET /api/cohort?limit=N
func (h *CohortHandler) ListCohort(c *gin.Context) {
	run := h.store.Current()

	limit := defaultCohortPageSize
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			RespondFieldError(c, http.StatusBadRequest, "invalid_request", "limit", "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > len(run.Records) {
		limit = len(run.Records)
	}

	RespondOK(c, CohortResponse{
		Total:   len(run.Records),
		Records: run.Records[:limit],
	})
}

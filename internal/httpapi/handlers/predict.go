package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/materna-backend/internal/cohort"
	"github.com/yungbote/materna-backend/internal/features"
	"github.com/yungbote/materna-backend/internal/platform/logger"
	"github.com/yungbote/materna-backend/internal/simulation"
)

type PredictHandler struct {
	log   *logger.Logger
	store *simulation.Store
}

func NewPredictHandler(log *logger.Logger, store *simulation.Store) *PredictHandler {
	return &PredictHandler{
		log:   log.With("handler", "PredictHandler"),
		store: store,
	}
}

type PredictRequest struct {
	Age                int    `json:"age"`
	DeliveryType       string `json:"delivery_type"`
	LaborDurationHours int    `json:"labor_duration_hours"`
	HasComplications   bool   `json:"has_complications"`
	LengthOfStayDays   int    `json:"length_of_stay_days"`
	Location           string `json:"location"`
}

type PredictResponse struct {
	Probability float64 `json:"probability"`
	Label       int     `json:"label"`
	Readmitted  bool    `json:"readmitted"`
}

// POST /api/predict
// What-if scoring for a single hand-edited record. The record goes through
// the same encoder as the training matrix; the ground-truth label is never
// drawn here, this is model output only.
func (h *PredictHandler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	rec, param, msg := recordFromRequest(req)
	if msg != "" {
		RespondFieldError(c, http.StatusBadRequest, "invalid_request", param, msg)
		return
	}

	run := h.store.Current()
	feats := features.Encode(rec)
	p, err := run.Model.PredictProbability(feats)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "predict_failed", err)
		return
	}
	label, err := run.Model.PredictLabel(feats)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "predict_failed", err)
		return
	}
	RespondOK(c, PredictResponse{
		Probability: p,
		Label:       label,
		Readmitted:  label == 1,
	})
}

func recordFromRequest(req PredictRequest) (cohort.PatientRecord, string, string) {
	var rec cohort.PatientRecord

	if req.Age < 18 || req.Age > 45 {
		return rec, "age", "age must be between 18 and 45"
	}
	switch cohort.DeliveryType(req.DeliveryType) {
	case cohort.DeliveryVaginal, cohort.DeliveryCesarean:
	default:
		return rec, "delivery_type", `delivery_type must be "vaginal" or "cesarean"`
	}
	switch cohort.Location(req.Location) {
	case cohort.LocationUrban, cohort.LocationRural:
	default:
		return rec, "location", `location must be "urban" or "rural"`
	}
	if req.LaborDurationHours < 4 || req.LaborDurationHours > 24 {
		return rec, "labor_duration_hours", "labor_duration_hours must be between 4 and 24"
	}
	labor := req.LaborDurationHours
	// 24 is accepted from the form but clamped to the generator's upper bound.
	if labor > 23 {
		labor = 23
	}
	if req.LengthOfStayDays < 2 {
		return rec, "length_of_stay_days", "length_of_stay_days must be at least 2"
	}

	rec = cohort.PatientRecord{
		Age:                req.Age,
		DeliveryType:       cohort.DeliveryType(req.DeliveryType),
		LaborDurationHours: labor,
		HasComplications:   req.HasComplications,
		LengthOfStayDays:   req.LengthOfStayDays,
		Location:           cohort.Location(req.Location),
	}
	return rec, "", ""
}

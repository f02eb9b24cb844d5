package handlers

import (
	"net/http"

	"github.com/Dias221467/SkillSharing_Backend/internal/dto"
	"github.com/Dias221467/SkillSharing_Backend/internal/services"
	"github.com/Dias221467/SkillSharing_Backend/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// LearningPlanHandler handles HTTP requests related to learning plans and steps.
type LearningPlanHandler struct {
	Service *services.LearningPlanService
}

// NewLearningPlanHandler creates a new instance of LearningPlanHandler.
func NewLearningPlanHandler(service *services.LearningPlanService) *LearningPlanHandler {
	return &LearningPlanHandler{Service: service}
}

// CreatePlanHandler handles POST /plans. The owner is the authenticated caller.
func (h *LearningPlanHandler) CreatePlanHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		logrus.Warn("Unauthorized access attempt during plan creation")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	log := logrus.WithField("userID", claims.UserID)

	var req dto.CreateLearningPlanRequest
	if err := decodeBody(r, &req); err != nil {
		log.WithError(err).Warn("Invalid request payload during plan creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	plan, err := h.Service.CreatePlan(r.Context(), req, claims.UserID)
	if err != nil {
		writeServiceError(w, log, err, "Create plan")
		return
	}

	log.WithField("planID", plan.ID.Hex()).Info("Plan successfully created")
	writeJSON(w, http.StatusOK, plan)
}

// GetPlanHandler handles GET /plans/{planId}.
func (h *LearningPlanHandler) GetPlanHandler(w http.ResponseWriter, r *http.Request) {
	planID := mux.Vars(r)["planId"]
	log := logrus.WithField("planID", planID)

	plan, err := h.Service.GetPlan(r.Context(), planID)
	if err != nil {
		writeServiceError(w, log, err, "Get plan")
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// GetMyPlansHandler handles GET /plans/my-plans.
func (h *LearningPlanHandler) GetMyPlansHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		logrus.Warn("Unauthorized access")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	log := logrus.WithField("userID", claims.UserID)

	plans, err := h.Service.GetPlansByUser(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, log, err, "List plans")
		return
	}

	log.WithField("planCount", len(plans)).Info("User plans fetched successfully")
	writeJSON(w, http.StatusOK, plans)
}

// UpdatePlanHandler handles PUT /plans/{planId}.
func (h *LearningPlanHandler) UpdatePlanHandler(w http.ResponseWriter, r *http.Request) {
	planID := mux.Vars(r)["planId"]
	log := logrus.WithField("planID", planID)

	var req dto.CreateLearningPlanRequest
	if err := decodeBody(r, &req); err != nil {
		log.WithError(err).Warn("Invalid update payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	plan, err := h.Service.UpdatePlan(r.Context(), planID, req)
	if err != nil {
		writeServiceError(w, log, err, "Update plan")
		return
	}

	log.Info("Plan successfully updated")
	writeJSON(w, http.StatusOK, plan)
}

// DeletePlanHandler handles DELETE /plans/{planId}. It answers 204 even when nothing was deleted.
func (h *LearningPlanHandler) DeletePlanHandler(w http.ResponseWriter, r *http.Request) {
	planID := mux.Vars(r)["planId"]
	log := logrus.WithField("planID", planID)

	if err := h.Service.DeletePlan(r.Context(), planID); err != nil {
		writeServiceError(w, log, err, "Delete plan")
		return
	}

	log.Info("Plan deleted")
	w.WriteHeader(http.StatusNoContent)
}

// GetPlanProgressHandler handles GET /plans/{planId}/progress and returns a bare number.
func (h *LearningPlanHandler) GetPlanProgressHandler(w http.ResponseWriter, r *http.Request) {
	planID := mux.Vars(r)["planId"]
	log := logrus.WithField("planID", planID)

	progress, err := h.Service.CalculateProgress(r.Context(), planID)
	if err != nil {
		writeServiceError(w, log, err, "Calculate progress")
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

// AddStepHandler handles POST /plans/{planId}/steps.
func (h *LearningPlanHandler) AddStepHandler(w http.ResponseWriter, r *http.Request) {
	planID := mux.Vars(r)["planId"]
	log := logrus.WithField("planID", planID)

	var req dto.AddStepRequest
	if err := decodeBody(r, &req); err != nil {
		log.WithError(err).Warn("Invalid request payload during step creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	step, err := h.Service.AddStep(r.Context(), planID, req)
	if err != nil {
		writeServiceError(w, log, err, "Add step")
		return
	}

	log.WithField("stepID", step.ID.Hex()).Info("Step successfully added")
	writeJSON(w, http.StatusOK, step)
}

// GetStepsHandler handles GET /plans/{planId}/steps.
func (h *LearningPlanHandler) GetStepsHandler(w http.ResponseWriter, r *http.Request) {
	planID := mux.Vars(r)["planId"]
	log := logrus.WithField("planID", planID)

	steps, err := h.Service.GetStepsByPlan(r.Context(), planID)
	if err != nil {
		writeServiceError(w, log, err, "List steps")
		return
	}

	writeJSON(w, http.StatusOK, steps)
}

// GetStepHandler handles GET /plans/steps/{stepId}.
func (h *LearningPlanHandler) GetStepHandler(w http.ResponseWriter, r *http.Request) {
	stepID := mux.Vars(r)["stepId"]

	step, err := h.Service.GetStep(r.Context(), stepID)
	if err != nil {
		writeServiceError(w, logrus.WithField("stepID", stepID), err, "Get step")
		return
	}

	writeJSON(w, http.StatusOK, step)
}

// UpdateStepHandler handles PUT /plans/steps/{stepId}.
func (h *LearningPlanHandler) UpdateStepHandler(w http.ResponseWriter, r *http.Request) {
	stepID := mux.Vars(r)["stepId"]
	log := logrus.WithField("stepID", stepID)

	var req dto.AddStepRequest
	if err := decodeBody(r, &req); err != nil {
		log.WithError(err).Warn("Invalid step update payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	step, err := h.Service.UpdateStep(r.Context(), stepID, req)
	if err != nil {
		writeServiceError(w, log, err, "Update step")
		return
	}

	log.Info("Step successfully updated")
	writeJSON(w, http.StatusOK, step)
}

// UpdateStepStatusHandler handles PATCH /plans/steps/{stepId}.
func (h *LearningPlanHandler) UpdateStepStatusHandler(w http.ResponseWriter, r *http.Request) {
	stepID := mux.Vars(r)["stepId"]
	log := logrus.WithField("stepID", stepID)

	var req dto.UpdateStepStatusRequest
	if err := decodeBody(r, &req); err != nil {
		log.WithError(err).Warn("Invalid step status payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	step, err := h.Service.UpdateStepStatus(r.Context(), stepID, req)
	if err != nil {
		writeServiceError(w, log, err, "Update step status")
		return
	}

	log.WithField("completed", step.Completed).Info("Step status updated")
	writeJSON(w, http.StatusOK, step)
}

// DeleteStepHandler handles DELETE /plans/steps/{stepId}.
func (h *LearningPlanHandler) DeleteStepHandler(w http.ResponseWriter, r *http.Request) {
	stepID := mux.Vars(r)["stepId"]
	log := logrus.WithField("stepID", stepID)

	if err := h.Service.DeleteStep(r.Context(), stepID); err != nil {
		writeServiceError(w, log, err, "Delete step")
		return
	}

	log.Info("Step deleted")
	w.WriteHeader(http.StatusNoContent)
}

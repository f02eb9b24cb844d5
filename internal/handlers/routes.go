package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the plan and notification APIs behind auth. Literal
// segments are registered before {planId} so that /plans/my-plans is not
// captured as a plan id.
func RegisterRoutes(router *mux.Router, plans *LearningPlanHandler, notifications *NotificationHandler, auth mux.MiddlewareFunc) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	planRoutes := router.PathPrefix("/plans").Subrouter()
	planRoutes.Use(auth)
	planRoutes.HandleFunc("", plans.CreatePlanHandler).Methods(http.MethodPost)
	planRoutes.HandleFunc("/my-plans", plans.GetMyPlansHandler).Methods(http.MethodGet)
	planRoutes.HandleFunc("/steps/{stepId}", plans.GetStepHandler).Methods(http.MethodGet)
	planRoutes.HandleFunc("/steps/{stepId}", plans.UpdateStepHandler).Methods(http.MethodPut)
	planRoutes.HandleFunc("/steps/{stepId}", plans.UpdateStepStatusHandler).Methods(http.MethodPatch)
	planRoutes.HandleFunc("/steps/{stepId}", plans.DeleteStepHandler).Methods(http.MethodDelete)
	planRoutes.HandleFunc("/{planId}", plans.GetPlanHandler).Methods(http.MethodGet)
	planRoutes.HandleFunc("/{planId}", plans.UpdatePlanHandler).Methods(http.MethodPut)
	planRoutes.HandleFunc("/{planId}", plans.DeletePlanHandler).Methods(http.MethodDelete)
	planRoutes.HandleFunc("/{planId}/progress", plans.GetPlanProgressHandler).Methods(http.MethodGet)
	planRoutes.HandleFunc("/{planId}/steps", plans.AddStepHandler).Methods(http.MethodPost)
	planRoutes.HandleFunc("/{planId}/steps", plans.GetStepsHandler).Methods(http.MethodGet)

	notificationRoutes := router.PathPrefix("/notifications").Subrouter()
	notificationRoutes.Use(auth)
	notificationRoutes.HandleFunc("", notifications.GetUserNotificationsHandler).Methods(http.MethodGet)
	notificationRoutes.HandleFunc("", notifications.CreateNotificationHandler).Methods(http.MethodPost)
	notificationRoutes.HandleFunc("/unread-count", notifications.GetUnreadCountHandler).Methods(http.MethodGet)
	notificationRoutes.HandleFunc("/{id}", notifications.SetReadHandler).Methods(http.MethodPatch)
}

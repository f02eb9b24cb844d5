package handlers

import (
	"net/http"
	"strconv"

	"github.com/Dias221467/SkillSharing_Backend/internal/dto"
	"github.com/Dias221467/SkillSharing_Backend/internal/services"
	"github.com/Dias221467/SkillSharing_Backend/pkg/logger"
	"github.com/Dias221467/SkillSharing_Backend/pkg/middleware"
	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: service}
}

// GET /notifications?read=true|false
func (h *NotificationHandler) GetUserNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	log := logger.Log.WithField("userID", claims.UserID)

	var read *bool
	if raw := r.URL.Query().Get("read"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, "Invalid read filter", http.StatusBadRequest)
			return
		}
		read = &parsed
	}

	notifications, err := h.Service.GetUserNotifications(r.Context(), claims.UserID, read)
	if err != nil {
		writeServiceError(w, log, err, "List notifications")
		return
	}

	writeJSON(w, http.StatusOK, notifications)
}

// GET /notifications/unread-count
func (h *NotificationHandler) GetUnreadCountHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	count, err := h.Service.CountUnread(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, logger.Log.WithField("userID", claims.UserID), err, "Count notifications")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// POST /notifications
func (h *NotificationHandler) CreateNotificationHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	log := logger.Log.WithField("senderID", claims.UserID)

	var req dto.CreateNotificationRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	notif, err := h.Service.CreateNotification(r.Context(), claims.UserID, req)
	if err != nil {
		writeServiceError(w, log, err, "Create notification")
		return
	}

	log.WithField("notificationID", notif.ID.Hex()).Infof("Notification %s sent to %s", notif.Type, notif.UserID)
	writeJSON(w, http.StatusCreated, notif)
}

// PATCH /notifications/{id}
func (h *NotificationHandler) SetReadHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	notifID := mux.Vars(r)["id"]

	var req dto.UpdateNotificationReadRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	notif, err := h.Service.SetRead(r.Context(), claims.UserID, notifID, req.Read)
	if err != nil {
		writeServiceError(w, logger.Log.WithField("notificationID", notifID), err, "Update notification")
		return
	}

	writeJSON(w, http.StatusOK, notif)
}

package http

import (
	"net/http"

	"aquascout-backend/internal/service"
)

type NotificationHandler struct {
	noteSvc service.NotificationService
}

func NewNotificationHandler(noteSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{noteSvc: noteSvc}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)
	notes, total, err := h.noteSvc.GetNotifications(r.Context(), actorID(r), page, pageSize)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: notes, TotalCount: total, Page: page, PageSize: pageSize})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.noteSvc.MarkAsRead(r.Context(), actorID(r), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

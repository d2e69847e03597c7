package http

import (
	"net/http"
)

// handleNotifications serves the notification list on GET and marks every
// notification read on POST with action=read-all.
func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		NewResponse().JSON(map[string]interface{}{
			"notifications": toNotificationViews(s.store.Notifications()),
			"unread":        s.store.UnreadNotifications(),
		}).Write(w)
	case http.MethodPost:
		parser := NewRequestBodyParser(r)
		if err := parser.Parse(); err != nil {
			BadRequestError("malformed request body").Write(w)
			return
		}
		if parser.Get("action") != "read-all" {
			UnprocessableEntityError("unsupported action").Write(w)
			return
		}
		s.store.MarkAllNotificationsRead()
		NewResponse().JSON(map[string]interface{}{"unread": 0}).Write(w)
	default:
		MethodNotAllowedError("GET, POST").Write(w)
	}
}

// handleNotificationByID marks a single notification read
// (POST /api/notifications/{id}/read) or deletes it
// (DELETE /api/notifications/{id}).
func (s *Server) handleNotificationByID(w http.ResponseWriter, r *http.Request) {
	id, action := pathSuffix(r.URL.Path, "/api/notifications/")
	if id == "" {
		BadRequestError("notification id required").Write(w)
		return
	}

	switch {
	case r.Method == http.MethodPost && action == "read":
		if !s.store.MarkNotificationRead(id) {
			NotFoundError("notification not found").Write(w)
			return
		}
		NewResponse().JSON(map[string]interface{}{
			"unread": s.store.UnreadNotifications(),
		}).Write(w)
	case r.Method == http.MethodDelete && action == "":
		if !s.store.DeleteNotification(id) {
			NotFoundError("notification not found").Write(w)
			return
		}
		NewResponse().Status(http.StatusNoContent).Write(w)
	default:
		MethodNotAllowedError("POST, DELETE").Write(w)
	}
}

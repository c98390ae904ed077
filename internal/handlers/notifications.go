package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/sse"
	"github.com/astralisweb/astralis-client/internal/viewmodels"
)

type NotificationsHandler struct {
	log *logger.Logger
	vm  *viewmodels.NotificationsViewModel
	hub *sse.Hub
}

func NewNotificationsHandler(log *logger.Logger, vm *viewmodels.NotificationsViewModel, hub *sse.Hub) *NotificationsHandler {
	return &NotificationsHandler{log: log.With("handler", "Notifications"), vm: vm, hub: hub}
}

func (h *NotificationsHandler) List(c *gin.Context) {
	h.vm.Load(c.Request.Context())
	st := h.vm.Store.Get()
	RespondOK(c, gin.H{
		"notifications": st.Notifications,
		"unread_count":  st.UnreadCount,
	})
}

func (h *NotificationsHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_notification_id", err)
		return
	}
	h.vm.MarkRead(c.Request.Context(), id)
	st := h.vm.Store.Get()
	if st.Err != "" {
		RespondError(c, http.StatusBadGateway, "notification_write_failed", nil)
		return
	}
	RespondOK(c, gin.H{"unread_count": st.UnreadCount})
}

// Stream attaches an SSE client subscribed to every UI push channel.
func (h *NotificationsHandler) Stream(c *gin.Context) {
	client := h.hub.NewClient()
	h.hub.AddChannel(client, sse.ChannelCart)
	h.hub.AddChannel(client, sse.ChannelNotifications)
	h.hub.AddChannel(client, sse.ChannelSession)
	defer h.hub.CloseClient(client)

	h.hub.ServeHTTP(c.Writer, c.Request, client)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/viewmodels"
)

type EventsHandler struct {
	log *logger.Logger
	vm  *viewmodels.EventsViewModel
}

func NewEventsHandler(log *logger.Logger, vm *viewmodels.EventsViewModel) *EventsHandler {
	return &EventsHandler{log: log.With("handler", "Events"), vm: vm}
}

func (h *EventsHandler) List(c *gin.Context) {
	h.vm.Load(c.Request.Context())
	st := h.vm.Store.Get()
	if st.Err != "" {
		RespondError(c, http.StatusBadGateway, "events_unavailable", nil)
		return
	}
	RespondOK(c, gin.H{"events": st.Events})
}

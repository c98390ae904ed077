package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/astralisweb/astralis-client/internal/clients/astralis"
	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/types"
	"github.com/astralisweb/astralis-client/internal/viewmodels"
)

type DiscoveryHandler struct {
	log   *logger.Logger
	api   *astralis.API
	admin *viewmodels.AdminViewModel
}

func NewDiscoveryHandler(log *logger.Logger, api *astralis.API, admin *viewmodels.AdminViewModel) *DiscoveryHandler {
	return &DiscoveryHandler{log: log.With("handler", "Discovery"), api: api, admin: admin}
}

type discoverySubmit struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	ImageURL string `json:"image_url"`
}

// Submit files a new discovery for moderation.
func (h *DiscoveryHandler) Submit(c *gin.Context) {
	var req discoverySubmit
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	created, err := h.api.Discoveries.Create(c.Request.Context(), req)
	if err != nil {
		RespondError(c, http.StatusBadGateway, "discovery_write_failed", err)
		return
	}
	RespondOK(c, created)
}

func (h *DiscoveryHandler) ListPending(c *gin.Context) {
	h.admin.Load(c.Request.Context())
	st := h.admin.Store.Get()
	if st.Err != "" {
		RespondError(c, http.StatusBadGateway, "moderation_unavailable", nil)
		return
	}
	RespondOK(c, gin.H{"pending": st.Pending})
}

type moderationRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *DiscoveryHandler) Moderate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_discovery_id", err)
		return
	}
	var req moderationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	switch req.Status {
	case types.DiscoveryApproved:
		h.admin.Approve(c.Request.Context(), id)
	case types.DiscoveryRejected:
		h.admin.Reject(c.Request.Context(), id)
	default:
		RespondError(c, http.StatusBadRequest, "bad_status", nil)
		return
	}

	st := h.admin.Store.Get()
	if st.Err != "" {
		RespondError(c, http.StatusBadGateway, "moderation_write_failed", nil)
		return
	}
	RespondOK(c, gin.H{"pending": st.Pending})
}

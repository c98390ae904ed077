package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/astralisweb/astralis-client/internal/avatar"
	"github.com/astralisweb/astralis-client/internal/clients/astralis"
	"github.com/astralisweb/astralis-client/internal/middleware"
	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/session"
	"github.com/astralisweb/astralis-client/internal/viewmodels"
)

type AccountHandler struct {
	log     *logger.Logger
	account *viewmodels.AccountViewModel
	avatars *avatar.Generator
}

func NewAccountHandler(log *logger.Logger, account *viewmodels.AccountViewModel, avatars *avatar.Generator) *AccountHandler {
	return &AccountHandler{log: log.With("handler", "Account"), account: account, avatars: avatars}
}

type sessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	User          any        `json:"user,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

func (h *AccountHandler) GetSession(c *gin.Context) {
	st := middleware.CurrentSession(c)
	RespondOK(c, toSessionResponse(st))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	h.account.Login(c.Request.Context(), req.Email, req.Password)
	st := h.account.Store.Get()
	if st.Err != "" {
		RespondError(c, http.StatusUnauthorized, "login_failed", nil)
		return
	}
	RespondOK(c, toSessionResponse(st.Session))
}

type registerRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// Register creates the account and signs the new session in.
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	h.account.Register(c.Request.Context(), astralis.RegisterRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	st := h.account.Store.Get()
	if st.Err != "" {
		RespondError(c, http.StatusBadGateway, "registration_failed", nil)
		return
	}
	RespondOK(c, toSessionResponse(st.Session))
}

func (h *AccountHandler) Logout(c *gin.Context) {
	h.account.Logout(c.Request.Context())
	RespondOK(c, toSessionResponse(session.State{}))
}

// AvatarPNG renders the signed-in user's initials avatar.
func (h *AccountHandler) AvatarPNG(c *gin.Context) {
	st := middleware.CurrentSession(c)
	if !st.Authenticated || st.User == nil {
		RespondError(c, http.StatusUnauthorized, "not_signed_in", nil)
		return
	}
	buf, err := h.avatars.Initials(*st.User)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "avatar_failed", err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// AvatarThumbnail scales an uploaded image to the standard avatar size.
func (h *AccountHandler) AvatarThumbnail(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		RespondError(c, http.StatusBadRequest, "bad_upload", err)
		return
	}
	out, err := h.avatars.Thumbnail(raw, 256)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_image", err)
		return
	}
	c.Data(http.StatusOK, "image/png", out)
}

func toSessionResponse(st session.State) sessionResponse {
	resp := sessionResponse{Authenticated: st.Authenticated}
	if st.Authenticated && st.User != nil {
		resp.User = st.User
		if !st.ExpiresAt.IsZero() {
			exp := st.ExpiresAt
			resp.ExpiresAt = &exp
		}
	}
	return resp
}

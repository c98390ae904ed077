package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/astralisweb/astralis-client/internal/clients/astralis"
	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/viewmodels"
)

type ArticlesHandler struct {
	log *logger.Logger
	api *astralis.API
	vm  *viewmodels.ArticlesViewModel
}

func NewArticlesHandler(log *logger.Logger, api *astralis.API, vm *viewmodels.ArticlesViewModel) *ArticlesHandler {
	return &ArticlesHandler{log: log.With("handler", "Articles"), api: api, vm: vm}
}

func (h *ArticlesHandler) List(c *gin.Context) {
	h.vm.Load(c.Request.Context())
	st := h.vm.Store.Get()
	if st.Err != "" {
		RespondError(c, http.StatusBadGateway, "articles_unavailable", nil)
		return
	}
	RespondOK(c, gin.H{"articles": st.Articles})
}

// Get selects the article in the view model, loading its comment thread.
func (h *ArticlesHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_article_id", err)
		return
	}
	article, err := h.api.Articles.Get(c.Request.Context(), id)
	if err != nil {
		if astralis.IsNotFound(err) {
			RespondError(c, http.StatusNotFound, "article_not_found", err)
			return
		}
		RespondError(c, http.StatusBadGateway, "articles_unavailable", err)
		return
	}
	h.vm.Select(c.Request.Context(), *article)

	st := h.vm.Store.Get()
	RespondOK(c, gin.H{
		"article":  st.Selected,
		"comments": st.Comments,
	})
}

type commentSubmit struct {
	Content string `json:"content" binding:"required"`
}

func (h *ArticlesHandler) Comment(c *gin.Context) {
	var req commentSubmit
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	h.vm.SubmitComment(c.Request.Context(), req.Content)

	st := h.vm.Store.Get()
	if st.Err != "" {
		RespondError(c, http.StatusBadGateway, "comment_write_failed", nil)
		return
	}
	RespondOK(c, gin.H{"comments": st.Comments})
}

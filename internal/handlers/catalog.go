package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/astralisweb/astralis-client/internal/clients/astralis"
	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/viewmodels"
)

type CatalogHandler struct {
	log     *logger.Logger
	api     *astralis.API
	catalog *viewmodels.CatalogViewModel
}

func NewCatalogHandler(log *logger.Logger, api *astralis.API, catalog *viewmodels.CatalogViewModel) *CatalogHandler {
	return &CatalogHandler{log: log.With("handler", "Catalog"), api: api, catalog: catalog}
}

// ListBodies folds the request's filters into the catalog view model, loads,
// and returns the resulting screen state.
func (h *CatalogHandler) ListBodies(c *gin.Context) {
	vm := h.catalog
	vm.Store.Update(func(s viewmodels.CatalogState) viewmodels.CatalogState {
		s.Search = c.Query("search")
		s.BodyType = c.Query("bodyType")
		if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
			s.Paging.Page = page
		} else {
			s.Paging.Page = 1
		}
		return s
	})
	vm.Load(c.Request.Context())

	st := vm.Store.Get()
	if st.Err != "" {
		RespondError(c, http.StatusBadGateway, "catalog_unavailable", nil)
		return
	}
	RespondOK(c, gin.H{
		"bodies": st.Bodies,
		"page":   st.Paging.Page,
	})
}

func (h *CatalogHandler) GetBody(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_body_id", err)
		return
	}
	body, err := h.api.CelestialBodies.Get(c.Request.Context(), id)
	if err != nil {
		if astralis.IsNotFound(err) {
			RespondError(c, http.StatusNotFound, "body_not_found", err)
			return
		}
		RespondError(c, http.StatusBadGateway, "catalog_unavailable", err)
		return
	}
	RespondOK(c, body)
}

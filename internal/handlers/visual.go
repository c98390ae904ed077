package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/astralisweb/astralis-client/internal/clients/astralis"
	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/planetgen"
)

// VisualHandler serves the shader parameters for one celestial body. The
// rendering surface fetches these per view; the generator recomputes them
// deterministically every time, nothing is cached or persisted.
type VisualHandler struct {
	log *logger.Logger
	api *astralis.API
}

func NewVisualHandler(log *logger.Logger, api *astralis.API) *VisualHandler {
	return &VisualHandler{log: log.With("handler", "Visual"), api: api}
}

func (h *VisualHandler) GetParams(c *gin.Context) {
	bodyID, err := strconv.ParseInt(c.Param("bodyId"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_body_id", err)
		return
	}

	var typeID int64
	if raw := c.Query("typeId"); raw != "" {
		typeID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "bad_type_id", err)
			return
		}
	} else {
		// Look the type up from the catalog; a read miss falls through to
		// the generator's default template with type 0.
		body, err := h.api.CelestialBodies.Get(c.Request.Context(), bodyID)
		if err != nil {
			if !astralis.IsNotFound(err) {
				h.log.Debug("Body lookup failed, using default template", "body_id", bodyID, "error", err)
			}
		} else if body.PlanetTypeID != nil {
			typeID = *body.PlanetTypeID
		}
	}

	RespondOK(c, planetgen.Generate(bodyID, typeID))
}

package handlers

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/astralisweb/astralis-client/internal/clients/astralis"
	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/types"
)

// ExploreHandler backs the landing screen: one aggregate of the catalog
// sections, fetched concurrently. Each section degrades to empty on a read
// failure instead of failing the whole response.
type ExploreHandler struct {
	log *logger.Logger
	api *astralis.API
}

func NewExploreHandler(log *logger.Logger, api *astralis.API) *ExploreHandler {
	return &ExploreHandler{log: log.With("handler", "Explore"), api: api}
}

type exploreResponse struct {
	Planets  []types.Planet `json:"planets"`
	Stars    []types.Star   `json:"stars"`
	Comets   []types.Comet  `json:"comets"`
	Galaxies []types.Galaxy `json:"galaxies"`
	Quasars  []types.Quasar `json:"quasars"`
}

func (h *ExploreHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		mu   sync.Mutex
		resp exploreResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if items, err := h.api.Planets.List(gctx, nil); err == nil {
			mu.Lock()
			resp.Planets = items
			mu.Unlock()
		} else {
			h.log.Debug("Explore planets unavailable", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		if items, err := h.api.Stars.List(gctx, nil); err == nil {
			mu.Lock()
			resp.Stars = items
			mu.Unlock()
		} else {
			h.log.Debug("Explore stars unavailable", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		if items, err := h.api.Comets.List(gctx, nil); err == nil {
			mu.Lock()
			resp.Comets = items
			mu.Unlock()
		} else {
			h.log.Debug("Explore comets unavailable", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		if items, err := h.api.Galaxies.List(gctx, nil); err == nil {
			mu.Lock()
			resp.Galaxies = items
			mu.Unlock()
		} else {
			h.log.Debug("Explore galaxies unavailable", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		if items, err := h.api.Quasars.List(gctx, nil); err == nil {
			mu.Lock()
			resp.Quasars = items
			mu.Unlock()
		} else {
			h.log.Debug("Explore quasars unavailable", "error", err)
		}
		return nil
	})
	_ = g.Wait()

	RespondOK(c, resp)
}

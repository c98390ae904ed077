package viewmodels

import (
	"context"

	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/store"
	"github.com/astralisweb/astralis-client/internal/types"
)

type CatalogState struct {
	Loading  bool
	Err      string
	Bodies   []types.CelestialBody
	Paging   Paging
	Search   string
	BodyType string
}

// CatalogViewModel drives the celestial-body browsing screen: one paged,
// searchable list filtered by body type (planet, star, comet, ...).
type CatalogViewModel struct {
	log    *logger.Logger
	bodies Lister[types.CelestialBody]
	Store  *store.Store[CatalogState]
}

func NewCatalogViewModel(log *logger.Logger, bodies Lister[types.CelestialBody]) *CatalogViewModel {
	return &CatalogViewModel{
		log:    log.With("viewmodel", "Catalog"),
		bodies: bodies,
		Store:  store.New(CatalogState{Paging: Paging{Page: 1, PageSize: DefaultPageSize}}),
	}
}

func (vm *CatalogViewModel) Load(ctx context.Context) {
	st := vm.Store.Update(func(s CatalogState) CatalogState {
		s.Loading = true
		s.Err = ""
		return s
	})

	q := st.Paging.query()
	if st.Search != "" {
		q.Set("search", st.Search)
	}
	if st.BodyType != "" {
		q.Set("bodyType", st.BodyType)
	}

	bodies, err := vm.bodies.List(ctx, q)
	vm.Store.Update(func(s CatalogState) CatalogState {
		s.Loading = false
		if err != nil {
			vm.log.Warn("Catalog load failed", "error", err)
			s.Err = ErrGenericMessage
			return s
		}
		s.Bodies = bodies
		return s
	})
}

func (vm *CatalogViewModel) SetSearch(ctx context.Context, search string) {
	vm.Store.Update(func(s CatalogState) CatalogState {
		s.Search = search
		s.Paging.Page = 1
		return s
	})
	vm.Load(ctx)
}

func (vm *CatalogViewModel) SetBodyType(ctx context.Context, bodyType string) {
	vm.Store.Update(func(s CatalogState) CatalogState {
		s.BodyType = bodyType
		s.Paging.Page = 1
		return s
	})
	vm.Load(ctx)
}

func (vm *CatalogViewModel) NextPage(ctx context.Context) {
	vm.Store.Update(func(s CatalogState) CatalogState {
		s.Paging.Page++
		return s
	})
	vm.Load(ctx)
}

func (vm *CatalogViewModel) PrevPage(ctx context.Context) {
	vm.Store.Update(func(s CatalogState) CatalogState {
		if s.Paging.Page > 1 {
			s.Paging.Page--
		}
		return s
	})
	vm.Load(ctx)
}

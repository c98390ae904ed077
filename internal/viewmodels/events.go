package viewmodels

import (
	"context"

	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/store"
	"github.com/astralisweb/astralis-client/internal/types"
)

type EventsState struct {
	Loading bool
	Err     string
	Events  []types.Event
	Paging  Paging
}

type EventsViewModel struct {
	log    *logger.Logger
	events Lister[types.Event]
	Store  *store.Store[EventsState]
}

func NewEventsViewModel(log *logger.Logger, events Lister[types.Event]) *EventsViewModel {
	return &EventsViewModel{
		log:    log.With("viewmodel", "Events"),
		events: events,
		Store:  store.New(EventsState{Paging: Paging{Page: 1, PageSize: DefaultPageSize}}),
	}
}

func (vm *EventsViewModel) Load(ctx context.Context) {
	st := vm.Store.Update(func(s EventsState) EventsState {
		s.Loading = true
		s.Err = ""
		return s
	})

	q := st.Paging.query()
	q.Set("upcoming", "true")
	events, err := vm.events.List(ctx, q)
	vm.Store.Update(func(s EventsState) EventsState {
		s.Loading = false
		if err != nil {
			vm.log.Warn("Event load failed", "error", err)
			s.Err = ErrGenericMessage
			return s
		}
		s.Events = events
		return s
	})
}

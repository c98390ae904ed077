package viewmodels

import (
	"context"

	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/store"
	"github.com/astralisweb/astralis-client/internal/types"
)

// NotificationMarker is the write surface for marking notifications read.
type NotificationMarker interface {
	MarkNotificationRead(ctx context.Context, id int64) error
}

type NotificationsState struct {
	Loading       bool
	Err           string
	Notifications []types.Notification
	UnreadCount   int
}

type NotificationsViewModel struct {
	log    *logger.Logger
	list   Lister[types.Notification]
	marker NotificationMarker
	Store  *store.Store[NotificationsState]
}

func NewNotificationsViewModel(log *logger.Logger, list Lister[types.Notification], marker NotificationMarker) *NotificationsViewModel {
	return &NotificationsViewModel{
		log:    log.With("viewmodel", "Notifications"),
		list:   list,
		marker: marker,
		Store:  store.New(NotificationsState{}),
	}
}

func (vm *NotificationsViewModel) Load(ctx context.Context) {
	vm.Store.Update(func(s NotificationsState) NotificationsState {
		s.Loading = true
		s.Err = ""
		return s
	})

	items, err := vm.list.List(ctx, nil)
	vm.Store.Update(func(s NotificationsState) NotificationsState {
		s.Loading = false
		if err != nil {
			vm.log.Debug("Notification load failed, showing empty list", "error", err)
			s.Notifications = nil
			s.UnreadCount = 0
			return s
		}
		s.Notifications = items
		s.UnreadCount = countUnread(items)
		return s
	})
}

func (vm *NotificationsViewModel) MarkRead(ctx context.Context, id int64) {
	if err := vm.marker.MarkNotificationRead(ctx, id); err != nil {
		vm.log.Warn("Mark notification read failed", "id", id, "error", err)
		vm.Store.Update(func(s NotificationsState) NotificationsState {
			s.Err = ErrGenericMessage
			return s
		})
		return
	}
	vm.Load(ctx)
}

// Push folds a server-pushed notification into the list without a reload.
func (vm *NotificationsViewModel) Push(n types.Notification) {
	vm.Store.Update(func(s NotificationsState) NotificationsState {
		s.Notifications = append([]types.Notification{n}, s.Notifications...)
		s.UnreadCount = countUnread(s.Notifications)
		return s
	})
}

func countUnread(items []types.Notification) int {
	n := 0
	for _, it := range items {
		if !it.Read {
			n++
		}
	}
	return n
}

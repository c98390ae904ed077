package viewmodels

import (
	"context"
	"net/url"

	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/store"
	"github.com/astralisweb/astralis-client/internal/types"
)

// DiscoveryModerator is the write surface for moderation decisions.
type DiscoveryModerator interface {
	ModerateDiscovery(ctx context.Context, id int64, status string) error
}

type AdminState struct {
	Loading bool
	Err     string
	Pending []types.Discovery
}

// AdminViewModel drives the moderation queue of user-submitted discoveries.
type AdminViewModel struct {
	log         *logger.Logger
	discoveries Lister[types.Discovery]
	moderator   DiscoveryModerator
	Store       *store.Store[AdminState]
}

func NewAdminViewModel(log *logger.Logger, discoveries Lister[types.Discovery], moderator DiscoveryModerator) *AdminViewModel {
	return &AdminViewModel{
		log:         log.With("viewmodel", "Admin"),
		discoveries: discoveries,
		moderator:   moderator,
		Store:       store.New(AdminState{}),
	}
}

func (vm *AdminViewModel) Load(ctx context.Context) {
	vm.Store.Update(func(s AdminState) AdminState {
		s.Loading = true
		s.Err = ""
		return s
	})

	q := url.Values{"status": {types.DiscoveryPending}}
	pending, err := vm.discoveries.List(ctx, q)
	vm.Store.Update(func(s AdminState) AdminState {
		s.Loading = false
		if err != nil {
			vm.log.Warn("Moderation queue load failed", "error", err)
			s.Err = ErrGenericMessage
			return s
		}
		s.Pending = pending
		return s
	})
}

func (vm *AdminViewModel) Approve(ctx context.Context, id int64) {
	vm.moderate(ctx, id, types.DiscoveryApproved)
}

func (vm *AdminViewModel) Reject(ctx context.Context, id int64) {
	vm.moderate(ctx, id, types.DiscoveryRejected)
}

func (vm *AdminViewModel) moderate(ctx context.Context, id int64, status string) {
	if err := vm.moderator.ModerateDiscovery(ctx, id, status); err != nil {
		vm.log.Warn("Moderation update failed", "id", id, "status", status, "error", err)
		vm.Store.Update(func(s AdminState) AdminState {
			s.Err = ErrGenericMessage
			return s
		})
		return
	}
	vm.Load(ctx)
}

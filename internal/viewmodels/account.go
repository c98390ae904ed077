package viewmodels

import (
	"context"

	"github.com/astralisweb/astralis-client/internal/clients/astralis"
	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/session"
	"github.com/astralisweb/astralis-client/internal/store"
	"github.com/astralisweb/astralis-client/internal/types"
)

type AccountState struct {
	Loading bool
	Err     string
	Session session.State
}

// AccountViewModel mirrors the session holder and carries the login and
// profile-edit commands.
type AccountViewModel struct {
	log     *logger.Logger
	session *session.Holder
	Store   *store.Store[AccountState]

	unsubscribe func()
}

func NewAccountViewModel(log *logger.Logger, holder *session.Holder) *AccountViewModel {
	vm := &AccountViewModel{
		log:     log.With("viewmodel", "Account"),
		session: holder,
		Store:   store.New(AccountState{Session: holder.Current()}),
	}
	vm.unsubscribe = holder.Subscribe(func(st session.State) {
		vm.Store.Update(func(s AccountState) AccountState {
			s.Session = st
			return s
		})
	})
	return vm
}

func (vm *AccountViewModel) Close() {
	if vm.unsubscribe != nil {
		vm.unsubscribe()
	}
}

func (vm *AccountViewModel) Login(ctx context.Context, email, password string) {
	vm.Store.Update(func(s AccountState) AccountState {
		s.Loading = true
		s.Err = ""
		return s
	})
	err := vm.session.Login(ctx, email, password)
	vm.Store.Update(func(s AccountState) AccountState {
		s.Loading = false
		if err != nil {
			vm.log.Warn("Login failed", "error", err)
			s.Err = "Login failed. Check your email and password."
			return s
		}
		return s
	})
}

func (vm *AccountViewModel) Register(ctx context.Context, req astralis.RegisterRequest) {
	vm.Store.Update(func(s AccountState) AccountState {
		s.Loading = true
		s.Err = ""
		return s
	})
	err := vm.session.Register(ctx, req)
	vm.Store.Update(func(s AccountState) AccountState {
		s.Loading = false
		if err != nil {
			vm.log.Warn("Registration failed", "error", err)
			s.Err = "Registration failed. Please try again."
			return s
		}
		return s
	})
}

func (vm *AccountViewModel) Logout(ctx context.Context) {
	vm.session.Logout(ctx)
}

// User returns the authenticated user, or nil for anonymous sessions.
func (vm *AccountViewModel) User() *types.User {
	st := vm.Store.Get()
	if !st.Session.Authenticated {
		return nil
	}
	return st.Session.User
}

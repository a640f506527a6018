package sessions

import (
	"context"

	"github.com/opencourse/opencourse/sdk/api"
	"github.com/opencourse/opencourse/sdk/meta"
	"github.com/rs/zerolog"
)

// Messages surfaced when the API rejects a session-mutating call without
// supplying its own explanation.
const (
	defaultLoginFailedMessage    = "Invalid email or password"
	defaultRegisterFailedMessage = "Registration failed. Please try again."
)

// Service owns all writes to a session Store and derives session facts from
// it. Login and Register suspend on the remote API; everything else is a
// pure read of local state.
type Service struct {
	accounts api.AccountsClient
	store    Store
	log      zerolog.Logger
}

// NewService returns a Service over the given accounts client and store.
func NewService(
	accounts api.AccountsClient,
	store Store,
	log zerolog.Logger,
) *Service {
	return &Service{
		accounts: accounts,
		store:    store,
		log:      log,
	}
}

// Login exchanges credentials for session tokens and persists the resulting
// credentials-- all five entries as one unit, so no reader ever observes a
// token without its role. A rejection surfaces as a *meta.ErrAuthentication
// carrying the server's message, or a generic fallback when the server gives
// none; the store is untouched on any failure.
func (s *Service) Login(ctx context.Context, email, password string) error {
	authDetails, err := s.accounts.Login(
		ctx,
		api.Credentials{
			Email:    email,
			Password: password,
		},
	)
	if err != nil {
		if errAuthentication, ok := err.(*meta.ErrAuthentication); ok {
			if errAuthentication.Reason == "" {
				errAuthentication.Reason = defaultLoginFailedMessage
			}
			s.log.Debug().Str("email", email).Msg("login rejected by API")
			return errAuthentication
		}
		return err
	}
	if err := s.store.SetAll(
		map[string]string{
			KeyAccessToken:  authDetails.AccessToken,
			KeyRefreshToken: authDetails.RefreshToken,
			KeyRole:         authDetails.Role,
			KeyEmail:        authDetails.Email,
			KeyUserName:     authDetails.UserName,
		},
	); err != nil {
		return err
	}
	s.log.Debug().
		Str("email", authDetails.Email).
		Str("role", authDetails.Role).
		Msg("login succeeded")
	return nil
}

// Register creates a new account. It does NOT authenticate the caller and
// never touches the store. An already-registered email surfaces as a
// *meta.ErrConflict carrying the server's field-level message when there is
// one.
func (s *Service) Register(
	ctx context.Context,
	email string,
	userName string,
	password string,
	role Role,
) error {
	group := api.GroupStudent
	if role == RoleCreator {
		group = api.GroupCreator
	}
	err := s.accounts.Register(
		ctx,
		api.Registration{
			Email:    email,
			UserName: userName,
			Password: password,
			Group:    group,
		},
	)
	if err == nil {
		s.log.Debug().Str("email", email).Msg("registration succeeded")
		return nil
	}
	switch typedErr := err.(type) {
	case *meta.ErrConflict:
		if typedErr.Reason == "" {
			typedErr.Reason = defaultRegisterFailedMessage
		}
		return typedErr
	case *meta.ErrBadRequest:
		// The API reports an already-registered address as a field-level
		// validation message rather than a 409.
		if msg, ok := typedErr.FieldMessage("email"); ok {
			return &meta.ErrConflict{Reason: msg}
		}
		if typedErr.Reason == "" {
			typedErr.Reason = defaultRegisterFailedMessage
		}
		return typedErr
	}
	return err
}

// Logout clears the store. It is idempotent: calling it without a session is
// safe and leaves the same empty state behind.
func (s *Service) Logout() error {
	if err := s.store.RemoveAll(); err != nil {
		return err
	}
	s.log.Debug().Msg("session cleared")
	return nil
}

// IsAuthenticated reports whether a session is present. Presence of an
// access token is the sole criterion-- tokens are opaque and no expiry is
// judged client-side.
func (s *Service) IsAuthenticated() bool {
	token, ok := s.store.Get(KeyAccessToken)
	return ok && token != ""
}

// CurrentRole returns the stored session role, if there is one.
func (s *Service) CurrentRole() (Role, bool) {
	role, ok := s.store.Get(KeyRole)
	if !ok || role == "" {
		return "", false
	}
	return Role(role), true
}

// IsCreator reports whether the stored session role is exactly RoleCreator.
// Any other value, including no role at all, is not a creator.
func (s *Service) IsCreator() bool {
	role, ok := s.CurrentRole()
	return ok && role == RoleCreator
}

// CurrentEmail returns the stored session email, or "" when there is none.
func (s *Service) CurrentEmail() string {
	email, _ := s.store.Get(KeyEmail)
	return email
}

// CurrentUserName returns the stored session user name, or "" when there is
// none.
func (s *Service) CurrentUserName() string {
	userName, _ := s.store.Get(KeyUserName)
	return userName
}

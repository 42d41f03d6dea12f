// Package session owns the authentication state machine: account creation,
// login, current-user lookup and logout. The manager is stateless between
// calls and always asks the backend for ground truth; callers that want to
// show the logged-in user cache the returned values themselves.
package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quillworks/quill/internal/model"
)

var sessionLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	sessionLogger = l
}

// AccountAPI is the slice of the backend gateway the manager needs.
type AccountAPI interface {
	CreateAccount(ctx context.Context, id, email, password, name string) (*model.User, error)
	CreateSession(ctx context.Context, email, password string) (*model.Session, error)
	GetAccount(ctx context.Context) (*model.User, error)
	DeleteCurrentSession(ctx context.Context) error
}

type Manager struct {
	api AccountAPI
}

func NewManager(api AccountAPI) *Manager {
	return &Manager{api: api}
}

// CreateAccount registers a user and immediately logs in, returning the new
// session. Duplicate emails and malformed input surface untranslated from
// the backend.
func (m *Manager) CreateAccount(ctx context.Context, email, password, name string) (*model.Session, error) {
	user, err := m.api.CreateAccount(ctx, uuid.New().String(), email, password, name)
	if err != nil {
		return nil, err
	}

	sessionLogger.Info().Str("user_id", string(user.ID)).Msg("Account created")

	return m.Login(ctx, email, password)
}

// Login creates a session for the given credentials. Logging in while already
// authenticated simply replaces the session.
func (m *Manager) Login(ctx context.Context, email, password string) (*model.Session, error) {
	sess, err := m.api.CreateSession(ctx, email, password)
	if err != nil {
		return nil, err
	}

	sessionLogger.Info().Str("user_id", string(sess.UserID)).Msg("Logged in")

	return sess, nil
}

// CurrentUser returns the user bound to the active session, or (nil, nil)
// when no session is active. Anonymous is the expected rest state, not an
// error; any other failure comes back as KindSessionLookup wrapping the
// cause.
func (m *Manager) CurrentUser(ctx context.Context) (*model.User, error) {
	user, err := m.api.GetAccount(ctx)
	if err != nil {
		if model.IsKind(err, model.KindUnauthorized) {
			return nil, nil
		}
		return nil, model.WrapError(model.KindSessionLookup, "looking up current session", err)
	}
	return user, nil
}

// Logout destroys the current session only; the user's sessions on other
// devices stay alive. Logging out while anonymous is a success.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.api.DeleteCurrentSession(ctx)
	if err != nil {
		if model.IsKind(err, model.KindUnauthorized) {
			return nil
		}
		return err
	}

	sessionLogger.Info().Msg("Logged out")
	return nil
}

package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/quillworks/quill/internal/model"
)

type wireUser struct {
	ID    string `json:"$id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (u *wireUser) toModel() *model.User {
	return &model.User{
		ID:    model.UserID(u.ID),
		Email: u.Email,
		Name:  u.Name,
	}
}

type wireSession struct {
	ID        string    `json:"$id"`
	UserID    string    `json:"userId"`
	Secret    string    `json:"secret"`
	CreatedAt time.Time `json:"$createdAt"`
}

// CreateAccount registers a new user. The backend rejects duplicate emails
// (409) and malformed input (400); both surface untranslated.
func (c *Client) CreateAccount(ctx context.Context, id, email, password, name string) (*model.User, error) {
	payload := map[string]string{
		"userId":   id,
		"email":    email,
		"password": password,
		"name":     name,
	}

	var u wireUser
	if err := c.doJSON(ctx, http.MethodPost, "/account", payload, &u); err != nil {
		return nil, err
	}
	return u.toModel(), nil
}

// CreateSession logs in with email and password. On success the client keeps
// the session secret and sends it on every subsequent call, replacing any
// session it held before.
func (c *Client) CreateSession(ctx context.Context, email, password string) (*model.Session, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	var s wireSession
	if err := c.doJSON(ctx, http.MethodPost, "/account/sessions/email", payload, &s); err != nil {
		return nil, err
	}

	c.session = s.Secret

	return &model.Session{
		ID:        model.SessionID(s.ID),
		UserID:    model.UserID(s.UserID),
		CreatedAt: s.CreatedAt,
	}, nil
}

// GetAccount returns the user bound to the current session. Anonymous calls
// come back as a KindUnauthorized error; translating that into an absent
// value is the session manager's job, not this client's.
func (c *Client) GetAccount(ctx context.Context) (*model.User, error) {
	var u wireUser
	if err := c.do(ctx, http.MethodGet, "/account", nil, "", nil, &u); err != nil {
		return nil, err
	}
	return u.toModel(), nil
}

// DeleteCurrentSession destroys only the session this client holds. Sessions
// of the same user on other devices stay alive.
func (c *Client) DeleteCurrentSession(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/account/sessions/current", nil, "", nil, nil); err != nil {
		return err
	}
	c.session = ""
	return nil
}

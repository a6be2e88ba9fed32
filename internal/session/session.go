// Package session resolves who is acting on the board. A Session is passed
// explicitly to every operation that needs authorization or attribution.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/user"

	"github.com/thenoetrevino/leadboard/internal/database"
	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/types"
)

// ErrUnknownUser is returned when the acting user has no row in the users table
var ErrUnknownUser = errors.New("unknown user")

// Session identifies the acting user and their role
type Session struct {
	UserID types.UserID
	Name   string
	Role   models.Role
}

// IsAdmin reports whether the session may perform privileged actions
func (s Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

// Provider looks up sessions in the users table
type Provider struct {
	users database.UserRepository
	name  string
}

// NewProvider returns a Provider. name is the configured user; when empty the
// operating system user name is used.
func NewProvider(users database.UserRepository, name string) *Provider {
	return &Provider{users: users, name: name}
}

// Current returns the session of the configured (or OS) user
func (p *Provider) Current(ctx context.Context) (Session, error) {
	name := p.name
	if name == "" {
		name = osUsername()
	}

	u, err := p.users.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return Session{}, fmt.Errorf("%w: %q (add it with `leadboard user add`)", ErrUnknownUser, name)
		}
		return Session{}, err
	}
	return fromUser(u), nil
}

// ForUser returns the session of the user with the given ID
func (p *Provider) ForUser(ctx context.Context, id types.UserID) (Session, error) {
	u, err := p.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return Session{}, fmt.Errorf("%w: id %d", ErrUnknownUser, id)
		}
		return Session{}, err
	}
	return fromUser(u), nil
}

func fromUser(u *models.User) Session {
	return Session{UserID: u.ID, Name: u.Name, Role: u.Role}
}

// osUsername falls back from user.Current to $USER to "unknown" so the
// result is never empty.
func osUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}

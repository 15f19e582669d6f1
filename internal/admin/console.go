// Package admin implements the moderation console: the full-directory
// listing with search and active/declined partitioning, aggregate counts,
// and the approve / decline / role-toggle mutations. Every mutation
// re-fetches the full list rather than patching local state; at the
// expected directory sizes the extra round trip is the simplest correct
// choice.
package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"proinc-backend/internal/models"
)

var (
	ErrReasonRequired = errors.New("a decline reason is required")
	ErrUserNotFound   = errors.New("user not found")
)

// Tab selects which partition of the directory is shown.
type Tab string

const (
	TabActive   Tab = "active"
	TabDeclined Tab = "declined"
)

// UserDirectory is the slice of the users repository the console needs.
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
	SetApproval(ctx context.Context, id string, approved bool) error
	SetRole(ctx context.Context, id string, role models.Role) error
	Decline(ctx context.Context, id, reason string) error
}

// DeclineArchive stores the snapshot written at decline time.
type DeclineArchive interface {
	Archive(ctx context.Context, snapshot *models.DeclinedUser) error
}

type Console struct {
	users    UserDirectory
	declined DeclineArchive
}

func NewConsole(users UserDirectory, declined DeclineArchive) *Console {
	return &Console{users: users, declined: declined}
}

// Stats are computed over the full loaded set, never the filtered view.
type Stats struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Declined int `json:"declined"`
}

func (c *Console) List(ctx context.Context) ([]models.User, error) {
	return c.users.ListAll(ctx)
}

// Search does a case-insensitive substring match over name and email.
func Search(users []models.User, query string) []models.User {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return users
	}
	var out []models.User
	for _, u := range users {
		name := strings.ToLower(u.FirstName)
		email := strings.ToLower(u.Email)
		if strings.Contains(name, query) || strings.Contains(email, query) {
			out = append(out, u)
		}
	}
	return out
}

// Partition splits the directory into active (not declined) vs declined.
func Partition(users []models.User, tab Tab) []models.User {
	var out []models.User
	for _, u := range users {
		switch tab {
		case TabDeclined:
			if u.IsDeclined {
				out = append(out, u)
			}
		default:
			if !u.IsDeclined {
				out = append(out, u)
			}
		}
	}
	return out
}

// Counts aggregates the full set.
func Counts(users []models.User) Stats {
	s := Stats{Total: len(users)}
	for _, u := range users {
		if u.IsApproved && !u.IsDeclined {
			s.Approved++
		}
		if u.IsDeclined {
			s.Declined++
		}
	}
	return s
}

// SetApproval toggles approval and returns the refreshed directory.
// Approving clears any standing decline.
func (c *Console) SetApproval(ctx context.Context, id string, approved bool) ([]models.User, error) {
	user, err := c.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if err := c.users.SetApproval(ctx, id, approved); err != nil {
		return nil, err
	}
	return c.users.ListAll(ctx)
}

// ToggleRole flips between admin and user. The other business roles are not
// reachable from the console; promotion is a binary admin switch only.
func (c *Console) ToggleRole(ctx context.Context, id string) ([]models.User, error) {
	user, err := c.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	next := models.RoleAdmin
	if user.Role == models.RoleAdmin {
		next = models.RoleUser
	}
	if err := c.users.SetRole(ctx, id, next); err != nil {
		return nil, err
	}
	return c.users.ListAll(ctx)
}

// Decline archives a snapshot of the user, then flips the live record into
// the declined state. The two writes are not atomic; the snapshot goes
// first so a failure in between never leaves a declined record without its
// archive entry.
func (c *Console) Decline(ctx context.Context, id, reason string) ([]models.User, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}

	user, err := c.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	snapshot := &models.DeclinedUser{
		ID:          user.ID,
		FirstName:   user.FirstName,
		Email:       user.Email,
		Phone:       user.Phone,
		Role:        user.Role,
		Description: reason,
		DeclinedAt:  time.Now(),
	}
	if err := c.declined.Archive(ctx, snapshot); err != nil {
		return nil, err
	}

	if err := c.users.Decline(ctx, id, reason); err != nil {
		return nil, err
	}
	return c.users.ListAll(ctx)
}

package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"skillswap/internal/domain"
	"skillswap/internal/events"
	"skillswap/internal/repo"
)

// UserInput is the profile sent on signup.
type UserInput struct {
	FullName string
	Email    string
	Skill    string
	Bio      string
}

// CreateUser stores the caller's profile. Signing up again replaces the
// profile fields and reactivates the account.
func (e Engine) CreateUser(ctx context.Context, actorID string, in UserInput) (domain.User, error) {
	u := domain.User{
		ID:       actorID,
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.TrimSpace(in.Email),
		Skill:    strings.TrimSpace(in.Skill),
		Bio:      strings.TrimSpace(in.Bio),
		IsActive: true,
	}
	if u.FullName == "" {
		return domain.User{}, invalid("full_name is required")
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return domain.User{}, invalid("a valid email is required")
	}
	now := e.timestamp()
	u.CreatedAt, u.UpdatedAt = now, now
	err := e.inTx(ctx, func(tx *sql.Tx) error {
		if err := e.Repo.UpsertUser(ctx, tx, u); err != nil {
			return fmt.Errorf("upsert user: %w", err)
		}
		stored, err := e.Repo.GetUserTx(ctx, tx, u.ID)
		if err != nil {
			return err
		}
		u = stored
		return e.writer().Append(ctx, tx, events.UserCreated, "user", u.ID, actorID, events.EventPayload{"email": u.Email})
	})
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (e Engine) GetUser(ctx context.Context, id string) (domain.User, error) {
	u, err := e.Repo.GetUser(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return u, notFound("User not found")
	}
	return u, err
}

// UpdateUser applies a partial profile update. Blank strings count as absent.
func (e Engine) UpdateUser(ctx context.Context, actorID string, upd repo.UserUpdate) (domain.User, error) {
	upd.FullName = trimmedOrNil(upd.FullName)
	upd.Skill = trimmedOrNil(upd.Skill)
	upd.Bio = trimmedOrNil(upd.Bio)
	if upd.Empty() {
		return domain.User{}, invalid("No valid fields to update.")
	}
	var u domain.User
	err := e.inTx(ctx, func(tx *sql.Tx) error {
		if err := e.Repo.UpdateUser(ctx, tx, actorID, upd, e.timestamp()); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFound("User not found")
			}
			return err
		}
		var err error
		if u, err = e.Repo.GetUserTx(ctx, tx, actorID); err != nil {
			return err
		}
		return e.writer().Append(ctx, tx, events.UserUpdated, "user", actorID, actorID, nil)
	})
	return u, err
}

// SetActive toggles is_active for userID on behalf of actorID.
func (e Engine) SetActive(ctx context.Context, actorID, userID string, active bool) error {
	evt := events.UserDeactivated
	if active {
		evt = events.UserReactivated
	}
	return e.inTx(ctx, func(tx *sql.Tx) error {
		if err := e.Repo.SetUserActive(ctx, tx, userID, active, e.timestamp()); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFound("User not found")
			}
			return err
		}
		return e.writer().Append(ctx, tx, evt, "user", userID, actorID, nil)
	})
}

// ListUsers returns active users, optionally narrowed by skill.
func (e Engine) ListUsers(ctx context.Context, skill string, limit int) ([]domain.User, error) {
	return e.Repo.ListUsers(ctx, repo.UserFilters{Skill: skill, ActiveOnly: true, Limit: limit})
}

// requireActiveUser mirrors the account checks made before rating actions.
func (e Engine) requireActiveUser(ctx context.Context, tx *sql.Tx, userID, action string) error {
	if strings.TrimSpace(userID) == "" {
		return invalid("User ID cannot be empty or contain only whitespace.")
	}
	u, err := e.Repo.GetUserTx(ctx, tx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return notFound(fmt.Sprintf("User with ID '%s' does not exist in the system.", userID))
	}
	if err != nil {
		return err
	}
	if !u.IsActive {
		return forbidden(fmt.Sprintf("User account is deactivated. Please reactivate your account to %s.", action))
	}
	return nil
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}

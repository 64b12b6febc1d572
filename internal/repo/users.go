package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"skillswap/internal/domain"
)

const userColumns = `id,full_name,email,skill,bio,is_active,created_at,updated_at`

func scanUser(row scanner) (domain.User, error) {
	var u domain.User
	var active int
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Skill, &u.Bio, &active, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	u.IsActive = active != 0
	return u, err
}

// UpsertUser inserts u or overwrites the profile with the same id, keeping created_at.
func (r Repo) UpsertUser(ctx context.Context, tx *sql.Tx, u domain.User) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO users(`+userColumns+`) VALUES (?,?,?,?,?,?,?,?)
ON CONFLICT(id) DO UPDATE SET full_name=excluded.full_name, email=excluded.email, skill=excluded.skill,
  bio=excluded.bio, is_active=excluded.is_active, updated_at=excluded.updated_at`,
		u.ID, u.FullName, u.Email, u.Skill, u.Bio, boolInt(u.IsActive), u.CreatedAt, u.UpdatedAt)
	return err
}

func (r Repo) GetUser(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id=?`, id))
}

func (r Repo) GetUserTx(ctx context.Context, tx *sql.Tx, id string) (domain.User, error) {
	return scanUser(tx.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id=?`, id))
}

// UserUpdate holds the profile fields to change; nil fields are left alone.
type UserUpdate struct {
	FullName *string
	Skill    *string
	Bio      *string
}

// Empty reports whether no field is set.
func (u UserUpdate) Empty() bool {
	return u.FullName == nil && u.Skill == nil && u.Bio == nil
}

func (r Repo) UpdateUser(ctx context.Context, tx *sql.Tx, id string, upd UserUpdate, updatedAt string) error {
	var (
		fields []string
		args   []any
	)
	set := func(col string, v *string) {
		if v != nil {
			fields = append(fields, col+"=?")
			args = append(args, *v)
		}
	}
	set("full_name", upd.FullName)
	set("skill", upd.Skill)
	set("bio", upd.Bio)
	if len(fields) == 0 {
		return nil
	}
	fields = append(fields, "updated_at=?")
	args = append(args, updatedAt, id)
	res, err := tx.ExecContext(ctx, fmt.Sprintf(`UPDATE users SET %s WHERE id=?`, strings.Join(fields, ",")), args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r Repo) SetUserActive(ctx context.Context, tx *sql.Tx, id string, active bool, updatedAt string) error {
	res, err := tx.ExecContext(ctx, `UPDATE users SET is_active=?, updated_at=? WHERE id=?`, boolInt(active), updatedAt, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type UserFilters struct {
	Skill      string
	ActiveOnly bool
	Limit      int
}

func (r Repo) ListUsers(ctx context.Context, f UserFilters) ([]domain.User, error) {
	var clauses []string
	var args []any
	if f.ActiveOnly {
		clauses = append(clauses, "is_active=1")
	}
	if strings.TrimSpace(f.Skill) != "" {
		clauses = append(clauses, "lower(skill) LIKE ?")
		args = append(args, likePattern(f.Skill))
	}
	query := `SELECT ` + userColumns + ` FROM users ` + whereClause(clauses) + `ORDER BY created_at DESC, id`
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

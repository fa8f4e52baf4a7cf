package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"userboard/internal/domain"
	"userboard/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	email TEXT NOT NULL,
	password TEXT NOT NULL
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Insert(ctx context.Context, user domain.User) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, username, email, password)
VALUES (?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.Email,
		user.Password,
	)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return rowsAffected(res)
}

// InsertMany writes the whole batch inside one transaction so a partially
// seeded table never survives a failure mid-batch.
func (r *UserRepository) InsertMany(ctx context.Context, users []domain.User) (int64, error) {
	if len(users) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	var affected int64
	for _, user := range users {
		res, err := tx.ExecContext(ctx, `
INSERT INTO users (id, username, email, password)
VALUES (?, ?, ?, ?)`,
			user.ID,
			user.Username,
			user.Email,
			user.Password,
		)
		if err != nil {
			return 0, fmt.Errorf("insert user %s: %w", user.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		affected += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return affected, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, username, email, password
FROM users
WHERE id = ?`,
		id,
	)

	var user domain.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, username, email, password
FROM users`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Password); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (r *UserRepository) UpdateUsername(ctx context.Context, id, username string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE users SET username = ? WHERE id = ?`,
		username,
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("update username: %w", err)
	}
	return rowsAffected(res)
}

func (r *UserRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM users WHERE id = ?`,
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	return rowsAffected(res)
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

package repo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/talx-hub/gopher-graph/internal/model/user"
)

type UserRepository struct {
	DB
}

func NewUserRepository(pool connectionPool, log *slog.Logger) *UserRepository {
	return &UserRepository{
		DB{
			pool: pool,
			log:  log,
		},
	}
}

const userColumns = "id, name, email, password, role"

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role)
	return u, err
}

func collectUsers(rows pgx.Rows) ([]user.User, error) {
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user rows: %w", err)
	}
	return users, nil
}

// List returns one page of users whose name contains nameFilter.
// Page numbering starts at 1.
func (r *UserRepository) List(ctx context.Context, page, pageSize uint64, nameFilter string,
) ([]user.User, error) {
	listLogic := func() ([]user.User, error) {
		offset := (page - 1) * pageSize
		rows, err := r.pool.Query(ctx,
			`SELECT `+userColumns+` FROM users
			 WHERE name ILIKE '%' || $1 || '%'
			 ORDER BY id
			 LIMIT $2 OFFSET $3`,
			nameFilter, pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to query users: %w", err)
		}
		return collectUsers(rows)
	}

	users, err := WithRetry[[]user.User](listLogic, 0)
	if err != nil {
		return nil, classify("users", err)
	}
	return users, nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]user.User, error) {
	listAllLogic := func() ([]user.User, error) {
		rows, err := r.pool.Query(ctx,
			`SELECT `+userColumns+` FROM users ORDER BY id`)
		if err != nil {
			return nil, fmt.Errorf("failed to query users: %w", err)
		}
		return collectUsers(rows)
	}

	users, err := WithRetry[[]user.User](listAllLogic, 0)
	if err != nil {
		return nil, classify("users", err)
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (user.User, error) {
	findLogic := func() (user.User, error) {
		return scanUser(r.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	}

	u, err := WithRetry[user.User](findLogic, 0)
	if err != nil {
		return user.User{}, classify("findUser", err)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	findLogic := func() (user.User, error) {
		return scanUser(r.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	}

	u, err := WithRetry[user.User](findLogic, 0)
	if err != nil {
		return user.User{}, classify("findUser", err)
	}
	return u, nil
}

// Create inserts u and returns the stored row with its assigned ID.
func (r *UserRepository) Create(ctx context.Context, u *user.User) (user.User, error) {
	createLogic := func() (user.User, error) {
		return scanUser(r.pool.QueryRow(ctx,
			`INSERT INTO users (name, email, password, role)
			 VALUES ($1, $2, $3, $4)
			 RETURNING `+userColumns,
			u.Name, u.Email, u.Password, u.Role))
	}

	created, err := WithRetry[user.User](createLogic, 0)
	if err != nil {
		return user.User{}, classify("createUser", err)
	}
	return created, nil
}

// Update changes only the fields whose pointers are non-nil.
func (r *UserRepository) Update(ctx context.Context, id int64, name, email *string,
) (user.User, error) {
	updateLogic := func() (user.User, error) {
		return scanUser(r.pool.QueryRow(ctx,
			`UPDATE users
			 SET name  = COALESCE($2, name),
			     email = COALESCE($3, email)
			 WHERE id = $1
			 RETURNING `+userColumns,
			id, name, email))
	}

	u, err := WithRetry[user.User](updateLogic, 0)
	if err != nil {
		return user.User{}, classify("updateUser", err)
	}
	return u, nil
}

// Delete removes the user and returns the prior row.
func (r *UserRepository) Delete(ctx context.Context, id int64) (user.User, error) {
	deleteLogic := func() (user.User, error) {
		return scanUser(r.pool.QueryRow(ctx,
			`DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id))
	}

	u, err := WithRetry[user.User](deleteLogic, 0)
	if err != nil {
		return user.User{}, classify("deleteUser", err)
	}
	return u, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/ports/repositories"
	"gobooklend/pkg/db/postgres"
	"gobooklend/pkg/logger"
)

const userColumns = `id, username, password_hash, role, created_at, updated_at`

// UserRepository реализует repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var (
		user entities.User
		role *string
	)
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &role, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, err
	}
	r, err := entities.RoleFromStorage(role)
	if err != nil {
		return nil, fmt.Errorf("stored role: %w", err)
	}
	user.Role = r
	return &user, nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))
	if !validID(id) {
		return nil, entities.ErrUserNotFound
	}

	user, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if isMissing(err) {
			log.Debug(ctx, "user not found", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}
	return user, nil
}

// FindByUsername находит пользователя по имени.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByUsername"))

	user, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		if isMissing(err) {
			log.Debug(ctx, "user not found", zap.String("username", username))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by username", zap.Error(err))
		return nil, fmt.Errorf("error querying user by username: %w", err)
	}
	return user, nil
}

// Create создает нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	created, err := scanUser(r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3) RETURNING `+userColumns,
		user.Username, user.PasswordHash, user.Role.StorageValue(),
	))
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			log.Debug(ctx, "username already exists", zap.String("username", user.Username))
			return nil, entities.ErrUsernameTaken
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	log.Info(ctx, "user created successfully", zap.String("id", created.ID))
	return created, nil
}

// Update обновляет имя, хеш пароля и роль.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Update"))

	updated, err := scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET username = $1, password_hash = $2, role = $3 WHERE id = $4 RETURNING `+userColumns,
		user.Username, user.PasswordHash, user.Role.StorageValue(), user.ID,
	))
	if err != nil {
		switch {
		case isMissing(err):
			return nil, entities.ErrUserNotFound
		case postgres.IsUniqueViolation(err):
			return nil, entities.ErrUsernameTaken
		}
		log.Error(ctx, "error updating user", zap.Error(err))
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return updated, nil
}

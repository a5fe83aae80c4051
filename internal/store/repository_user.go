package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/models"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table.
type userRepository struct {
	*DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateUser inserts user and returns it with the generated id.
//
// Unique violations on username or email map to [ErrUsernameAlreadyExists]
// and [ErrEmailAlreadyExists]; other driver errors are wrapped with
// [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateUserQuery(r.builder, user)
	if err != nil {
		return models.User{}, wrapBuildErr(err)
	}

	if err = r.QueryRowContext(ctx, query, args...).Scan(&user.ID); err != nil {
		if mapped := r.uniqueViolation(err); mapped != nil {
			log.Debug().Err(err).Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("duplicate user")
			return models.User{}, mapped
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return user, nil
}

// FindUserByUsername returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, "username", username)
}

// FindUserByID returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return r.findUser(ctx, "id", id)
}

// FindUserByEmail returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "email", email)
}

func (r *userRepository) findUser(ctx context.Context, column string, value any) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserQuery(r.builder, column, value)
	if err != nil {
		return models.User{}, wrapBuildErr(err)
	}

	user, err := scanUser(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUser").Str("column", column).Msg("error scanning user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// UpdateProfile rewrites the profile columns of user.ID and returns user.
// An email taken by another account maps to [ErrEmailAlreadyExists].
func (r *userRepository) UpdateProfile(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateProfileQuery(r.builder, user)
	if err != nil {
		return models.User{}, wrapBuildErr(err)
	}

	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		if mapped := r.uniqueViolation(err); mapped != nil {
			return models.User{}, mapped
		}
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Int64("user_id", user.ID).Msg("error updating profile")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.User{}, ErrNoUserWasFound
	}

	return user, nil
}

// FirstUserID returns the lowest user id, ok is false when there are no users.
func (r *userRepository) FirstUserID(ctx context.Context) (int64, bool, error) {
	query, args, err := buildFirstUserIDQuery(r.builder)
	if err != nil {
		return 0, false, wrapBuildErr(err)
	}

	var id int64
	err = r.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return id, true, nil
}

func (r *userRepository) uniqueViolation(err error) error {
	if r.errorClassificator == nil {
		return nil
	}

	column, ok := r.errorClassificator.UniqueViolation(err)
	if !ok {
		return nil
	}

	switch column {
	case "email":
		return ErrEmailAlreadyExists
	default:
		return ErrUsernameAlreadyExists
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.FullName,
		&u.Role,
		&u.AvatarURL,
		&u.HashedPassword,
		&u.Skills,
		&u.Bio,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

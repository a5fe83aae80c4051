package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/store"
	"github.com/MKhiriev/go-code-gen/models"
)

type userService struct {
	userRepository          store.UserRepository
	generatedCodeRepository store.GeneratedCodeRepository

	logger *logger.Logger
}

// NewUserService constructs a UserService.
func NewUserService(userRepository store.UserRepository, generatedCodeRepository store.GeneratedCodeRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository:          userRepository,
		generatedCodeRepository: generatedCodeRepository,
		logger:                  logger,
	}
}

// UpdateProfile applies req to user.
//
// Email and role are required and replace the stored values. Empty optional
// text fields keep the stored value. Skills always replace the stored list.
func (s *userService) UpdateProfile(ctx context.Context, user models.User, req models.UpdateProfileRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(ctx, ErrInvalidDataProvided, req); err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("profile update without email or role")
		return models.User{}, err
	}

	owner, err := s.userRepository.FindUserByEmail(ctx, req.Email)
	switch {
	case err == nil && owner.ID != user.ID:
		log.Info().Int64("user_id", user.ID).Msg("email is used by another account")
		return models.User{}, store.ErrEmailAlreadyExists
	case err != nil && !errors.Is(err, store.ErrNoUserWasFound):
		log.Err(err).Int64("user_id", user.ID).Msg("email owner lookup failed")
		return models.User{}, fmt.Errorf("email owner lookup failed: %w", err)
	}

	now := time.Now().UTC()
	updated := user
	updated.FullName = orCurrent(req.FullName, user.FullName)
	updated.AvatarURL = orCurrent(req.AvatarURL, user.AvatarURL)
	updated.Bio = orCurrent(req.Bio, user.Bio)
	updated.Email = req.Email
	updated.Role = req.Role
	updated.Skills = req.Skills.Clone()
	updated.UpdatedAt = &now

	saved, err := s.userRepository.UpdateProfile(ctx, updated)
	if err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	return saved, nil
}

// UserStats returns generation totals of userID.
func (s *userService) UserStats(ctx context.Context, userID int64) (models.UserStats, error) {
	stats, err := s.generatedCodeRepository.UserStats(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("user stats query failed")
		return models.UserStats{}, fmt.Errorf("user stats query failed: %w", err)
	}

	return stats, nil
}

func orCurrent(v *string, current string) string {
	if v == nil || *v == "" {
		return current
	}
	return *v
}

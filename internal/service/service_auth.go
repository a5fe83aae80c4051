package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-code-gen/internal/config"
	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/store"
	"github.com/MKhiriev/go-code-gen/internal/utils"
	"github.com/MKhiriev/go-code-gen/models"
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification and the session token
// lifecycle using a UserRepository for persistence.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT. When
	// non-empty, tokens with another issuer are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new account with the default profile.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided if username, email or password is empty.
//   - store.ErrUsernameAlreadyExists / store.ErrEmailAlreadyExists, wrapped.
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(ctx, ErrInvalidDataProvided, req); err != nil {
		log.Error().Err(err).Str("username", req.Username).Str("email", req.Email).Msg("invalid user data provided")
		return models.User{}, err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	fullName := req.FullName
	if fullName == "" {
		fullName = req.Username
	}

	user := models.User{
		Username:       req.Username,
		Email:          req.Email,
		FullName:       fullName,
		Role:           models.DefaultRole,
		AvatarURL:      models.DefaultAvatarURL(req.Username),
		HashedPassword: hashed,
		Skills:         models.DefaultSkills.Clone(),
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// Unknown usernames and wrong passwords both return ErrInvalidCredentials so
// callers cannot probe which accounts exist. Inactive accounts return
// ErrInactiveUser.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validateRequest(ctx, ErrInvalidDataProvided, req); err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("invalid login data provided")
		return models.User{}, err
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, req.Username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Str("username", req.Username).Msg("login for unknown user")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !utils.CheckPassword(req.Password, foundUser.HashedPassword) {
		log.Info().Int64("id", foundUser.ID).Str("username", foundUser.Username).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	if !foundUser.IsActive {
		log.Info().Int64("id", foundUser.ID).Msg("login of inactive user")
		return models.User{}, ErrInactiveUser
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// Returns the token model on success or ErrTokenCreationFailed wrapping the
// JWT error.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.Username, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed, empty subject)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// ResolveUser parses tokenString and loads the account named by its subject.
// Invalid tokens and deleted accounts return ErrNotAuthenticated; storage
// failures are returned wrapped.
func (a *authService) ResolveUser(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return models.User{}, ErrNotAuthenticated
	}

	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		log.Debug().Err(err).Msg("session token rejected")
		return models.User{}, fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}

	user, err := a.userRepository.FindUserByUsername(ctx, token.Username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Debug().Str("username", token.Username).Msg("session owner no longer exists")
		return models.User{}, ErrNotAuthenticated
	}
	if err != nil {
		log.Err(err).Str("username", token.Username).Msg("session owner lookup failed")
		return models.User{}, fmt.Errorf("session owner lookup failed: %w", err)
	}

	return user, nil
}

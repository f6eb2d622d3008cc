package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trimmers-api/internal/auth"
	"trimmers-api/internal/model"
	"trimmers-api/internal/repository"

	"github.com/rs/zerolog"
)

// authService implements AuthService.
type authService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	now      func() time.Time
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		now:      time.Now,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// Register validates the request, rejects taken emails and stores the account.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*Session, error) {
	if req == nil {
		return nil, model.NewBadRequest("Please provide name, email and password")
	}
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	if err := model.Validate(req); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up email")
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		s.logger.Debug().Str("email", req.Email).Msg("email already registered")
		return nil, model.NewBadRequest("Email already exists")
	}

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count users")
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	role := model.RoleUser
	if count == 0 {
		role = model.RoleAdmin
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("role", user.Role).
		Msg("user registered")

	return s.session(user)
}

// Login checks the credentials. Unknown emails and wrong passwords fail the same way.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*Session, error) {
	if req == nil || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, model.NewBadRequest("Please provide email and password")
	}

	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up email")
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if user == nil || !auth.ComparePassword(user.PasswordHash, req.Password) {
		s.logger.Debug().Msg("invalid credentials")
		return nil, model.ErrInvalidCredentials
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")

	return s.session(user)
}

// CurrentUser loads the account of the actor. A deleted account is no longer authenticated.
func (s *authService) CurrentUser(ctx context.Context, actor model.Actor) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", actor.UserID).Msg("failed to get user")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrAuthenticationInvalid
	}
	return user, nil
}

func (s *authService) session(user *model.User) (*Session, error) {
	token, err := s.tokens.Mint(model.ActorFor(user))
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to mint token")
		return nil, fmt.Errorf("failed to mint token: %w", err)
	}

	return &Session{
		User:      user,
		Token:     token,
		ExpiresAt: s.now().Add(s.tokens.TTL()),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

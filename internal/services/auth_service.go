package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/thereayou/rythmrun/internal/database"
	"github.com/thereayou/rythmrun/internal/logging"
	"github.com/thereayou/rythmrun/internal/models"
	"github.com/thereayou/rythmrun/internal/session"
	"github.com/thereayou/rythmrun/pkg/auth"
)

type RegisterInput struct {
	Username  string
	Password  string
	Firstname *string
	Lastname  *string
}

type AuthResult struct {
	User *models.User `json:"user"`
	auth.TokenPair
}

type AuthService struct {
	users    UserStore
	sessions session.Store
	tokens   *auth.TokenIssuer
	log      logging.Logger
}

func NewAuthService(users UserStore, sessions session.Store, tokens *auth.TokenIssuer, log logging.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, tokens: tokens, log: log.With("service", "auth")}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if _, err := s.users.FindUserByUsername(ctx, in.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if errors.Is(err, ErrPasswordTooLong) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     in.Username,
		PasswordHash: hash,
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
	}
	if err := s.users.SaveUser(ctx, user); err != nil {
		// параллельная регистрация с тем же именем
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	pair, err := s.startSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return &AuthResult{User: user, TokenPair: *pair}, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			burnCompare(password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !ComparePassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.startSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateLastSeen(ctx, user.ID); err != nil {
		s.log.Warn(ctx, "update last seen", "user_id", user.ID, "error", err)
	}
	return &AuthResult{User: user, TokenPair: *pair}, nil
}

// Refresh меняет пару токенов. Владелец refresh токена должен совпадать с
// userID из access токена; старый токен после успешной ротации недействителен.
func (s *AuthService) Refresh(ctx context.Context, userID uint, presented string) (*auth.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(presented)
	if err != nil || claims.UserID != userID {
		return nil, ErrInvalidRefreshToken
	}

	if _, err := s.sessions.Consume(ctx, userID, presented); err != nil {
		if isSessionError(err) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	pair, err := s.tokens.IssuePair(userID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	if err := s.sessions.Rotate(ctx, userID, presented, pair.RefreshToken, pair.RefreshExpiresAt); err != nil {
		if isSessionError(err) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	return pair, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	return s.sessions.Revoke(ctx, userID)
}

// ChangePassword после смены пароля refresh сессия удаляется, нужен новый логин
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !ComparePassword(current, user.PasswordHash) {
		return ErrInvalidPassword
	}

	hash, err := HashPassword(next)
	if errors.Is(err, ErrPasswordTooLong) {
		return err
	}
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}
	if err := s.sessions.Revoke(ctx, userID); err != nil {
		return err
	}
	s.log.Info(ctx, "password changed", "user_id", userID)
	return nil
}

func (s *AuthService) startSession(ctx context.Context, userID uint) (*auth.TokenPair, error) {
	pair, err := s.tokens.IssuePair(userID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	if err := s.sessions.Save(ctx, userID, pair.RefreshToken, pair.RefreshExpiresAt); err != nil {
		return nil, fmt.Errorf("save refresh session: %w", err)
	}
	return pair, nil
}

func isSessionError(err error) bool {
	return errors.Is(err, session.ErrSessionNotFound) ||
		errors.Is(err, session.ErrSessionExpired) ||
		errors.Is(err, session.ErrSessionMismatch)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/thereayou/rythmrun/internal/database"
	"github.com/thereayou/rythmrun/internal/logging"
	"github.com/thereayou/rythmrun/internal/models"
	"github.com/thereayou/rythmrun/internal/storage"
)

type ProfileInput struct {
	Firstname *string
	Lastname  *string
}

type AvatarUpload struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
	PublicURL string `json:"publicUrl,omitempty"`
}

type UserService struct {
	users     UserStore
	presigner storage.Presigner
	log       logging.Logger
}

// NewUserService presigner может быть nil, тогда аватары отключены
func NewUserService(users UserStore, presigner storage.Presigner, log logging.Logger) *UserService {
	return &UserService{users: users, presigner: presigner, log: log.With("service", "users")}
}

func (s *UserService) Me(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*models.User, error) {
	err := s.users.UpdateProfile(ctx, userID, in.Firstname, in.Lastname)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.Me(ctx, userID)
}

const searchLimit = 20

func (s *UserService) Search(ctx context.Context, query string) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.User{}, nil
	}
	users, err := s.users.SearchUsers(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func AvatarKeyPrefix(userID uint) string {
	return fmt.Sprintf("avatars/%d/", userID)
}

func (s *UserService) AvatarUploadURL(ctx context.Context, userID uint, ext, contentType string) (*AvatarUpload, error) {
	if s.presigner == nil {
		return nil, ErrAvatarsDisabled
	}
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	key := fmt.Sprintf("%s%s.%s", AvatarKeyPrefix(userID), uuid.NewString(), ext)

	url, err := s.presigner.PresignPut(ctx, key, contentType)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	return &AvatarUpload{UploadURL: url, Key: key, PublicURL: s.presigner.PublicURL(key)}, nil
}

// ConfirmAvatar ключ обязан лежать под префиксом пользователя
func (s *UserService) ConfirmAvatar(ctx context.Context, userID uint, key, contentType string) error {
	if s.presigner == nil {
		return ErrAvatarsDisabled
	}
	rest := strings.TrimPrefix(key, AvatarKeyPrefix(userID))
	if rest == key || rest == "" || strings.Contains(rest, "/") || strings.Contains(rest, "..") {
		return ErrInvalidAvatarKey
	}
	err := s.users.UpdateAvatar(ctx, userID, key, contentType)
	if errors.Is(err, database.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *UserService) AvatarURL(ctx context.Context, userID uint) (string, error) {
	if s.presigner == nil {
		return "", ErrAvatarsDisabled
	}
	user, err := s.Me(ctx, userID)
	if err != nil {
		return "", err
	}
	if !user.HasAvatar() {
		return "", ErrNotFound
	}
	if public := s.presigner.PublicURL(user.AvatarKey); public != "" {
		return public, nil
	}
	return s.presigner.PresignGet(ctx, user.AvatarKey)
}

package auth

import "time"

// TokenPair пара токенов, выдаваемая при логине и ротации
type TokenPair struct {
	AccessToken      string    `json:"accessToken"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"-"`
}

// TokenIssuer выпускает access и refresh токены на двух независимых ключах.
// Хранение refresh токена остаётся на вызывающей стороне.
type TokenIssuer struct {
	access  *JWTManager
	refresh *JWTManager
}

func NewTokenIssuer(accessSecret, refreshSecret string) *TokenIssuer {
	return &TokenIssuer{
		access:  NewJWTManager(accessSecret, AccessTokenTTL),
		refresh: NewJWTManager(refreshSecret, RefreshTokenTTL),
	}
}

// NewTokenIssuerWith собирает issuer из готовых менеджеров
func NewTokenIssuerWith(access, refresh *JWTManager) *TokenIssuer {
	return &TokenIssuer{access: access, refresh: refresh}
}

func (i *TokenIssuer) IssueAccess(userID uint) (string, error) {
	token, _, err := i.access.Generate(userID)
	return token, err
}

func (i *TokenIssuer) IssueRefresh(userID uint) (string, time.Time, error) {
	return i.refresh.Generate(userID)
}

func (i *TokenIssuer) IssuePair(userID uint) (*TokenPair, error) {
	access, err := i.IssueAccess(userID)
	if err != nil {
		return nil, err
	}
	refresh, expiresAt, err := i.IssueRefresh(userID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, RefreshExpiresAt: expiresAt}, nil
}

func (i *TokenIssuer) VerifyAccess(token string) (*Claims, error) {
	return i.access.Verify(token)
}

func (i *TokenIssuer) VerifyRefresh(token string) (*Claims, error) {
	return i.refresh.Verify(token)
}

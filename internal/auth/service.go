package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

const (
	devUserID     = "dev-user"
	maxUserIDLen  = 128
	defaultTTLMin = 10080
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrDevAuthOff    = errors.New("dev auth is disabled")
	ErrInvalidUserID = errors.New("invalid user_id")
)

// Service issues and verifies HS256 access tokens.
type Service struct {
	config *config.Config
	now    func() time.Time
}

func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg, now: time.Now}
}

// SignInDev issues a token for userID ("dev-user" when empty). Only
// available with AUTH_MODE=dev.
func (s *Service) SignInDev(userID string) (*DevAuthResponse, error) {
	if !s.config.AuthEnabled() {
		return nil, ErrDevAuthOff
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = devUserID
	}
	if len(userID) > maxUserIDLen || strings.ContainsAny(userID, " \t\r\n") {
		return nil, ErrInvalidUserID
	}

	ttl := s.ttl()
	accessToken, err := s.generateJWT(userID, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to generate dev JWT: %w", err)
	}

	return &DevAuthResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
		UserID:      userID,
	}, nil
}

func (s *Service) ttl() time.Duration {
	minutes := s.config.JWTTTLMinutes
	if minutes <= 0 {
		minutes = defaultTTLMin
	}
	return time.Duration(minutes) * time.Minute
}

func (s *Service) generateJWT(userID string, ttl time.Duration) (string, error) {
	now := s.now()

	claims := jwt.MapClaims{
		"sub": userID,
		"iss": s.config.JWTIssuer,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// VerifyJWT returns the subject of a valid token.
func (s *Service) VerifyJWT(tokenString string) (string, error) {
	opts := []jwt.ParserOption{jwt.WithTimeFunc(s.now)}
	if s.config.JWTIssuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.JWTIssuer))
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	}, opts...)
	if err != nil {
		return "", ErrInvalidToken
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			return "", ErrInvalidToken
		}
		return sub, nil
	}

	return "", ErrInvalidToken
}

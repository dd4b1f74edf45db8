package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/social-schema/config"
	"github.com/d60-Lab/social-schema/internal/model"
	"github.com/d60-Lab/social-schema/internal/repository"
	"github.com/d60-Lab/social-schema/pkg/apperr"
	"github.com/d60-Lab/social-schema/pkg/logger"
	"github.com/d60-Lab/social-schema/pkg/metrics"
)

// AuthService 登录签发 HS256 token，subject 为用户 id
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *model.User, error)
	ParseToken(token string) (int64, error)
}

type authService struct {
	users repository.UserRepository
	cfg   config.JWTConfig
	now   func() time.Time
}

func NewAuthService(users repository.UserRepository, cfg config.JWTConfig) AuthService {
	return &authService{users: users, cfg: cfg, now: time.Now}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	const op = "auth.login"
	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, apperr.ErrNotFound) {
		metrics.LoginFailure.WithLabelValues("unknown_user").Inc()
		return "", nil, apperr.Unauthorized(op, "invalid username or password")
	}
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		metrics.LoginFailure.WithLabelValues("bad_password").Inc()
		return "", nil, apperr.Unauthorized(op, "invalid username or password")
	}
	if !u.IsActive {
		metrics.LoginFailure.WithLabelValues("inactive").Inc()
		return "", nil, apperr.Forbidden(op, "user is not active")
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(u.ID, 10),
		Issuer:    s.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", nil, apperr.Storage(op, err)
	}
	metrics.LoginSuccess.Inc()
	logger.Info("user logged in", zap.Int64("user_id", u.ID))
	return token, u, nil
}

func (s *authService) ParseToken(token string) (int64, error) {
	const op = "auth.parse_token"
	var claims jwt.RegisteredClaims
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return 0, apperr.Unauthorized(op, err.Error())
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Unauthorized(op, "invalid subject")
	}
	return id, nil
}

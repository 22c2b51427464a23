package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gudang/internal/apperror"
	"gudang/internal/models"
	"gudang/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Login for an unknown username or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles operator registration, login and token validation.
type AuthService struct {
	operators repositories.OperatorRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	log       *slog.Logger
}

// NewAuthService creates a new AuthService. Tokens expire after tokenTTL.
func NewAuthService(operators repositories.OperatorRepository, jwtSecret string, tokenTTL time.Duration, log *slog.Logger) *AuthService {
	return &AuthService{
		operators: operators,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		log:       log.With(slog.String("service", "auth")),
	}
}

// Register hashes the password and stores a new operator.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.Operator, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if err := s.ensureFree(ctx, req); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fail(ctx, s.log, "hash password", fmt.Errorf("failed to hash password: %w", err))
	}

	operator := &models.Operator{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := s.operators.Create(ctx, operator); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperror.Conflict("Username or email already registered")
		}
		return nil, fail(ctx, s.log, "register operator", err)
	}

	s.log.InfoContext(ctx, "operator registered", slog.Uint64("operator_id", uint64(operator.ID)))
	return operator, nil
}

func (s *AuthService) ensureFree(ctx context.Context, req models.RegisterRequest) error {
	if _, err := s.operators.GetByUsername(ctx, req.Username); err == nil {
		return apperror.Conflict("Username '%s' already taken", req.Username)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fail(ctx, s.log, "check username", err)
	}

	if _, err := s.operators.GetByEmail(ctx, req.Email); err == nil {
		return apperror.Conflict("Email '%s' already registered", req.Email)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fail(ctx, s.log, "check email", err)
	}
	return nil
}

// Login authenticates an operator and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validateStruct(req); err != nil {
		return "", err
	}

	operator, err := s.operators.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fail(ctx, s.log, "get operator", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"operator_id": operator.ID,
		"username":    operator.Username,
		"exp":         now.Add(s.tokenTTL).Unix(),
		"iat":         now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fail(ctx, s.log, "sign token", fmt.Errorf("failed to generate token: %w", err))
	}

	s.log.InfoContext(ctx, "operator logged in", slog.Uint64("operator_id", uint64(operator.ID)))
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

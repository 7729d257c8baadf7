package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/macuoit/articulation-backend/internal/config"
	"github.com/macuoit/articulation-backend/internal/model"
	"github.com/macuoit/articulation-backend/internal/repository"
)

// Common auth errors.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenType tags the audience of an issued token.
type TokenType string

const TokenTypeStaff TokenType = "staff"

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	TokenType TokenType `json:"token_type"`
	UserID    int       `json:"user_id"`
}

// AuthService handles staff authentication and JWT issuance.
type AuthService struct {
	cfg       *config.Config
	rdb       *redis.Client
	staffRepo *repository.StaffRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, rdb *redis.Client, staffRepo *repository.StaffRepository) *AuthService {
	return &AuthService{cfg: cfg, rdb: rdb, staffRepo: staffRepo}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login verifies the credentials and returns a signed token plus the staff
// record. The token's JTI is recorded in Redis so sessions can be audited,
// but concurrent logins from multiple devices are allowed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.Staff, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get staff: %w", err)
	}

	if err := s.CheckPassword(staff.PasswordHash, password); err != nil {
		return "", nil, err
	}

	token, jti, err := s.generateToken(staff.ID)
	if err != nil {
		return "", nil, err
	}

	if err := s.rdb.Set(ctx, config.CacheKey.StaffSessionKey(staff.ID), jti, s.cfg.JWTExpiry).Err(); err != nil {
		return "", nil, fmt.Errorf("record session: %w", err)
	}

	return token, staff, nil
}

func (s *AuthService) generateToken(staffID int) (string, string, error) {
	jti := uuid.New().String()
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.Itoa(staffID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		TokenType: TokenTypeStaff,
		UserID:    staffID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("sign token: %w", err)
	}
	return signed, jti, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.TokenType != TokenTypeStaff {
		return nil, errors.New("wrong token audience")
	}

	return claims, nil
}

// GetProfile returns the staff record behind a validated token.
func (s *AuthService) GetProfile(ctx context.Context, staffID int) (*model.Staff, error) {
	return s.staffRepo.GetByID(ctx, staffID)
}

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims are the JWT claims carried by both access and refresh tokens.
type Claims struct {
	AccountID  uuid.UUID `json:"account_id"`
	HospitalID uuid.UUID `json:"hospital_id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	TokenType  string    `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair is the access/refresh pair issued on login.
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// Subject identifies the authenticated account a token is minted for.
type Subject struct {
	AccountID  uuid.UUID
	HospitalID uuid.UUID
	Email      string
	Role       string
}

// RevocationStore remembers revoked refresh tokens until they expire.
// Implemented over redis; see the redis subpackage.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	RevokeAccount(ctx context.Context, accountID uuid.UUID, at time.Time, ttl time.Duration) error
	AccountRevokedAt(ctx context.Context, accountID uuid.UUID) (time.Time, error)
}

// JWTService issues and validates signed tokens.
type JWTService struct {
	secret        []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	revocations   RevocationStore
}

func NewJWTService(secret, refreshSecret string, accessTTL, refreshTTL time.Duration, revocations RevocationStore) *JWTService {
	return &JWTService{
		secret:        []byte(secret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		revocations:   revocations,
	}
}

// RefreshTTL exposes the refresh token lifetime for revocation bookkeeping.
func (s *JWTService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// GeneratePair mints a fresh access/refresh token pair for the subject.
func (s *JWTService) GeneratePair(sub Subject) (*TokenPair, error) {
	access, err := s.sign(sub, tokenTypeAccess, s.secret, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.sign(sub, tokenTypeRefresh, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *JWTService) sign(sub Subject, tokenType string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		AccountID:  sub.AccountID,
		HospitalID: sub.HospitalID,
		Email:      sub.Email,
		Role:       sub.Role,
		TokenType:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ValidateAccess verifies an access token and returns its claims.
func (s *JWTService) ValidateAccess(ctx context.Context, token string) (*Claims, error) {
	return s.validate(ctx, token, tokenTypeAccess, s.secret)
}

// ValidateRefresh verifies a refresh token, including the revocation list.
func (s *JWTService) ValidateRefresh(ctx context.Context, token string) (*Claims, error) {
	return s.validate(ctx, token, tokenTypeRefresh, s.refreshSecret)
}

func (s *JWTService) validate(ctx context.Context, token, wantType string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !parsed.Valid || claims.TokenType != wantType {
		return nil, fmt.Errorf("invalid %s token", wantType)
	}

	if s.revocations != nil {
		revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check revocation: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("token has been revoked")
		}

		revokedAt, err := s.revocations.AccountRevokedAt(ctx, claims.AccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to check account revocation: %w", err)
		}
		if !revokedAt.IsZero() && !claims.IssuedAt.Time.After(revokedAt) {
			return nil, fmt.Errorf("token has been revoked")
		}
	}

	return claims, nil
}

// Revoke blacklists a single refresh token for its remaining lifetime.
func (s *JWTService) Revoke(ctx context.Context, claims *Claims) error {
	if s.revocations == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.revocations.Revoke(ctx, claims.ID, ttl)
}

// RevokeAll invalidates every token issued to the account before now.
func (s *JWTService) RevokeAll(ctx context.Context, accountID uuid.UUID) error {
	if s.revocations == nil {
		return nil
	}
	return s.revocations.RevokeAccount(ctx, accountID, time.Now(), s.refreshTTL)
}

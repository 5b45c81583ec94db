package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medevel/hospital-api/internal/email"
	"github.com/medevel/hospital-api/internal/model"
	"github.com/medevel/hospital-api/internal/repository"
	"github.com/medevel/hospital-api/pkg/auth"
	apperrors "github.com/medevel/hospital-api/pkg/errors"
	"github.com/medevel/hospital-api/pkg/security"
)

type Service struct {
	hospitals repository.HospitalRepository
	roles     repository.RoleRepository
	depts     repository.DepartmentRepository
	accounts  repository.AccountRepository
	otps      repository.OTPRepository
	hasher    security.Hasher
	tokens    *auth.JWTService
	mailer    email.Service
	otpTTL    time.Duration
}

func NewService(
	hospitals repository.HospitalRepository,
	roles repository.RoleRepository,
	depts repository.DepartmentRepository,
	accounts repository.AccountRepository,
	otps repository.OTPRepository,
	hasher security.Hasher,
	tokens *auth.JWTService,
	mailer email.Service,
	otpTTL time.Duration,
) *Service {
	return &Service{
		hospitals: hospitals,
		roles:     roles,
		depts:     depts,
		accounts:  accounts,
		otps:      otps,
		hasher:    hasher,
		tokens:    tokens,
		mailer:    mailer,
		otpTTL:    otpTTL,
	}
}

// RegisterHospital provisions a tenant: the hospital row if it does not
// exist yet, the seeded admin role and department, and the first admin
// account. A hospital that already has an admin cannot be claimed again.
func (s *Service) RegisterHospital(ctx context.Context, req *model.RegisterHospitalRequest) (*model.Account, error) {
	name := strings.ToLower(strings.TrimSpace(req.HospitalName))

	hospital, err := s.hospitals.GetByName(ctx, name)
	if apperrors.IsCode(err, apperrors.ErrNotFound) {
		hospital = &model.Hospital{Name: name}
		if err := s.hospitals.Create(ctx, hospital); err != nil {
			return nil, fmt.Errorf("failed to register hospital: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	admins, err := s.accounts.CountAdmins(ctx, hospital.ID)
	if err != nil {
		return nil, err
	}
	if admins > 0 {
		return nil, apperrors.Conflict("hospital is already registered", nil)
	}

	role, err := s.ensureRole(ctx, hospital.ID, model.AdminRoleName)
	if err != nil {
		return nil, err
	}
	dept, err := s.ensureDepartment(ctx, hospital.ID, model.AdminDepartmentName)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &model.Account{
		HospitalID:   hospital.ID,
		RoleID:       role.ID,
		DepartmentID: dept.ID,
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		Mobile:       req.Mobile,
		Password:     hash,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create admin account: %w", err)
	}
	account.Password = ""
	return account, nil
}

func (s *Service) ensureRole(ctx context.Context, hospitalID uuid.UUID, name string) (*model.Role, error) {
	role, err := s.roles.GetByName(ctx, hospitalID, name)
	if apperrors.IsCode(err, apperrors.ErrNotFound) {
		role = &model.Role{HospitalID: hospitalID, Name: name}
		if err := s.roles.Create(ctx, role); err != nil {
			return nil, err
		}
		return role, nil
	}
	return role, err
}

func (s *Service) ensureDepartment(ctx context.Context, hospitalID uuid.UUID, name string) (*model.Department, error) {
	dept, err := s.depts.GetByName(ctx, hospitalID, name)
	if apperrors.IsCode(err, apperrors.ErrNotFound) {
		dept = &model.Department{HospitalID: hospitalID, Name: name}
		if err := s.depts.Create(ctx, dept); err != nil {
			return nil, err
		}
		return dept, nil
	}
	return dept, err
}

// Login accepts the account email or mobile number as the username.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*auth.TokenPair, *model.Account, error) {
	account, err := s.accounts.GetByEmailOrMobile(ctx, strings.ToLower(strings.TrimSpace(req.Username)))
	if apperrors.IsCode(err, apperrors.ErrNotFound) {
		return nil, nil, apperrors.New(apperrors.ErrUnauthorized, "invalid credentials")
	}
	if err != nil {
		return nil, nil, err
	}

	if err := s.hasher.Compare(account.Password, req.Password); err != nil {
		return nil, nil, apperrors.New(apperrors.ErrUnauthorized, "invalid credentials")
	}

	pair, err := s.tokens.GeneratePair(auth.Subject{
		AccountID:  account.ID,
		HospitalID: account.HospitalID,
		Email:      account.Email,
		Role:       account.RoleName,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	account.Password = ""
	return pair, account, nil
}

// Refresh rotates the token pair: the presented refresh token is
// revoked so it cannot be replayed.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.tokens.ValidateRefresh(ctx, refreshToken)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrUnauthorized, "invalid refresh token")
	}

	pair, err := s.tokens.GeneratePair(auth.Subject{
		AccountID:  claims.AccountID,
		HospitalID: claims.HospitalID,
		Email:      claims.Email,
		Role:       claims.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokens.Revoke(ctx, claims); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return pair, nil
}

// Logout revokes every outstanding token for the account.
func (s *Service) Logout(ctx context.Context, accountID uuid.UUID) error {
	if err := s.tokens.RevokeAll(ctx, accountID); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return nil
}

// ForgotPassword issues a fresh code for the account and mails it.
// The new code replaces any outstanding one.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	account, err := s.accounts.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	otp := &model.PasswordOTP{AccountID: account.ID, Code: code, IssuedAt: time.Now()}
	if err := s.otps.Upsert(ctx, otp); err != nil {
		return err
	}

	if err := s.mailer.SendOTP(ctx, account.Email, account.Name, code); err != nil {
		return fmt.Errorf("failed to mail otp: %w", err)
	}
	return nil
}

// ResetPassword redeems a code within its validity window. The code is
// rotated afterwards so it cannot be used twice.
func (s *Service) ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error {
	account, err := s.accounts.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return err
	}

	otp, err := s.otps.Get(ctx, account.ID)
	if apperrors.IsCode(err, apperrors.ErrNotFound) {
		return apperrors.BadRequest("invalid otp", nil)
	}
	if err != nil {
		return err
	}

	if otp.Code != req.OTP || time.Since(otp.IssuedAt) > s.otpTTL {
		return apperrors.BadRequest("invalid or expired otp", nil)
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.accounts.UpdatePassword(ctx, account.ID, hash); err != nil {
		return err
	}

	rotated, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to rotate otp: %w", err)
	}
	if err := s.otps.Upsert(ctx, &model.PasswordOTP{AccountID: account.ID, Code: rotated, IssuedAt: time.Now()}); err != nil {
		return err
	}

	return s.tokens.RevokeAll(ctx, account.ID)
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

package account

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/medevel/hospital-api/internal/model"
	"github.com/medevel/hospital-api/internal/repository"
	"github.com/medevel/hospital-api/pkg/datatable"
	apperrors "github.com/medevel/hospital-api/pkg/errors"
	"github.com/medevel/hospital-api/pkg/security"
)

type Service struct {
	accounts repository.AccountRepository
	roles    repository.RoleRepository
	depts    repository.DepartmentRepository
	hasher   security.Hasher
}

func NewService(
	accounts repository.AccountRepository,
	roles repository.RoleRepository,
	depts repository.DepartmentRepository,
	hasher security.Hasher,
) *Service {
	return &Service{accounts: accounts, roles: roles, depts: depts, hasher: hasher}
}

// columns defines the staff listing table: searchable text fields,
// role and department matched on their display names, and the signup
// date usable for range filters but not text search.
var columns = []datatable.Column[*model.Account]{
	{Name: "name", Kind: datatable.Plain, Value: func(a *model.Account) string { return a.Name }},
	{Name: "email", Kind: datatable.Plain, Value: func(a *model.Account) string { return a.Email }},
	{Name: "mobile", Kind: datatable.Plain, Value: func(a *model.Account) string { return a.Mobile }},
	{Name: "role", Kind: datatable.ForeignKeyName, Value: func(a *model.Account) string { return a.RoleName }},
	{Name: "department", Kind: datatable.ForeignKeyName, Value: func(a *model.Account) string { return a.DepartmentName }},
	{Name: "created", Kind: datatable.Date, Value: func(a *model.Account) string { return a.CreatedAt.Format(model.DateLayout) }},
}

func (s *Service) Create(ctx context.Context, hospitalID uuid.UUID, req *model.CreateAccountRequest) (*model.Account, error) {
	role, err := s.roles.Get(ctx, hospitalID, req.RoleID)
	if err != nil {
		return nil, err
	}
	dept, err := s.depts.Get(ctx, hospitalID, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.Conflict("email is already registered", nil)
	} else if !apperrors.IsCode(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &model.Account{
		HospitalID:   hospitalID,
		RoleID:       role.ID,
		DepartmentID: dept.ID,
		Name:         req.Name,
		Email:        email,
		Mobile:       req.Mobile,
		Password:     hash,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	account.Password = ""
	account.RoleName = role.Name
	account.DepartmentName = dept.Name
	return account, nil
}

func (s *Service) Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Account, error) {
	account, err := s.accounts.Get(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}
	account.Password = ""
	return account, nil
}

// Update rejects any change that would leave the hospital without an
// admin account.
func (s *Service) Update(ctx context.Context, hospitalID, id uuid.UUID, req *model.UpdateAccountRequest) (*model.Account, error) {
	account, err := s.accounts.Get(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.Get(ctx, hospitalID, req.RoleID)
	if err != nil {
		return nil, err
	}
	dept, err := s.depts.Get(ctx, hospitalID, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	if account.RoleName == model.AdminRoleName && role.Name != model.AdminRoleName {
		admins, err := s.accounts.CountAdmins(ctx, hospitalID)
		if err != nil {
			return nil, err
		}
		if admins <= 1 {
			return nil, apperrors.Conflict("hospital must keep at least one admin", nil)
		}
	}

	account.Name = req.Name
	account.Email = strings.ToLower(strings.TrimSpace(req.Email))
	account.Mobile = req.Mobile
	account.RoleID = role.ID
	account.DepartmentID = dept.ID
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}

	account.Password = ""
	account.RoleName = role.Name
	account.DepartmentName = dept.Name
	return account, nil
}

// Delete rejects removing the last admin of a hospital.
func (s *Service) Delete(ctx context.Context, hospitalID, id uuid.UUID) error {
	account, err := s.accounts.Get(ctx, hospitalID, id)
	if err != nil {
		return err
	}

	if account.RoleName == model.AdminRoleName {
		admins, err := s.accounts.CountAdmins(ctx, hospitalID)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return apperrors.Conflict("hospital must keep at least one admin", nil)
		}
	}

	return s.accounts.Delete(ctx, hospitalID, id)
}

func (s *Service) UpdatePassword(ctx context.Context, hospitalID, id uuid.UUID, req *model.UpdatePasswordRequest) error {
	account, err := s.accounts.Get(ctx, hospitalID, id)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(account.Password, req.OldPassword); err != nil {
		return apperrors.BadRequest("old password does not match", nil)
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.accounts.UpdatePassword(ctx, id, hash)
}

// Datatable serves the staff listing with search, sort and paging.
func (s *Service) Datatable(ctx context.Context, hospitalID uuid.UUID, query url.Values) (*datatable.Result[*model.Account], error) {
	req, err := datatable.ParseRequest(query)
	if err != nil {
		return nil, err
	}
	dateRange := datatable.ParseDateRange(query, "start_date", "end_date")

	accounts, err := s.accounts.List(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		a.Password = ""
	}

	return datatable.Paginate(accounts, columns, req, dateRange, "created")
}

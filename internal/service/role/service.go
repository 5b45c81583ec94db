package role

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/medevel/hospital-api/internal/model"
	"github.com/medevel/hospital-api/internal/repository"
	"github.com/medevel/hospital-api/pkg/datatable"
	apperrors "github.com/medevel/hospital-api/pkg/errors"
)

const optionsTTL = 5 * time.Minute

type Service struct {
	roles repository.RoleRepository
	cache *gocache.Cache
}

func NewService(roles repository.RoleRepository) *Service {
	return &Service{
		roles: roles,
		cache: gocache.New(optionsTTL, 10*time.Minute),
	}
}

var columns = []datatable.Column[*model.Role]{
	{Name: "name", Kind: datatable.Plain, Value: func(r *model.Role) string { return r.Name }},
	{Name: "created", Kind: datatable.Date, Value: func(r *model.Role) string { return r.CreatedAt.Format(model.DateLayout) }},
}

func (s *Service) Create(ctx context.Context, hospitalID uuid.UUID, req *model.CreateRoleRequest) (*model.Role, error) {
	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == model.AdminRoleName {
		return nil, apperrors.Conflict("role name is reserved", nil)
	}

	if _, err := s.roles.GetByName(ctx, hospitalID, name); err == nil {
		return nil, apperrors.Conflict("role already exists", nil)
	} else if !apperrors.IsCode(err, apperrors.ErrNotFound) {
		return nil, err
	}

	role := &model.Role{HospitalID: hospitalID, Name: name}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	s.invalidate(hospitalID)
	return role, nil
}

func (s *Service) Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Role, error) {
	return s.roles.Get(ctx, hospitalID, id)
}

// Update refuses to touch the seeded admin role.
func (s *Service) Update(ctx context.Context, hospitalID, id uuid.UUID, req *model.UpdateRoleRequest) (*model.Role, error) {
	role, err := s.roles.Get(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}
	if role.Name == model.AdminRoleName {
		return nil, apperrors.Forbidden("admin role cannot be modified")
	}

	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == model.AdminRoleName {
		return nil, apperrors.Conflict("role name is reserved", nil)
	}

	role.Name = name
	if err := s.roles.Update(ctx, role); err != nil {
		return nil, err
	}
	s.invalidate(hospitalID)
	return role, nil
}

// Delete refuses to remove the seeded admin role.
func (s *Service) Delete(ctx context.Context, hospitalID, id uuid.UUID) error {
	role, err := s.roles.Get(ctx, hospitalID, id)
	if err != nil {
		return err
	}
	if role.Name == model.AdminRoleName {
		return apperrors.Forbidden("admin role cannot be deleted")
	}

	if err := s.roles.Delete(ctx, hospitalID, id); err != nil {
		return err
	}
	s.invalidate(hospitalID)
	return nil
}

// Options serves the staff-form dropdown, cached per hospital.
func (s *Service) Options(ctx context.Context, hospitalID uuid.UUID) ([]*model.Role, error) {
	key := s.cacheKey(hospitalID)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]*model.Role), nil
	}

	roles, err := s.roles.List(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, roles, gocache.DefaultExpiration)
	return roles, nil
}

func (s *Service) Datatable(ctx context.Context, hospitalID uuid.UUID, query url.Values) (*datatable.Result[*model.Role], error) {
	req, err := datatable.ParseRequest(query)
	if err != nil {
		return nil, err
	}
	dateRange := datatable.ParseDateRange(query, "start_date", "end_date")

	roles, err := s.roles.List(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	return datatable.Paginate(roles, columns, req, dateRange, "created")
}

func (s *Service) cacheKey(hospitalID uuid.UUID) string {
	return "roles:" + hospitalID.String()
}

func (s *Service) invalidate(hospitalID uuid.UUID) {
	s.cache.Delete(s.cacheKey(hospitalID))
}

package department

import (
	"context"
	"fmt"
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
	depts repository.DepartmentRepository
	cache *gocache.Cache
}

func NewService(depts repository.DepartmentRepository) *Service {
	return &Service{
		depts: depts,
		cache: gocache.New(optionsTTL, 10*time.Minute),
	}
}

var columns = []datatable.Column[*model.Department]{
	{Name: "name", Kind: datatable.Plain, Value: func(d *model.Department) string { return d.Name }},
	{Name: "fees", Kind: datatable.Excluded, Value: func(d *model.Department) string { return fmt.Sprintf("%.2f", d.Fees) },
		Compare: func(a, b *model.Department) int {
			switch {
			case a.Fees < b.Fees:
				return -1
			case a.Fees > b.Fees:
				return 1
			}
			return 0
		}},
	{Name: "created", Kind: datatable.Date, Value: func(d *model.Department) string { return d.CreatedAt.Format(model.DateLayout) }},
}

func (s *Service) Create(ctx context.Context, hospitalID uuid.UUID, req *model.CreateDepartmentRequest) (*model.Department, error) {
	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == model.AdminDepartmentName {
		return nil, apperrors.Conflict("department name is reserved", nil)
	}

	if _, err := s.depts.GetByName(ctx, hospitalID, name); err == nil {
		return nil, apperrors.Conflict("department already exists", nil)
	} else if !apperrors.IsCode(err, apperrors.ErrNotFound) {
		return nil, err
	}

	dept := &model.Department{HospitalID: hospitalID, Name: name, Fees: req.Fees}
	if err := s.depts.Create(ctx, dept); err != nil {
		return nil, err
	}
	s.invalidate(hospitalID)
	return dept, nil
}

func (s *Service) Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Department, error) {
	return s.depts.Get(ctx, hospitalID, id)
}

// Update refuses to touch the seeded admin department.
func (s *Service) Update(ctx context.Context, hospitalID, id uuid.UUID, req *model.UpdateDepartmentRequest) (*model.Department, error) {
	dept, err := s.depts.Get(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}
	if dept.Name == model.AdminDepartmentName {
		return nil, apperrors.Forbidden("admin department cannot be modified")
	}

	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == model.AdminDepartmentName {
		return nil, apperrors.Conflict("department name is reserved", nil)
	}

	dept.Name = name
	dept.Fees = req.Fees
	if err := s.depts.Update(ctx, dept); err != nil {
		return nil, err
	}
	s.invalidate(hospitalID)
	return dept, nil
}

// Delete refuses to remove the seeded admin department.
func (s *Service) Delete(ctx context.Context, hospitalID, id uuid.UUID) error {
	dept, err := s.depts.Get(ctx, hospitalID, id)
	if err != nil {
		return err
	}
	if dept.Name == model.AdminDepartmentName {
		return apperrors.Forbidden("admin department cannot be deleted")
	}

	if err := s.depts.Delete(ctx, hospitalID, id); err != nil {
		return err
	}
	s.invalidate(hospitalID)
	return nil
}

// Options serves the booking-form dropdown, cached per hospital. The
// seeded admin department is not bookable and is filtered out.
func (s *Service) Options(ctx context.Context, hospitalID uuid.UUID) ([]*model.DepartmentOption, error) {
	key := s.cacheKey(hospitalID)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]*model.DepartmentOption), nil
	}

	depts, err := s.depts.List(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	options := make([]*model.DepartmentOption, 0, len(depts))
	for _, d := range depts {
		if d.Name == model.AdminDepartmentName {
			continue
		}
		options = append(options, &model.DepartmentOption{ID: d.ID, Name: d.Name})
	}

	s.cache.Set(key, options, gocache.DefaultExpiration)
	return options, nil
}

func (s *Service) Datatable(ctx context.Context, hospitalID uuid.UUID, query url.Values) (*datatable.Result[*model.Department], error) {
	req, err := datatable.ParseRequest(query)
	if err != nil {
		return nil, err
	}
	dateRange := datatable.ParseDateRange(query, "start_date", "end_date")

	depts, err := s.depts.List(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	return datatable.Paginate(depts, columns, req, dateRange, "created")
}

func (s *Service) cacheKey(hospitalID uuid.UUID) string {
	return "departments:" + hospitalID.String()
}

func (s *Service) invalidate(hospitalID uuid.UUID) {
	s.cache.Delete(s.cacheKey(hospitalID))
}

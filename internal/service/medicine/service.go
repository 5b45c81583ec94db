package medicine

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
)

type Service struct {
	medicines repository.MedicineRepository
}

func NewService(medicines repository.MedicineRepository) *Service {
	return &Service{medicines: medicines}
}

var columns = []datatable.Column[*model.Medicine]{
	{Name: "name", Kind: datatable.Plain, Value: func(m *model.Medicine) string { return m.Name }},
	{Name: "price", Kind: datatable.Excluded, Value: func(m *model.Medicine) string { return fmt.Sprintf("%.2f", m.Price) },
		Compare: func(a, b *model.Medicine) int {
			switch {
			case a.Price < b.Price:
				return -1
			case a.Price > b.Price:
				return 1
			}
			return 0
		}},
	{Name: "stock", Kind: datatable.Excluded, Value: func(m *model.Medicine) string { return "" },
		Compare: func(a, b *model.Medicine) int { return a.Stock - b.Stock }},
	{Name: "added", Kind: datatable.Date, Value: func(m *model.Medicine) string { return m.CreatedAt.Format(model.DateLayout) }},
}

func (s *Service) Create(ctx context.Context, hospitalID uuid.UUID, req *model.CreateMedicineRequest) (*model.Medicine, error) {
	name := strings.ToLower(strings.TrimSpace(req.Name))

	if _, err := s.medicines.GetByName(ctx, hospitalID, name); err == nil {
		return nil, apperrors.Conflict("medicine already exists", nil)
	} else if !apperrors.IsCode(err, apperrors.ErrNotFound) {
		return nil, err
	}

	medicine := &model.Medicine{
		HospitalID: hospitalID,
		Name:       name,
		Price:      req.Price,
		Stock:      req.Stock,
		Discount:   req.Discount,
	}
	if err := s.medicines.Create(ctx, medicine); err != nil {
		return nil, err
	}
	return medicine, nil
}

func (s *Service) Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Medicine, error) {
	return s.medicines.Get(ctx, hospitalID, id)
}

func (s *Service) Update(ctx context.Context, hospitalID, id uuid.UUID, req *model.UpdateMedicineRequest) (*model.Medicine, error) {
	medicine, err := s.medicines.Get(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}

	name := strings.ToLower(strings.TrimSpace(req.Name))
	if other, err := s.medicines.GetByName(ctx, hospitalID, name); err == nil {
		if other.ID != medicine.ID {
			return nil, apperrors.Conflict("medicine already exists", nil)
		}
	} else if !apperrors.IsCode(err, apperrors.ErrNotFound) {
		return nil, err
	}

	medicine.Name = name
	medicine.Price = req.Price
	medicine.Stock = req.Stock
	medicine.Discount = req.Discount
	if err := s.medicines.Update(ctx, medicine); err != nil {
		return nil, err
	}
	return medicine, nil
}

func (s *Service) Delete(ctx context.Context, hospitalID, id uuid.UUID) error {
	return s.medicines.Delete(ctx, hospitalID, id)
}

// InStock serves the prescription form: only medicines that can
// actually be dispensed.
func (s *Service) InStock(ctx context.Context, hospitalID uuid.UUID) ([]*model.Medicine, error) {
	return s.medicines.ListInStock(ctx, hospitalID)
}

func (s *Service) Datatable(ctx context.Context, hospitalID uuid.UUID, query url.Values) (*datatable.Result[*model.Medicine], error) {
	req, err := datatable.ParseRequest(query)
	if err != nil {
		return nil, err
	}
	dateRange := datatable.ParseDateRange(query, "start_date", "end_date")

	medicines, err := s.medicines.List(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	return datatable.Paginate(medicines, columns, req, dateRange, "added")
}

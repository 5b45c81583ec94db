package billing

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/medevel/hospital-api/internal/email"
	"github.com/medevel/hospital-api/internal/model"
	"github.com/medevel/hospital-api/internal/pdf"
	"github.com/medevel/hospital-api/internal/repository"
	"github.com/medevel/hospital-api/pkg/datatable"
	apperrors "github.com/medevel/hospital-api/pkg/errors"
	"github.com/medevel/hospital-api/pkg/logger"
	"github.com/medevel/hospital-api/pkg/metrics"
)

type Service struct {
	bills        repository.BillRepository
	transactions repository.TransactionRepository
	diagnoses    repository.DiagnosisRepository
	appointments repository.AppointmentRepository
	depts        repository.DepartmentRepository
	medicines    repository.MedicineRepository
	patients     repository.PatientRepository
	hospitals    repository.HospitalRepository
	mailer       email.Service
	logger       *logger.Logger
	metrics      *metrics.Metrics
}

func NewService(
	bills repository.BillRepository,
	transactions repository.TransactionRepository,
	diagnoses repository.DiagnosisRepository,
	appointments repository.AppointmentRepository,
	depts repository.DepartmentRepository,
	medicines repository.MedicineRepository,
	patients repository.PatientRepository,
	hospitals repository.HospitalRepository,
	mailer email.Service,
	log *logger.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		bills:        bills,
		transactions: transactions,
		diagnoses:    diagnoses,
		appointments: appointments,
		depts:        depts,
		medicines:    medicines,
		patients:     patients,
		hospitals:    hospitals,
		mailer:       mailer,
		logger:       log,
		metrics:      m,
	}
}

var billColumns = []datatable.Column[*model.Bill]{
	{Name: "patient", Kind: datatable.ForeignKeyName, Value: func(b *model.Bill) string { return b.PatientName }},
	{Name: "doctor", Kind: datatable.ForeignKeyName, Value: func(b *model.Bill) string { return b.DoctorName }},
	{Name: "total", Kind: datatable.Excluded, Value: func(b *model.Bill) string { return "" },
		Compare: func(a, b *model.Bill) int {
			switch {
			case a.Total < b.Total:
				return -1
			case a.Total > b.Total:
				return 1
			}
			return 0
		}},
	{Name: "date", Kind: datatable.Date, Value: func(b *model.Bill) string { return b.Date }},
}

var transactionColumns = []datatable.Column[*model.Transaction]{
	{Name: "patient", Kind: datatable.ForeignKeyName, Value: func(t *model.Transaction) string { return t.PatientName }},
	{Name: "payment_mode", Kind: datatable.Plain, Value: func(t *model.Transaction) string { return string(t.PaymentMode) }},
	{Name: "amount", Kind: datatable.Excluded, Value: func(t *model.Transaction) string { return "" },
		Compare: func(a, b *model.Transaction) int {
			switch {
			case a.Amount < b.Amount:
				return -1
			case a.Amount > b.Amount:
				return 1
			}
			return 0
		}},
	{Name: "date", Kind: datatable.Date, Value: func(t *model.Transaction) string { return t.Date }},
}

// CreateBill prices a diagnosed appointment: the prescription lines at
// their captured prices plus the department's consultation fees. An
// appointment is billed at most once.
func (s *Service) CreateBill(ctx context.Context, hospitalID uuid.UUID, req *model.CreateBillRequest) (*model.Bill, error) {
	appointment, err := s.appointments.Get(ctx, hospitalID, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if !appointment.Diagnosed {
		return nil, apperrors.BadRequest("appointment has not been diagnosed yet", nil)
	}

	if _, err := s.bills.GetByAppointment(ctx, hospitalID, req.AppointmentID); err == nil {
		return nil, apperrors.Conflict("appointment is already billed", nil)
	} else if !apperrors.IsCode(err, apperrors.ErrNotFound) {
		return nil, err
	}

	diagnosis, err := s.diagnoses.GetByAppointment(ctx, hospitalID, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	var fees float64
	if appointment.DepartmentID.Valid {
		dept, err := s.depts.Get(ctx, hospitalID, appointment.DepartmentID.UUID)
		if err != nil {
			return nil, err
		}
		fees = dept.Fees
	}

	bill := &model.Bill{
		HospitalID:    hospitalID,
		AppointmentID: appointment.ID,
		Lines:         diagnosis.Prescription,
		Fees:          fees,
		Total:         model.BillTotal(diagnosis.Prescription, fees),
	}
	if err := s.bills.Create(ctx, bill); err != nil {
		return nil, err
	}
	return s.bills.Get(ctx, hospitalID, bill.ID)
}

func (s *Service) GetBill(ctx context.Context, hospitalID, id uuid.UUID) (*model.Bill, error) {
	return s.bills.Get(ctx, hospitalID, id)
}

// Settle records payment of a bill. The amount is always the bill
// total, the bill is marked paid exactly once, and dispensed medicines
// leave the stock. The printable bill is mailed to the patient; a mail
// failure does not fail the settlement.
func (s *Service) Settle(ctx context.Context, hospitalID uuid.UUID, req *model.CreateTransactionRequest) (*model.Transaction, error) {
	bill, err := s.bills.Get(ctx, hospitalID, req.BillID)
	if err != nil {
		return nil, err
	}

	if err := s.bills.MarkPaid(ctx, hospitalID, bill.ID); err != nil {
		return nil, err
	}

	transaction := &model.Transaction{
		HospitalID:  hospitalID,
		BillID:      bill.ID,
		Amount:      bill.Total,
		PaymentMode: req.PaymentMode,
	}
	if err := s.transactions.Create(ctx, transaction); err != nil {
		return nil, err
	}

	for _, line := range bill.Lines {
		if err := s.medicines.DecrementStock(ctx, hospitalID, line.MedicineID, line.Quantity); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"bill_id":     bill.ID,
				"medicine_id": line.MedicineID,
			}).Error(err, "failed to decrement stock")
		}
	}

	bill.Paid = true
	s.mailBill(ctx, hospitalID, bill, transaction)

	return s.transactions.Get(ctx, hospitalID, transaction.ID)
}

func (s *Service) mailBill(ctx context.Context, hospitalID uuid.UUID, bill *model.Bill, txn *model.Transaction) {
	outcome := "sent"
	defer func() {
		if s.metrics != nil {
			s.metrics.BillsMailed.WithLabelValues(outcome).Inc()
		}
	}()

	appointment, err := s.appointments.Get(ctx, hospitalID, bill.AppointmentID)
	if err != nil {
		outcome = "failed"
		s.logger.WithFields(map[string]interface{}{"bill_id": bill.ID}).Error(err, "failed to load appointment for bill mail")
		return
	}
	patient, err := s.patients.Get(ctx, hospitalID, appointment.PatientID)
	if err != nil {
		outcome = "failed"
		s.logger.WithFields(map[string]interface{}{"bill_id": bill.ID}).Error(err, "failed to load patient for bill mail")
		return
	}
	hospital, err := s.hospitals.Get(ctx, hospitalID)
	if err != nil {
		outcome = "failed"
		s.logger.WithFields(map[string]interface{}{"bill_id": bill.ID}).Error(err, "failed to load hospital for bill mail")
		return
	}

	document, err := pdf.RenderBill(hospital.Name, bill, txn)
	if err != nil {
		outcome = "failed"
		s.logger.WithFields(map[string]interface{}{"bill_id": bill.ID}).Error(err, "failed to render bill pdf")
		return
	}

	if err := s.mailer.SendBill(ctx, patient.Email, patient.Name, document); err != nil {
		outcome = "failed"
		s.logger.WithFields(map[string]interface{}{"bill_id": bill.ID}).Error(err, "failed to mail bill")
	}
}

func (s *Service) GetTransaction(ctx context.Context, hospitalID, id uuid.UUID) (*model.Transaction, error) {
	return s.transactions.Get(ctx, hospitalID, id)
}

func (s *Service) BillDatatable(ctx context.Context, hospitalID uuid.UUID, query url.Values) (*datatable.Result[*model.Bill], error) {
	req, err := datatable.ParseRequest(query)
	if err != nil {
		return nil, err
	}
	dateRange := datatable.ParseDateRange(query, "start_date", "end_date")

	bills, err := s.bills.List(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	return datatable.Paginate(bills, billColumns, req, dateRange, "date")
}

func (s *Service) TransactionDatatable(ctx context.Context, hospitalID uuid.UUID, query url.Values) (*datatable.Result[*model.Transaction], error) {
	req, err := datatable.ParseRequest(query)
	if err != nil {
		return nil, err
	}
	dateRange := datatable.ParseDateRange(query, "start_date", "end_date")

	transactions, err := s.transactions.List(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	return datatable.Paginate(transactions, transactionColumns, req, dateRange, "date")
}

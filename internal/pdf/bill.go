package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/medevel/hospital-api/internal/model"
)

// RenderBill produces the printable statement handed to the patient
// at settlement.
func RenderBill(hospital string, bill *model.Bill, txn *model.Transaction) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, hospital, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 8, fmt.Sprintf("Patient: %s", bill.PatientName), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 8, fmt.Sprintf("Doctor: %s", bill.DoctorName), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 8, fmt.Sprintf("Date: %s", bill.Date), "", 1, "L", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(80, 8, "Medicine", "1", 0, "L", false, 0, "")
	doc.CellFormat(25, 8, "Price", "1", 0, "R", false, 0, "")
	doc.CellFormat(25, 8, "Discount", "1", 0, "R", false, 0, "")
	doc.CellFormat(20, 8, "Qty", "1", 0, "R", false, 0, "")
	doc.CellFormat(30, 8, "Amount", "1", 1, "R", false, 0, "")

	doc.SetFont("Helvetica", "", 11)
	for _, line := range bill.Lines {
		doc.CellFormat(80, 8, line.Name, "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 8, fmt.Sprintf("%.2f", line.Price), "1", 0, "R", false, 0, "")
		doc.CellFormat(25, 8, fmt.Sprintf("%.0f%%", line.Discount), "1", 0, "R", false, 0, "")
		doc.CellFormat(20, 8, fmt.Sprintf("%d", line.Quantity), "1", 0, "R", false, 0, "")
		doc.CellFormat(30, 8, fmt.Sprintf("%.2f", model.LineTotal(line)), "1", 1, "R", false, 0, "")
	}

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(150, 8, "Consultation fees", "1", 0, "L", false, 0, "")
	doc.CellFormat(30, 8, fmt.Sprintf("%.2f", bill.Fees), "1", 1, "R", false, 0, "")
	doc.CellFormat(150, 8, "Total", "1", 0, "L", false, 0, "")
	doc.CellFormat(30, 8, fmt.Sprintf("%.2f", bill.Total), "1", 1, "R", false, 0, "")

	if txn != nil {
		doc.Ln(4)
		doc.SetFont("Helvetica", "", 11)
		doc.CellFormat(0, 8, fmt.Sprintf("Paid %.2f via %s", txn.Amount, txn.PaymentMode), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render bill pdf: %w", err)
	}
	return buf.Bytes(), nil
}

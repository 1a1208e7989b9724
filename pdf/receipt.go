// Package pdf renders inventory receipts and monthly reports for the
// purchase and waste ledgers.
package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"nursery/models"
)

func formatDateTime(t time.Time) string {
	return t.Format("02 Jan 2006 15:04")
}

func writeStockLines(doc *gofpdf.Fpdf, stock models.SizeStock) {
	doc.SetFont("Helvetica", "U", 12)
	doc.CellFormat(0, 8, "Updated Stock:", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 7, fmt.Sprintf("- Small: %d", stock.Small), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, fmt.Sprintf("- Medium: %d", stock.Medium), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, fmt.Sprintf("- Large: %d", stock.Large), "", 1, "L", false, 0, "")
}

func writeFooter(doc *gofpdf.Fpdf) {
	doc.Ln(6)
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, "Generated: "+formatDateTime(time.Now()), "", 1, "R", false, 0, "")
}

// PurchaseReceipt renders a single stock-intake receipt.
func PurchaseReceipt(w io.Writer, purchase models.Purchase, plant models.Plant) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, "Purchase Receipt", "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 7, "Purchase ID: "+purchase.ID.Hex(), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, "Plant Name: "+plant.PlantName, "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, "Nursery: "+purchase.NurseryName, "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, "Size: "+purchase.Size, "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, fmt.Sprintf("Quantity: %d", purchase.Quantity), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, "Date: "+formatDateTime(purchase.CreatedAt), "", 1, "L", false, 0, "")
	doc.Ln(4)

	writeStockLines(doc, plant.StockQuantity)
	writeFooter(doc)
	return doc.Output(w)
}

// WasteReceipt renders a single stock write-off receipt.
func WasteReceipt(w io.Writer, waste models.Waste, plant models.Plant) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, "Waste Receipt", "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 7, "Waste ID: "+waste.ID.Hex(), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, "Plant Name: "+plant.PlantName, "", 1, "L", false, 0, "")
	reason := waste.Reason
	if reason == "" {
		reason = "-"
	}
	doc.CellFormat(0, 7, "Reason: "+reason, "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, "Size: "+waste.Size, "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, fmt.Sprintf("Quantity: %d", waste.Quantity), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, "Date: "+formatDateTime(waste.CreatedAt), "", 1, "L", false, 0, "")
	doc.Ln(4)

	writeStockLines(doc, plant.StockQuantity)
	writeFooter(doc)
	return doc.Output(w)
}

// ReportRow is one line of a monthly inventory report.
type ReportRow struct {
	PlantName string
	Detail    string
	Size      string
	Quantity  int
	Date      time.Time
}

func report(w io.Writer, title, detailHeader string, rows []ReportRow) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 12, title, "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(50, 8, "Plant", "B", 0, "L", false, 0, "")
	doc.CellFormat(50, 8, detailHeader, "B", 0, "L", false, 0, "")
	doc.CellFormat(25, 8, "Size", "B", 0, "L", false, 0, "")
	doc.CellFormat(20, 8, "Qty", "B", 0, "R", false, 0, "")
	doc.CellFormat(0, 8, "Date", "B", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 11)
	total := 0
	for _, r := range rows {
		name := r.PlantName
		if name == "" {
			name = "N/A"
		}
		doc.CellFormat(50, 7, name, "", 0, "L", false, 0, "")
		doc.CellFormat(50, 7, r.Detail, "", 0, "L", false, 0, "")
		doc.CellFormat(25, 7, r.Size, "", 0, "L", false, 0, "")
		doc.CellFormat(20, 7, fmt.Sprintf("%d", r.Quantity), "", 0, "R", false, 0, "")
		doc.CellFormat(0, 7, r.Date.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
		total += r.Quantity
	}

	doc.Ln(3)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 8, fmt.Sprintf("Total quantity: %d (%d records)", total, len(rows)), "", 1, "L", false, 0, "")

	writeFooter(doc)
	return doc.Output(w)
}

// MonthlyPurchaseReport renders all intake rows for one month.
func MonthlyPurchaseReport(w io.Writer, rows []ReportRow) error {
	return report(w, "Monthly Purchase Report", "Nursery", rows)
}

// MonthlyWasteReport renders all write-off rows for one month.
func MonthlyWasteReport(w io.Writer, rows []ReportRow) error {
	return report(w, "Monthly Waste Report", "Reason", rows)
}

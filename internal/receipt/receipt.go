// Package receipt renders a booking confirmation as a downloadable PDF.
package receipt

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pkordes/grand-plaza/internal/domain"
)

// ContentType is the MIME type of every rendered receipt.
const ContentType = "application/pdf"

const dateLayout = "2 Jan 2006"

// HotelInfo is the letterhead printed at the top of every receipt.
type HotelInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// Document is a rendered receipt ready to be sent to the browser.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Exporter renders receipts for one hotel.
type Exporter struct {
	hotel   HotelInfo
	now     func() time.Time
	printer *message.Printer
}

// NewExporter constructs an Exporter that prints hotel on every receipt.
func NewExporter(hotel HotelInfo) *Exporter {
	return &Exporter{
		hotel:   hotel,
		now:     time.Now,
		printer: message.NewPrinter(language.MustParse("en-IN")),
	}
}

// Filename returns the download name for the booking's receipt.
func Filename(bookingID string) string {
	return "Booking_" + bookingID + ".pdf"
}

// Render lays out b as an A4 confirmation receipt.
func (e *Exporter) Render(b domain.Booking) (Document, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Confirmation "+b.ID, false)
	pdf.SetAuthor(e.hotel.Name, false)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentW := pageW - left - right

	// Letterhead.
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(26, 35, 126)
	pdf.CellFormat(contentW, 10, e.hotel.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(contentW, 5, e.hotel.Address, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Phone: %s | Email: %s", e.hotel.Phone, e.hotel.Email), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetDrawColor(212, 175, 55)
	pdf.SetLineWidth(0.8)
	y := pdf.GetY()
	pdf.Line(left, y, pageW-right, y)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(contentW, 9, "Booking Confirmation Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW/2, 6, "Booking ID: "+b.ID, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 6, "Date: "+e.now().Format(dateLayout), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// Detail grid.
	labelW := contentW * 0.35
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.2)
	pdf.SetFillColor(245, 245, 245)
	for _, row := range e.rows(b) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(labelW, 9, row[0], "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(contentW-labelW, 9, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Thank you for choosing %s!", e.hotel.Name), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 6, "For any queries, contact us at: "+e.hotel.Email, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Document{}, fmt.Errorf("receipt.Exporter.Render: %w", err)
	}
	return Document{
		Filename:    Filename(b.ID),
		ContentType: ContentType,
		Body:        buf.Bytes(),
	}, nil
}

// rows returns the label/value pairs of the detail grid in print order.
func (e *Exporter) rows(b domain.Booking) [][2]string {
	eventTime := "N/A"
	if b.EventTime != nil && *b.EventTime != "" {
		eventTime = *b.EventTime
	}
	return [][2]string{
		{"Guest Name", b.CustomerName},
		{"Email", b.CustomerEmail},
		{"Phone", b.CustomerPhone},
		{"Booking Type", b.Kind.Label()},
		{"Item Name", b.ItemName},
		{"Check-In", b.CheckIn.Format(dateLayout)},
		{"Check-Out", b.CheckOut.Format(dateLayout)},
		{"Guests", fmt.Sprint(b.Guests)},
		{"Event Time", eventTime},
		{"Total Amount", e.Amount(b.TotalAmount)},
	}
}

// Amount formats a rupee amount with Indian digit grouping, e.g. "Rs. 5,000".
func (e *Exporter) Amount(rupees int64) string {
	return e.printer.Sprintf("Rs. %d", rupees)
}

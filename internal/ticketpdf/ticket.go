// Package ticketpdf renders printable tickets with a verification QR code.
package ticketpdf

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 512

// Ticket is the data printed on one ticket.
type Ticket struct {
	TicketID   string
	EventID    string
	EventTitle string
	Location   string
	Date       time.Time
	TicketType string
	Quantity   int
	Total      float64
	Holder     string
}

// VerifyURL is the address encoded in the ticket QR code.
func VerifyURL(baseURL, eventID, ticketID string) string {
	return fmt.Sprintf("%s/events/%s?ticket=%s",
		strings.TrimSuffix(baseURL, "/"), url.PathEscape(eventID), url.QueryEscape(ticketID))
}

// Filename is the download name of the ticket PDF.
func Filename(t Ticket) string {
	title := strings.Join(strings.Fields(t.EventTitle), "_")
	if r := []rune(title); len(r) > 20 {
		title = string(r[:20])
	}
	if title == "" {
		title = t.TicketID
	}
	return fmt.Sprintf("event_ticket_%s.pdf", title)
}

// Render writes a one page ticket PDF to w.
func Render(w io.Writer, baseURL string, t Ticket) error {
	png, err := qrcode.Encode(VerifyURL(baseURL, t.EventID, t.TicketID), qrcode.Medium, qrSize)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle(t.EventTitle, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFillColor(79, 70, 229)
	pdf.Rect(0, 0, 216, 30, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(15, 9)
	pdf.CellFormat(186, 12, tr(t.EventTitle), "", 1, "L", false, 0, "")

	pdf.SetTextColor(33, 33, 33)
	pdf.SetY(42)
	rows := [][2]string{
		{"Date", formatDate(t.Date)},
		{"Location", t.Location},
		{"Ticket type", t.TicketType},
		{"Quantity", fmt.Sprintf("%d", max(t.Quantity, 1))},
		{"Total paid", fmt.Sprintf("$%.2f", t.Total)},
		{"Holder", t.Holder},
		{"Ticket ID", t.TicketID},
	}
	for _, row := range rows {
		pdf.SetX(15)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(40, 9, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 9, tr(orDash(row[1])), "", 1, "L", false, 0, "")
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("qr", 140, 40, 60, 60, false, opts, 0, "")

	pdf.SetXY(140, 102)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(60, 5, "Scan at the entrance", "", 0, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render ticket PDF: %w", err)
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Mon, Jan 2, 2006 3:04 PM")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

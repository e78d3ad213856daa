// Package invoice renders a finalized enrollment record into the
// academy's fixed-layout PDF invoice.
package invoice

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/kalakar-academy/academy-api/internal/models"
)

const (
	academyName    = "Kalakar Art Academy"
	academyTagline = "Nurturing Creativity, Inspiring Artists"
	academyAddress = "Art Studio Complex, MG Road, Pune, Maharashtra 411001"
	academyEmail   = "hello@kalakarartacademy.in"
	academyPhone   = "+91 98765 43210"
)

// Renderer produces invoice PDFs. It is a pure function of the record
// plus the static logo asset; the record is never mutated.
type Renderer struct {
	logoPath string
}

// NewRenderer constructs a Renderer. logoPath may point at a missing
// file; rendering then falls back to a placeholder mark.
func NewRenderer(logoPath string) *Renderer {
	return &Renderer{logoPath: logoPath}
}

// Render lays out the single-page invoice for a completed enrollment.
// Output is byte-identical across calls for the same record.
func (r *Renderer) Render(record *models.EnrollmentRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(record.PaymentInfo.PaymentDate)
	pdf.SetModificationDate(record.PaymentInfo.PaymentDate)
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	r.header(pdf)
	r.invoiceMeta(pdf, record)
	r.billingBlocks(pdf, record)
	r.courseDetails(pdf, record)
	r.paymentSummary(pdf, record)
	r.footer(pdf)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) header(pdf *gofpdf.Fpdf) {
	pdf.SetFillColor(147, 51, 234)
	pdf.Rect(0, 0, 210, 30, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 20)
	pdf.SetXY(12, 8)
	pdf.CellFormat(120, 10, academyName, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.SetX(12)
	pdf.CellFormat(120, 5, academyTagline, "", 0, "L", false, 0, "")

	if !r.drawLogo(pdf) {
		r.drawLogoPlaceholder(pdf)
	}

	pdf.SetTextColor(51, 51, 51)
	pdf.SetY(36)
}

// drawLogo embeds the logo asset when it is a readable image; it reports
// whether it drew anything so the caller can fall back.
func (r *Renderer) drawLogo(pdf *gofpdf.Fpdf) bool {
	if r.logoPath == "" {
		return false
	}
	raw, err := os.ReadFile(r.logoPath)
	if err != nil {
		return false
	}
	var imageType string
	switch http.DetectContentType(raw) {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg":
		imageType = "JPG"
	default:
		return false
	}
	opts := gofpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader("academy-logo", opts, bytes.NewReader(raw))
	if !pdf.Ok() {
		return false
	}
	pdf.ImageOptions("academy-logo", 158, 5, 40, 20, false, opts, 0, "")
	return pdf.Ok()
}

func (r *Renderer) drawLogoPlaceholder(pdf *gofpdf.Fpdf) {
	pdf.SetDrawColor(255, 255, 255)
	pdf.SetLineWidth(0.5)
	pdf.Rect(158, 5, 40, 20, "D")
	pdf.SetFont("Arial", "B", 16)
	pdf.SetXY(158, 10)
	pdf.CellFormat(40, 10, "KA", "", 0, "C", false, 0, "")
}

func (r *Renderer) invoiceMeta(pdf *gofpdf.Fpdf, record *models.EnrollmentRecord) {
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(147, 51, 234)
	pdf.CellFormat(100, 8, "INVOICE", "", 0, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(86, 4, "Invoice No: "+record.InvoiceInfo.InvoiceNumber, "", 1, "R", false, 0, "")
	pdf.CellFormat(100, 4, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(86, 4, "Date: "+record.InvoiceInfo.InvoiceDate, "", 1, "R", false, 0, "")
	pdf.CellFormat(100, 4, "", "", 0, "L", false, 0, "")

	pdf.SetFillColor(16, 185, 129)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 8)
	pdf.SetX(172)
	pdf.CellFormat(26, 6, strings.ToUpper(string(record.PaymentInfo.PaymentStatus)), "", 1, "C", true, 0, "")
	pdf.SetTextColor(51, 51, 51)
	pdf.Ln(4)
}

func (r *Renderer) billingBlocks(pdf *gofpdf.Fpdf, record *models.EnrollmentRecord) {
	y := pdf.GetY()

	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(147, 51, 234)
	pdf.SetXY(12, y)
	pdf.CellFormat(90, 6, "From", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(51, 51, 51)
	for _, line := range []string{academyName, academyAddress, academyEmail, academyPhone} {
		pdf.SetX(12)
		pdf.CellFormat(90, 5, line, "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(147, 51, 234)
	pdf.SetXY(110, y)
	pdf.CellFormat(88, 6, "Bill To", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(51, 51, 51)
	student := record.StudentInfo
	for _, line := range []string{student.Name, student.Email, student.Phone, student.Address} {
		if line == "" {
			continue
		}
		pdf.SetX(110)
		pdf.CellFormat(88, 5, line, "", 1, "L", false, 0, "")
	}

	pdf.SetY(pdf.GetY() + 6)
}

func (r *Renderer) courseDetails(pdf *gofpdf.Fpdf, record *models.EnrollmentRecord) {
	course := record.CourseInfo

	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(147, 51, 234)
	pdf.CellFormat(186, 6, "Course Details", "B", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(31, 41, 55)
	pdf.CellFormat(186, 6, course.Title, "", 1, "L", false, 0, "")
	if name := latinOnly(course.LocalizedName); name != "" {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(236, 72, 153)
		pdf.CellFormat(186, 5, name, "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(51, 51, 51)
	grid := [][2]string{
		{"Level", course.Level},
		{"Duration", course.Duration},
		{"Sessions", course.SessionCount},
		{"Technique", course.Technique},
	}
	for i := 0; i < len(grid); i += 2 {
		pdf.CellFormat(93, 5, grid[i][0]+": "+grid[i][1], "", 0, "L", false, 0, "")
		if i+1 < len(grid) {
			pdf.CellFormat(93, 5, grid[i+1][0]+": "+grid[i+1][1], "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func (r *Renderer) paymentSummary(pdf *gofpdf.Fpdf, record *models.EnrollmentRecord) {
	info := record.PaymentInfo

	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(147, 51, 234)
	pdf.CellFormat(186, 6, "Payment Summary", "B", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetFillColor(16, 185, 129)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(186, 12, "Amount Paid: Rs. "+FormatINR(info.Amount), "", 1, "C", true, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(51, 51, 51)
	rows := [][2]string{
		{"Enrollment ID", record.EnrollmentID},
		{"Transaction ID", info.TransactionID},
		{"Gateway Payment ID", info.GatewayPaymentID},
		{"Payment Date", info.PaymentDate.Format("02/01/2006 15:04")},
		{"Payment Status", string(info.PaymentStatus)},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(60, 6, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(126, 6, row[1], "1", 1, "L", false, 0, "")
	}
}

func (r *Renderer) footer(pdf *gofpdf.Fpdf) {
	pdf.SetY(-30)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(186, 5, "Thank you for enrolling with "+academyName+"!", "", 1, "C", false, 0, "")
	pdf.CellFormat(186, 5, "This is a computer-generated invoice and does not require a signature.", "", 1, "C", false, 0, "")
}

// FormatINR renders whole rupees with Indian digit grouping
// (1,00,000 rather than 100,000).
func FormatINR(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if len(s) > 3 {
		head := s[:len(s)-3]
		tail := s[len(s)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(groups, ",") + "," + tail
	}
	if neg {
		return "-" + s
	}
	return s
}

// latinOnly strips runes the core PDF fonts cannot draw; a fully
// non-Latin value collapses to empty so the caller can skip the line.
func latinOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 0x250 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

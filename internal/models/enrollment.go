package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusCancelled EnrollmentStatus = "cancelled"
)

// PaymentStatus reflects the gateway's verdict on a charge.
type PaymentStatus string

// Possible payment statuses.
const (
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
	PaymentStatusPending PaymentStatus = "pending"
)

// StudentInfo is the user-supplied contact block of an enrollment.
type StudentInfo struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address"`
}

// CourseInfo is an immutable snapshot of the catalog entry at enrollment
// time. Catalog edits must never rewrite historical records, so the full
// definition is copied rather than referenced.
type CourseInfo struct {
	Title         string `json:"title"`
	Level         string `json:"level"`
	LocalizedName string `json:"localizedName"`
	Fee           string `json:"fee"`
	Duration      string `json:"duration"`
	SessionCount  string `json:"sessionCount"`
	Technique     string `json:"technique"`
}

// PaymentInfo echoes what the payment gateway reported.
type PaymentInfo struct {
	Amount           int64         `json:"amount"`
	TransactionID    string        `json:"transactionId"`
	GatewayPaymentID string        `json:"gatewayPaymentId"`
	GatewayOrderID   string        `json:"gatewayOrderId,omitempty"`
	GatewaySignature string        `json:"gatewaySignature,omitempty"`
	PaymentStatus    PaymentStatus `json:"paymentStatus"`
	PaymentDate      time.Time     `json:"paymentDate"`
}

// InvoiceInfo is generated at payment-success time, independent of
// server acknowledgment.
type InvoiceInfo struct {
	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceDate   string `json:"invoiceDate"`
}

// EnrollmentRecord is a committed course purchase. It is only ever
// constructed after a successful payment callback.
type EnrollmentRecord struct {
	EnrollmentID   string           `db:"enrollment_id" json:"enrollmentId" validate:"required"`
	StudentInfo    StudentInfo      `db:"student_info" json:"studentInfo" validate:"required"`
	CourseInfo     CourseInfo       `db:"course_info" json:"courseInfo" validate:"required"`
	PaymentInfo    PaymentInfo      `db:"payment_info" json:"paymentInfo" validate:"required"`
	InvoiceInfo    InvoiceInfo      `db:"invoice_info" json:"invoiceInfo"`
	EnrollmentDate time.Time        `db:"enrollment_date" json:"enrollmentDate"`
	Status         EnrollmentStatus `db:"status" json:"status"`
	CreatedAt      time.Time        `db:"created_at" json:"createdAt,omitempty"`
	UpdatedAt      time.Time        `db:"updated_at" json:"updatedAt,omitempty"`
}

// EnrollmentFilter narrows enrollment queries.
type EnrollmentFilter struct {
	Email string
}

// The nested sections are stored as JSONB columns so the persisted shape
// stays the document the frontend submits.

func (s StudentInfo) Value() (driver.Value, error) { return json.Marshal(s) }
func (s *StudentInfo) Scan(src interface{}) error  { return scanJSON(s, src) }
func (c CourseInfo) Value() (driver.Value, error)  { return json.Marshal(c) }
func (c *CourseInfo) Scan(src interface{}) error   { return scanJSON(c, src) }
func (p PaymentInfo) Value() (driver.Value, error) { return json.Marshal(p) }
func (p *PaymentInfo) Scan(src interface{}) error  { return scanJSON(p, src) }
func (i InvoiceInfo) Value() (driver.Value, error) { return json.Marshal(i) }
func (i *InvoiceInfo) Scan(src interface{}) error  { return scanJSON(i, src) }

func scanJSON(dst interface{}, src interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}

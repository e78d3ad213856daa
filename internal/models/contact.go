package models

import "time"

// ContactStatus tracks how far along a contact request is.
type ContactStatus string

// Possible contact statuses.
const (
	ContactStatusNew       ContactStatus = "new"
	ContactStatusContacted ContactStatus = "contacted"
	ContactStatusResolved  ContactStatus = "resolved"
)

// ContactRecord is a submitted contact-form request.
type ContactRecord struct {
	ContactID   string        `db:"contact_id" json:"contactId,omitempty"`
	Name        string        `db:"name" json:"name" validate:"required"`
	Email       string        `db:"email" json:"email" validate:"required,email"`
	Phone       string        `db:"phone" json:"phone,omitempty"`
	Course      string        `db:"course" json:"course,omitempty"`
	Message     string        `db:"message" json:"message,omitempty"`
	Status      ContactStatus `db:"status" json:"status,omitempty"`
	SubmittedAt time.Time     `db:"submitted_at" json:"submittedAt,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"createdAt,omitempty"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updatedAt,omitempty"`
}

// ContactFilter narrows contact queries.
type ContactFilter struct {
	Email  string
	Status ContactStatus
}

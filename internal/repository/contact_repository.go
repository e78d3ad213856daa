package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kalakar-academy/academy-api/internal/models"
	"github.com/kalakar-academy/academy-api/pkg/database"
)

const contactColumns = `contact_id, name, email, phone, course, message, status, submitted_at, created_at, updated_at`

// ContactRepository handles persistence of contact-form submissions.
type ContactRepository struct {
	pool *database.Pool
}

// NewContactRepository constructs the repository.
func NewContactRepository(pool *database.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

// Insert stores a contact record, stamping the server-side timestamps.
func (r *ContactRepository) Insert(ctx context.Context, record *models.ContactRecord) error {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	if record.SubmittedAt.IsZero() {
		record.SubmittedAt = now
	}
	if record.Status == "" {
		record.Status = models.ContactStatusNew
	}

	const query = `INSERT INTO contacts (contact_id, name, email, phone, course, message, status, submitted_at, created_at, updated_at)
        VALUES (:contact_id, :name, :email, :phone, :course, :message, :status, :submitted_at, :created_at, :updated_at)`
	if _, err := db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// List returns contacts matching the filter, newest submission first.
func (r *ContactRepository) List(ctx context.Context, filter models.ContactFilter) ([]models.ContactRecord, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var conditions []string
	var args []interface{}
	if filter.Email != "" {
		conditions = append(conditions, fmt.Sprintf("email ILIKE '%%' || $%d || '%%'", len(args)+1))
		args = append(args, filter.Email)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}

	query := fmt.Sprintf(`SELECT %s FROM contacts`, contactColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY submitted_at DESC`

	var records []models.ContactRecord
	if err := db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return records, nil
}

// Count returns the total number of contact records.
func (r *ContactRepository) Count(ctx context.Context) (int, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	var total int
	if err := db.GetContext(ctx, &total, `SELECT COUNT(*) FROM contacts`); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return total, nil
}

// CountByStatus returns the number of contacts in the given status.
func (r *ContactRepository) CountByStatus(ctx context.Context, status models.ContactStatus) (int, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	var total int
	if err := db.GetContext(ctx, &total, `SELECT COUNT(*) FROM contacts WHERE status = $1`, status); err != nil {
		return 0, fmt.Errorf("count contacts by status: %w", err)
	}
	return total, nil
}

// Recent returns the most recently submitted contacts.
func (r *ContactRepository) Recent(ctx context.Context, limit int) ([]models.ContactRecord, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM contacts ORDER BY submitted_at DESC LIMIT $1`, contactColumns)
	var records []models.ContactRecord
	if err := db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("recent contacts: %w", err)
	}
	return records, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/kalakar-academy/academy-api/internal/models"
	"github.com/kalakar-academy/academy-api/pkg/database"
)

const enrollmentColumns = `enrollment_id, student_info, course_info, payment_info, invoice_info, enrollment_date, status, created_at, updated_at`

// EnrollmentRepository handles persistence of enrollment records.
type EnrollmentRepository struct {
	pool *database.Pool
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(pool *database.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// Insert stores an enrollment record, stamping createdAt/updatedAt.
// Inserts are keyed on the client-generated enrollment_id so a retried
// submission of the same record is a no-op; the returned flag reports
// whether a new row was written.
func (r *EnrollmentRepository) Insert(ctx context.Context, record *models.EnrollmentRecord) (bool, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}

	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	if record.EnrollmentDate.IsZero() {
		record.EnrollmentDate = now
	}
	if record.Status == "" {
		record.Status = models.EnrollmentStatusActive
	}

	const query = `INSERT INTO enrollments (enrollment_id, student_info, course_info, payment_info, invoice_info, enrollment_date, status, created_at, updated_at)
        VALUES (:enrollment_id, :student_info, :course_info, :payment_info, :invoice_info, :enrollment_date, :status, :created_at, :updated_at)
        ON CONFLICT (enrollment_id) DO NOTHING`
	res, err := db.NamedExecContext(ctx, query, record)
	if err != nil {
		return false, fmt.Errorf("insert enrollment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert enrollment: %w", err)
	}
	return affected > 0, nil
}

// List returns enrollments matching the filter, newest first. The email
// filter is a case-insensitive substring match on studentInfo.email.
func (r *EnrollmentRepository) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentRecord, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM enrollments`, enrollmentColumns)
	var args []interface{}
	if filter.Email != "" {
		query += ` WHERE student_info->>'email' ILIKE '%' || $1 || '%'`
		args = append(args, filter.Email)
	}
	query += ` ORDER BY created_at DESC`

	var records []models.EnrollmentRecord
	if err := db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return records, nil
}

// Count returns the total number of enrollment records.
func (r *EnrollmentRepository) Count(ctx context.Context) (int, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	var total int
	if err := db.GetContext(ctx, &total, `SELECT COUNT(*) FROM enrollments`); err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return total, nil
}

// CountByStatus returns the number of enrollments in the given status.
func (r *EnrollmentRepository) CountByStatus(ctx context.Context, status models.EnrollmentStatus) (int, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	var total int
	if err := db.GetContext(ctx, &total, `SELECT COUNT(*) FROM enrollments WHERE status = $1`, status); err != nil {
		return 0, fmt.Errorf("count enrollments by status: %w", err)
	}
	return total, nil
}

// Revenue sums paymentInfo.amount over successfully paid enrollments.
func (r *EnrollmentRepository) Revenue(ctx context.Context) (int64, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	var total int64
	const query = `SELECT COALESCE(SUM((payment_info->>'amount')::bigint), 0) FROM enrollments WHERE payment_info->>'paymentStatus' = 'success'`
	if err := db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("sum enrollment revenue: %w", err)
	}
	return total, nil
}

// Recent returns the most recently created enrollments.
func (r *EnrollmentRepository) Recent(ctx context.Context, limit int) ([]models.EnrollmentRecord, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM enrollments ORDER BY created_at DESC LIMIT $1`, enrollmentColumns)
	var records []models.EnrollmentRecord
	if err := db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("recent enrollments: %w", err)
	}
	return records, nil
}

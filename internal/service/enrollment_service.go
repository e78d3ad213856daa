package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kalakar-academy/academy-api/internal/models"
	appErrors "github.com/kalakar-academy/academy-api/pkg/errors"
)

type enrollmentStore interface {
	Insert(ctx context.Context, record *models.EnrollmentRecord) (bool, error)
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentRecord, error)
}

// EnrollmentSaveResult is the acknowledgment payload for a stored
// enrollment, mirroring what the frontend surfaces after checkout.
type EnrollmentSaveResult struct {
	EnrollmentID string    `json:"enrollmentId"`
	StudentName  string    `json:"studentName"`
	Course       string    `json:"course"`
	Amount       int64     `json:"amount"`
	SavedAt      time.Time `json:"savedAt"`
}

// EnrollmentService orchestrates server-side enrollment persistence.
type EnrollmentService struct {
	store     enrollmentStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(store enrollmentStore, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{store: store, validator: validate, logger: logger}
}

// Save validates and persists an enrollment record. Re-submission of an
// already stored enrollmentId is acknowledged as success without writing
// a second document, which makes client-side retries safe.
func (s *EnrollmentService) Save(ctx context.Context, record *models.EnrollmentRecord) (*EnrollmentSaveResult, error) {
	if err := s.validator.Struct(record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"Missing required fields: enrollmentId, studentInfo, courseInfo, paymentInfo")
	}

	inserted, err := s.store.Insert(ctx, record)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
			"Failed to save enrollment data to database")
	}
	if !inserted {
		s.logger.Info("duplicate enrollment submission ignored",
			zap.String("enrollment_id", record.EnrollmentID))
	}

	return &EnrollmentSaveResult{
		EnrollmentID: record.EnrollmentID,
		StudentName:  record.StudentInfo.Name,
		Course:       record.CourseInfo.Title,
		Amount:       record.PaymentInfo.Amount,
		SavedAt:      time.Now().UTC(),
	}, nil
}

// List returns enrollments matching the filter.
func (s *EnrollmentService) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentRecord, error) {
	records, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
			"Failed to fetch enrollments")
	}
	if records == nil {
		records = []models.EnrollmentRecord{}
	}
	return records, nil
}

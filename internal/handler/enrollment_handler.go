package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kalakar-academy/academy-api/internal/models"
	"github.com/kalakar-academy/academy-api/internal/service"
	appErrors "github.com/kalakar-academy/academy-api/pkg/errors"
	"github.com/kalakar-academy/academy-api/pkg/response"
)

// EnrollmentHandler exposes enrollment endpoints.
type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// Create godoc
// @Summary Save an enrollment record
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body models.EnrollmentRecord true "Enrollment record"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /enrollment [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var record models.EnrollmentRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest,
			"Missing required fields: enrollmentId, studentInfo, courseInfo, paymentInfo"))
		return
	}
	result, err := h.enrollments.Save(c.Request.Context(), &record)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Saved(c, result.EnrollmentID, "Enrollment saved successfully", result)
}

// List godoc
// @Summary List enrollments
// @Tags Enrollments
// @Produce json
// @Param email query string false "Filter by student email (substring, case-insensitive)"
// @Success 200 {object} response.Envelope
// @Router /enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	filter := models.EnrollmentFilter{Email: c.Query("email")}
	records, err := h.enrollments.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, records, len(records))
}

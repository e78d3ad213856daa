package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kalakar-academy/academy-api/internal/models"
	"github.com/kalakar-academy/academy-api/internal/service"
	appErrors "github.com/kalakar-academy/academy-api/pkg/errors"
	"github.com/kalakar-academy/academy-api/pkg/response"
)

// ContactHandler exposes contact-form endpoints.
type ContactHandler struct {
	contacts *service.ContactService
}

// NewContactHandler constructs ContactHandler.
func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Create godoc
// @Summary Save a contact-form submission
// @Tags Contacts
// @Accept json
// @Produce json
// @Param payload body models.ContactRecord true "Contact form fields"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /contact [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var record models.ContactRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest,
			"Missing required fields: name and email are required"))
		return
	}
	saved, err := h.contacts.Save(c.Request.Context(), &record)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Contact form submitted successfully!", gin.H{
		"contactId": saved.ContactID,
		"name":      saved.Name,
		"email":     saved.Email,
		"course":    saved.Course,
		"savedAt":   time.Now().UTC(),
	})
}

// List godoc
// @Summary List contact-form submissions
// @Tags Contacts
// @Produce json
// @Param email query string false "Filter by email (substring, case-insensitive)"
// @Param status query string false "Filter by exact status"
// @Success 200 {object} response.Envelope
// @Router /contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	filter := models.ContactFilter{
		Email:  c.Query("email"),
		Status: models.ContactStatus(c.Query("status")),
	}
	records, err := h.contacts.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, records, len(records))
}

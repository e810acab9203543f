package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pmihealth/cardiology-api/internal/models"
	"github.com/pmihealth/cardiology-api/internal/repository"
	"github.com/pmihealth/cardiology-api/internal/utils"
	"github.com/pmihealth/cardiology-api/internal/validation"
)

type BookAppointmentRequest struct {
	PatientName     string `json:"patientName" binding:"required,max=100"`
	PatientEmail    string `json:"patientEmail" binding:"required,email"`
	PatientPhone    string `json:"patientPhone" binding:"required"`
	AppointmentDate string `json:"appointmentDate" binding:"required,isodate"`
	AppointmentTime string `json:"appointmentTime" binding:"required"`
	Doctor          string `json:"doctor" binding:"required,max=100"`
	Department      string `json:"department" binding:"required,max=50"`
	Reason          string `json:"reason" binding:"required,max=500"`
	Notes           string `json:"notes" binding:"max=1000"`
}

// BookAppointment creates a booking request. Public route; the date must not
// be in the past (calendar-day comparison, time of day ignored).
func (h *Handler) BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validation.RespondViolations(c, err)
		return
	}

	date, err := validation.ParseISODate(req.AppointmentDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Please enter a valid appointment date")
		return
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		utils.JSONError(c, http.StatusBadRequest, "Appointment date cannot be in the past")
		return
	}

	apt := &models.Appointment{
		PatientName:     req.PatientName,
		PatientEmail:    req.PatientEmail,
		PatientPhone:    req.PatientPhone,
		AppointmentDate: date,
		AppointmentTime: req.AppointmentTime,
		Doctor:          req.Doctor,
		Department:      req.Department,
		Reason:          req.Reason,
		Notes:           req.Notes,
		Status:          models.AppointmentPending,
	}

	if err := h.Appointments.Create(c.Request.Context(), apt); err != nil {
		h.serverError(c, "Failed to book appointment", err)
		return
	}

	h.Notifications.SendBookingConfirmationSMS(apt)

	utils.JSONSuccess(c, http.StatusCreated, "Appointment booked successfully", gin.H{
		"appointment": gin.H{
			"id":              apt.ID,
			"patientName":     apt.PatientName,
			"appointmentDate": apt.AppointmentDate,
			"appointmentTime": apt.AppointmentTime,
			"doctor":          apt.Doctor,
			"status":          apt.Status,
		},
	})
}

// GetAppointments lists appointments for the admin dashboard, filterable by
// status and calendar date.
func (h *Handler) GetAppointments(c *gin.Context) {
	page, limit := pageParams(c, 50)

	filter := repository.AppointmentFilter{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}
	if dateStr := c.Query("date"); dateStr != "" {
		if date, err := validation.ParseISODate(dateStr); err == nil {
			filter.Date = &date
		}
	}

	appointments, total, err := h.Appointments.List(c.Request.Context(), filter)
	if err != nil {
		h.serverError(c, "Failed to fetch appointments", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "", gin.H{
		"appointments": appointments,
		"pagination":   repository.NewPagination(page, limit, total),
	})
}

// GetAppointment fetches a single appointment.
func (h *Handler) GetAppointment(c *gin.Context) {
	apt, err := h.Appointments.FindByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Appointment not found")
		return
	}
	if err != nil {
		h.serverError(c, "Failed to fetch appointment", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", gin.H{"appointment": apt})
}

// UpdateAppointmentStatus moves an appointment through its status values.
func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !models.IsValidAppointmentStatus(req.Status) {
		utils.JSONError(c, http.StatusBadRequest,
			"Invalid status. Must be one of: pending, confirmed, completed, cancelled")
		return
	}

	apt, err := h.Appointments.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if errors.Is(err, repository.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Appointment not found")
		return
	}
	if err != nil {
		h.serverError(c, "Failed to update appointment status", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Appointment status updated successfully", gin.H{
		"appointment": apt,
	})
}

// DeleteAppointment removes a booking. A second delete of the same id is a
// 404, not a silent success.
func (h *Handler) DeleteAppointment(c *gin.Context) {
	err := h.Appointments.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Appointment not found")
		return
	}
	if err != nil {
		h.serverError(c, "Failed to delete appointment", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Appointment deleted successfully", nil)
}

// GetAppointmentStats returns the status-grouped counts, computed over the
// full collection at call time.
func (h *Handler) GetAppointmentStats(c *gin.Context) {
	stats, err := h.Appointments.Stats(c.Request.Context())
	if err != nil {
		h.serverError(c, "Failed to fetch appointment statistics", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", gin.H{"stats": stats})
}

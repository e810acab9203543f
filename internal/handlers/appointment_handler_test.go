package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pmihealth/cardiology-api/internal/models"
	"github.com/pmihealth/cardiology-api/internal/repository"
)

func appointmentRouter(env *testEnv) *gin.Engine {
	r := gin.New()
	r.POST("/api/appointments", env.handler.BookAppointment)
	r.GET("/api/appointments", env.handler.GetAppointments)
	r.DELETE("/api/appointments/:id", env.handler.DeleteAppointment)
	r.PATCH("/api/appointments/:id/status", env.handler.UpdateAppointmentStatus)
	return r
}

func bookingPayload(date string) map[string]any {
	return map[string]any{
		"patientName":     "Yousef Khalid",
		"patientEmail":    "yousef@example.com",
		"patientPhone":    "+973 33112244",
		"appointmentDate": date,
		"appointmentTime": "10:30 AM",
		"doctor":          "Dr. Fatima Al Sayed",
		"department":      "Cardiology",
		"reason":          "Chest pain follow-up",
	}
}

func TestBookAppointmentSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.appointments.On("Create", mock.Anything, mock.AnythingOfType("*models.Appointment")).Return(nil)

	tomorrow := time.Now().UTC().Add(24 * time.Hour).Format("2006-01-02")
	w := performJSON(appointmentRouter(env), http.MethodPost, "/api/appointments", bookingPayload(tomorrow))

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	apt := body["appointment"].(map[string]any)
	assert.Equal(t, "pending", apt["status"])
	env.appointments.AssertExpectations(t)
}

func TestBookAppointmentPastDateRejected(t *testing.T) {
	env := newTestEnv(t)

	yesterday := time.Now().UTC().Add(-24 * time.Hour).Format("2006-01-02")
	w := performJSON(appointmentRouter(env), http.MethodPost, "/api/appointments", bookingPayload(yesterday))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Appointment date cannot be in the past", body["message"])
	env.appointments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookAppointmentTodayAccepted(t *testing.T) {
	env := newTestEnv(t)
	env.appointments.On("Create", mock.Anything, mock.AnythingOfType("*models.Appointment")).Return(nil)

	today := time.Now().UTC().Format("2006-01-02")
	w := performJSON(appointmentRouter(env), http.MethodPost, "/api/appointments", bookingPayload(today))

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGetAppointmentsPagination(t *testing.T) {
	env := newTestEnv(t)

	pageOne := make([]models.Appointment, 50)
	env.appointments.On("List", mock.Anything, repository.AppointmentFilter{Page: 1, Limit: 50}).
		Return(pageOne, int64(55), nil).Once()

	w := performJSON(appointmentRouter(env), http.MethodGet, "/api/appointments?page=1&limit=50", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(1), pagination["currentPage"])
	assert.Equal(t, float64(2), pagination["totalPages"])
	assert.Equal(t, true, pagination["hasNextPage"])
	assert.Equal(t, false, pagination["hasPrevPage"])
	assert.Len(t, body["appointments"].([]any), 50)

	pageTwo := make([]models.Appointment, 5)
	env.appointments.On("List", mock.Anything, repository.AppointmentFilter{Page: 2, Limit: 50}).
		Return(pageTwo, int64(55), nil).Once()

	w = performJSON(appointmentRouter(env), http.MethodGet, "/api/appointments?page=2&limit=50", nil)
	body = decodeBody(t, w)
	pagination = body["pagination"].(map[string]any)
	assert.Equal(t, false, pagination["hasNextPage"])
	assert.Equal(t, true, pagination["hasPrevPage"])
	assert.Len(t, body["appointments"].([]any), 5)
}

func TestDeleteAppointmentTwice(t *testing.T) {
	env := newTestEnv(t)
	id := primitive.NewObjectID().Hex()
	env.appointments.On("Delete", mock.Anything, id).Return(nil).Once()
	env.appointments.On("Delete", mock.Anything, id).Return(repository.ErrNotFound).Once()

	r := appointmentRouter(env)

	req := httptest.NewRequest(http.MethodDelete, "/api/appointments/"+id, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/appointments/"+id, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateAppointmentStatusRejectsUnknownValue(t *testing.T) {
	env := newTestEnv(t)
	id := primitive.NewObjectID().Hex()

	w := performJSON(appointmentRouter(env), http.MethodPatch, "/api/appointments/"+id+"/status",
		map[string]any{"status": "rescheduled"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.appointments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/pmihealth/cardiology-api/internal/models"
)

// NotificationService sends booking confirmation SMS through Textbelt. With
// no API key configured it is a no-op.
type NotificationService struct {
	apiKey string
	log    *zap.SugaredLogger
}

func NewNotificationService(apiKey string, log *zap.SugaredLogger) *NotificationService {
	return &NotificationService{apiKey: apiKey, log: log}
}

// SendBookingConfirmationSMS confirms a new appointment to the patient.
// Fires in a goroutine so it never blocks the API response.
func (s *NotificationService) SendBookingConfirmationSMS(apt *models.Appointment) {
	if s.apiKey == "" || apt.PatientPhone == "" {
		return
	}

	body := fmt.Sprintf(
		"Appointment received: %s with %s (%s) on %s at %s. We will confirm shortly.",
		apt.Reason,
		apt.Doctor,
		apt.Department,
		apt.FormattedDate(),
		apt.AppointmentTime,
	)

	go s.sendSMS(apt.PatientPhone, body)
}

func (s *NotificationService) sendSMS(phone, message string) {
	postBody, _ := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.apiKey,
	})

	resp, err := http.Post("https://textbelt.com/text", "application/json", bytes.NewBuffer(postBody))
	if err != nil {
		s.log.Errorw("textbelt request failed", "phone", phone, "error", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&result)

	if success, _ := result["success"].(bool); !success {
		errorMsg, _ := result["error"].(string)
		s.log.Errorw("textbelt rejected SMS", "phone", phone, "reason", errorMsg)
		return
	}
	s.log.Infow("booking confirmation SMS sent", "phone", phone)
}

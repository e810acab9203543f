package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pmihealth/cardiology-api/internal/config"
	"github.com/pmihealth/cardiology-api/internal/repository/mocks"
	"github.com/pmihealth/cardiology-api/internal/services"
	"github.com/pmihealth/cardiology-api/internal/utils"
	"github.com/pmihealth/cardiology-api/internal/validation"
)

const testSecret = "test-secret"

type testEnv struct {
	handler      *Handler
	users        *mocks.MockUserRepository
	appointments *mocks.MockAppointmentRepository
	offers       *mocks.MockOfferRepository
	slider       *mocks.MockSliderRepository
	tokens       *utils.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Setup()

	users := new(mocks.MockUserRepository)
	appointments := new(mocks.MockAppointmentRepository)
	offers := new(mocks.MockOfferRepository)
	slider := new(mocks.MockSliderRepository)

	cfg := &config.Config{
		Env:           "test",
		AdminUsername: "pmi",
		AdminPassword: "123",
		AdminEmail:    "admin@cardiologyhospital.com",
		JWTSecret:     testSecret,
		JWTExpiry:     7 * 24 * time.Hour,
	}
	tokens := utils.NewJWTManager(testSecret, cfg.JWTExpiry)
	notifications := services.NewNotificationService("", zap.NewNop().Sugar())

	h := NewHandler(users, appointments, offers, slider, tokens, notifications, cfg, zap.NewNop().Sugar())
	return &testEnv{
		handler:      h,
		users:        users,
		appointments: appointments,
		offers:       offers,
		slider:       slider,
		tokens:       tokens,
	}
}

func performJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newAuthedRequest(method, path, token string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, httptest.NewRecorder()
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return out
}

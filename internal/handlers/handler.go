package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pmihealth/cardiology-api/internal/config"
	"github.com/pmihealth/cardiology-api/internal/repository"
	"github.com/pmihealth/cardiology-api/internal/services"
	"github.com/pmihealth/cardiology-api/internal/utils"
)

// Handler carries the dependencies every route handler needs. Repositories
// are injected as interfaces so handlers can be exercised against mocks.
type Handler struct {
	Users        repository.UserRepository
	Appointments repository.AppointmentRepository
	Offers       repository.OfferRepository
	Slider       repository.SliderRepository

	Tokens        *utils.JWTManager
	Notifications *services.NotificationService
	Cfg           *config.Config
	Log           *zap.SugaredLogger
}

func NewHandler(
	users repository.UserRepository,
	appointments repository.AppointmentRepository,
	offers repository.OfferRepository,
	slider repository.SliderRepository,
	tokens *utils.JWTManager,
	notifications *services.NotificationService,
	cfg *config.Config,
	log *zap.SugaredLogger,
) *Handler {
	return &Handler{
		Users:         users,
		Appointments:  appointments,
		Offers:        offers,
		Slider:        slider,
		Tokens:        tokens,
		Notifications: notifications,
		Cfg:           cfg,
		Log:           log,
	}
}

// serverError logs the failure and answers with the 500 envelope. The
// underlying error text is only echoed in development mode; logs always get
// the full detail.
func (h *Handler) serverError(c *gin.Context, msg string, err error) {
	h.Log.Errorw(msg, "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
	detail := msg
	if h.Cfg.IsDevelopment() && err != nil {
		detail = msg + ": " + err.Error()
	}
	utils.JSONError(c, http.StatusInternalServerError, detail)
}

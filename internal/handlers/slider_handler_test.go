package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pmihealth/cardiology-api/internal/models"
)

func sliderRouter(env *testEnv) *gin.Engine {
	r := gin.New()
	r.GET("/api/slider", env.handler.GetSliderImages)
	r.POST("/api/slider", env.handler.CreateSliderImage)
	r.GET("/api/health", env.handler.Health)
	r.NoRoute(env.handler.NotFound)
	return r
}

func TestCreateSliderImageDefaults(t *testing.T) {
	env := newTestEnv(t)
	env.slider.On("Create", mock.Anything, mock.MatchedBy(func(img *models.SliderImage) bool {
		return img.Order == 1 && img.IsActive
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.SliderImage).ID = primitive.NewObjectID()
	})

	w := performJSON(sliderRouter(env), http.MethodPost, "/api/slider", map[string]any{
		"title": "Cardiac screening week",
		"image": "https://cdn.example.com/slider/screening.jpg",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	env.slider.AssertExpectations(t)
}

func TestCreateSliderImageRequiresImage(t *testing.T) {
	env := newTestEnv(t)

	w := performJSON(sliderRouter(env), http.MethodPost, "/api/slider", map[string]any{
		"title": "No picture",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.slider.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetSliderImagesReturnsActiveOnly(t *testing.T) {
	env := newTestEnv(t)
	imgs := []models.SliderImage{
		{ID: primitive.NewObjectID(), Title: "First", Order: 1, IsActive: true},
		{ID: primitive.NewObjectID(), Title: "Second", Order: 2, IsActive: true},
	}
	env.slider.On("ListActive", mock.Anything).Return(imgs, nil)

	w := performJSON(sliderRouter(env), http.MethodGet, "/api/slider", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["data"].([]any), 2)
}

func TestHealthAndUnknownRoute(t *testing.T) {
	env := newTestEnv(t)
	r := sliderRouter(env)

	w := performJSON(r, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	w = performJSON(r, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["availableRoutes"])
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pmihealth/cardiology-api/internal/models"
	"github.com/pmihealth/cardiology-api/internal/repository"
	"github.com/pmihealth/cardiology-api/internal/utils"
	"github.com/pmihealth/cardiology-api/internal/validation"
)

type CreateSliderImageRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description"`
	Image       string `json:"image" binding:"required"`
	Link        string `json:"link"`
	ButtonText  string `json:"buttonText"`
	Order       int    `json:"order" binding:"omitempty,min=1"`
	IsActive    *bool  `json:"isActive"`
}

type UpdateSliderImageRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=100"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Link        *string `json:"link"`
	ButtonText  *string `json:"buttonText"`
	Order       *int    `json:"order" binding:"omitempty,min=1"`
	IsActive    *bool   `json:"isActive"`
}

// GetSliderImages returns active slides for the homepage carousel, by display
// order then recency.
func (h *Handler) GetSliderImages(c *gin.Context) {
	slides, err := h.Slider.ListActive(c.Request.Context())
	if err != nil {
		h.serverError(c, "Error fetching slider images", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", gin.H{"data": slides})
}

// GetAllSliderImages returns every slide for the admin dashboard.
func (h *Handler) GetAllSliderImages(c *gin.Context) {
	slides, err := h.Slider.ListAll(c.Request.Context())
	if err != nil {
		h.serverError(c, "Error fetching slider images", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", gin.H{"data": slides})
}

// CreateSliderImage adds a carousel entry.
func (h *Handler) CreateSliderImage(c *gin.Context) {
	var req CreateSliderImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validation.RespondViolations(c, err)
		return
	}

	slide := &models.SliderImage{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Link:        req.Link,
		ButtonText:  req.ButtonText,
		Order:       req.Order,
		IsActive:    true,
	}
	if slide.Order == 0 {
		slide.Order = 1
	}
	if req.IsActive != nil {
		slide.IsActive = *req.IsActive
	}

	if err := h.Slider.Create(c.Request.Context(), slide); err != nil {
		h.serverError(c, "Error creating slider image", err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, "Slider image created successfully", gin.H{"data": slide})
}

// UpdateSliderImage merges the provided fields into an existing slide.
func (h *Handler) UpdateSliderImage(c *gin.Context) {
	var req UpdateSliderImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validation.RespondViolations(c, err)
		return
	}

	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if req.Link != nil {
		fields["link"] = *req.Link
	}
	if req.ButtonText != nil {
		fields["buttonText"] = *req.ButtonText
	}
	if req.Order != nil {
		fields["order"] = *req.Order
	}
	if req.IsActive != nil {
		fields["isActive"] = *req.IsActive
	}

	if len(fields) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "No update fields provided")
		return
	}

	slide, err := h.Slider.Update(c.Request.Context(), c.Param("id"), fields)
	if errors.Is(err, repository.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Slider image not found")
		return
	}
	if err != nil {
		h.serverError(c, "Error updating slider image", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Slider image updated successfully", gin.H{"data": slide})
}

// DeleteSliderImage removes a slide; deleting a missing id is a 404.
func (h *Handler) DeleteSliderImage(c *gin.Context) {
	err := h.Slider.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Slider image not found")
		return
	}
	if err != nil {
		h.serverError(c, "Error deleting slider image", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Slider image deleted successfully", nil)
}

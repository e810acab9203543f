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

type CreateOfferRequest struct {
	Title         string   `json:"title" binding:"required,max=100"`
	Description   string   `json:"description" binding:"required,max=500"`
	Price         *float64 `json:"price" binding:"required,gte=0"`
	OriginalPrice *float64 `json:"originalPrice" binding:"omitempty,gte=0"`
	Image         string   `json:"image" binding:"required"`
	Category      string   `json:"category" binding:"required,oneof=consultation treatment package checkup other"`
	IsActive      *bool    `json:"isActive"`
	ValidUntil    string   `json:"validUntil" binding:"omitempty,isodate"`
	Features      []string `json:"features"`
	Terms         string   `json:"terms"`
}

type UpdateOfferRequest struct {
	Title         *string   `json:"title" binding:"omitempty,max=100"`
	Description   *string   `json:"description" binding:"omitempty,max=500"`
	Price         *float64  `json:"price" binding:"omitempty,gte=0"`
	OriginalPrice *float64  `json:"originalPrice" binding:"omitempty,gte=0"`
	Image         *string   `json:"image"`
	Category      *string   `json:"category" binding:"omitempty,oneof=consultation treatment package checkup other"`
	IsActive      *bool     `json:"isActive"`
	ValidUntil    *string   `json:"validUntil" binding:"omitempty,isodate"`
	Features      *[]string `json:"features"`
	Terms         *string   `json:"terms"`
}

// GetOffers returns active offers for the public site, newest first, capped
// at the public limit.
func (h *Handler) GetOffers(c *gin.Context) {
	offers, err := h.Offers.ListActive(c.Request.Context())
	if err != nil {
		h.serverError(c, "Error fetching offers", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", gin.H{"data": offers})
}

// GetAllOffers returns every offer for the admin dashboard.
func (h *Handler) GetAllOffers(c *gin.Context) {
	offers, err := h.Offers.ListAll(c.Request.Context())
	if err != nil {
		h.serverError(c, "Error fetching offers", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", gin.H{"data": offers})
}

// CreateOffer adds a promotional offer. Active unless stated otherwise.
func (h *Handler) CreateOffer(c *gin.Context) {
	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validation.RespondViolations(c, err)
		return
	}

	offer := &models.Offer{
		Title:         req.Title,
		Description:   req.Description,
		Price:         *req.Price,
		OriginalPrice: req.OriginalPrice,
		Image:         req.Image,
		Category:      req.Category,
		IsActive:      true,
		Features:      req.Features,
		Terms:         req.Terms,
	}
	if req.IsActive != nil {
		offer.IsActive = *req.IsActive
	}
	if req.ValidUntil != "" {
		t, err := validation.ParseISODate(req.ValidUntil)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Please enter a valid expiry date")
			return
		}
		offer.ValidUntil = &t
	}
	if offer.Features == nil {
		offer.Features = []string{}
	}

	if err := h.Offers.Create(c.Request.Context(), offer); err != nil {
		h.serverError(c, "Error creating offer", err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, "Offer created successfully", gin.H{"data": offer})
}

// UpdateOffer merges the provided fields into an existing offer.
func (h *Handler) UpdateOffer(c *gin.Context) {
	var req UpdateOfferRequest
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
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		fields["originalPrice"] = *req.OriginalPrice
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.IsActive != nil {
		fields["isActive"] = *req.IsActive
	}
	if req.ValidUntil != nil {
		t, err := validation.ParseISODate(*req.ValidUntil)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Please enter a valid expiry date")
			return
		}
		fields["validUntil"] = t
	}
	if req.Features != nil {
		fields["features"] = *req.Features
	}
	if req.Terms != nil {
		fields["terms"] = *req.Terms
	}

	if len(fields) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "No update fields provided")
		return
	}

	offer, err := h.Offers.Update(c.Request.Context(), c.Param("id"), fields)
	if errors.Is(err, repository.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Offer not found")
		return
	}
	if err != nil {
		h.serverError(c, "Error updating offer", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Offer updated successfully", gin.H{"data": offer})
}

// DeleteOffer removes an offer; deleting a missing id is a 404.
func (h *Handler) DeleteOffer(c *gin.Context) {
	err := h.Offers.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Offer not found")
		return
	}
	if err != nil {
		h.serverError(c, "Error deleting offer", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Offer deleted successfully", nil)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pmihealth/cardiology-api/internal/models"
	"github.com/pmihealth/cardiology-api/internal/repository"
	"github.com/pmihealth/cardiology-api/internal/utils"
)

// GetUsers returns the paginated user list together with the aggregate
// statistics, newest signups first.
func (h *Handler) GetUsers(c *gin.Context) {
	page, limit := pageParams(c, 50)
	ctx := c.Request.Context()

	users, total, err := h.Users.List(ctx, page, limit)
	if err != nil {
		h.serverError(c, "Server error while fetching users", err)
		return
	}

	stats, err := h.Users.Stats(ctx)
	if err != nil {
		h.serverError(c, "Server error while fetching users", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "", gin.H{
		"data": gin.H{
			"users":      users,
			"pagination": repository.NewPagination(page, limit, total),
			"statistics": stats,
		},
	})
}

// GetUserStats returns only the aggregate statistics.
func (h *Handler) GetUserStats(c *gin.Context) {
	stats, err := h.Users.Stats(c.Request.Context())
	if err != nil {
		h.serverError(c, "Server error while fetching statistics", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", gin.H{"data": stats})
}

// UpdateUserStatus sets a user's account status.
func (h *Handler) UpdateUserStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !models.IsValidUserStatus(req.Status) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid status value")
		return
	}

	user, err := h.Users.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if errors.Is(err, repository.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.serverError(c, "Server error while updating user status", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "User status updated successfully", gin.H{"user": user})
}

// DeleteUser removes a user record.
func (h *Handler) DeleteUser(c *gin.Context) {
	err := h.Users.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.serverError(c, "Server error while deleting user", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "User deleted successfully", nil)
}

// pageParams reads page/limit query values with sane fallbacks.
func pageParams(c *gin.Context, defaultLimit int) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

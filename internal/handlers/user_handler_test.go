package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pmihealth/cardiology-api/internal/models"
	"github.com/pmihealth/cardiology-api/internal/repository"
)

func userRouter(env *testEnv) *gin.Engine {
	r := gin.New()
	r.GET("/api/users", env.handler.GetUsers)
	r.GET("/api/users/stats", env.handler.GetUserStats)
	r.PATCH("/api/users/:id/status", env.handler.UpdateUserStatus)
	r.DELETE("/api/users/:id", env.handler.DeleteUser)
	return r
}

func TestGetUsersReturnsListWithStatistics(t *testing.T) {
	env := newTestEnv(t)
	users := []models.User{{ID: primitive.NewObjectID(), FirstName: "Amina", Role: models.RoleUser}}
	env.users.On("List", mock.Anything, 1, 50).Return(users, int64(1), nil)
	env.users.On("Stats", mock.Anything).Return(&repository.UserStats{TotalUsers: 1, FemaleUsers: 1}, nil)

	w := performJSON(userRouter(env), http.MethodGet, "/api/users", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Len(t, data["users"].([]any), 1)
	stats := data["statistics"].(map[string]any)
	assert.Equal(t, float64(1), stats["totalUsers"])
	pagination := data["pagination"].(map[string]any)
	assert.Equal(t, false, pagination["hasNextPage"])
}

func TestUpdateUserStatusValidatesEnum(t *testing.T) {
	env := newTestEnv(t)
	id := primitive.NewObjectID().Hex()

	w := performJSON(userRouter(env), http.MethodPatch, "/api/users/"+id+"/status",
		map[string]any{"status": "banned"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.users.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUserStatusNotFound(t *testing.T) {
	env := newTestEnv(t)
	id := primitive.NewObjectID().Hex()
	env.users.On("UpdateStatus", mock.Anything, id, "approved").Return(nil, repository.ErrNotFound)

	w := performJSON(userRouter(env), http.MethodPatch, "/api/users/"+id+"/status",
		map[string]any{"status": "approved"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteMissingUserIs404(t *testing.T) {
	env := newTestEnv(t)
	id := primitive.NewObjectID().Hex()
	env.users.On("Delete", mock.Anything, id).Return(repository.ErrNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/"+id, nil)
	w := httptest.NewRecorder()
	userRouter(env).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

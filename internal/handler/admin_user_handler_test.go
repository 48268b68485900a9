package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-atelier-erp/internal/model"
	"go-atelier-erp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubUserService struct {
	users     []model.AdminUserResponse
	created   *model.User
	createErr error
	deletedID uuid.UUID
	deleteErr error
}

func (s *stubUserService) CreateUser(req *service.CreateUserRequest, creatorID string) (*model.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.created, nil
}

func (s *stubUserService) UpdateUser(req *service.UpdateUserRequest, updaterID string) (*model.User, error) {
	return nil, service.ErrUserNotFound
}

func (s *stubUserService) DeleteUser(userID uuid.UUID) error {
	s.deletedID = userID
	return s.deleteErr
}

func (s *stubUserService) ListUsers() ([]model.AdminUserResponse, error) {
	return s.users, nil
}

func (s *stubUserService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	return nil, service.ErrUserNotFound
}

func newAdminApp(svc service.UserService) *fiber.App {
	h := NewAdminUserHandler(svc)
	app := fiber.New()
	admin := app.Group("/api/admin")
	admin.Get("/users", h.ListUsers)
	admin.Post("/users", h.CreateUser)
	admin.Put("/users", h.UpdateUser)
	admin.Delete("/users", h.DeleteUser)
	return app
}

func TestListUsers(t *testing.T) {
	lastSeen := time.Now()
	stub := &stubUserService{users: []model.AdminUserResponse{
		{
			ID:         uuid.New(),
			Email:      "admin@example.com",
			Name:       "Master Administrator",
			Role:       model.RoleMasterAdmin,
			CreatedAt:  time.Now(),
			LastSignIn: &lastSeen,
		},
	}}
	app := newAdminApp(stub)

	req := httptest.NewRequest("GET", "/api/admin/users", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var got []map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&got)
	assert.Len(t, got, 1)
	assert.Equal(t, "admin@example.com", got[0]["email"])
	assert.Equal(t, "MASTER_ADMIN", got[0]["role"])
	assert.Contains(t, got[0], "last_sign_in")
}

func TestDeleteUserByQueryParam(t *testing.T) {
	t.Run("deletes by id", func(t *testing.T) {
		stub := &stubUserService{}
		app := newAdminApp(stub)
		target := uuid.New()

		req := httptest.NewRequest("DELETE", "/api/admin/users?id="+target.String(), nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, target, stub.deletedID)
	})

	t.Run("missing id", func(t *testing.T) {
		stub := &stubUserService{}
		app := newAdminApp(stub)

		req := httptest.NewRequest("DELETE", "/api/admin/users", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("unknown user maps to 404", func(t *testing.T) {
		stub := &stubUserService{deleteErr: service.ErrUserNotFound}
		app := newAdminApp(stub)

		req := httptest.NewRequest("DELETE", "/api/admin/users?id="+uuid.NewString(), nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("wraps the created user with a message", func(t *testing.T) {
		user := &model.User{
			Email:    "ana@example.com",
			FullName: "Ana",
			Role:     &model.Role{Code: model.RoleAdmin},
		}
		user.ID = uuid.New()
		stub := &stubUserService{created: user}
		app := newAdminApp(stub)

		body := `{"email":"ana@example.com","password":"secret1","name":"Ana","role":"ADMIN"}`
		req := httptest.NewRequest("POST", "/api/admin/users", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)

		var got map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Contains(t, got, "message")
		assert.Contains(t, got, "user")
		created := got["user"].(map[string]interface{})
		assert.Equal(t, "ana@example.com", created["email"])
		assert.Equal(t, "ADMIN", created["role"])
	})

	t.Run("duplicate email maps to 409", func(t *testing.T) {
		stub := &stubUserService{createErr: service.ErrEmailExists}
		app := newAdminApp(stub)

		body := `{"email":"admin@example.com","password":"secret1","name":"Dup","role":"ADMIN"}`
		req := httptest.NewRequest("POST", "/api/admin/users", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.StatusCode)
	})
}

package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/linemark/linemark/internal/dto"
	"github.com/linemark/linemark/internal/models"
	"github.com/linemark/linemark/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(username, password string, email *string) (string, string, *models.User, error) {
	args := m.Called(username, password, email)
	if args.Get(2) == nil {
		return args.String(0), args.String(1), nil, args.Error(3)
	}
	return args.String(0), args.String(1), args.Get(2).(*models.User), args.Error(3)
}

func (m *MockAuthService) Login(username, password string) (string, string, *models.User, error) {
	args := m.Called(username, password)
	if args.Get(2) == nil {
		return args.String(0), args.String(1), nil, args.Error(3)
	}
	return args.String(0), args.String(1), args.Get(2).(*models.User), args.Error(3)
}

func (m *MockAuthService) RefreshAccessToken(refreshToken string) (string, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(refreshToken string) error {
	args := m.Called(refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) GetUser(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegister_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, 900)
	router := setupRouter()
	router.POST("/register", handler.Register)

	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
	}

	mockAuthService.On("Register", "testuser", "password123", (*string)(nil)).
		Return("access-token", "refresh-token", user, nil)

	w := postJSON(router, "/register", dto.RegisterRequest{
		Username: "testuser",
		Password: "password123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.AuthResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "access-token", response.AccessToken)
	assert.Equal(t, "refresh-token", response.RefreshToken)
	assert.Equal(t, "user-123", response.UserID)
	assert.Equal(t, "testuser", response.Username)
	assert.Equal(t, int64(900), response.ExpiresIn)

	mockAuthService.AssertExpectations(t)
}

func TestRegister_UsernameInUse(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, 900)
	router := setupRouter()
	router.POST("/register", handler.Register)

	mockAuthService.On("Register", "testuser", "password123", (*string)(nil)).
		Return("", "", nil, service.ErrNameInUse)

	w := postJSON(router, "/register", dto.RegisterRequest{
		Username: "testuser",
		Password: "password123",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestRegister_ShortPassword(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, 900)
	router := setupRouter()
	router.POST("/register", handler.Register)

	w := postJSON(router, "/register", dto.RegisterRequest{
		Username: "testuser",
		Password: "short",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuthService.AssertNotCalled(t, "Register")
}

func TestRegister_InvalidJSON(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, 900)
	router := setupRouter()
	router.POST("/register", handler.Register)

	req, _ := http.NewRequest("POST", "/register", bytes.NewBufferString("invalid json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, 900)
	router := setupRouter()
	router.POST("/login", handler.Login)

	user := &models.User{
		ID:       "68f3b8be-5bd8-4c6c-9919-a4614b2731b3",
		Username: "alice",
	}

	mockAuthService.On("Login", "alice", "password123").
		Return("access-token", "refresh-token", user, nil)

	w := postJSON(router, "/login", dto.LoginRequest{
		Username: "alice",
		Password: "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.AuthResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "access-token", response.AccessToken)
	assert.Equal(t, "refresh-token", response.RefreshToken)
	assert.Equal(t, user.ID, response.UserID)
	assert.Equal(t, "alice", response.Username)

	mockAuthService.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, 900)
	router := setupRouter()
	router.POST("/login", handler.Login)

	mockAuthService.On("Login", "alice", "wrongpassword").
		Return("", "", nil, service.ErrInvalidCredentials)

	w := postJSON(router, "/login", dto.LoginRequest{
		Username: "alice",
		Password: "wrongpassword",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestRefresh_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, 900)
	router := setupRouter()
	router.POST("/refresh", handler.Refresh)

	mockAuthService.On("RefreshAccessToken", "old-refresh-token").
		Return("new-access-token", nil)

	w := postJSON(router, "/refresh", dto.RefreshTokenRequest{
		RefreshToken: "old-refresh-token",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.RefreshResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "new-access-token", response.AccessToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.EqualValues(t, 900, response.ExpiresIn)

	mockAuthService.AssertExpectations(t)
}

func TestRefresh_InvalidToken(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, 900)
	router := setupRouter()
	router.POST("/refresh", handler.Refresh)

	mockAuthService.On("RefreshAccessToken", "bad-token").
		Return("", service.ErrInvalidToken)

	w := postJSON(router, "/refresh", dto.RefreshTokenRequest{
		RefreshToken: "bad-token",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestLogout_AlwaysNoContent(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, 900)
	router := setupRouter()
	router.POST("/logout", handler.Logout)

	mockAuthService.On("Logout", "refresh-token").Return(nil)

	w := postJSON(router, "/logout", dto.LogoutRequest{
		RefreshToken: "refresh-token",
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockAuthService.AssertExpectations(t)
}

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	authservice "com.martdev.kitchenrack/internal/service/auth"
	"com.martdev.kitchenrack/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, req authservice.RegisterRequest) (*authservice.UserResponse, error) {
	arg := m.Called(ctx, req)
	if arg.Get(0) == nil {
		return nil, arg.Error(1)
	}
	return arg.Get(0).(*authservice.UserResponse), arg.Error(1)
}

func (m *MockService) Login(ctx context.Context, req authservice.LoginRequest) (*authservice.UserResponse, error) {
	arg := m.Called(ctx, req)
	if arg.Get(0) == nil {
		return nil, arg.Error(1)
	}
	return arg.Get(0).(*authservice.UserResponse), arg.Error(1)
}

func (m *MockService) VerifyOtp(ctx context.Context, req authservice.VerifyOtpRequest) (*authservice.TokenPairResponse, error) {
	arg := m.Called(ctx, req)
	if arg.Get(0) == nil {
		return nil, arg.Error(1)
	}
	return arg.Get(0).(*authservice.TokenPairResponse), arg.Error(1)
}

func (m *MockService) RefreshToken(ctx context.Context, refreshToken string) (*authservice.AccessTokenResponse, error) {
	arg := m.Called(ctx, refreshToken)
	if arg.Get(0) == nil {
		return nil, arg.Error(1)
	}
	return arg.Get(0).(*authservice.AccessTokenResponse), arg.Error(1)
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegistrationHandler(t *testing.T) {
	Register := "Register"

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockService)
		logger := zaptest.NewLogger(t).Sugar()
		handler := NewHandler(mockService, logger)

		reqBody := authservice.RegisterRequest{
			FullName: "Amina Rahman",
			Phone:    "+8801712345678",
		}

		expectResp := &authservice.UserResponse{ID: 7, FullName: reqBody.FullName, Phone: reqBody.Phone}

		mockService.On(Register, mock.Anything, reqBody).Return(expectResp, nil)

		body, err := json.Marshal(reqBody)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/auth/registration", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.registrationHandler(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Duplicate phone", func(t *testing.T) {
		mockService := new(MockService)
		logger := zaptest.NewLogger(t).Sugar()
		handler := NewHandler(mockService, logger)

		reqBody := authservice.RegisterRequest{
			FullName: "Amina Rahman",
			Phone:    "+8801712345678",
		}

		mockService.On(Register, mock.Anything, reqBody).Return(nil, util.ErrorDuplicatePhone)

		body, err := json.Marshal(reqBody)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/auth/registration", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.registrationHandler(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Invalid phone format", func(t *testing.T) {
		mockService := new(MockService)
		logger := zaptest.NewLogger(t).Sugar()
		handler := NewHandler(mockService, logger)

		body := []byte(`{"full_name": "Amina Rahman", "phone": "01712345678"}`)

		req := httptest.NewRequest(http.MethodPost, "/auth/registration", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.registrationHandler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, Register, mock.Anything, mock.Anything)
	})
}

func TestLoginHandler(t *testing.T) {
	Login := "Login"

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockService)
		logger := zaptest.NewLogger(t).Sugar()
		handler := NewHandler(mockService, logger)

		reqBody := authservice.LoginRequest{Phone: "+8801712345678"}
		expectResp := &authservice.UserResponse{ID: 7, Phone: reqBody.Phone}

		mockService.On(Login, mock.Anything, reqBody).Return(expectResp, nil)

		body, err := json.Marshal(reqBody)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.loginHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Unknown phone", func(t *testing.T) {
		mockService := new(MockService)
		logger := zaptest.NewLogger(t).Sugar()
		handler := NewHandler(mockService, logger)

		reqBody := authservice.LoginRequest{Phone: "+8801700000000"}

		mockService.On(Login, mock.Anything, reqBody).Return(nil, util.ErrorNotFound)

		body, err := json.Marshal(reqBody)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.loginHandler(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestVerifyOtpHandler(t *testing.T) {
	VerifyOtp := "VerifyOtp"

	t.Run("Success sets token cookies", func(t *testing.T) {
		mockService := new(MockService)
		logger := zaptest.NewLogger(t).Sugar()
		handler := NewHandler(mockService, logger)

		reqBody := authservice.VerifyOtpRequest{UserID: 7, Type: "LOGIN", Code: "123456"}
		pair := &authservice.TokenPairResponse{AccessToken: "access-token", RefreshToken: "refresh-token"}

		mockService.On(VerifyOtp, mock.Anything, reqBody).Return(pair, nil)

		body, err := json.Marshal(reqBody)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/auth/verify-otp", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.verifyOtpHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		cookies := w.Result().Cookies()
		access := cookieByName(cookies, accessTokenCookie)
		require.NotNil(t, access)
		assert.Equal(t, "access-token", access.Value)
		assert.True(t, access.HttpOnly)

		refresh := cookieByName(cookies, refreshTokenCookie)
		require.NotNil(t, refresh)
		assert.Equal(t, "refresh-token", refresh.Value)
		assert.True(t, refresh.HttpOnly)
	})

	t.Run("Verification failure", func(t *testing.T) {
		mockService := new(MockService)
		logger := zaptest.NewLogger(t).Sugar()
		handler := NewHandler(mockService, logger)

		reqBody := authservice.VerifyOtpRequest{UserID: 7, Type: "LOGIN", Code: "654321"}

		mockService.On(VerifyOtp, mock.Anything, reqBody).
			Return(nil, authservice.ErrOtpVerificationFailed)

		body, err := json.Marshal(reqBody)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/auth/verify-otp", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.verifyOtpHandler(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("Malformed code rejected before the service", func(t *testing.T) {
		mockService := new(MockService)
		logger := zaptest.NewLogger(t).Sugar()
		handler := NewHandler(mockService, logger)

		body := []byte(`{"user_id": 7, "type": "LOGIN", "code": "12ab56"}`)

		req := httptest.NewRequest(http.MethodPost, "/auth/verify-otp", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.verifyOtpHandler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, VerifyOtp, mock.Anything, mock.Anything)
	})
}

func TestRefreshTokenHandler(t *testing.T) {
	RefreshToken := "RefreshToken"

	t.Run("Success sets a fresh access cookie", func(t *testing.T) {
		mockService := new(MockService)
		logger := zaptest.NewLogger(t).Sugar()
		handler := NewHandler(mockService, logger)

		mockService.On(RefreshToken, mock.Anything, "refresh-token").
			Return(&authservice.AccessTokenResponse{AccessToken: "new-access-token"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/auth/refresh-token", nil)
		req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "refresh-token"})
		w := httptest.NewRecorder()

		handler.refreshTokenHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		access := cookieByName(w.Result().Cookies(), accessTokenCookie)
		require.NotNil(t, access)
		assert.Equal(t, "new-access-token", access.Value)
	})

	t.Run("Missing cookie", func(t *testing.T) {
		mockService := new(MockService)
		logger := zaptest.NewLogger(t).Sugar()
		handler := NewHandler(mockService, logger)

		mockService.On(RefreshToken, mock.Anything, "").
			Return(nil, authservice.ErrMissingRefreshToken)

		req := httptest.NewRequest(http.MethodGet, "/auth/refresh-token", nil)
		w := httptest.NewRecorder()

		handler.refreshTokenHandler(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Invalid token", func(t *testing.T) {
		mockService := new(MockService)
		logger := zaptest.NewLogger(t).Sugar()
		handler := NewHandler(mockService, logger)

		mockService.On(RefreshToken, mock.Anything, "bad-token").
			Return(nil, authservice.ErrInvalidRefreshToken)

		req := httptest.NewRequest(http.MethodGet, "/auth/refresh-token", nil)
		req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "bad-token"})
		w := httptest.NewRecorder()

		handler.refreshTokenHandler(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

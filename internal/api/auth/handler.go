package auth

import (
	"errors"
	"net/http"
	"time"

	authotp "com.martdev.kitchenrack/internal/auth/otp"
	authservice "com.martdev.kitchenrack/internal/service/auth"
	"com.martdev.kitchenrack/internal/util"
	"go.uber.org/zap"
)

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"

	accessCookieMaxAge  = 24 * time.Hour
	refreshCookieMaxAge = 7 * 24 * time.Hour
)

type Handler struct {
	service authservice.AuthService
	logger  *zap.SugaredLogger
}

func NewHandler(service authservice.AuthService, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) registrationHandler(w http.ResponseWriter, r *http.Request) {
	var req authservice.RegisterRequest

	if err := util.ReadJSON(w, r, &req); err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	if err := util.Validate.Struct(req); err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrorDuplicatePhone), errors.Is(err, util.ErrorDuplicateEmail):
			util.ConflictErrorResponse(w, r, err, h.logger)
		default:
			util.InternalServerErrorResponse(w, r, err, h.logger)
		}
		return
	}

	if err := util.SendResponse(w, http.StatusCreated, "OTP sent", user); err != nil {
		util.InternalServerErrorResponse(w, r, err, h.logger)
	}
}

func (h *Handler) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req authservice.LoginRequest

	if err := util.ReadJSON(w, r, &req); err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	if err := util.Validate.Struct(req); err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	user, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrorNotFound):
			util.UnauthorizedErrorResponse(w, r, err, h.logger)
		default:
			util.InternalServerErrorResponse(w, r, err, h.logger)
		}
		return
	}

	if err := util.SendResponse(w, http.StatusOK, "OTP sent", user); err != nil {
		util.InternalServerErrorResponse(w, r, err, h.logger)
	}
}

func (h *Handler) verifyOtpHandler(w http.ResponseWriter, r *http.Request) {
	var req authservice.VerifyOtpRequest

	if err := util.ReadJSON(w, r, &req); err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	if err := util.Validate.Struct(req); err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	pair, err := h.service.VerifyOtp(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrOtpVerificationFailed):
			util.ForbiddenErrorResponse(w, r, err, h.logger)
		case errors.Is(err, authotp.ErrUnsupportedPurpose):
			util.BadRequestErrorResponse(w, r, err, h.logger)
		case errors.Is(err, util.ErrorNotFound):
			util.NotFoundErrorResponse(w, r, err, h.logger)
		default:
			util.InternalServerErrorResponse(w, r, err, h.logger)
		}
		return
	}

	setTokenCookie(w, accessTokenCookie, pair.AccessToken, accessCookieMaxAge)
	setTokenCookie(w, refreshTokenCookie, pair.RefreshToken, refreshCookieMaxAge)

	if err := util.SendResponse(w, http.StatusOK, "OTP verified", pair); err != nil {
		util.InternalServerErrorResponse(w, r, err, h.logger)
	}
}

func (h *Handler) refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var refreshToken string
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	}

	resp, err := h.service.RefreshToken(r.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrMissingRefreshToken),
			errors.Is(err, authservice.ErrInvalidRefreshToken),
			errors.Is(err, util.ErrorNotFound):
			util.UnauthorizedErrorResponse(w, r, err, h.logger)
		default:
			util.InternalServerErrorResponse(w, r, err, h.logger)
		}
		return
	}

	setTokenCookie(w, accessTokenCookie, resp.AccessToken, accessCookieMaxAge)

	if err := util.SendResponse(w, http.StatusOK, "refreshed", resp); err != nil {
		util.InternalServerErrorResponse(w, r, err, h.logger)
	}
}

func setTokenCookie(w http.ResponseWriter, name, value string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

package auth

import (
	"context"
	"errors"
	"fmt"

	"com.martdev.kitchenrack/config"
	"com.martdev.kitchenrack/internal/auth"
	"com.martdev.kitchenrack/internal/auth/jwt"
	authotp "com.martdev.kitchenrack/internal/auth/otp"
	dbotp "com.martdev.kitchenrack/internal/database/otp"
	dbuser "com.martdev.kitchenrack/internal/database/user"
	"com.martdev.kitchenrack/internal/sms"
	"go.uber.org/zap"
)

var (
	ErrOtpVerificationFailed = errors.New("OTP verification failed. Try again")
	ErrMissingRefreshToken   = errors.New("missing refresh token")
	ErrInvalidRefreshToken   = errors.New("invalid refresh token")
)

type UserStorer interface {
	CreateUser(ctx context.Context, user *dbuser.User) error
	GetUserByPhone(ctx context.Context, phone string) (*dbuser.User, error)
	GetUserByEmail(ctx context.Context, email string) (*dbuser.User, error)
	GetUserByID(ctx context.Context, userID int64) (*dbuser.User, error)
}

type OtpStorer interface {
	Put(ctx context.Context, otp *dbotp.Otp) error
}

type OtpIssuer interface {
	Issue(purpose authotp.Purpose) (*authotp.Issued, error)
}

type OtpVerifier interface {
	Verify(ctx context.Context, userID int64, purpose authotp.Purpose, code string) (bool, error)
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (*UserResponse, error)
	VerifyOtp(ctx context.Context, req VerifyOtpRequest) (*TokenPairResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AccessTokenResponse, error)
}

// Service orchestrates the OTP-based auth flows: user lookup or creation,
// code issuance and storage, SMS dispatch, verification and token issuance.
type Service struct {
	users         UserStorer
	otps          OtpStorer
	issuer        OtpIssuer
	verifier      OtpVerifier
	authenticator auth.Authenticator
	sender        sms.Sender
	logger        *zap.SugaredLogger
	cfg           config.Configuration
}

func NewService(
	users UserStorer,
	otps OtpStorer,
	issuer OtpIssuer,
	verifier OtpVerifier,
	authenticator auth.Authenticator,
	sender sms.Sender,
	logger *zap.SugaredLogger,
	cfg config.Configuration,
) *Service {
	return &Service{
		users:         users,
		otps:          otps,
		issuer:        issuer,
		verifier:      verifier,
		authenticator: authenticator,
		sender:        sender,
		logger:        logger,
		cfg:           cfg,
	}
}

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,max=255"`
	Phone    string `json:"phone" validate:"required,e164"`
	Email    string `json:"email" validate:"omitempty,email,max=255"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN CUSTOMER"`
}

type LoginRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
}

type VerifyOtpRequest struct {
	UserID int64  `json:"user_id" validate:"required"`
	Type   string `json:"type" validate:"required,oneof=REGISTRATION LOGIN ORDER_PLACEMENT"`
	Code   string `json:"code" validate:"required,len=6,numeric"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	user := &dbuser.User{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Role:     req.Role,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.dispatchOtp(ctx, user, authotp.PurposeRegistration); err != nil {
		return nil, err
	}

	return userResponse(user), nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*UserResponse, error) {
	user, err := s.users.GetUserByPhone(ctx, req.Phone)
	if err != nil {
		return nil, err
	}

	if err := s.dispatchOtp(ctx, user, authotp.PurposeLogin); err != nil {
		return nil, err
	}

	return userResponse(user), nil
}

// dispatchOtp issues a fresh code, stores it (superseding any live code for
// the same purpose) and hands the message to the SMS provider. Delivery
// failure is logged, not returned: the user can re-trigger a send via login,
// while a failed store aborts the flow.
func (s *Service) dispatchOtp(ctx context.Context, user *dbuser.User, purpose authotp.Purpose) error {
	issued, err := s.issuer.Issue(purpose)
	if err != nil {
		return err
	}

	if err := s.otps.Put(ctx, &dbotp.Otp{
		UserID:    user.ID,
		Code:      issued.Code,
		Purpose:   string(purpose),
		ExpiresAt: issued.ExpiresAt,
	}); err != nil {
		return err
	}

	if err := s.sender.Send(ctx, issued.Message, user.Phone); err != nil {
		s.logger.Errorw("OTP SMS delivery failed",
			"user_id", user.ID,
			"purpose", purpose,
			"error", err)
	}

	return nil
}

func (s *Service) VerifyOtp(ctx context.Context, req VerifyOtpRequest) (*TokenPairResponse, error) {
	purpose, err := authotp.ParsePurpose(req.Type)
	if err != nil {
		return nil, err
	}

	verified, err := s.verifier.Verify(ctx, req.UserID, purpose, req.Code)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, ErrOtpVerificationFailed
	}

	user, err := s.users.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	claims := claimsFor(user)

	accessToken, err := s.authenticator.GenerateToken(claims, s.cfg.AuthConfig.AccessExp)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.authenticator.GenerateToken(claims, s.cfg.AuthConfig.RefreshExp)
	if err != nil {
		return nil, err
	}

	return &TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*AccessTokenResponse, error) {
	if refreshToken == "" {
		return nil, ErrMissingRefreshToken
	}

	if _, err := s.authenticator.ValidateToken(refreshToken); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRefreshToken, err)
	}

	// The signature was just verified above, decoding without a second
	// signature check is safe only inside this operation.
	claims, err := s.authenticator.DecodeToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRefreshToken, err)
	}

	// Rebuild claims from the user's current attributes rather than the
	// possibly stale ones embedded in the refresh token.
	user, err := s.users.GetUserByPhone(ctx, claims.Phone)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.authenticator.GenerateToken(claimsFor(user), s.cfg.AuthConfig.AccessExp)
	if err != nil {
		return nil, err
	}

	return &AccessTokenResponse{AccessToken: accessToken}, nil
}

func claimsFor(user *dbuser.User) jwt.UserClaims {
	return jwt.UserClaims{
		UserID:   user.ID,
		Phone:    user.Phone,
		FullName: user.FullName,
		Role:     user.Role,
	}
}

func userResponse(user *dbuser.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Phone:     user.Phone,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/upm-platform/complaint-service/internal/auth"
	"github.com/upm-platform/complaint-service/internal/config"
	"github.com/upm-platform/complaint-service/internal/domain"
	"github.com/upm-platform/complaint-service/internal/repository"
	apperrors "github.com/upm-platform/complaint-service/pkg/util"
)

// Route targets callers are sent to after authentication, by account class.
const (
	RedirectAdminDashboard = "/admin/dashboard"
	RedirectStudentHome    = "/"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users          repository.UserRepository
	sessions       auth.SessionStore
	emailDomain    string
	minPasswordLen int
	bcryptCost     int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Sessions auth.SessionStore
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:          deps.UserRepo,
		sessions:       deps.Sessions,
		emailDomain:    cfg.Auth.EmailDomain,
		minPasswordLen: cfg.Auth.MinPasswordLen,
		bcryptCost:     cfg.Auth.BcryptCost,
	}
}

// RegisterInput is the sign-up payload.
type RegisterInput struct {
	Email           string
	FirstName       string
	Password        string
	PasswordConfirm string
	Lang            string
}

// AuthResult reports a successful registration or login.
type AuthResult struct {
	User       *domain.User
	Session    *auth.Session
	MessageKey string
	RedirectTo string
}

// Register validates the sign-up form, classifies the account from the email
// local part, persists it and authenticates the caller immediately.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)

	if !strings.HasSuffix(email, "@"+s.emailDomain) {
		return nil, apperrors.NewValidation("signup.domain_only", "email domain not allowed")
	}
	if input.Password != input.PasswordConfirm {
		return nil, apperrors.NewValidation("signup.password_mismatch", "passwords do not match")
	}
	if len(input.Password) < s.minPasswordLen {
		return nil, apperrors.NewValidation("signup.password_short", "password too short")
	}

	class := domain.ClassifyEmail(email)
	userType, ok := class.UserType()
	if !ok {
		return nil, apperrors.NewValidation("signup.invalid_email", "invalid email format")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		if class == domain.AccountAdmin {
			return nil, apperrors.NewConflict("signup.admin_exists", "admin account already exists")
		}
		return nil, apperrors.NewConflict("signup.student_exists", "student already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		PasswordHash: hash,
		UserType:     userType,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	session, err := s.sessions.Create(ctx, user.ID, input.Lang)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	result := &AuthResult{User: user, Session: session}
	if user.IsAdmin() {
		result.MessageKey = "signup.admin_created"
		result.RedirectTo = RedirectAdminDashboard
	} else {
		result.MessageKey = "signup.student_created"
		result.RedirectTo = RedirectStudentHome
	}
	return result, nil
}

// Login verifies credentials and establishes a session. Unknown email and
// wrong password yield the same generic failure.
func (s *AuthService) Login(ctx context.Context, email, password, lang string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInvalidCredentials("login.invalid", "invalid email or password")
		}
		return nil, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewInvalidCredentials("login.invalid", "invalid email or password")
	}

	session, err := s.sessions.Create(ctx, user.ID, lang)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	result := &AuthResult{User: user, Session: session, MessageKey: "login.success"}
	if user.IsAdmin() {
		result.RedirectTo = RedirectAdminDashboard
	} else {
		result.RedirectTo = RedirectStudentHome
	}
	return result, nil
}

// Logout clears the session identity.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

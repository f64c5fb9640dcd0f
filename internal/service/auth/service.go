package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/opshq/office-backend-go/internal/domain/auth"
	"github.com/opshq/office-backend-go/internal/domain/employee"
	"github.com/opshq/office-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Signup(ctx context.Context, req auth.SignupRequest) (auth.TokenResponse, error)
	Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error)
	Refresh(ctx context.Context, req auth.RefreshRequest) (auth.TokenResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context) (auth.MeResponse, error)
}

type AuthServiceImpl struct {
	employees employee.EmployeeRepository
	tokens    jwt.Service
}

func NewAuthService(employees employee.EmployeeRepository, tokens jwt.Service) AuthService {
	return &AuthServiceImpl{
		employees: employees,
		tokens:    tokens,
	}
}

// Signup implements AuthService. Self-registered accounts always get the
// employee role; admins are promoted through the employee update endpoint.
func (s *AuthServiceImpl) Signup(ctx context.Context, req auth.SignupRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	emp, err := s.employees.Create(ctx, employee.Employee{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         employee.RoleEmployee,
		Status:       employee.StatusActive,
		PasswordHash: &hashStr,
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return s.issueTokens(emp)
}

// Login implements AuthService. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := s.employees.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if emp.Status != employee.StatusActive {
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	if emp.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(emp)
}

// Refresh implements AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, req auth.RefreshRequest) (auth.TokenResponse, error) {
	if req.RefreshToken == "" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	if s.tokens.IsTokenRevoked(req.RefreshToken) {
		return auth.TokenResponse{}, auth.ErrTokenRevoked
	}

	tok, err := jwtauth.VerifyToken(s.tokens.JWTAuth(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) {
			return auth.TokenResponse{}, auth.ErrTokenExpired
		}
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	claims, err := tok.AsMap(ctx)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	if typ, _ := claims["type"].(string); typ != "refresh" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, err
	}
	if emp.Status != employee.StatusActive {
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	// Rotate: the used refresh token is dead from here on.
	s.tokens.RevokeToken(req.RefreshToken)

	return s.issueTokens(emp)
}

// Logout implements AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	s.tokens.RevokeToken(token)
	return nil
}

// Me implements AuthService.
func (s *AuthServiceImpl) Me(ctx context.Context) (auth.MeResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return auth.MeResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return auth.MeResponse{}, auth.ErrInvalidToken
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return auth.MeResponse{}, err
	}

	return auth.MeResponse{
		ID:         emp.ID,
		Name:       emp.Name,
		Email:      emp.Email,
		Role:       string(emp.Role),
		Department: emp.Department,
	}, nil
}

func (s *AuthServiceImpl) issueTokens(emp employee.Employee) (auth.TokenResponse, error) {
	accessToken, expiresAt, err := s.tokens.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, _, err := s.tokens.GenerateRefreshToken(emp.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		TokenType:    "Bearer",
	}, nil
}

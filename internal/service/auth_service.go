package service

import (
	"context"
	"errors"
	"strings"

	"hrcentral/internal/dto"
	"hrcentral/internal/models"
	"hrcentral/internal/repository"
	"hrcentral/pkg/auth"

	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// guestUserID identifies the auto-provisioned demo account for unseeded
// company emails.
const guestUserID = 999

const companyDomain = "@acme.com"

type AuthService struct {
	employeeRepo *repository.EmployeeRepository
	jwtManager   *auth.JWTManager
	logger       *zap.Logger
}

func NewAuthService(employeeRepo *repository.EmployeeRepository, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		employeeRepo: employeeRepo,
		jwtManager:   jwtManager,
		logger:       logger,
	}
}

// Login authenticates a seeded employee, or provisions an ephemeral guest
// session for any other company-domain address.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	emp, err := s.employeeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if strings.HasSuffix(req.Email, companyDomain) {
			return s.guestSession(req.Email)
		}
		return nil, ErrInvalidCredentials
	}

	// Seeded demo accounts may have an empty hash; those accept any password.
	if emp.PasswordHash != "" && !auth.CheckPasswordHash(req.Password, emp.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.session(emp.ID, emp.Name, emp.Email, emp.Role)
}

func (s *AuthService) guestSession(email string) (*dto.LoginResponse, error) {
	s.logger.Info("issuing guest session", zap.String("email", email))
	return s.session(guestUserID, "Guest User", email, string(models.RoleCEO))
}

func (s *AuthService) session(userID int, name, email, role string) (*dto.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(userID, name, email, role)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtManager.GetTokenDuration().Seconds()),
		User: dto.UserResponse{
			UserID: userID,
			Name:   name,
			Email:  email,
			Role:   role,
		},
	}, nil
}

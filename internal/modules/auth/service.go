package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"psycenter/internal/domain"
	"psycenter/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type jwtService interface {
	GenerateToken(adminID int64, username string) (string, error)
}

type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	GetByID(ctx context.Context, id int64) (*domain.Admin, error)
}

type Service struct {
	admins AdminRepository
	jwt    jwtService
}

func NewService(admins AdminRepository, jwt jwtService) *Service {
	return &Service{admins: admins, jwt: jwt}
}

type LoginResult struct {
	Admin *domain.Admin
	Token string
}

// Login checks the password against the stored bcrypt hash. Rows migrated
// from the old admin table may still hold plaintext; those are compared
// directly until re-hashed.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	admin, err := s.admins.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !passwordMatches(admin.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(admin.ID, admin.Username)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Admin: admin, Token: token}, nil
}

func (s *Service) GetAdmin(ctx context.Context, id int64) (*domain.Admin, error) {
	return s.admins.GetByID(ctx, id)
}

func passwordMatches(stored, password string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	// legacy plaintext row
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

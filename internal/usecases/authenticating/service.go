package authenticating

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/repository"
	"github.com/vfg2006/traffic-manager-kpi/internal/config"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
	"github.com/vfg2006/traffic-manager-kpi/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 24 * time.Hour

type Authenticator interface {
	LoginUser(ctx context.Context, email, password string) (string, error)
	GetUserProfile(ctx context.Context, userID int) (*domain.User, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	CanAccessWorkspace(claims *domain.Claims, workspaceID string) bool
}

type Service struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	now      func() time.Time
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) *Service {
	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func (s *Service) LoginUser(ctx context.Context, email, password string) (string, error) {
	// Validação de entrada
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	email = handleEmail(email)

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}

	if user == nil {
		return "", NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "Usuário não encontrado")
	}

	if !user.Active {
		return "", NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "Conta desativada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "Senha incorreta")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    user.ID,
		"workspaces": len(user.Workspaces),
	}).Info("Login realizado com sucesso")

	return token, nil
}

func (s *Service) GetUserProfile(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logrus.Error(err)
		return nil, NewUserAuthError(err, apiErrors.ErrDatabaseOperation, userID, "Erro ao consultar usuário")
	}

	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "Usuário não encontrado")
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) generateJWT(user *domain.User) (string, error) {
	if s.cfg.SecretKey == "" {
		return "", errors.New("SECRET_KEY não configurada")
	}

	ttl := s.cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	claims := domain.Claims{
		UserID:         user.ID,
		UserName:       user.Name,
		UserEmail:      user.Email,
		UserRoleID:     user.RoleID,
		UserWorkspaces: user.Workspaces,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(s.now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, err.Error())
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
}

// CanAccessWorkspace libera administradores para qualquer workspace; os demais perfis
// precisam do workspace nas claims do token
func (s *Service) CanAccessWorkspace(claims *domain.Claims, workspaceID string) bool {
	if claims == nil || workspaceID == "" {
		return false
	}

	if claims.IsAdmin() {
		return true
	}

	return slices.Contains(claims.UserWorkspaces, workspaceID)
}

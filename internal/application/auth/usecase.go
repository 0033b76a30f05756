package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/SecureVault-api/internal/application/authz"
	"github.com/jhoicas/SecureVault-api/internal/application/dto"
	"github.com/jhoicas/SecureVault-api/internal/domain"
	"github.com/jhoicas/SecureVault-api/internal/domain/entity"
	"github.com/jhoicas/SecureVault-api/internal/domain/repository"
	"github.com/jhoicas/SecureVault-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y resolución
// de identidad para el middleware.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	bannedRepo repository.BannedEmailRepository
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, bannedRepo repository.BannedEmailRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, bannedRepo: bannedRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario: rechaza el alta pública de ADMIN y los emails
// bloqueados, hashea el password con bcrypt y persiste.
// Devuelve ErrForbidden (admin o ban) o ErrEmailAlreadyExists según el caso.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)

	role := in.Role
	if role == "" {
		role = entity.RoleClient
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	// Las cuentas de administrador solo se crean por vía interna.
	if role == entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	banned, err := uc.bannedRepo.Exists(email)
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, domain.ErrEmailBanned
	}

	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica el ban, compara el password con bcrypt y genera el JWT.
// Credenciales inválidas devuelven siempre ErrUnauthorized sin distinguir
// entre email inexistente y password incorrecto.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)

	banned, err := uc.bannedRepo.Exists(email)
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, domain.ErrEmailBanned
	}

	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Identity resuelve la identidad actual por id de usuario. El middleware la
// usa para confirmar que el usuario del token sigue existiendo (un ban o un
// borrado invalidan tokens vivos).
func (uc *AuthUseCase) Identity(id string) (*authz.Identity, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return &authz.Identity{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

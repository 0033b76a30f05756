package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/SecureVault-api/internal/application/auth"
	"github.com/jhoicas/SecureVault-api/internal/application/dto"
	"github.com/jhoicas/SecureVault-api/internal/domain"
	"github.com/jhoicas/SecureVault-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: map[string]*entity.User{}} }

func (m *memUserRepo) Create(u *entity.User) error {
	cp := *u
	m.users[u.ID] = &cp
	return nil
}
func (m *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
func (m *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
func (m *memUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }
func (m *memUserRepo) Delete(id string) error {
	delete(m.users, id)
	return nil
}
func (m *memUserRepo) DeleteByEmail(email string) error {
	for id, u := range m.users {
		if u.Email == email {
			delete(m.users, id)
		}
	}
	return nil
}
func (m *memUserRepo) Count() (int, error) { return len(m.users), nil }

type memBannedRepo struct {
	banned map[string]bool
}

func newMemBannedRepo() *memBannedRepo { return &memBannedRepo{banned: map[string]bool{}} }

func (m *memBannedRepo) Add(email string) error {
	m.banned[email] = true
	return nil
}
func (m *memBannedRepo) Exists(email string) (bool, error) { return m.banned[email], nil }

func newUC(users *memUserRepo, banned *memBannedRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(users, banned, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "secure-vault-test",
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_DefaultRolClientYEmailNormalizado(t *testing.T) {
	users := newMemUserRepo()
	uc := newUC(users, newMemBannedRepo())

	out, err := uc.Register(dto.RegisterRequest{
		Email:    "  Ana@Test.IO ",
		Password: "supersecreto",
		Name:     "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleClient, out.Role, "rol ausente debe defaultear a CLIENT")
	assert.Equal(t, "ana@test.io", out.Email, "el email se normaliza a minúsculas sin espacios")

	stored, _ := users.GetByEmail("ana@test.io")
	require.NotNil(t, stored)
	assert.NotEqual(t, "supersecreto", stored.PasswordHash, "el password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecreto")))
}

func TestRegister_AdminRechazado(t *testing.T) {
	uc := newUC(newMemUserRepo(), newMemBannedRepo())
	_, err := uc.Register(dto.RegisterRequest{Email: "a@test.io", Password: "12345678x", Name: "A", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrForbidden, "el registro público de ADMIN debe rechazarse")
}

func TestRegister_RolDesconocidoRechazado(t *testing.T) {
	uc := newUC(newMemUserRepo(), newMemBannedRepo())
	_, err := uc.Register(dto.RegisterRequest{Email: "a@test.io", Password: "12345678x", Name: "A", Role: "SUPERUSER"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_EmailBaneadoRechazado(t *testing.T) {
	banned := newMemBannedRepo()
	require.NoError(t, banned.Add("malo@test.io"))
	uc := newUC(newMemUserRepo(), banned)

	_, err := uc.Register(dto.RegisterRequest{Email: "Malo@test.io", Password: "12345678x", Name: "M"})
	assert.ErrorIs(t, err, domain.ErrEmailBanned, "el ban se evalúa sobre el email normalizado")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	users := newMemUserRepo()
	uc := newUC(users, newMemBannedRepo())

	_, err := uc.Register(dto.RegisterRequest{Email: "a@test.io", Password: "12345678x", Name: "A"})
	require.NoError(t, err)
	_, err = uc.Register(dto.RegisterRequest{Email: "a@test.io", Password: "otropass123", Name: "A2"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso(t *testing.T) {
	users := newMemUserRepo()
	uc := newUC(users, newMemBannedRepo())
	_, err := uc.Register(dto.RegisterRequest{Email: "ana@test.io", Password: "supersecreto", Name: "Ana", Role: entity.RoleApprover})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ANA@test.io", Password: "supersecreto"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleApprover, out.User.Role)
}

// Email inexistente y password incorrecto devuelven el mismo error: no se
// filtra cuál de los dos falló.
func TestLogin_CredencialesInvalidasIndistinguibles(t *testing.T) {
	users := newMemUserRepo()
	uc := newUC(users, newMemBannedRepo())
	_, err := uc.Register(dto.RegisterRequest{Email: "ana@test.io", Password: "supersecreto", Name: "Ana"})
	require.NoError(t, err)

	_, errNoUser := uc.Login(dto.LoginRequest{Email: "nadie@test.io", Password: "supersecreto"})
	_, errBadPass := uc.Login(dto.LoginRequest{Email: "ana@test.io", Password: "incorrecto"})

	assert.ErrorIs(t, errNoUser, domain.ErrUnauthorized)
	assert.ErrorIs(t, errBadPass, domain.ErrUnauthorized)
	assert.Equal(t, errNoUser, errBadPass)
}

func TestLogin_EmailBaneadoBloqueado(t *testing.T) {
	users := newMemUserRepo()
	banned := newMemBannedRepo()
	uc := newUC(users, banned)
	_, err := uc.Register(dto.RegisterRequest{Email: "ana@test.io", Password: "supersecreto", Name: "Ana"})
	require.NoError(t, err)

	// El ban posterior al registro también bloquea el login.
	require.NoError(t, banned.Add("ana@test.io"))
	_, err = uc.Login(dto.LoginRequest{Email: "ana@test.io", Password: "supersecreto"})
	assert.ErrorIs(t, err, domain.ErrEmailBanned)
}

// ──────────────────────────────────────────────────────────────────────────────
// Identity / Me
// ──────────────────────────────────────────────────────────────────────────────

func TestIdentity_UsuarioEliminadoInvalidaToken(t *testing.T) {
	users := newMemUserRepo()
	uc := newUC(users, newMemBannedRepo())
	out, err := uc.Register(dto.RegisterRequest{Email: "ana@test.io", Password: "supersecreto", Name: "Ana"})
	require.NoError(t, err)

	id, err := uc.Identity(out.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@test.io", id.Email)

	require.NoError(t, users.Delete(out.ID))
	_, err = uc.Identity(out.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestMe_DevuelvePerfilSinHash(t *testing.T) {
	users := newMemUserRepo()
	uc := newUC(users, newMemBannedRepo())
	out, err := uc.Register(dto.RegisterRequest{Email: "ana@test.io", Password: "supersecreto", Name: "Ana"})
	require.NoError(t, err)

	me, err := uc.Me(out.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.Name)
	assert.Equal(t, entity.RoleClient, me.Role)
}

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanshub/roastery-api/internal/application/auth"
	"github.com/beanshub/roastery-api/internal/application/dto"
	"github.com/beanshub/roastery-api/internal/domain"
	"github.com/beanshub/roastery-api/internal/domain/entity"
	"github.com/beanshub/roastery-api/internal/infrastructure/docstore"
	"github.com/beanshub/roastery-api/internal/service"
	"github.com/beanshub/roastery-api/internal/state"
	appsync "github.com/beanshub/roastery-api/internal/sync"
	pkgjwt "github.com/beanshub/roastery-api/pkg/jwt"
	"github.com/beanshub/roastery-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testSecret = "test-secret-key-for-unit-tests"

var testJWT = auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "beanshub-test"}

// buildAuth levanta almacén en memoria + sincronización + caso de uso, con el
// usuario admin demo ya presente en la colección users.
func buildAuth(t *testing.T) (*auth.UseCase, *state.Store, *service.Services) {
	t.Helper()
	store := docstore.NewMemoryStore(service.Orders())
	services := service.New(store)
	stateStore := state.NewStore()

	_, err := services.Users.Create(context.Background(), entity.User{
		Email:     "admin@beanshub.com",
		Name:      "Admin BeansHub",
		Role:      entity.RoleAdmin,
		IsActive:  true,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	syncer := appsync.NewSyncer(services, stateStore, logger.Nop())
	require.NoError(t, syncer.Start())
	t.Cleanup(syncer.Close)

	return auth.NewUseCase(services, stateStore, testJWT, logger.Nop()), stateStore, services
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: credenciales demo válidas con usuario presente → sesión completa.
func TestLogin_Exitoso(t *testing.T) {
	uc, stateStore, _ := buildAuth(t)

	antes := time.Now()
	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@beanshub.com",
		Password: "admin123",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "admin@beanshub.com", out.User.Email)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
	assert.False(t, out.User.LastLogin.Before(antes), "lastLogin debe actualizarse al momento del login")

	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err, "el token emitido debe ser válido")
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)

	st := stateStore.State()
	require.NotNil(t, st.User, "el usuario autenticado queda en el estado")
	assert.Equal(t, out.User.ID, st.User.ID)
}

// Caso 2: password incorrecto → credenciales inválidas, sin mutar estado.
func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, stateStore, _ := buildAuth(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@beanshub.com",
		Password: "incorrecta",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Nil(t, out)
	assert.Nil(t, stateStore.State().User, "un login fallido no fija usuario")
}

// Caso 3: par demo válido pero sin documento de usuario → usuario no encontrado.
func TestLogin_UsuarioSinDocumento(t *testing.T) {
	uc, _, _ := buildAuth(t)

	// roaster es credencial demo válida pero solo sembramos al admin.
	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "roaster@beanshub.com",
		Password: "roaster123",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Nil(t, out)
}

// Caso 4: email desconocido → credenciales inválidas (no revela existencia).
func TestLogin_EmailDesconocido(t *testing.T) {
	uc, _, _ := buildAuth(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "nadie@beanshub.com",
		Password: "admin123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// El lastLogin actualizado debe persistir en el almacén, no solo en memoria.
func TestLogin_PersisteLastLogin(t *testing.T) {
	uc, _, services := buildAuth(t)

	antes := time.Now()
	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@beanshub.com",
		Password: "admin123",
	})
	require.NoError(t, err)

	u, err := services.Users.GetByID(context.Background(), out.User.ID)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.False(t, u.LastLogin.Before(antes.Add(-time.Second)),
		"el documento del usuario debe reflejar el último login")
}

func TestLogout_LimpiaSesion(t *testing.T) {
	uc, stateStore, _ := buildAuth(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@beanshub.com",
		Password: "admin123",
	})
	require.NoError(t, err)
	require.NotNil(t, stateStore.State().User)

	uc.Logout()
	assert.Nil(t, stateStore.State().User)
}

// ──────────────────────────────────────────────────────────────────────────────
// Gestión de usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateUser_HasheaYAgrega(t *testing.T) {
	uc, stateStore, services := buildAuth(t)

	out, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email:    "nuevo@beanshub.com",
		Name:     "Nuevo Staff",
		Role:     entity.RoleStaff,
		Password: "secreto123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.ID)

	u, err := services.Users.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotEmpty(t, u.PasswordHash, "el hash debe persistirse")
	assert.NotEqual(t, "secreto123", u.PasswordHash, "nunca se guarda el password en claro")

	assert.Len(t, stateStore.State().Users, 2, "el alta se refleja en el estado")
}

func TestCreateUser_RolInvalido(t *testing.T) {
	uc, _, _ := buildAuth(t)

	_, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email:    "x@beanshub.com",
		Name:     "X",
		Role:     "SuperUser",
		Password: "secreto123",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateUser_EmailDuplicado(t *testing.T) {
	uc, _, _ := buildAuth(t)

	_, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email:    "admin@beanshub.com",
		Name:     "Doble",
		Role:     entity.RoleAdmin,
		Password: "secreto123",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

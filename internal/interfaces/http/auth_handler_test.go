package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanshub/roastery-api/internal/application/auth"
	"github.com/beanshub/roastery-api/internal/domain/entity"
	"github.com/beanshub/roastery-api/internal/infrastructure/docstore"
	apphttp "github.com/beanshub/roastery-api/internal/interfaces/http"
	"github.com/beanshub/roastery-api/internal/service"
	"github.com/beanshub/roastery-api/internal/state"
	appsync "github.com/beanshub/roastery-api/internal/sync"
	"github.com/beanshub/roastery-api/pkg/logger"
)

// buildLoginApp levanta la ruta de login sobre un almacén en memoria con el
// admin demo presente (o ausente, según seedAdmin).
func buildLoginApp(t *testing.T, seedAdmin bool) *fiber.App {
	t.Helper()
	store := docstore.NewMemoryStore(service.Orders())
	services := service.New(store)
	stateStore := state.NewStore()

	if seedAdmin {
		_, err := services.Users.Create(context.Background(), entity.User{
			Email:     "admin@beanshub.com",
			Name:      "Admin BeansHub",
			Role:      entity.RoleAdmin,
			IsActive:  true,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	syncer := appsync.NewSyncer(services, stateStore, logger.Nop())
	require.NoError(t, syncer.Start())
	t.Cleanup(syncer.Close)

	uc := auth.NewUseCase(services, stateStore, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	}, logger.Nop())

	app := fiber.New()
	app.Post("/api/auth/login", apphttp.NewAuthHandler(uc).Login)
	return app
}

func postLogin(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestLoginHandler_Exitoso(t *testing.T) {
	app := buildLoginApp(t, true)
	resp := postLogin(t, app, `{"email":"admin@beanshub.com","password":"admin123"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.Token, "la respuesta trae el token de sesión")
	assert.Equal(t, "admin@beanshub.com", out.User.Email)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
}

func TestLoginHandler_PasswordIncorrecto(t *testing.T) {
	app := buildLoginApp(t, true)
	resp := postLogin(t, app, `{"email":"admin@beanshub.com","password":"incorrecta"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Email atau password salah",
		"el mensaje de credenciales inválidas va en indonesio")
}

func TestLoginHandler_UsuarioSinDocumento(t *testing.T) {
	app := buildLoginApp(t, false)
	resp := postLogin(t, app, `{"email":"admin@beanshub.com","password":"admin123"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "User tidak ditemukan dalam sistem")
}

func TestLoginHandler_CuerpoIncompleto(t *testing.T) {
	app := buildLoginApp(t, true)
	resp := postLogin(t, app, `{"email":"admin@beanshub.com"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

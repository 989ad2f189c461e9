// Package auth implementa el login demo y la gestión de usuarios.
//
// El login valida primero contra los tres pares de credenciales demo fijos
// (no derivados del almacén) y recién después cruza el email contra la
// colección users; cualquier desajuste devuelve error sin mutar estado.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/beanshub/roastery-api/internal/application/dto"
	"github.com/beanshub/roastery-api/internal/domain"
	"github.com/beanshub/roastery-api/internal/domain/entity"
	"github.com/beanshub/roastery-api/internal/service"
	"github.com/beanshub/roastery-api/internal/state"
	"github.com/beanshub/roastery-api/pkg/jwt"
	"github.com/beanshub/roastery-api/pkg/logger"
)

// Credenciales demo fijas (cuentas de demostración del sistema).
var demoCredentials = []struct{ Email, Password string }{
	{"admin@beanshub.com", "admin123"},
	{"roaster@beanshub.com", "roaster123"},
	{"staff@beanshub.com", "staff123"},
}

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación y usuarios.
type UseCase struct {
	users  *service.Collection[entity.User]
	store  *state.Store
	jwtCfg JWTConfig
	log    *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(services *service.Services, store *state.Store, jwtCfg JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{users: services.Users, store: store, jwtCfg: jwtCfg, log: log}
}

// Login valida credenciales demo, cruza el usuario por email, actualiza
// lastLogin y fija el usuario autenticado en el estado central.
//
// Errores: domain.ErrInvalidCredentials si el par no coincide,
// domain.ErrUserNotFound si no hay documento de usuario con ese email.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if !matchDemoCredential(in.Email, in.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	user := uc.findByEmail(in.Email)
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	if err := uc.users.Update(ctx, user.ID, map[string]any{"lastLogin": now}); err != nil {
		return nil, fmt.Errorf("actualizar lastLogin: %w", err)
	}
	user.LastLogin = now
	uc.store.Dispatch(state.SetUser{User: user})

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// Logout limpia el usuario autenticado del estado.
func (uc *UseCase) Logout() {
	uc.store.Dispatch(state.SetUser{User: nil})
}

// CreateUser da de alta un usuario (solo Admin): hashea el password con
// bcrypt, persiste y agrega de forma optimista al estado.
func (uc *UseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Name == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email, name y password son requeridos", domain.ErrValidation)
	}
	if !entity.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrValidation, in.Role)
	}
	if uc.findByEmail(in.Email) != nil {
		return nil, fmt.Errorf("%w: email ya registrado", domain.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := entity.User{
		Email:        in.Email,
		Name:         in.Name,
		Role:         in.Role,
		Phone:        in.Phone,
		IsActive:     true,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	id, err := uc.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("crear usuario: %w", err)
	}
	user.ID = id
	uc.store.Dispatch(state.AddUser{User: user})
	resp := toUserResponse(&user)
	return &resp, nil
}

// DeleteUser elimina por id y lo quita de forma optimista del estado.
func (uc *UseCase) DeleteUser(ctx context.Context, id string) error {
	if err := uc.users.Delete(ctx, id); err != nil {
		return err
	}
	uc.store.Dispatch(state.DeleteUser{ID: id})
	return nil
}

// ListUsers devuelve los usuarios del snapshot actual.
func (uc *UseCase) ListUsers() []dto.UserResponse {
	users := uc.store.State().Users
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}

func (uc *UseCase) findByEmail(email string) *entity.User {
	for _, u := range uc.store.State().Users {
		if u.Email == email {
			u := u
			return &u
		}
	}
	return nil
}

// matchDemoCredential compara en tiempo constante contra los tres pares demo.
func matchDemoCredential(email, password string) bool {
	ok := false
	for _, c := range demoCredentials {
		e := subtle.ConstantTimeCompare([]byte(c.Email), []byte(email)) == 1
		p := subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) == 1
		if e && p {
			ok = true
		}
	}
	return ok
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

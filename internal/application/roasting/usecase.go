// Package roasting gestiona perfiles y sesiones de tostado. Una sesión
// consume stock de café verde según la merma del perfil aplicado.
package roasting

import (
	"context"
	"fmt"
	"time"

	"github.com/beanshub/roastery-api/internal/application/dto"
	"github.com/beanshub/roastery-api/internal/application/inventory"
	"github.com/beanshub/roastery-api/internal/domain"
	"github.com/beanshub/roastery-api/internal/domain/entity"
	"github.com/beanshub/roastery-api/internal/service"
	"github.com/beanshub/roastery-api/internal/state"
	"github.com/beanshub/roastery-api/pkg/logger"
)

// UseCase casos de uso de tostado.
type UseCase struct {
	profiles *service.Collection[entity.RoastingProfile]
	sessions *service.Collection[entity.RoastingSession]
	beans    *service.Collection[entity.GreenBean]
	store    *state.Store
	notifier inventory.Notifier
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(services *service.Services, store *state.Store, notifier inventory.Notifier, log *logger.Logger) *UseCase {
	return &UseCase{
		profiles: services.RoastingProfiles,
		sessions: services.RoastingSessions,
		beans:    services.GreenBeans,
		store:    store,
		notifier: notifier,
		log:      log,
	}
}

// CreateProfile da de alta un perfil de tostado.
func (uc *UseCase) CreateProfile(ctx context.Context, in dto.CreateProfileRequest) (*entity.RoastingProfile, error) {
	switch {
	case in.Name == "" || in.RoastLevel == "":
		return nil, fmt.Errorf("%w: name y roastLevel son requeridos", domain.ErrValidation)
	case in.Temperature <= 0:
		return nil, fmt.Errorf("%w: temperature debe ser mayor a cero", domain.ErrValidation)
	case in.DurationMinutes <= 0:
		return nil, fmt.Errorf("%w: durationMinutes debe ser mayor a cero", domain.ErrValidation)
	case in.WeightLossRate < 0 || in.WeightLossRate >= 1:
		return nil, fmt.Errorf("%w: weightLossRate debe estar en [0, 1)", domain.ErrValidation)
	}

	profile := entity.RoastingProfile{
		Name:            in.Name,
		RoastLevel:      in.RoastLevel,
		Temperature:     in.Temperature,
		DurationMinutes: in.DurationMinutes,
		WeightLossRate:  in.WeightLossRate,
		Description:     in.Description,
		CreatedAt:       time.Now(),
	}
	id, err := uc.profiles.Create(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("crear perfil: %w", err)
	}
	profile.ID = id
	uc.store.Dispatch(state.AddRoastingProfile{Profile: profile})
	return &profile, nil
}

// UpdateProfile aplica un patch parcial sobre un perfil.
func (uc *UseCase) UpdateProfile(ctx context.Context, id string, patch map[string]any) (*entity.RoastingProfile, error) {
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: patch vacío", domain.ErrValidation)
	}
	if err := uc.profiles.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	profile, err := uc.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	uc.store.Dispatch(state.UpdateRoastingProfile{Profile: *profile})
	return profile, nil
}

// DeleteProfile elimina el perfil y lo quita del estado.
func (uc *UseCase) DeleteProfile(ctx context.Context, id string) error {
	if err := uc.profiles.Delete(ctx, id); err != nil {
		return err
	}
	uc.store.Dispatch(state.DeleteRoastingProfile{ID: id})
	return nil
}

// ListProfiles devuelve los perfiles del snapshot actual.
func (uc *UseCase) ListProfiles() []entity.RoastingProfile {
	return uc.store.State().RoastingProfiles
}

// CreateSession registra una sesión de tostado: valida stock del lote,
// calcula el peso tostado según la merma del perfil y descuenta el café
// verde consumido. Si al descontar el lote cruza su umbral se emite un
// aviso de stock bajo.
func (uc *UseCase) CreateSession(ctx context.Context, in dto.CreateSessionRequest) (*entity.RoastingSession, error) {
	switch {
	case in.GreenBeanID == "" || in.ProfileID == "":
		return nil, fmt.Errorf("%w: greenBeanId y profileId son requeridos", domain.ErrValidation)
	case in.RoasterName == "":
		return nil, fmt.Errorf("%w: roasterName es requerido", domain.ErrValidation)
	case in.GreenWeightKg <= 0:
		return nil, fmt.Errorf("%w: greenWeightKg debe ser mayor a cero", domain.ErrValidation)
	}

	bean, err := uc.beans.GetByID(ctx, in.GreenBeanID)
	if err != nil {
		return nil, err
	}
	if bean == nil {
		return nil, fmt.Errorf("lote %s: %w", in.GreenBeanID, domain.ErrNotFound)
	}
	profile, err := uc.profiles.GetByID(ctx, in.ProfileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("perfil %s: %w", in.ProfileID, domain.ErrNotFound)
	}
	if bean.Quantity < in.GreenWeightKg {
		return nil, fmt.Errorf("%w: disponible %gkg, requerido %gkg", domain.ErrInsufficientStock, bean.Quantity, in.GreenWeightKg)
	}

	session := entity.RoastingSession{
		GreenBeanID:     in.GreenBeanID,
		ProfileID:       in.ProfileID,
		RoasterName:     in.RoasterName,
		GreenWeightKg:   in.GreenWeightKg,
		RoastedWeightKg: in.GreenWeightKg * (1 - profile.WeightLossRate),
		RoastDate:       time.Now(),
		Notes:           in.Notes,
	}
	id, err := uc.sessions.Create(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("crear sesión: %w", err)
	}
	session.ID = id
	uc.store.Dispatch(state.AddRoastingSession{Session: session})

	remaining := bean.Quantity - in.GreenWeightKg
	if err := uc.beans.Update(ctx, bean.ID, map[string]any{"quantity": remaining}); err != nil {
		return nil, fmt.Errorf("descontar stock: %w", err)
	}
	updated := *bean
	updated.Quantity = remaining
	uc.store.Dispatch(state.UpdateGreenBean{Bean: updated})

	if !bean.IsLowStock() && updated.IsLowStock() {
		msg := fmt.Sprintf("Stok %s tersisa %gkg, di bawah ambang %gkg", updated.Variety, remaining, updated.LowStockThreshold)
		if err := uc.notifier.Notify(ctx, entity.NotificationWarning, "Stok Biji Kopi Menipis", msg); err != nil {
			uc.log.Warn().Err(err).Str("beanId", bean.ID).Msg("aviso de stock bajo")
		}
	}
	return &session, nil
}

// ListSessions devuelve las sesiones del snapshot actual.
func (uc *UseCase) ListSessions() []entity.RoastingSession {
	return uc.store.State().RoastingSessions
}

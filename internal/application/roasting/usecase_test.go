package roasting_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanshub/roastery-api/internal/application/dto"
	"github.com/beanshub/roastery-api/internal/application/notification"
	"github.com/beanshub/roastery-api/internal/application/roasting"
	"github.com/beanshub/roastery-api/internal/domain"
	"github.com/beanshub/roastery-api/internal/domain/entity"
	"github.com/beanshub/roastery-api/internal/infrastructure/docstore"
	"github.com/beanshub/roastery-api/internal/service"
	"github.com/beanshub/roastery-api/internal/state"
	appsync "github.com/beanshub/roastery-api/internal/sync"
	"github.com/beanshub/roastery-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc       *roasting.UseCase
	state    *state.Store
	services *service.Services
	beanID   string
	profile  *entity.RoastingProfile
}

// buildRoasting deja listo un lote de 100kg (umbral 50) y un perfil con 15%
// de merma.
func buildRoasting(t *testing.T) fixture {
	t.Helper()
	store := docstore.NewMemoryStore(service.Orders())
	services := service.New(store)
	stateStore := state.NewStore()

	syncer := appsync.NewSyncer(services, stateStore, logger.Nop())
	require.NoError(t, syncer.Start())
	t.Cleanup(syncer.Close)

	notifier := notification.NewUseCase(services, stateStore, logger.Nop())
	uc := roasting.NewUseCase(services, stateStore, notifier, logger.Nop())

	beanID, err := services.GreenBeans.Create(context.Background(), entity.GreenBean{
		Variety:           "Toraja Kalosi",
		Quantity:          100,
		LowStockThreshold: 50,
	})
	require.NoError(t, err)

	profile, err := uc.CreateProfile(context.Background(), dto.CreateProfileRequest{
		Name:            "Medium Toraja",
		RoastLevel:      "Medium",
		Temperature:     205,
		DurationMinutes: 12,
		WeightLossRate:  0.15,
	})
	require.NoError(t, err)

	return fixture{uc: uc, state: stateStore, services: services, beanID: beanID, profile: profile}
}

// ──────────────────────────────────────────────────────────────────────────────
// Perfiles
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProfile_Validacion(t *testing.T) {
	f := buildRoasting(t)

	casos := []dto.CreateProfileRequest{
		{Name: "", RoastLevel: "Medium", Temperature: 200, DurationMinutes: 10, WeightLossRate: 0.1},
		{Name: "x", RoastLevel: "Medium", Temperature: 0, DurationMinutes: 10, WeightLossRate: 0.1},
		{Name: "x", RoastLevel: "Medium", Temperature: 200, DurationMinutes: 0, WeightLossRate: 0.1},
		{Name: "x", RoastLevel: "Medium", Temperature: 200, DurationMinutes: 10, WeightLossRate: 1.0},
	}
	for _, in := range casos {
		_, err := f.uc.CreateProfile(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesiones
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: la sesión calcula el peso tostado según la merma y descuenta stock.
func TestCreateSession_DescuentaStockYCalculaMerma(t *testing.T) {
	f := buildRoasting(t)

	session, err := f.uc.CreateSession(context.Background(), dto.CreateSessionRequest{
		GreenBeanID:   f.beanID,
		ProfileID:     f.profile.ID,
		RoasterName:   "Master Roaster",
		GreenWeightKg: 40,
	})
	require.NoError(t, err)

	assert.InDelta(t, 34.0, session.RoastedWeightKg, 1e-9, "40kg con 15%% de merma son 34kg tostados")

	bean, err := f.services.GreenBeans.GetByID(context.Background(), f.beanID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, bean.Quantity, "el lote descuenta el café verde consumido")

	st := f.state.State()
	require.Len(t, st.RoastingSessions, 1)
	assert.Empty(t, st.Notifications, "60kg sigue sobre el umbral, sin aviso")
}

// Caso 2: al cruzar el umbral se emite el aviso de stock bajo.
func TestCreateSession_AvisoDeStockBajo(t *testing.T) {
	f := buildRoasting(t)

	_, err := f.uc.CreateSession(context.Background(), dto.CreateSessionRequest{
		GreenBeanID:   f.beanID,
		ProfileID:     f.profile.ID,
		RoasterName:   "Master Roaster",
		GreenWeightKg: 60,
	})
	require.NoError(t, err)

	notifs := f.state.State().Notifications
	require.Len(t, notifs, 1, "cruzar el umbral (100-60=40 < 50) emite aviso")
	assert.Equal(t, entity.NotificationWarning, notifs[0].Type)
	assert.Equal(t, "Stok Biji Kopi Menipis", notifs[0].Title)
}

// Caso 3: stock insuficiente → nada se escribe.
func TestCreateSession_StockInsuficiente(t *testing.T) {
	f := buildRoasting(t)

	_, err := f.uc.CreateSession(context.Background(), dto.CreateSessionRequest{
		GreenBeanID:   f.beanID,
		ProfileID:     f.profile.ID,
		RoasterName:   "Master Roaster",
		GreenWeightKg: 150,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	bean, err := f.services.GreenBeans.GetByID(context.Background(), f.beanID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, bean.Quantity, "el stock no se toca")
	assert.Empty(t, f.state.State().RoastingSessions)
}

func TestCreateSession_LoteOPerfilInexistente(t *testing.T) {
	f := buildRoasting(t)

	_, err := f.uc.CreateSession(context.Background(), dto.CreateSessionRequest{
		GreenBeanID:   "fantasma",
		ProfileID:     f.profile.ID,
		RoasterName:   "x",
		GreenWeightKg: 10,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.CreateSession(context.Background(), dto.CreateSessionRequest{
		GreenBeanID:   f.beanID,
		ProfileID:     "fantasma",
		RoasterName:   "x",
		GreenWeightKg: 10,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

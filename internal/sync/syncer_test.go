package sync_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func newSyncer(t *testing.T, store docstore.Store) (*appsync.Syncer, *state.Store, *service.Services) {
	t.Helper()
	services := service.New(store)
	stateStore := state.NewStore()
	return appsync.NewSyncer(services, stateStore, logger.Nop()), stateStore, services
}

// flakyStore envuelve un almacén real y hace fallar Subscribe en las
// colecciones indicadas.
type flakyStore struct {
	inner docstore.Store
	fail  map[string]bool
}

func (f *flakyStore) Collection(name string) docstore.Collection {
	c := f.inner.Collection(name)
	if f.fail[name] {
		return &failingCollection{Collection: c}
	}
	return c
}

func (f *flakyStore) RunBatch(ctx context.Context, fn func(docstore.Batch) error) error {
	return f.inner.RunBatch(ctx, fn)
}

func (f *flakyStore) Close() { f.inner.Close() }

type failingCollection struct {
	docstore.Collection
}

func (c *failingCollection) Subscribe(func([]docstore.Document)) (docstore.Unsubscribe, error) {
	return nil, domain.ErrConnection
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestSyncer_StartCargaLasSeisColecciones(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore(service.Orders())
	syncer, stateStore, services := newSyncer(t, store)
	defer syncer.Close()

	_, err := services.Users.Create(ctx, entity.User{Email: "admin@beanshub.com", Name: "Admin"})
	require.NoError(t, err)
	_, err = services.GreenBeans.Create(ctx, entity.GreenBean{Variety: "Gayo", Quantity: 500})
	require.NoError(t, err)

	require.NoError(t, syncer.Start())
	assert.Equal(t, 6, syncer.Active(), "las seis suscripciones deben quedar registradas")

	st := stateStore.State()
	assert.Len(t, st.Users, 1, "el snapshot inicial puebla el slot de usuarios")
	assert.Len(t, st.GreenBeans, 1)
	assert.False(t, st.Loading, "loading baja al terminar el registro")
	assert.Empty(t, st.Error)
}

func TestSyncer_CambiosPosterioresActualizanElEstado(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore(service.Orders())
	syncer, stateStore, services := newSyncer(t, store)
	defer syncer.Close()

	require.NoError(t, syncer.Start())
	require.Empty(t, stateStore.State().Sales)

	_, err := services.Sales.Create(ctx, entity.Sale{
		CustomerName: "Kafe Nusantara",
		Total:        850000,
		SaleDate:     time.Now(),
	})
	require.NoError(t, err)

	st := stateStore.State()
	require.Len(t, st.Sales, 1, "la escritura llega al estado vía suscripción")
	assert.Equal(t, "Kafe Nusantara", st.Sales[0].CustomerName)
}

func TestSyncer_FallaParcialDejaEstadoDegradado(t *testing.T) {
	ctx := context.Background()
	inner := docstore.NewMemoryStore(service.Orders())
	store := &flakyStore{inner: inner, fail: map[string]bool{
		service.CollSales:            true,
		service.CollRoastingSessions: true,
	}}
	syncer, stateStore, services := newSyncer(t, store)
	defer syncer.Close()

	_, err := services.Users.Create(ctx, entity.User{Name: "Admin"})
	require.NoError(t, err)

	err = syncer.Start()
	require.Error(t, err, "alguna suscripción falló y Start lo reporta")
	assert.Equal(t, 4, syncer.Active(), "las que sí abrieron quedan registradas")

	st := stateStore.State()
	assert.False(t, st.Loading, "loading baja aunque haya fallas")
	assert.Equal(t, "Failed to connect to database", st.Error)
	assert.Len(t, st.Users, 1, "los slots con suscripción viva siguen entregando")
}

func TestSyncer_StartEsIdempotente(t *testing.T) {
	store := docstore.NewMemoryStore(service.Orders())
	syncer, _, _ := newSyncer(t, store)
	defer syncer.Close()

	require.NoError(t, syncer.Start())
	require.NoError(t, syncer.Start(), "un segundo Start no re-registra nada")
	assert.Equal(t, 6, syncer.Active())
}

func TestSyncer_CloseDesmontaYEsIdempotente(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore(service.Orders())
	syncer, stateStore, services := newSyncer(t, store)

	require.NoError(t, syncer.Start())
	syncer.Close()
	syncer.Close() // la segunda llamada no hace nada
	assert.Zero(t, syncer.Active())

	version := stateStore.Version()
	_, err := services.Users.Create(ctx, entity.User{Name: "tarde"})
	require.NoError(t, err)
	assert.Equal(t, version, stateStore.Version(), "tras Close no llegan más despachos")
}

package docstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanshub/roastery-api/internal/domain"
	"github.com/beanshub/roastery-api/internal/infrastructure/docstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// CRUD
// ──────────────────────────────────────────────────────────────────────────────

func TestMemoryStore_CreateAsignaIDYLee(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore(nil)
	coll := store.Collection("greenBeans")

	id, err := coll.Create(ctx, docstore.Document{"variety": "Arabica Gayo", "quantity": 500.0})
	require.NoError(t, err)
	require.NotEmpty(t, id, "el almacén debe asignar el id")

	doc, err := coll.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, id, doc.ID())
	assert.Equal(t, "Arabica Gayo", doc["variety"])
}

func TestMemoryStore_GetByIDInexistenteDevuelveNil(t *testing.T) {
	store := docstore.NewMemoryStore(nil)
	doc, err := store.Collection("users").GetByID(context.Background(), "no-existe")
	require.NoError(t, err, "un id inexistente no es error")
	assert.Nil(t, doc)
}

// Ley del patch parcial: los campos del patch se actualizan, el resto queda.
func TestMemoryStore_UpdateEsPatchParcial(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore(nil)
	coll := store.Collection("greenBeans")

	id, err := coll.Create(ctx, docstore.Document{"variety": "Toraja", "quantity": 200.0, "origin": "Sulawesi"})
	require.NoError(t, err)

	require.NoError(t, coll.Update(ctx, id, docstore.Document{"quantity": 150.0}))

	doc, err := coll.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 150.0, doc["quantity"], "el campo del patch debe actualizarse")
	assert.Equal(t, "Toraja", doc["variety"], "los campos fuera del patch no se tocan")
	assert.Equal(t, "Sulawesi", doc["origin"])
}

func TestMemoryStore_UpdateNoPuedeCambiarID(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore(nil)
	coll := store.Collection("users")

	id, err := coll.Create(ctx, docstore.Document{"name": "x"})
	require.NoError(t, err)

	require.NoError(t, coll.Update(ctx, id, docstore.Document{"id": "otro", "name": "y"}))

	doc, err := coll.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID(), "el id es inmutable")
	assert.Equal(t, "y", doc["name"])
}

func TestMemoryStore_UpdateInexistenteFalla(t *testing.T) {
	store := docstore.NewMemoryStore(nil)
	err := store.Collection("users").Update(context.Background(), "fantasma", docstore.Document{"name": "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryStore_DeleteEsIdempotente(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore(nil)
	coll := store.Collection("sales")

	id, err := coll.Create(ctx, docstore.Document{"total": 100.0})
	require.NoError(t, err)

	require.NoError(t, coll.Delete(ctx, id))
	require.NoError(t, coll.Delete(ctx, id), "borrar dos veces es éxito")

	doc, err := coll.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

// ──────────────────────────────────────────────────────────────────────────────
// Suscripciones
// ──────────────────────────────────────────────────────────────────────────────

func TestMemoryStore_SubscribeEntregaSnapshotInmediatoYCambios(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore(nil)
	coll := store.Collection("notifications")

	_, err := coll.Create(ctx, docstore.Document{"title": "previa"})
	require.NoError(t, err)

	var entregas [][]docstore.Document
	unsub, err := coll.Subscribe(func(docs []docstore.Document) {
		entregas = append(entregas, docs)
	})
	require.NoError(t, err)
	defer unsub()

	require.Len(t, entregas, 1, "el contenido actual se entrega de inmediato al suscribir")
	assert.Len(t, entregas[0], 1)

	_, err = coll.Create(ctx, docstore.Document{"title": "nueva"})
	require.NoError(t, err)

	require.Len(t, entregas, 2, "cada cambio entrega un snapshot completo")
	assert.Len(t, entregas[1], 2, "el snapshot es la colección entera, no un diff")
}

func TestMemoryStore_UnsubscribeEsIdempotente(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore(nil)
	coll := store.Collection("users")

	llamadas := 0
	unsub, err := coll.Subscribe(func([]docstore.Document) { llamadas++ })
	require.NoError(t, err)
	require.Equal(t, 1, llamadas)

	unsub()
	unsub() // la segunda llamada no debe hacer nada

	_, err = coll.Create(ctx, docstore.Document{"name": "x"})
	require.NoError(t, err)
	assert.Equal(t, 1, llamadas, "tras cancelar no llegan más snapshots")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ordenamiento por colección
// ──────────────────────────────────────────────────────────────────────────────

func TestMemoryStore_GetAllRespetaOrderDescendente(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore(map[string]docstore.Order{
		"sales": {Field: "total", Descending: true},
	})
	coll := store.Collection("sales")

	for _, total := range []float64{100, 300, 200} {
		_, err := coll.Create(ctx, docstore.Document{"total": total})
		require.NoError(t, err)
	}

	docs, err := coll.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, 300.0, docs[0]["total"])
	assert.Equal(t, 200.0, docs[1]["total"])
	assert.Equal(t, 100.0, docs[2]["total"])
}

func TestMemoryStore_SinOrderUsaOrdenDeInsercion(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore(nil)
	coll := store.Collection("users")

	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		id, err := coll.Create(ctx, docstore.Document{"name": name})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	docs, err := coll.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	for i, doc := range docs {
		assert.Equal(t, ids[i], doc.ID(), "sin Order configurado manda el orden de inserción")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Batches atómicos
// ──────────────────────────────────────────────────────────────────────────────

func TestMemoryStore_RunBatchTodoONada(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore(nil)

	fallo := errors.New("algo salió mal")
	err := store.RunBatch(ctx, func(b docstore.Batch) error {
		b.Create("users", docstore.Document{"name": "u1"})
		b.Create("users", docstore.Document{"name": "u2"})
		return fallo
	})
	require.ErrorIs(t, err, fallo)

	docs, err := store.Collection("users").GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs, "si fn falla no se aplica ninguna escritura")

	require.NoError(t, store.RunBatch(ctx, func(b docstore.Batch) error {
		b.Create("users", docstore.Document{"name": "u1"})
		b.Create("greenBeans", docstore.Document{"variety": "g1"})
		return nil
	}))

	docs, err = store.Collection("users").GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1, "con fn exitosa se aplican todas las escrituras")
}

// Count dentro del batch ve las escrituras en cola: es la base del chequeo
// "sembrar solo si está vacío" sin carrera entre instancias.
func TestMemoryStore_BatchCountIncluyeEscriturasEnCola(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore(nil)

	require.NoError(t, store.RunBatch(ctx, func(b docstore.Batch) error {
		n, err := b.Count("users")
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		b.Create("users", docstore.Document{"name": "u1"})
		n, err = b.Count("users")
		require.NoError(t, err)
		assert.Equal(t, 1, n, "Count debe ver lo encolado en el mismo batch")
		return nil
	}))
}

func TestMemoryStore_BatchNotificaSuscriptores(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore(nil)
	coll := store.Collection("users")

	var entregas int
	unsub, err := coll.Subscribe(func([]docstore.Document) { entregas++ })
	require.NoError(t, err)
	defer unsub()
	require.Equal(t, 1, entregas)

	require.NoError(t, store.RunBatch(ctx, func(b docstore.Batch) error {
		b.Create("users", docstore.Document{"name": "u1"})
		b.Create("users", docstore.Document{"name": "u2"})
		return nil
	}))
	assert.Equal(t, 2, entregas, "el batch notifica una vez por colección tocada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cierre
// ──────────────────────────────────────────────────────────────────────────────

func TestMemoryStore_OperarTrasCloseFalla(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore(nil)
	coll := store.Collection("users")
	store.Close()

	_, err := coll.GetAll(ctx)
	assert.ErrorIs(t, err, domain.ErrConnection)

	_, err = coll.Create(ctx, docstore.Document{"name": "x"})
	assert.ErrorIs(t, err, domain.ErrConnection)

	_, err = coll.Subscribe(func([]docstore.Document) {})
	assert.ErrorIs(t, err, domain.ErrConnection)
}

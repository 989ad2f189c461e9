// Package docstore define la frontera con el almacén de documentos remoto:
// colecciones con CRUD, consultas ordenadas, escrituras batch atómicas y
// suscripciones push que entregan snapshots completos de la colección.
//
// Hay dos backends: memoria (desarrollo y tests) y PostgreSQL JSONB con
// LISTEN/NOTIFY (producción).
package docstore

import (
	"context"
	"time"
)

// Document es la representación nativa de un documento: campos tipados
// arbitrarios más la clave "id" asignada por el almacén al crear.
type Document map[string]any

// ID devuelve el identificador del documento ("" si aún no fue asignado).
func (d Document) ID() string {
	s, _ := d["id"].(string)
	return s
}

// Timestamp es la representación nativa de instantes del almacén
// (segundos + nanosegundos, estilo Firestore). La conversión con time.Time
// ocurre únicamente en la frontera de lectura/escritura y es simétrica.
type Timestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int32 `json:"nanos"`
}

// NewTimestamp convierte un time.Time al tipo nativo del almacén.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Seconds: t.Unix(), Nanos: int32(t.Nanosecond())}
}

// Time convierte de vuelta a time.Time (UTC). Ley de ida y vuelta:
// NewTimestamp(t).Time().Equal(t) para todo t.
func (ts Timestamp) Time() time.Time {
	return time.Unix(ts.Seconds, int64(ts.Nanos)).UTC()
}

// Unsubscribe cancela una suscripción. Debe ser seguro invocarla varias veces.
type Unsubscribe func()

// Order define la clave de ordenamiento de una colección en todas las lecturas.
type Order struct {
	Field      string
	Descending bool
}

// Collection expone el CRUD y la suscripción snapshot de una colección.
type Collection interface {
	// Name devuelve el nombre de la colección.
	Name() string
	// GetAll trae la colección completa, ordenada según su Order configurado
	// (orden de inserción si no tiene). Falla con domain.ErrConnection si el
	// almacén es inaccesible.
	GetAll(ctx context.Context) ([]Document, error)
	// GetByID devuelve el documento o nil si no existe.
	GetByID(ctx context.Context, id string) (Document, error)
	// Create escribe un documento nuevo; el almacén asigna el id y lo devuelve.
	Create(ctx context.Context, data Document) (string, error)
	// Update aplica un patch parcial (solo los campos presentes). Devuelve
	// domain.ErrNotFound si el id no existe.
	Update(ctx context.Context, id string, patch Document) error
	// Delete elimina el documento. Borrar un id inexistente es éxito.
	Delete(ctx context.Context, id string) error
	// Subscribe registra un listener push. El callback recibe de inmediato el
	// contenido completo actual y luego un snapshot completo (no un diff) tras
	// cada cambio, venga de quien venga la escritura.
	Subscribe(fn func([]Document)) (Unsubscribe, error)
}

// Batch agrupa operaciones que se aplican como una unidad atómica.
// Count lee dentro de la misma unidad, de modo que un chequeo
// "si está vacía, sembrar" no puede carrear con otra instancia.
type Batch interface {
	Count(collection string) (int, error)
	Create(collection string, data Document)
}

// Store es el almacén de documentos completo.
type Store interface {
	Collection(name string) Collection
	// RunBatch ejecuta fn contra un Batch; todo o nada.
	RunBatch(ctx context.Context, fn func(Batch) error) error
	Close()
}

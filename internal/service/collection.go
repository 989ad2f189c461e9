// Package service expone los servicios de acceso a colecciones: un wrapper
// genérico por tipo de entidad sobre la frontera docstore, con conversión
// struct <-> documento (fechas incluidas) en ambos sentidos.
package service

import (
	"context"
	"fmt"

	"github.com/beanshub/roastery-api/internal/infrastructure/docstore"
)

// Collection es el servicio de acceso genérico para la entidad T.
type Collection[T any] struct {
	coll docstore.Collection
}

// NewCollection construye el servicio sobre la colección nombrada del almacén.
func NewCollection[T any](store docstore.Store, name string) *Collection[T] {
	return &Collection[T]{coll: store.Collection(name)}
}

// GetAll trae la colección completa ya ordenada y decodificada.
func (s *Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	docs, err := s.coll.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](s.coll.Name(), docs)
}

// GetByID devuelve la entidad o nil si no existe.
func (s *Collection[T]) GetByID(ctx context.Context, id string) (*T, error) {
	doc, err := s.coll.GetByID(ctx, id)
	if err != nil || doc == nil {
		return nil, err
	}
	var out T
	if err := docstore.Decode(doc, &out); err != nil {
		return nil, fmt.Errorf("decodificar %s/%s: %w", s.coll.Name(), id, err)
	}
	return &out, nil
}

// Create escribe la entidad (sin id) y devuelve el id asignado por el almacén.
// Todos los campos fecha pasan al tipo nativo del almacén antes de escribir.
func (s *Collection[T]) Create(ctx context.Context, e T) (string, error) {
	doc, err := docstore.Encode(e)
	if err != nil {
		return "", err
	}
	delete(doc, "id") // el almacén asigna el id
	return s.coll.Create(ctx, doc)
}

// Update aplica un patch parcial; solo los campos presentes se tocan.
// Devuelve domain.ErrNotFound si el id no existe.
func (s *Collection[T]) Update(ctx context.Context, id string, patch map[string]any) error {
	return s.coll.Update(ctx, id, docstore.ConvertTimes(patch))
}

// Delete elimina por id; repetirlo es éxito.
func (s *Collection[T]) Delete(ctx context.Context, id string) error {
	return s.coll.Delete(ctx, id)
}

// Subscribe registra un listener que recibe la colección completa decodificada:
// una vez de inmediato y luego tras cada cambio.
func (s *Collection[T]) Subscribe(fn func([]T)) (docstore.Unsubscribe, error) {
	name := s.coll.Name()
	return s.coll.Subscribe(func(docs []docstore.Document) {
		entities, err := decodeAll[T](name, docs)
		if err != nil {
			// Un documento corrupto no debe tumbar el stream completo.
			return
		}
		fn(entities)
	})
}

func decodeAll[T any](name string, docs []docstore.Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var e T
		if err := docstore.Decode(doc, &e); err != nil {
			return nil, fmt.Errorf("decodificar %s/%s: %w", name, doc.ID(), err)
		}
		out = append(out, e)
	}
	return out, nil
}

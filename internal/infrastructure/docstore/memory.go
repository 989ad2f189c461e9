package docstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/beanshub/roastery-api/internal/domain"
)

// MemoryStore es el backend en memoria: un mutex global cubre todas las
// colecciones, de modo que RunBatch es atómico por construcción. Lo usan los
// tests y el modo development sin PostgreSQL.
type MemoryStore struct {
	mu     sync.RWMutex
	colls  map[string]*memoryCollection
	orders map[string]Order
	closed bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore construye el almacén; orders fija la clave de ordenamiento
// por colección (nil = todas en orden de inserción).
func NewMemoryStore(orders map[string]Order) *MemoryStore {
	if orders == nil {
		orders = map[string]Order{}
	}
	return &MemoryStore{
		colls:  map[string]*memoryCollection{},
		orders: orders,
	}
}

// Collection devuelve la colección, creándola perezosamente.
func (s *MemoryStore) Collection(name string) Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collectionLocked(name)
}

func (s *MemoryStore) collectionLocked(name string) *memoryCollection {
	c, ok := s.colls[name]
	if !ok {
		c = &memoryCollection{
			store: s,
			name:  name,
			docs:  map[string]Document{},
			seq:   map[string]int64{},
			subs:  map[int64]func([]Document){},
		}
		s.colls[name] = c
	}
	return c
}

// RunBatch ejecuta fn bajo el lock global; las creaciones quedan en cola y se
// aplican todas juntas solo si fn no devuelve error.
func (s *MemoryStore) RunBatch(_ context.Context, fn func(Batch) error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrConnection
	}
	b := &memoryBatch{store: s}
	if err := fn(b); err != nil {
		s.mu.Unlock()
		return err
	}
	touched := map[string]bool{}
	for _, w := range b.writes {
		c := s.collectionLocked(w.collection)
		c.insertLocked(w.data)
		touched[w.collection] = true
	}
	var notify []func()
	for name := range touched {
		notify = append(notify, s.colls[name].notifiersLocked()...)
	}
	s.mu.Unlock()
	for _, fn := range notify {
		fn()
	}
	return nil
}

// Close marca el almacén como cerrado; las operaciones posteriores fallan con
// domain.ErrConnection.
func (s *MemoryStore) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

type memoryBatch struct {
	store  *MemoryStore
	writes []batchWrite
}

type batchWrite struct {
	collection string
	data       Document
}

func (b *memoryBatch) Count(collection string) (int, error) {
	// El lock global ya está tomado por RunBatch.
	c, ok := b.store.colls[collection]
	if !ok {
		return 0, nil
	}
	n := len(c.docs)
	for _, w := range b.writes {
		if w.collection == collection {
			n++
		}
	}
	return n, nil
}

func (b *memoryBatch) Create(collection string, data Document) {
	b.writes = append(b.writes, batchWrite{collection: collection, data: data})
}

// ── Colección ─────────────────────────────────────────────────────────────────

type memoryCollection struct {
	store   *MemoryStore
	name    string
	docs    map[string]Document
	seq     map[string]int64 // id -> orden de inserción
	nextSeq int64
	subs    map[int64]func([]Document)
	nextSub int64
}

func (c *memoryCollection) Name() string { return c.name }

func (c *memoryCollection) GetAll(_ context.Context) ([]Document, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	if c.store.closed {
		return nil, fmt.Errorf("%w: almacén cerrado", domain.ErrConnection)
	}
	return c.snapshotLocked(), nil
}

func (c *memoryCollection) GetByID(_ context.Context, id string) (Document, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	doc, ok := c.docs[id]
	if !ok {
		return nil, nil
	}
	return cloneDocument(doc), nil
}

func (c *memoryCollection) Create(_ context.Context, data Document) (string, error) {
	c.store.mu.Lock()
	if c.store.closed {
		c.store.mu.Unlock()
		return "", fmt.Errorf("%w: almacén cerrado", domain.ErrConnection)
	}
	id := c.insertLocked(data)
	notify := c.notifiersLocked()
	c.store.mu.Unlock()
	for _, fn := range notify {
		fn()
	}
	return id, nil
}

func (c *memoryCollection) Update(_ context.Context, id string, patch Document) error {
	c.store.mu.Lock()
	doc, ok := c.docs[id]
	if !ok {
		c.store.mu.Unlock()
		return domain.ErrNotFound
	}
	for k, v := range patch {
		if k == "id" {
			continue // el id es inmutable una vez asignado
		}
		doc[k] = v
	}
	notify := c.notifiersLocked()
	c.store.mu.Unlock()
	for _, fn := range notify {
		fn()
	}
	return nil
}

func (c *memoryCollection) Delete(_ context.Context, id string) error {
	c.store.mu.Lock()
	if _, ok := c.docs[id]; !ok {
		// Borrado repetido es éxito.
		c.store.mu.Unlock()
		return nil
	}
	delete(c.docs, id)
	delete(c.seq, id)
	notify := c.notifiersLocked()
	c.store.mu.Unlock()
	for _, fn := range notify {
		fn()
	}
	return nil
}

func (c *memoryCollection) Subscribe(fn func([]Document)) (Unsubscribe, error) {
	c.store.mu.Lock()
	if c.store.closed {
		c.store.mu.Unlock()
		return nil, fmt.Errorf("%w: almacén cerrado", domain.ErrConnection)
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	snapshot := c.snapshotLocked()
	c.store.mu.Unlock()

	// Entrega inmediata del contenido actual, fuera del lock.
	fn(snapshot)

	var once sync.Once
	unsub := func() {
		once.Do(func() {
			c.store.mu.Lock()
			delete(c.subs, id)
			c.store.mu.Unlock()
		})
	}
	return unsub, nil
}

func (c *memoryCollection) insertLocked(data Document) string {
	id := uuid.NewString()
	doc := cloneDocument(data)
	doc["id"] = id
	c.docs[id] = doc
	c.seq[id] = c.nextSeq
	c.nextSeq++
	return id
}

// snapshotLocked devuelve copias de todos los documentos en el orden de la
// colección (requiere al menos el read lock).
func (c *memoryCollection) snapshotLocked() []Document {
	docs := make([]Document, 0, len(c.docs))
	for _, d := range c.docs {
		docs = append(docs, cloneDocument(d))
	}
	if order, ok := c.store.orders[c.name]; ok && order.Field != "" {
		SortDocuments(docs, order)
	} else {
		sortByInsertion(docs, c.seq)
	}
	return docs
}

func (c *memoryCollection) notifiersLocked() []func() {
	snapshot := c.snapshotLocked()
	fns := make([]func(), 0, len(c.subs))
	for _, sub := range c.subs {
		sub := sub
		fns = append(fns, func() { sub(snapshot) })
	}
	return fns
}

func sortByInsertion(docs []Document, seq map[string]int64) {
	for i := 1; i < len(docs); i++ {
		for j := i; j > 0 && seq[docs[j].ID()] < seq[docs[j-1].ID()]; j-- {
			docs[j], docs[j-1] = docs[j-1], docs[j]
		}
	}
}

func cloneDocument(d Document) Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

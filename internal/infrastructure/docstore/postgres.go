package docstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/beanshub/roastery-api/internal/domain"
	"github.com/beanshub/roastery-api/pkg/logger"
)

// Esquema del almacén: una sola tabla JSONB para todas las colecciones.
// El trigger publica el nombre de la colección tocada en el canal
// document_changes; el listener re-lee la colección y reparte el snapshot.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
    collection  text        NOT NULL,
    id          uuid        NOT NULL,
    data        jsonb       NOT NULL,
    seq         bigserial,
    updated_at  timestamptz NOT NULL DEFAULT now(),
    PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_collection_seq_idx ON documents (collection, seq);

CREATE OR REPLACE FUNCTION notify_document_change() RETURNS trigger AS $$
BEGIN
    PERFORM pg_notify('document_changes', COALESCE(NEW.collection, OLD.collection));
    RETURN NULL;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS documents_notify ON documents;
CREATE TRIGGER documents_notify
    AFTER INSERT OR UPDATE OR DELETE ON documents
    FOR EACH ROW EXECUTE FUNCTION notify_document_change();
`

const notifyChannel = "document_changes"

// PostgresStore implementa Store sobre PostgreSQL: documentos JSONB y
// suscripciones empujadas por LISTEN/NOTIFY.
type PostgresStore struct {
	pool   *pgxpool.Pool
	orders map[string]Order
	log    *logger.Logger

	mu      sync.Mutex
	subs    map[string]map[int64]func([]Document)
	nextSub int64

	listenOnce sync.Once
	cancel     context.CancelFunc
	closeOnce  sync.Once
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore abre el pool, aplica el esquema y deja el almacén listo.
func NewPostgresStore(ctx context.Context, dsn string, orders map[string]Order, log *logger.Logger) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping: %v", domain.ErrConnection, err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("aplicar esquema: %w", err)
	}
	if orders == nil {
		orders = map[string]Order{}
	}
	return &PostgresStore{
		pool:   pool,
		orders: orders,
		log:    log,
		subs:   map[string]map[int64]func([]Document){},
	}, nil
}

// Collection devuelve la vista de una colección.
func (s *PostgresStore) Collection(name string) Collection {
	return &postgresCollection{store: s, name: name}
}

// RunBatch ejecuta fn dentro de una transacción con lock de tabla: el chequeo
// Count y las inserciones de fn son atómicos frente a otras instancias.
func (s *PostgresStore) RunBatch(ctx context.Context, fn func(Batch) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin batch: %v", domain.ErrConnection, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "LOCK TABLE documents IN SHARE ROW EXCLUSIVE MODE"); err != nil {
		return fmt.Errorf("lock batch: %w", err)
	}
	b := &postgresBatch{ctx: ctx, tx: tx}
	if err := fn(b); err != nil {
		return err
	}
	for _, w := range b.writes {
		payload, err := MarshalDocument(w.data)
		if err != nil {
			return fmt.Errorf("serializar documento batch: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)`,
			w.collection, uuid.NewString(), payload,
		); err != nil {
			return fmt.Errorf("insert batch en %s: %w", w.collection, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// Close detiene el listener y cierra el pool.
func (s *PostgresStore) Close() {
	s.closeOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		s.pool.Close()
	})
}

type postgresBatch struct {
	ctx    context.Context
	tx     pgx.Tx
	writes []batchWrite
}

func (b *postgresBatch) Count(collection string) (int, error) {
	var n int
	err := b.tx.QueryRow(b.ctx,
		`SELECT count(*) FROM documents WHERE collection = $1`, collection,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	for _, w := range b.writes {
		if w.collection == collection {
			n++
		}
	}
	return n, nil
}

func (b *postgresBatch) Create(collection string, data Document) {
	b.writes = append(b.writes, batchWrite{collection: collection, data: data})
}

// ── Listener LISTEN/NOTIFY ────────────────────────────────────────────────────

func (s *PostgresStore) ensureListener() {
	s.listenOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		go s.listen(ctx)
	})
}

func (s *PostgresStore) listen(ctx context.Context) {
	for ctx.Err() == nil {
		if err := s.runListener(ctx); err != nil && ctx.Err() == nil {
			s.log.Warn().Err(err).Msg("listener de documentos caído, reintentando")
			select {
			case <-time.After(3 * time.Second):
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *PostgresStore) runListener(ctx context.Context) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire conexión listener: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		return fmt.Errorf("LISTEN: %w", err)
	}
	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("esperar notificación: %w", err)
		}
		s.deliver(ctx, n.Payload)
	}
}

// deliver re-lee la colección notificada y reparte el snapshot completo.
func (s *PostgresStore) deliver(ctx context.Context, collection string) {
	s.mu.Lock()
	fns := make([]func([]Document), 0, len(s.subs[collection]))
	for _, fn := range s.subs[collection] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	if len(fns) == 0 {
		return
	}
	docs, err := s.Collection(collection).GetAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("collection", collection).Msg("releer colección tras NOTIFY")
		return
	}
	for _, fn := range fns {
		fn(docs)
	}
}

// ── Colección ─────────────────────────────────────────────────────────────────

type postgresCollection struct {
	store *PostgresStore
	name  string
}

func (c *postgresCollection) Name() string { return c.name }

func (c *postgresCollection) GetAll(ctx context.Context) ([]Document, error) {
	rows, err := c.store.pool.Query(ctx,
		`SELECT id::text, data FROM documents WHERE collection = $1 ORDER BY seq`, c.name)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", domain.ErrConnection, c.name, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", c.name, err)
		}
		doc, err := UnmarshalDocument(raw)
		if err != nil {
			return nil, err
		}
		doc["id"] = id
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterar %s: %v", domain.ErrConnection, c.name, err)
	}
	if order, ok := c.store.orders[c.name]; ok {
		SortDocuments(docs, order)
	}
	return docs, nil
}

func (c *postgresCollection) GetByID(ctx context.Context, id string) (Document, error) {
	var raw []byte
	err := c.store.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`, c.name, id,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get %s/%s: %v", domain.ErrConnection, c.name, id, err)
	}
	doc, err := UnmarshalDocument(raw)
	if err != nil {
		return nil, err
	}
	doc["id"] = id
	return doc, nil
}

func (c *postgresCollection) Create(ctx context.Context, data Document) (string, error) {
	id := uuid.NewString()
	payload, err := MarshalDocument(data)
	if err != nil {
		return "", fmt.Errorf("serializar documento: %w", err)
	}
	_, err = c.store.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)`,
		c.name, id, payload)
	if err != nil {
		return "", fmt.Errorf("%w: insert %s: %v", domain.ErrConnection, c.name, err)
	}
	return id, nil
}

func (c *postgresCollection) Update(ctx context.Context, id string, patch Document) error {
	clean := make(Document, len(patch))
	for k, v := range patch {
		if k == "id" {
			continue // el id es inmutable una vez asignado
		}
		clean[k] = v
	}
	payload, err := MarshalDocument(clean)
	if err != nil {
		return fmt.Errorf("serializar patch: %w", err)
	}
	tag, err := c.store.pool.Exec(ctx,
		`UPDATE documents SET data = data || $3::jsonb, updated_at = now()
		 WHERE collection = $1 AND id = $2`,
		c.name, id, payload)
	if err != nil {
		return fmt.Errorf("%w: update %s/%s: %v", domain.ErrConnection, c.name, id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *postgresCollection) Delete(ctx context.Context, id string) error {
	// Borrar un id inexistente también es éxito.
	_, err := c.store.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`, c.name, id)
	if err != nil {
		return fmt.Errorf("%w: delete %s/%s: %v", domain.ErrConnection, c.name, id, err)
	}
	return nil
}

func (c *postgresCollection) Subscribe(fn func([]Document)) (Unsubscribe, error) {
	c.store.ensureListener()

	// Snapshot inicial antes de registrar: la primera entrega es inmediata.
	snapshot, err := c.GetAll(context.Background())
	if err != nil {
		return nil, err
	}

	c.store.mu.Lock()
	if c.store.subs[c.name] == nil {
		c.store.subs[c.name] = map[int64]func([]Document){}
	}
	id := c.store.nextSub
	c.store.nextSub++
	c.store.subs[c.name][id] = fn
	c.store.mu.Unlock()

	fn(snapshot)

	var once sync.Once
	unsub := func() {
		once.Do(func() {
			c.store.mu.Lock()
			delete(c.store.subs[c.name], id)
			c.store.mu.Unlock()
		})
	}
	return unsub, nil
}

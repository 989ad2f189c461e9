package state

import "sync"

// Snapshot es lo que reciben los observadores: el estado copiado más un número
// de versión monótono por despacho.
type Snapshot struct {
	Version int64
	State   AppState
}

// Store es el dueño del árbol de estado. Los despachos se serializan con un
// mutex (el reducer nunca corre reentrante ni concurrente); los observadores
// se invocan fuera del lock con una copia del estado.
type Store struct {
	mu       sync.Mutex
	state    AppState
	version  int64
	watchers map[int64]func(Snapshot)
	nextID   int64
}

// NewStore construye el Store con el estado inicial.
func NewStore() *Store {
	return &Store{
		state:    Initial(),
		watchers: map[int64]func(Snapshot){},
	}
}

// Dispatch aplica la acción vía reducer y notifica a los observadores.
func (st *Store) Dispatch(a Action) {
	st.mu.Lock()
	st.state = Reduce(st.state, a)
	st.version++
	snap := Snapshot{Version: st.version, State: st.state.clone()}
	fns := make([]func(Snapshot), 0, len(st.watchers))
	for _, fn := range st.watchers {
		fns = append(fns, fn)
	}
	st.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// State devuelve una copia del estado actual.
func (st *Store) State() AppState {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state.clone()
}

// Version devuelve la versión actual del árbol.
func (st *Store) Version() int64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.version
}

// Watch registra un observador de snapshots y devuelve su cancelación
// (idempotente). Alimenta el stream de eventos de la capa HTTP.
func (st *Store) Watch(fn func(Snapshot)) func() {
	st.mu.Lock()
	id := st.nextID
	st.nextID++
	st.watchers[id] = fn
	st.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			st.mu.Lock()
			delete(st.watchers, id)
			st.mu.Unlock()
		})
	}
}

package state

import "sync"

type Phase int

const (
	BOOTING Phase = iota
	RUNNING
	STOPPED
	ERROR
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "booting"
	case RUNNING:
		return "running"
	case STOPPED:
		return "stopped"
	case ERROR:
		return "error"
	default:
		return "unknown"
	}
}

type Viewport struct {
	Width  int
	Height int
}

type NetworkInfo struct {
	URL string
}

type State struct {
	Phase    Phase
	Viewport Viewport
	Network  NetworkInfo
	// Frames counts display refreshes since start.
	Frames uint64
	Err    string
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: BOOTING}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.mu.Unlock()
}

// Fail moves the store to ERROR and records the cause.
func (store *Store) Fail(err error) {
	store.mu.Lock()
	store.state.Phase = ERROR
	if err != nil {
		store.state.Err = err.Error()
	}
	store.mu.Unlock()
}

func (store *Store) UpdateViewport(viewport Viewport) {
	store.mu.Lock()
	store.state.Viewport = viewport
	store.mu.Unlock()
}

func (store *Store) UpdateNetwork(network NetworkInfo) {
	store.mu.Lock()
	store.state.Network = network
	store.mu.Unlock()
}

func (store *Store) AddFrame() {
	store.mu.Lock()
	store.state.Frames++
	store.mu.Unlock()
}

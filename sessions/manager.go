package sessions

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Snapshot is an immutable view of session state at a point in time. Until
// Ready is true the startup check has not completed and nothing else in the
// Snapshot may be trusted. After that, exactly two shapes are possible:
// {Authenticated: false} with no role, or {Authenticated: true} with the
// role the server assigned at login.
type Snapshot struct {
	Ready         bool
	Authenticated bool
	Role          Role
	Email         string
	UserName      string
}

// IsCreator reports whether the snapshot carries the creator role.
func (s Snapshot) IsCreator() bool {
	return s.Role == RoleCreator
}

// Manager is the single shared source of truth for "is there a session, and
// what can it do." It wraps a Service, adds the loading/ready lifecycle, and
// guarantees that every observable state transition is atomic: a reader sees
// either the state before a login/logout or the state after it, never a
// token without its role.
type Manager struct {
	service *Service
	log     zerolog.Logger

	// mutationMu serializes session-mutating calls. A second Login issued
	// before the first completes waits rather than interleaving.
	mutationMu sync.Mutex

	mu          sync.RWMutex
	snapshot    Snapshot
	watchers    map[int]chan Snapshot
	nextWatcher int

	startOnce sync.Once
}

// NewManager returns a Manager over the given Service. The Manager begins in
// the loading state; call Start to run the startup check.
func NewManager(service *Service, log zerolog.Logger) *Manager {
	return &Manager{
		service:  service,
		log:      log,
		watchers: map[int]chan Snapshot{},
	}
}

// Start performs the one-time startup check: a synchronous read of the
// session store-- no network call-- after which the Manager transitions from
// loading to ready, exactly once. Calling Start again is a no-op.
func (m *Manager) Start() {
	m.startOnce.Do(func() {
		snapshot := m.derive()
		m.log.Debug().
			Bool("authenticated", snapshot.Authenticated).
			Str("role", string(snapshot.Role)).
			Msg("session state resolved")
		m.publish(snapshot)
	})
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// Watch returns a channel that immediately delivers the current Snapshot and
// then delivers every subsequent state transition until ctx is done. The
// channel carries latest-value semantics: a slow consumer observes the
// newest state, never a stale intermediate one.
func (m *Manager) Watch(ctx context.Context) <-chan Snapshot {
	m.mu.Lock()
	id := m.nextWatcher
	m.nextWatcher++
	ch := make(chan Snapshot, 1)
	ch <- m.snapshot
	m.watchers[id] = ch
	m.mu.Unlock()
	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.watchers, id)
		m.mu.Unlock()
	}()
	return ch
}

// Login authenticates against the remote API and, on success, publishes the
// new session state as a single transition. On failure the prior state is
// left untouched and the error is returned for the caller to display.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.mutationMu.Lock()
	defer m.mutationMu.Unlock()
	if err := m.service.Login(ctx, email, password); err != nil {
		return err
	}
	m.publish(m.derive())
	return nil
}

// Register forwards to the Service. Registration never changes session
// state; a successful registration still requires a Login.
func (m *Manager) Register(
	ctx context.Context,
	email string,
	userName string,
	password string,
	role Role,
) error {
	m.mutationMu.Lock()
	defer m.mutationMu.Unlock()
	return m.service.Register(ctx, email, userName, password, role)
}

// Logout clears the session and publishes the logged-out state. It is
// idempotent.
func (m *Manager) Logout() error {
	m.mutationMu.Lock()
	defer m.mutationMu.Unlock()
	if err := m.service.Logout(); err != nil {
		return err
	}
	m.publish(Snapshot{Ready: true})
	return nil
}

// derive computes a ready Snapshot from the store, by way of the Service's
// pure reads. A role is only ever attached to an authenticated snapshot.
func (m *Manager) derive() Snapshot {
	snapshot := Snapshot{Ready: true}
	if !m.service.IsAuthenticated() {
		return snapshot
	}
	snapshot.Authenticated = true
	if role, ok := m.service.CurrentRole(); ok {
		snapshot.Role = role
	}
	snapshot.Email = m.service.CurrentEmail()
	snapshot.UserName = m.service.CurrentUserName()
	return snapshot
}

// publish installs a new Snapshot and notifies every watcher. Stale
// undelivered values are displaced so watchers always see the newest state.
func (m *Manager) publish(snapshot Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = snapshot
	for _, ch := range m.watchers {
		select {
		case <-ch:
		default:
		}
		ch <- snapshot
	}
}

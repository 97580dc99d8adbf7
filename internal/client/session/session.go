// Package session is the single source of truth for "who is logged in".
//
// # Lifecycle
//
// The manager moves through exactly these states:
//
//	Anonymous → Verifying → Authenticated → Anonymous (logout / auth failure)
//
// No transition reaches Authenticated without both a non-nil user and a
// non-empty token set together, and the in-memory copy and the durable
// store are always updated as one unit, never one without the other.
//
// Startup verification is reentrant-safe: concurrent VerifySession calls
// collapse into a single network call and all callers observe the same
// outcome. Authentication failures reported by the transport layer drive
// the machine through HandleAuthFailure, which fires the configured expiry
// hook at most once per expiry.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/monacovault/vaultctl/internal/client/models"
	"github.com/monacovault/vaultctl/internal/client/transport"
	"github.com/monacovault/vaultctl/internal/common"
	"github.com/monacovault/vaultctl/internal/logging"
)

// State names one position in the session lifecycle.
type State string

const (
	StateAnonymous     State = "anonymous"
	StateVerifying     State = "verifying"
	StateAuthenticated State = "authenticated"
)

// API is the subset of the endpoint catalog the manager drives.
type API interface {
	Login(ctx context.Context, email, password string) (*models.LoginResult, error)
	Signup(ctx context.Context, email, password, userName string) (*models.LoginResult, error)
	Verify(ctx context.Context) (*models.LoginResult, error)
	Logout(ctx context.Context) error
	SwitchTenant(ctx context.Context, tenantID string) (*models.LoginResult, error)
}

// Store persists the session durably. Save must write user and token
// atomically; Load returns common.ErrNoSession when nothing is stored.
type Store interface {
	Save(ctx context.Context, user *models.User, token string) error
	Load(ctx context.Context) (*models.User, string, error)
	Clear(ctx context.Context) error
}

// verifyCall is one in-flight verification shared by concurrent callers.
type verifyCall struct {
	done chan struct{}
	err  error
}

// Manager owns the session state. All readers depend on it through its
// methods, never through ambient globals.
type Manager struct {
	mu        sync.Mutex
	api       API
	store     Store
	logger    logging.Logger
	onExpired func(reason string)

	state  State
	user   *models.User
	token  string
	verify *verifyCall
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the diagnostic logger.
func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithExpiryHook registers a callback fired when an authenticated session
// is forcibly cleared (401 or backend redirect). It fires at most once per
// expiry, even when several in-flight calls fail simultaneously.
func WithExpiryHook(fn func(reason string)) Option {
	return func(m *Manager) { m.onExpired = fn }
}

// NewManager returns a Manager in the Anonymous state. BindAPI must be
// called before any operation that talks to the backend.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		logger: logging.NewDiscard(),
		state:  StateAnonymous,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// BindAPI attaches the endpoint catalog. Separate from the constructor
// because the transport's token source points back at this manager.
func (m *Manager) BindAPI(api API) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.api = api
}

// Token returns the current bearer token, or "" when not authenticated.
// Suitable as a transport.TokenSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// User returns the current user, or nil.
func (m *Manager) User() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsAuthenticated reports whether a user and token are both set.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateAuthenticated && m.user != nil && m.token != ""
}

// Bootstrap restores a persisted session at startup. Without a stored token
// the manager stays Anonymous; a locally expired token is discarded without
// a network call; otherwise the stored token is re-verified against the
// backend before any data query is allowed to run.
func (m *Manager) Bootstrap(ctx context.Context) error {
	user, token, err := m.store.Load(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNoSession) {
			return nil
		}
		return err
	}

	if tokenExpired(token) {
		m.logger.Info(ctx, "stored token expired, clearing session")
		return m.store.Clear(ctx)
	}

	m.mu.Lock()
	m.user = user
	m.token = token
	m.state = StateVerifying
	m.mu.Unlock()

	return m.VerifySession(ctx)
}

// Login exchanges credentials for a session. On failure the state is left
// unchanged; no automatic retry is attempted.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	res, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := m.setAuthenticated(ctx, res); err != nil {
		return nil, err
	}
	m.logger.Info(ctx, "logged in", "email", email)
	return res, nil
}

// Signup creates an account and authenticates in one step. The result may
// carry an initial license record for the caller to display.
func (m *Manager) Signup(ctx context.Context, email, password, userName string) (*models.LoginResult, error) {
	res, err := m.api.Signup(ctx, email, password, userName)
	if err != nil {
		return nil, err
	}
	if err := m.setAuthenticated(ctx, res); err != nil {
		return nil, err
	}
	m.logger.Info(ctx, "signed up", "email", email)
	return res, nil
}

// VerifySession exchanges the stored token for a refreshed token and user.
// Concurrent invocations collapse into one network call: the guard is
// checked and set before the call and cleared in a deferred block
// regardless of outcome.
func (m *Manager) VerifySession(ctx context.Context) error {
	m.mu.Lock()
	if c := m.verify; c != nil {
		m.mu.Unlock()
		select {
		case <-c.done:
			return c.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if m.token == "" {
		m.state = StateAnonymous
		m.mu.Unlock()
		return common.ErrNoAccessToken
	}
	c := &verifyCall{done: make(chan struct{})}
	m.verify = c
	m.state = StateVerifying
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.verify = nil
		m.mu.Unlock()
		close(c.done)
	}()

	c.err = m.doVerify(ctx)
	return c.err
}

func (m *Manager) doVerify(ctx context.Context) error {
	res, err := m.api.Verify(ctx)
	if err != nil {
		if errors.Is(err, transport.ErrUnauthorized) {
			m.expire(ctx, "session expired, please log in again")
			return err
		}
		// Fail closed: loading complete, unauthenticated. The durable copy
		// stays so the next startup can retry verification.
		m.mu.Lock()
		m.user = nil
		m.token = ""
		m.state = StateAnonymous
		m.mu.Unlock()
		return err
	}
	if err := m.setAuthenticated(ctx, res); err != nil {
		return err
	}
	m.logger.Info(ctx, "session verified", "user", res.User.Email)
	return nil
}

// Logout best-effort invalidates the server-side session, then
// unconditionally clears memory and durable storage.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.api.Logout(ctx); err != nil {
		m.logger.Warn(ctx, "server-side logout failed", "error", err)
	}

	m.mu.Lock()
	m.user = nil
	m.token = ""
	m.state = StateAnonymous
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	m.logger.Info(ctx, "logged out")
	return nil
}

// SwitchTenant rotates the active tenant and installs the new token. The
// caller is responsible for invalidating tenant-scoped caches afterwards.
func (m *Manager) SwitchTenant(ctx context.Context, tenantID string) (*models.LoginResult, error) {
	res, err := m.api.SwitchTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := m.setAuthenticated(ctx, res); err != nil {
		return nil, err
	}
	m.logger.Info(ctx, "switched tenant", "tenant_id", tenantID)
	return res, nil
}

// HandleAuthFailure drives the forced-expiry transition on a 401 or a
// backend redirect signal. Safe to call from the transport hook; once the
// session is Anonymous, further calls are no-ops, so simultaneous failures
// produce a single expiry event.
func (m *Manager) HandleAuthFailure(reason string) {
	m.expire(context.Background(), reason)
}

// setAuthenticated persists the session and updates memory as one unit.
// When the durable write fails, memory is left untouched so the two copies
// never diverge.
func (m *Manager) setAuthenticated(ctx context.Context, res *models.LoginResult) error {
	if err := m.store.Save(ctx, res.User, res.Token); err != nil {
		return err
	}
	m.mu.Lock()
	m.user = res.User
	m.token = res.Token
	m.state = StateAuthenticated
	m.mu.Unlock()
	return nil
}

func (m *Manager) expire(ctx context.Context, reason string) {
	m.mu.Lock()
	if m.state == StateAnonymous && m.user == nil && m.token == "" {
		m.mu.Unlock()
		return
	}
	m.user = nil
	m.token = ""
	m.state = StateAnonymous
	hook := m.onExpired
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn(ctx, "failed to clear stored session", "error", err)
	}
	m.logger.Info(ctx, "session expired", "reason", reason)
	if hook != nil {
		hook(reason)
	}
}

// tokenExpired peeks at the exp claim without verifying the signature;
// verification is the backend's job. Opaque (non-JWT) tokens are passed
// through to remote verification.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

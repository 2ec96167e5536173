// Package session holds the signed-in identity of the running client and keeps
// it in step with the auth server.
package session

import (
	"context"
	"hostel/infras/gotrue"
	authModel "hostel/internal/domains/auth/model"
	authDto "hostel/internal/domains/auth/model/dto"
	authService "hostel/internal/domains/auth/service"
	profileModel "hostel/internal/domains/profile/model"
	profileDto "hostel/internal/domains/profile/model/dto"
	profileService "hostel/internal/domains/profile/service"
	"hostel/shared/failure"
	"hostel/shared/metrics"
	"sync"

	"github.com/rs/zerolog/log"
)

type Status string

const (
	StatusAuthenticating  Status = "authenticating"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// State is one immutable snapshot. A set User with a nil Profile is the degraded
// state: the identity is known but its profile could not be loaded.
type State struct {
	User    *authModel.AuthenticatedUser
	Profile *profileModel.Profile
	Loading bool
}

func (s State) Status() Status {
	switch {
	case s.Loading:
		return StatusAuthenticating
	case s.User != nil:
		return StatusAuthenticated
	default:
		return StatusUnauthenticated
	}
}

type Listener func(State)

type Manager struct {
	auth     authService.Auth
	profiles profileService.Profile

	mu        sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int
	sub       *gotrue.Subscription
}

func New(auth authService.Auth, profiles profileService.Profile) *Manager {
	return &Manager{
		auth:      auth,
		profiles:  profiles,
		state:     State{Loading: true},
		listeners: map[int]Listener{},
	}
}

// Start subscribes to auth changes and resumes a prior session. Resumption never
// fails: without a usable session, or without its profile, the manager settles in
// StatusUnauthenticated.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.sub == nil {
		m.sub = m.auth.OnAuthStateChange(m.handleAuthChange)
	}
	m.mu.Unlock()

	sess, err := m.auth.Session(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not resume session")
	}

	if err != nil || sess == nil {
		m.replace(State{})

		return
	}

	resumed := m.hydrateProfile(ctx, sess.User)
	if resumed.Profile == nil {
		m.replace(State{})

		return
	}

	m.replace(resumed)
}

// Close stops listening to the auth server and drops every OnChange listener.
func (m *Manager) Close() {
	m.mu.Lock()
	sub := m.sub
	m.sub = nil
	m.listeners = map[int]Listener{}
	m.mu.Unlock()

	sub.Unsubscribe()
}

func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.setLoading(true)

	sess, err := m.auth.SignIn(ctx, email, password)
	if err != nil {
		m.replace(State{})

		return err //nolint:wrapcheck
	}

	m.replace(m.hydrateProfile(ctx, sess.User))

	return nil
}

// Register creates the account and its profile. It does not sign in: the state
// only becomes authenticated through a later Login or a SIGNED_IN notification.
func (m *Manager) Register(ctx context.Context, reg authDto.Registration, password string) error {
	m.setLoading(true)
	defer m.setLoading(false)

	_, err := m.auth.SignUp(ctx, reg, password)

	return err //nolint:wrapcheck
}

// Logout always ends unauthenticated. A failed remote sign-out is still returned.
func (m *Manager) Logout(ctx context.Context) error {
	m.setLoading(true)

	err := m.auth.SignOut(ctx)

	m.replace(State{})

	return err //nolint:wrapcheck
}

// UpdateProfile writes the change for the signed-in user and swaps the result
// into the held profile and the user's profile in one state replacement.
func (m *Manager) UpdateProfile(ctx context.Context, req profileDto.UpdateProfileRequest) (*profileModel.Profile, error) {
	current := m.State()
	if current.User == nil {
		return nil, failure.ErrNoSession
	}

	updated, err := m.profiles.Update(ctx, current.User.ID, req)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	m.update(func(s *State) {
		if s.User == nil || s.User.ID != current.User.ID {
			return
		}

		profile := updated
		user := *s.User
		user.Profile = &profile
		s.User = &user
		s.Profile = &profile
	})

	return &updated, nil
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state
}

func (m *Manager) Status() Status {
	return m.State().Status()
}

func (m *Manager) User() *authModel.AuthenticatedUser {
	return m.State().User
}

func (m *Manager) Profile() *profileModel.Profile {
	return m.State().Profile
}

func (m *Manager) IsAuthenticated() bool {
	return m.State().User != nil
}

func (m *Manager) IsLoading() bool {
	return m.State().Loading
}

// OnChange registers fn to run after every state replacement. Calling the
// returned func removes it.
func (m *Manager) OnChange(fn Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		delete(m.listeners, id)
	}
}

func (m *Manager) handleAuthChange(event gotrue.AuthChangeEvent, sess *gotrue.Session) {
	if event == gotrue.EventSignedOut || sess == nil {
		m.replace(State{})

		return
	}

	m.replace(m.hydrateProfile(context.Background(), sess.User))
}

// hydrateProfile loads the profile of user. A failed load yields the degraded state.
func (m *Manager) hydrateProfile(ctx context.Context, user gotrue.User) State {
	profile, err := m.profiles.GetByID(ctx, user.ID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("profile unavailable, continuing without it")

		return State{User: &authModel.AuthenticatedUser{User: user}}
	}

	return State{
		User:    &authModel.AuthenticatedUser{User: user, Profile: &profile},
		Profile: &profile,
	}
}

func (m *Manager) setLoading(loading bool) {
	m.update(func(s *State) {
		s.Loading = loading
	})
}

func (m *Manager) replace(next State) {
	m.update(func(s *State) {
		*s = next
	})
}

// update applies change under the lock, then notifies listeners outside it.
func (m *Manager) update(change func(*State)) {
	m.mu.Lock()

	before := m.state.Status()
	change(&m.state)
	snapshot := m.state

	listeners := make([]Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	if status := snapshot.Status(); status != before {
		metrics.ObserveSession(string(status))
	}

	for _, fn := range listeners {
		fn(snapshot)
	}
}

// Package state holds the session's shared mutable state: who is signed in
// and the entity snapshots the views render. Both containers follow
// confirm-then-update: a mutation goes to the backend first and the
// in-memory snapshot changes only after it succeeds.
package state

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/hivecastapp/hivecast/internal/backend"
	"github.com/hivecastapp/hivecast/pkg/client"
	"github.com/hivecastapp/hivecast/pkg/domain"
	"github.com/hivecastapp/hivecast/pkg/store"
	"github.com/hivecastapp/hivecast/pkg/store/localstore"
)

// AuthStatus is the session's authentication state. It starts Unknown and
// resolves exactly once, at Init, to Anonymous or Authenticated.
type AuthStatus int

const (
	StatusUnknown AuthStatus = iota
	StatusAnonymous
	StatusAuthenticated
)

func (s AuthStatus) String() string {
	switch s {
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// localUserID is the fixed identity of the local-mode account. Local mode
// has no real credential check; any login succeeds and maps to this user.
const localUserID = "local-user"

// AuthSession is the auth state container. All methods are safe for
// concurrent use; command goroutines from the UI call into it freely.
type AuthSession struct {
	backend   *backend.Backend
	tokenPath string
	log       *zap.Logger

	mu      sync.Mutex
	status  AuthStatus
	user    *domain.UserProfile
	profile *domain.UserProfile
}

// NewAuthSession creates an unresolved session. Call Init before reading
// the status.
func NewAuthSession(b *backend.Backend, tokenPath string, log *zap.Logger) *AuthSession {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthSession{
		backend:   b,
		tokenPath: tokenPath,
		log:       log,
		status:    StatusUnknown,
	}
}

// Init resolves the initial auth state. In remote mode it validates the
// stored token against the API; in local mode it restores the persisted
// local identity. A stale token is dropped silently and the session starts
// anonymous.
func (s *AuthSession) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backend.Mode == store.ModeRemote {
		return s.initRemote(ctx)
	}
	return s.initLocal(ctx)
}

func (s *AuthSession) initRemote(ctx context.Context) error {
	data, err := os.ReadFile(s.tokenPath)
	if err != nil {
		s.status = StatusAnonymous
		return nil
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		s.status = StatusAnonymous
		return nil
	}

	s.backend.Client.SetToken(token)
	me, err := s.backend.Client.Me(ctx)
	if err != nil {
		if client.IsAuthFailure(err) {
			s.log.Info("stored token rejected, starting anonymous")
			s.backend.Client.SetToken("")
			os.Remove(s.tokenPath) //nolint:errcheck
			s.status = StatusAnonymous
			return nil
		}
		return fmt.Errorf("state: validate session: %w", err)
	}
	s.finishSignIn(ctx, me)
	return nil
}

func (s *AuthSession) initLocal(ctx context.Context) error {
	var user domain.UserProfile
	if !s.backend.Local.Load(localstore.NSUser, &user) || user.UID == "" {
		s.status = StatusAnonymous
		return nil
	}
	s.finishSignIn(ctx, &user)
	return nil
}

// finishSignIn installs the base identity, overlays the extended profile
// when one exists, and flips the session to authenticated. Callers hold mu.
func (s *AuthSession) finishSignIn(ctx context.Context, user *domain.UserProfile) {
	s.user = user
	merged := *user
	if profile, err := s.backend.Store.Profile(ctx, user.UID); err != nil {
		s.log.Warn("profile load failed, using base identity", zap.Error(err))
	} else if profile != nil {
		merged = mergeProfile(*user, *profile)
		s.profile = profile
	}
	s.user = &merged
	s.status = StatusAuthenticated
}

// mergeProfile overlays the stored profile on the base identity. Identity
// fields win when the profile leaves them blank.
func mergeProfile(base, profile domain.UserProfile) domain.UserProfile {
	out := profile
	out.UID = base.UID
	if out.Email == "" {
		out.Email = base.Email
	}
	if out.DisplayName == "" {
		out.DisplayName = base.DisplayName
	}
	if out.PhotoURL == "" {
		out.PhotoURL = base.PhotoURL
	}
	return out
}

// Login signs in. Remote mode exchanges the credentials for a token and
// persists it; local mode accepts anything and builds the fixed local
// identity from the email.
func (s *AuthSession) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backend.Mode == store.ModeRemote {
		auth, err := s.backend.Client.Login(ctx, email, password)
		if err != nil {
			return fmt.Errorf("state: login: %w", err)
		}
		return s.installRemoteSession(ctx, auth)
	}
	return s.installLocalSession(ctx, email, "")
}

// Register creates an account and signs in. Local mode behaves exactly
// like Login except the chosen display name sticks.
func (s *AuthSession) Register(ctx context.Context, email, password, displayName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backend.Mode == store.ModeRemote {
		auth, err := s.backend.Client.Register(ctx, email, password, displayName)
		if err != nil {
			return fmt.Errorf("state: register: %w", err)
		}
		return s.installRemoteSession(ctx, auth)
	}
	return s.installLocalSession(ctx, email, displayName)
}

func (s *AuthSession) installRemoteSession(ctx context.Context, auth *client.AuthResponse) error {
	if err := os.WriteFile(s.tokenPath, []byte(auth.Token+"\n"), 0600); err != nil {
		return fmt.Errorf("state: persist token: %w", err)
	}
	s.backend.Client.SetToken(auth.Token)
	user := auth.User
	s.finishSignIn(ctx, &user)
	return nil
}

func (s *AuthSession) installLocalSession(ctx context.Context, email, displayName string) error {
	if displayName == "" {
		displayName = email
		if at := strings.IndexByte(email, '@'); at > 0 {
			displayName = email[:at]
		}
	}
	user := domain.UserProfile{
		UID:         localUserID,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   domain.Now(),
		UpdatedAt:   domain.Now(),
	}
	if err := s.backend.Local.SaveAll(localstore.NSUser, user); err != nil {
		return fmt.Errorf("state: persist local identity: %w", err)
	}
	s.finishSignIn(ctx, &user)
	return nil
}

// Logout drops the session. Entity data is untouched; only the identity
// and, in remote mode, the stored token go away.
func (s *AuthSession) Logout(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backend.Mode == store.ModeRemote {
		s.backend.Client.SetToken("")
		if err := os.Remove(s.tokenPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("state: remove token: %w", err)
		}
	} else {
		if err := s.backend.Local.Remove(localstore.NSUser); err != nil {
			return fmt.Errorf("state: remove local identity: %w", err)
		}
	}
	s.status = StatusAnonymous
	s.user = nil
	s.profile = nil
	return nil
}

// UpdateProfile patches the signed-in user's profile through the active
// store, then re-reads it so the snapshot reflects what was persisted.
func (s *AuthSession) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusAuthenticated || s.user == nil {
		return fmt.Errorf("state: not signed in")
	}
	uid := s.user.UID

	if s.profile == nil {
		base := *s.user
		patch.Apply(&base)
		if err := s.backend.Store.SaveProfile(ctx, base); err != nil {
			return fmt.Errorf("state: save profile: %w", err)
		}
	} else if err := s.backend.Store.UpdateProfile(ctx, uid, patch); err != nil {
		return fmt.Errorf("state: update profile: %w", err)
	}

	profile, err := s.backend.Store.Profile(ctx, uid)
	if err != nil {
		return fmt.Errorf("state: reload profile: %w", err)
	}
	if profile != nil {
		s.profile = profile
		merged := mergeProfile(*s.user, *profile)
		s.user = &merged
	}
	return nil
}

// Status returns the resolved auth state.
func (s *AuthSession) Status() AuthStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// User returns a copy of the signed-in user's merged profile, or nil when
// anonymous.
func (s *AuthSession) User() *domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

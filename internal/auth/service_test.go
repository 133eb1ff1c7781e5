package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"element-quiz-service/internal/domain"
	"element-quiz-service/internal/infra/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, identities IdentityStore, opts Options) *Service {
	t.Helper()
	if identities == nil {
		identities = memory.NewIdentityStore()
	}
	if opts.Secret == "" {
		opts.Secret = "test-secret"
	}
	opts.BcryptCost = bcrypt.MinCost
	svc, err := NewService(identities, memory.NewRevocationStore(), nil, opts)
	require.NoError(t, err)
	return svc
}

var aliceInput = SignUpInput{Email: "alice@example.com", Password: "hunter22", Username: "alice"}

func TestSignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil, Options{})

	profile, err := svc.SignUp(ctx, aliceInput)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.NotEmpty(t, profile.ID)

	session, err := svc.SignIn(ctx, "Alice@Example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, session.Principal.UserID)
	assert.True(t, session.Principal.Authenticated)

	principal, err := svc.Verify(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Principal, principal)
}

func TestSignUpRejectsDuplicatesAndBadInput(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil, Options{})

	_, err := svc.SignUp(ctx, aliceInput)
	require.NoError(t, err)

	dup := aliceInput
	dup.Email = "ALICE@example.com"
	_, err = svc.SignUp(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)

	_, err = svc.SignUp(ctx, SignUpInput{Email: "not-an-email", Password: "hunter22", Username: "bob"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.SignUp(ctx, SignUpInput{Email: "bob@example.com", Password: "123", Username: "bob"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSignInBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil, Options{})
	_, _ = svc.SignUp(ctx, aliceInput)

	_, err := svc.SignIn(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignUpCompensatesFailedProfile(t *testing.T) {
	ctx := context.Background()
	store := &flakyIdentityStore{IdentityStore: memory.NewIdentityStore(), failProfile: true}
	svc := newTestService(t, store, Options{})

	_, err := svc.SignUp(ctx, aliceInput)
	require.Error(t, err)
	_, err = store.FindIdentityByEmail(ctx, aliceInput.Email)
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound, "identity should be rolled back")

	store.failDelete = true
	_, err = svc.SignUp(ctx, aliceInput)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create profile")
	assert.Contains(t, err.Error(), "delete identity")
}

func TestSignOutRevokesAndPublishes(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil, Options{})
	_, _ = svc.SignUp(ctx, aliceInput)
	session, err := svc.SignIn(ctx, aliceInput.Email, aliceInput.Password)
	require.NoError(t, err)

	events, cancel := svc.Subscribe()
	defer cancel()

	require.NoError(t, svc.SignOut(ctx, session.Token))

	ev := <-events
	assert.Equal(t, domain.SessionSignedOut, ev.Type)
	assert.Equal(t, session.Principal.UserID, ev.UserID)

	_, err = svc.Verify(ctx, session.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	err = svc.SignOut(ctx, session.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyRejectsForeignAndExpiredTokens(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	identities := memory.NewIdentityStore()
	svc := newTestService(t, identities, Options{TokenTTL: time.Hour, Clock: clock})
	_, _ = svc.SignUp(ctx, aliceInput)
	session, err := svc.SignIn(ctx, aliceInput.Email, aliceInput.Password)
	require.NoError(t, err)

	other := newTestService(t, identities, Options{Secret: "another-secret", Clock: clock})
	_, err = other.Verify(ctx, session.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = svc.Verify(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	now = now.Add(2 * time.Hour)
	_, err = svc.Verify(ctx, session.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestOAuthRedirectURL(t *testing.T) {
	svc := newTestService(t, nil, Options{})
	got, err := svc.OAuthRedirectURL("google", "http://localhost:5173/play?x=1")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5173/auth/callback", got)

	_, err = svc.OAuthRedirectURL("github", "http://localhost:5173")
	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)

	_, err = svc.OAuthRedirectURL("google", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	configured := newTestService(t, nil, Options{RedirectBaseURL: "https://quiz.example.com/"})
	got, err = configured.OAuthRedirectURL("Google", "http://localhost:5173")
	require.NoError(t, err)
	assert.Equal(t, "https://quiz.example.com/auth/callback", got)
}

func TestNewServiceRequiresSecret(t *testing.T) {
	_, err := NewService(memory.NewIdentityStore(), memory.NewRevocationStore(), nil, Options{})
	assert.Error(t, err)
}

func TestNotifierDropsOldestForSlowSubscribers(t *testing.T) {
	n := newNotifier()
	ch, cancel := n.subscribe()

	for i := 0; i < 20; i++ {
		n.publish(domain.SessionEvent{Type: domain.SessionSignedIn, UserID: string(rune('a' + i))})
	}
	first := <-ch
	assert.Equal(t, string(rune('a'+12)), first.UserID, "oldest events should be dropped")

	cancel()
	cancel()
	n.publish(domain.SessionEvent{Type: domain.SessionSignedOut})
	for range ch {
	}
}

type flakyIdentityStore struct {
	*memory.IdentityStore
	failProfile bool
	failDelete  bool
}

func (s *flakyIdentityStore) CreateProfile(ctx context.Context, profile domain.Profile) error {
	if s.failProfile {
		return errors.New("profiles table unavailable")
	}
	return s.IdentityStore.CreateProfile(ctx, profile)
}

func (s *flakyIdentityStore) DeleteIdentity(ctx context.Context, id string) error {
	if s.failDelete {
		return errors.New("identities table unavailable")
	}
	return s.IdentityStore.DeleteIdentity(ctx, id)
}

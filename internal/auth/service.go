package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"element-quiz-service/internal/domain"
	"element-quiz-service/internal/platform/logger"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const callbackPath = "/auth/callback"

// IdentityStore persists credentials and public profiles.
type IdentityStore interface {
	CreateIdentity(ctx context.Context, identity domain.Identity) error
	FindIdentityByEmail(ctx context.Context, email string) (domain.Identity, error)
	DeleteIdentity(ctx context.Context, id string) error
	CreateProfile(ctx context.Context, profile domain.Profile) error
	GetProfile(ctx context.Context, id string) (domain.Profile, error)
}

// RevocationStore remembers signed-out token ids until they would have expired.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Options configure token issuing.
type Options struct {
	Secret          string
	TokenTTL        time.Duration
	RedirectBaseURL string
	BcryptCost      int
	Clock           func() time.Time
}

// Session is the result of a successful sign-in.
type Session struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Principal domain.Principal `json:"principal"`
	Profile   domain.Profile   `json:"profile"`
}

type SignUpInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Username string `json:"username" validate:"required,min=2,max=32"`
}

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service is the identity provider: accounts, JWT sessions and the
// session-change stream the game service listens to.
type Service struct {
	identities IdentityStore
	revoked    RevocationStore
	log        *logger.Logger
	validate   *validator.Validate
	secret     []byte
	ttl        time.Duration
	redirect   string
	cost       int
	now        func() time.Time
	events     *notifier
}

func NewService(identities IdentityStore, revoked RevocationStore, log *logger.Logger, opts Options) (*Service, error) {
	if opts.Secret == "" {
		return nil, errors.New("auth: jwt secret is required")
	}
	if log == nil {
		log = logger.Nop()
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Service{
		identities: identities,
		revoked:    revoked,
		log:        log,
		validate:   validator.New(),
		secret:     []byte(opts.Secret),
		ttl:        opts.TokenTTL,
		redirect:   strings.TrimRight(opts.RedirectBaseURL, "/"),
		cost:       opts.BcryptCost,
		now:        opts.Clock,
		events:     newNotifier(),
	}, nil
}

// SignUp creates an identity and its profile. If the profile cannot be created
// the identity is deleted again.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (domain.Profile, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	if err := s.validate.Struct(in); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("hash password: %w", err)
	}
	now := s.now().UTC()
	identity := domain.Identity{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	if err := s.identities.CreateIdentity(ctx, identity); err != nil {
		return domain.Profile{}, err
	}

	profile := domain.Profile{ID: identity.ID, Username: in.Username, CreatedAt: now}
	if err := s.identities.CreateProfile(ctx, profile); err != nil {
		if delErr := s.identities.DeleteIdentity(ctx, identity.ID); delErr != nil {
			s.log.Error("orphaned identity after profile failure", "user_id", identity.ID, "error", delErr)
			return domain.Profile{}, errors.Join(fmt.Errorf("create profile: %w", err), fmt.Errorf("delete identity: %w", delErr))
		}
		return domain.Profile{}, fmt.Errorf("create profile: %w", err)
	}
	s.log.Info("account created", "user_id", identity.ID)
	return profile, nil
}

// SignIn checks credentials and issues a signed token.
func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	identity, err := s.identities.FindIdentityByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, domain.ErrIdentityNotFound) {
		return Session{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return Session{}, domain.ErrInvalidCredentials
	}

	profile, err := s.identities.GetProfile(ctx, identity.ID)
	if err != nil {
		return Session{}, fmt.Errorf("get profile: %w", err)
	}

	now := s.now()
	expires := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: profile.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}

	s.events.publish(domain.SessionEvent{Type: domain.SessionSignedIn, UserID: identity.ID, At: now})
	return Session{
		Token:     signed,
		ExpiresAt: expires,
		Principal: domain.Principal{UserID: identity.ID, Username: profile.Username, Authenticated: true},
		Profile:   profile,
	}, nil
}

// Verify resolves a token to the principal it was issued for.
func (s *Service) Verify(ctx context.Context, token string) (domain.Principal, error) {
	c, err := s.parse(token)
	if err != nil {
		return domain.Guest, err
	}
	revoked, err := s.revoked.IsRevoked(ctx, c.ID)
	if err != nil {
		return domain.Guest, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return domain.Guest, domain.ErrInvalidToken
	}
	return domain.Principal{UserID: c.Subject, Username: c.Username, Authenticated: true}, nil
}

// SignOut revokes the token and tells subscribers the user left.
func (s *Service) SignOut(ctx context.Context, token string) error {
	principal, err := s.Verify(ctx, token)
	if err != nil {
		return err
	}
	c, err := s.parse(token)
	if err != nil {
		return err
	}
	if err := s.revoked.Revoke(ctx, c.ID, c.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.events.publish(domain.SessionEvent{Type: domain.SessionSignedOut, UserID: principal.UserID, At: s.now()})
	return nil
}

// OAuthRedirectURL returns where the provider should send the user back to.
// The configured base URL wins over the request origin.
func (s *Service) OAuthRedirectURL(provider, origin string) (string, error) {
	if !strings.EqualFold(provider, "google") {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, provider)
	}
	base := s.redirect
	if base == "" {
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return "", fmt.Errorf("%w: origin %q", domain.ErrInvalidInput, origin)
		}
		base = u.Scheme + "://" + u.Host
	}
	return base + callbackPath, nil
}

// Subscribe streams session changes. Slow subscribers lose the oldest events.
func (s *Service) Subscribe() (<-chan domain.SessionEvent, func()) {
	return s.events.subscribe()
}

func (s *Service) parse(token string) (*claims, error) {
	c := &claims{}
	parsed, err := jwt.ParseWithClaims(token, c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid || c.Subject == "" || c.ID == "" {
		return nil, domain.ErrInvalidToken
	}
	return c, nil
}

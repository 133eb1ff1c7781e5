package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"element-quiz-service/internal/domain"
)

// IdentityStore keeps identities and profiles in process.
type IdentityStore struct {
	mu         sync.RWMutex
	identities map[string]domain.Identity // by id
	byEmail    map[string]string
	profiles   map[string]domain.Profile
}

func NewIdentityStore() *IdentityStore {
	return &IdentityStore{
		identities: make(map[string]domain.Identity),
		byEmail:    make(map[string]string),
		profiles:   make(map[string]domain.Profile),
	}
}

func (s *IdentityStore) CreateIdentity(_ context.Context, identity domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(identity.Email)
	if _, ok := s.byEmail[email]; ok {
		return domain.ErrDuplicateAccount
	}
	s.identities[identity.ID] = identity
	s.byEmail[email] = identity.ID
	return nil
}

func (s *IdentityStore) FindIdentityByEmail(_ context.Context, email string) (domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return domain.Identity{}, domain.ErrIdentityNotFound
	}
	return s.identities[id], nil
}

func (s *IdentityStore) DeleteIdentity(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity, ok := s.identities[id]
	if !ok {
		return domain.ErrIdentityNotFound
	}
	delete(s.identities, id)
	delete(s.byEmail, strings.ToLower(identity.Email))
	return nil
}

func (s *IdentityStore) CreateProfile(_ context.Context, profile domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	s.profiles[profile.ID] = profile
	return nil
}

func (s *IdentityStore) GetProfile(_ context.Context, id string) (domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[id]
	if !ok {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	return profile, nil
}

// RevocationStore remembers revoked token ids until they expire.
type RevocationStore struct {
	mu      sync.Mutex
	clock   func() time.Time
	revoked map[string]time.Time
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{
		clock:   time.Now,
		revoked: make(map[string]time.Time),
	}
}

func (s *RevocationStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = until
	return nil
}

func (s *RevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !until.After(s.clock()) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"element-quiz-service/internal/domain"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const uniqueViolation = "23505"

// IdentityStore keeps identities and profiles in Postgres.
type IdentityStore struct {
	pool *pgxpool.Pool
}

func NewIdentityStore(pool *pgxpool.Pool) *IdentityStore {
	return &IdentityStore{pool: pool}
}

func (s *IdentityStore) CreateIdentity(ctx context.Context, identity domain.Identity) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO identities (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		identity.ID, identity.Email, identity.PasswordHash, identity.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrDuplicateAccount
	}
	if err != nil {
		return fmt.Errorf("create identity: %w", err)
	}
	return nil
}

func (s *IdentityStore) FindIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	var identity domain.Identity
	err := s.pool.QueryRow(ctx,
		`SELECT id::text, email, password_hash, created_at FROM identities WHERE LOWER(email)=LOWER($1)`, email,
	).Scan(&identity.ID, &identity.Email, &identity.PasswordHash, &identity.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Identity{}, domain.ErrIdentityNotFound
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("find identity: %w", err)
	}
	return identity, nil
}

func (s *IdentityStore) DeleteIdentity(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM identities WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

func (s *IdentityStore) CreateProfile(ctx context.Context, profile domain.Profile) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (id, username, avatar_url, created_at) VALUES ($1, $2, $3, $4)`,
		profile.ID, profile.Username, profile.AvatarURL, profile.CreatedAt)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (s *IdentityStore) GetProfile(ctx context.Context, id string) (domain.Profile, error) {
	var profile domain.Profile
	err := s.pool.QueryRow(ctx,
		`SELECT id::text, username, avatar_url, created_at FROM profiles WHERE id=$1`, id,
	).Scan(&profile.ID, &profile.Username, &profile.AvatarURL, &profile.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

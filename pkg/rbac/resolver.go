package rbac

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	// ErrRoleNotFound is returned by AssertActive when the role id does not
	// exist in the store.
	ErrRoleNotFound = errors.New("role not found")

	// ErrRoleInactive is returned by AssertActive when the role exists but
	// is disabled.
	ErrRoleInactive = errors.New("role is inactive")
)

// Role is a named permission bucket referenced by accounts.
type Role struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// RoleStore is the persistence contract for role lookups.
type RoleStore interface {
	// GetRoleByID returns (nil, nil) when no role has the id.
	GetRoleByID(ctx context.Context, roleID int64) (*Role, error)
}

// defaultCacheSize is far above any realistic role count; the cache behaves
// as append-only in practice.
const defaultCacheSize = 1024

// Resolver maps role ids to role records with a process-lifetime cache.
// It is constructed once at startup and injected wherever roles are
// resolved, so tests can seed or clear the cache explicitly.
type Resolver struct {
	store RoleStore
	cache *lru.Cache[int64, *Role]
}

// NewResolver creates a resolver backed by the given store.
func NewResolver(store RoleStore) (*Resolver, error) {
	cache, err := lru.New[int64, *Role](defaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create role cache: %w", err)
	}
	return &Resolver{store: store, cache: cache}, nil
}

// Resolve returns the role for the id, consulting the cache first. Absence
// is not an error: a missing role returns (nil, nil). Concurrent resolutions
// of the same uncached id may race to populate the cache; the overwrite is
// idempotent.
func (r *Resolver) Resolve(ctx context.Context, roleID int64) (*Role, error) {
	if role, ok := r.cache.Get(roleID); ok {
		return role, nil
	}
	role, err := r.store.GetRoleByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, nil
	}
	r.cache.Add(roleID, role)
	return role, nil
}

// AssertActive resolves the role and guarantees it is usable: it fails with
// ErrRoleNotFound when absent and ErrRoleInactive when disabled.
func (r *Resolver) AssertActive(ctx context.Context, roleID int64) (*Role, error) {
	role, err := r.Resolve(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}
	if !role.IsActive {
		return nil, ErrRoleInactive
	}
	return role, nil
}

// Seed preloads a role into the cache.
func (r *Resolver) Seed(role *Role) {
	r.cache.Add(role.ID, role)
}

// Purge empties the cache, forcing subsequent resolutions back to the store.
func (r *Resolver) Purge() {
	r.cache.Purge()
}

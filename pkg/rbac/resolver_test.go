package rbac

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore records how many times each role id is fetched.
type countingStore struct {
	roles map[int64]*Role
	calls map[int64]int
	err   error
}

func newCountingStore(roles ...*Role) *countingStore {
	s := &countingStore{roles: make(map[int64]*Role), calls: make(map[int64]int)}
	for _, r := range roles {
		s.roles[r.ID] = r
	}
	return s
}

func (s *countingStore) GetRoleByID(_ context.Context, roleID int64) (*Role, error) {
	s.calls[roleID]++
	if s.err != nil {
		return nil, s.err
	}
	return s.roles[roleID], nil
}

func TestResolver_ResolveCachesForever(t *testing.T) {
	store := newCountingStore(&Role{ID: 1, Name: "Admin", IsActive: true})
	resolver, err := NewResolver(store)
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		role, err := resolver.Resolve(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, role)
		assert.Equal(t, "Admin", role.Name)
	}

	// only the first resolution hits the store
	assert.Equal(t, 1, store.calls[1])
}

func TestResolver_AbsentRoleIsNotAnError(t *testing.T) {
	store := newCountingStore()
	resolver, err := NewResolver(store)
	require.NoError(t, err)

	role, err := resolver.Resolve(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, role)

	// misses are not cached; the store is consulted again
	_, _ = resolver.Resolve(context.Background(), 42)
	assert.Equal(t, 2, store.calls[42])
}

func TestResolver_StoreErrorPropagates(t *testing.T) {
	store := newCountingStore()
	store.err = errors.New("connection refused")
	resolver, err := NewResolver(store)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), 1)
	assert.Error(t, err)
}

func TestResolver_AssertActive(t *testing.T) {
	store := newCountingStore(
		&Role{ID: 1, Name: "Admin", IsActive: true},
		&Role{ID: 2, Name: "Retired", IsActive: false},
	)
	resolver, err := NewResolver(store)
	require.NoError(t, err)

	ctx := context.Background()

	role, err := resolver.AssertActive(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Admin", role.Name)

	_, err = resolver.AssertActive(ctx, 2)
	assert.ErrorIs(t, err, ErrRoleInactive)

	_, err = resolver.AssertActive(ctx, 99)
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestResolver_SeedAvoidsStoreEntirely(t *testing.T) {
	store := newCountingStore()
	resolver, err := NewResolver(store)
	require.NoError(t, err)

	resolver.Seed(&Role{ID: 7, Name: "Analyst", IsActive: true})

	role, err := resolver.Resolve(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Analyst", role.Name)
	assert.Zero(t, store.calls[7])
}

func TestResolver_PurgeForcesRefetch(t *testing.T) {
	store := newCountingStore(&Role{ID: 1, Name: "Admin", IsActive: true})
	resolver, err := NewResolver(store)
	require.NoError(t, err)

	ctx := context.Background()
	_, _ = resolver.Resolve(ctx, 1)
	resolver.Purge()
	_, _ = resolver.Resolve(ctx, 1)

	assert.Equal(t, 2, store.calls[1])
}

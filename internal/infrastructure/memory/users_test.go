package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/Vishal-43/img-craft/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, r *UserRepo) *domain.User {
	t.Helper()
	u := &domain.User{UserID: "u1", Username: "alice", Email: "a@b.com", PasswordHash: "h", Status: domain.StatusUnverified}
	require.NoError(t, r.Put(context.Background(), u))
	return u
}

func TestPut_ThenLookups(t *testing.T) {
	r := NewUserRepo()
	seed(t, r)
	ctx := context.Background()

	byEmail, err := r.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.UserID)

	byName, err := r.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", byName.Email)
}

func TestPut_DuplicateEmailOrUsername(t *testing.T) {
	r := NewUserRepo()
	seed(t, r)
	ctx := context.Background()

	err := r.Put(ctx, &domain.User{UserID: "u2", Username: "bob", Email: "a@b.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = r.Put(ctx, &domain.User{UserID: "u3", Username: "alice", Email: "c@d.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestGet_Missing(t *testing.T) {
	r := NewUserRepo()
	_, err := r.GetByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReturnedUserIsACopy(t *testing.T) {
	r := NewUserRepo()
	seed(t, r)
	u, err := r.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	u.PasswordHash = "tampered"

	again, err := r.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "h", again.PasswordHash)
}

func TestUpdate(t *testing.T) {
	r := NewUserRepo()
	seed(t, r)
	ctx := context.Background()

	require.NoError(t, r.Update(ctx, "u1", map[string]interface{}{
		"verification_status": "verified",
		"password_hash":       "h2",
	}))
	u, err := r.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.True(t, u.Verified())
	assert.Equal(t, "h2", u.PasswordHash)
	assert.False(t, u.UpdatedAt.IsZero())

	assert.ErrorIs(t, r.Update(ctx, "ghost", map[string]interface{}{"password_hash": "x"}), domain.ErrNotFound)
	assert.Error(t, r.Update(ctx, "u1", map[string]interface{}{"email": "x"}))
}

func TestConcurrentAccess(t *testing.T) {
	r := NewUserRepo()
	seed(t, r)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = r.Update(ctx, "u1", map[string]interface{}{"password_hash": "x"})
		}()
		go func() {
			defer wg.Done()
			_, _ = r.GetByEmail(ctx, "a@b.com")
		}()
	}
	wg.Wait()
}

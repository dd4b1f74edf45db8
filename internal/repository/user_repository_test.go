package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-schema/internal/model"
	"github.com/d60-Lab/social-schema/pkg/apperr"
)

func TestUserRepository_CreateAndSerialize(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &model.User{Username: "alice", Password: "h", IsActive: true}
	require.NoError(t, repo.Create(ctx, u))
	assert.Positive(t, u.ID)
	assert.False(t, u.SignupDate.IsZero())

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)

	s := got.Serialize()
	assert.Equal(t, u.ID, s["id"])
	assert.Equal(t, "alice", s["username"])
	assert.Equal(t, true, s["is_active"])
	assert.NotContains(t, s, "password")

	ts, ok := s["signup_date"].(string)
	require.True(t, ok)
	parsed, err := time.Parse(model.TimeLayout, ts)
	require.NoError(t, err)
	assert.WithinDuration(t, u.SignupDate, parsed, time.Microsecond)
}

func TestUserRepository_UniqueUsername(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, model.NewUser("alice", "h", true, time.Now())))
	err := repo.Create(ctx, model.NewUser("alice", "h2", false, time.Now()))
	require.ErrorIs(t, err, apperr.ErrConstraintViolation)

	users, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepository_ValidationBeforeStore(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name string
		user *model.User
	}{
		{"empty username", model.NewUser("", "h", true, time.Now())},
		{"username too long", model.NewUser(strings.Repeat("x", 31), "h", true, time.Now())},
		{"missing password", model.NewUser("bob", "", true, time.Now())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			require.ErrorIs(t, err, apperr.ErrValidation)
			assert.Zero(t, tt.user.ID)
		})
	}

	var cnt int64
	require.NoError(t, db.Model(&model.User{}).Count(&cnt).Error)
	assert.Zero(t, cnt)
}

func TestUserRepository_UsernameAtLimit(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)

	u := model.NewUser(strings.Repeat("x", 30), "h", true, time.Now())
	require.NoError(t, repo.Create(context.Background(), u))
}

func TestUserRepository_NotFound(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = repo.GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, repo.SetActive(ctx, 999, false), apperr.ErrNotFound)
	assert.ErrorIs(t, repo.UpdatePassword(ctx, 999, "h"), apperr.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 999), apperr.ErrNotFound)
}

func TestUserRepository_SignupDateIsImmutable(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	id := alice.ID

	require.NoError(t, repo.SetActive(ctx, id, false))
	require.NoError(t, repo.UpdatePassword(ctx, id, "new-hash"))

	before, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, before.IsActive)

	// Save 会写全部可更新字段，signup_date 只允许在创建时写入
	before.SignupDate = before.SignupDate.Add(48 * time.Hour)
	before.IsActive = true
	require.NoError(t, db.Save(before).Error)

	after, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, after.IsActive)
	assert.Equal(t, "new-hash", after.Password)
	assert.True(t, alice.SignupDate.Equal(after.SignupDate),
		"signup_date changed: %v -> %v", alice.SignupDate, after.SignupDate)
}

func TestUserRepository_ListPaging(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, model.NewUser(name, "h", true, time.Now())))
	}

	page, err := repo.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].Username)
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-schema/internal/model"
	"github.com/d60-Lab/social-schema/pkg/apperr"
)

func TestFollowerRepository_DuplicateRejected(t *testing.T) {
	db := setupDB(t)
	repo := NewFollowerRepository(db)
	ctx := context.Background()

	a, b := seedUser(t, db, "alice").ID, seedUser(t, db, "bob").ID

	first := model.NewFollower(a, b, time.Time{})
	require.NoError(t, repo.Create(ctx, first))
	assert.Positive(t, first.ID)
	assert.False(t, first.Date.IsZero())

	err := repo.Create(ctx, model.NewFollower(a, b, time.Time{}))
	require.ErrorIs(t, err, apperr.ErrConstraintViolation)

	// 反向关注是另一条边
	require.NoError(t, repo.Create(ctx, model.NewFollower(b, a, time.Time{})))
	assertCount(t, db, &model.Follower{}, 2)
}

func TestFollowerRepository_UnknownUser(t *testing.T) {
	db := setupDB(t)
	repo := NewFollowerRepository(db)

	alice := seedUser(t, db, "alice")

	err := repo.Create(context.Background(), model.NewFollower(alice.ID, 999, time.Time{}))
	require.ErrorIs(t, err, apperr.ErrConstraintViolation)
}

func TestFollowerRepository_Lists(t *testing.T) {
	db := setupDB(t)
	repo := NewFollowerRepository(db)
	ctx := context.Background()

	alice, bob, carol := seedUser(t, db, "alice"), seedUser(t, db, "bob"), seedUser(t, db, "carol")
	ab := seedFollow(t, db, alice, bob)
	seedFollow(t, db, alice, carol)
	seedFollow(t, db, bob, alice)
	a, b, c := alice.ID, bob.ID, carol.ID
	require.Equal(t, a, ab.FollowerID)
	require.Equal(t, b, ab.FollowedID)

	following, err := repo.ListFollowing(ctx, a, 0, 10)
	require.NoError(t, err)
	followed := make([]int64, 0, len(following))
	for _, f := range following {
		followed = append(followed, f.FollowedID)
	}
	assert.ElementsMatch(t, []int64{b, c}, followed)

	followers, err := repo.ListFollowers(ctx, a, 0, 10)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, b, followers[0].FollowerID)

	followers, err = repo.ListFollowers(ctx, c, 0, 10)
	require.NoError(t, err)
	assert.Len(t, followers, 1)

	ok, err := repo.Exists(ctx, a, c)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Exists(ctx, c, a)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFollowerRepository_Delete(t *testing.T) {
	db := setupDB(t)
	repo := NewFollowerRepository(db)
	ctx := context.Background()

	alice, bob := seedUser(t, db, "alice"), seedUser(t, db, "bob")
	edge := seedFollow(t, db, alice, bob)
	a, b := alice.ID, bob.ID

	assert.ErrorIs(t, repo.DeleteEdge(ctx, b, a), apperr.ErrNotFound)
	require.NoError(t, repo.DeleteEdge(ctx, a, b))
	assert.ErrorIs(t, repo.DeleteEdge(ctx, a, b), apperr.ErrNotFound)

	_, err := repo.GetByID(ctx, edge.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, edge.ID), apperr.ErrNotFound)
}

func TestFollowerRepository_DateIsImmutable(t *testing.T) {
	db := setupDB(t)
	repo := NewFollowerRepository(db)
	ctx := context.Background()

	edge := seedFollow(t, db, seedUser(t, db, "alice"), seedUser(t, db, "bob"))

	got, err := repo.GetByID(ctx, edge.ID)
	require.NoError(t, err)
	original := got.Date

	got.Date = original.Add(time.Hour)
	require.NoError(t, db.Save(got).Error)

	got, err = repo.GetByID(ctx, edge.ID)
	require.NoError(t, err)
	assert.True(t, original.Equal(got.Date))
}

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

func TestCommentRepository_CreateAndList(t *testing.T) {
	db := setupDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	alice, bob := seedUser(t, db, "alice"), seedUser(t, db, "bob")
	pid := seedPost(t, db, alice, "hello").ID

	// 同一用户可以对同一帖子多次评论
	for _, text := range []string{"first", "second"} {
		require.NoError(t, repo.Create(ctx, model.NewComment(bob.ID, pid, text, time.Time{})))
	}

	comments, err := repo.ListByPost(ctx, pid, 0, 10)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)

	s := comments[0].Serialize()
	assert.Equal(t, "first", s["comments"])
	assert.Equal(t, bob.ID, s["id_user"])
	assert.Equal(t, pid, s["id_post"])

	mine, err := repo.ListByUser(ctx, alice.ID, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestCommentRepository_Validation(t *testing.T) {
	db := setupDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	uid, pid := alice.ID, seedPost(t, db, alice, "hello").ID

	assert.ErrorIs(t, repo.Create(ctx, model.NewComment(uid, pid, "", time.Time{})), apperr.ErrValidation)
	assert.ErrorIs(t, repo.Create(ctx, model.NewComment(uid, pid, strings.Repeat("c", 301), time.Time{})), apperr.ErrValidation)
	require.NoError(t, repo.Create(ctx, model.NewComment(uid, pid, strings.Repeat("c", 300), time.Time{})))
	assert.ErrorIs(t, repo.Create(ctx, model.NewComment(uid, 999, "x", time.Time{})), apperr.ErrConstraintViolation)
}

func TestCommentRepository_UpdateKeepsDate(t *testing.T) {
	db := setupDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	c := seedComment(t, db, alice, seedPost(t, db, alice, "hello"), "typo")

	before, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)

	got, err := repo.UpdateContent(ctx, c.ID, "fixed")
	require.NoError(t, err)
	assert.Equal(t, "fixed", got.Content)
	assert.True(t, before.Date.Equal(got.Date))

	_, err = repo.UpdateContent(ctx, c.ID, "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = repo.UpdateContent(ctx, 999, "x")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, c.ID))
	assert.ErrorIs(t, repo.Delete(ctx, c.ID), apperr.ErrNotFound)
}

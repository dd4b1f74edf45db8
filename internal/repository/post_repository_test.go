package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-schema/internal/model"
	"github.com/d60-Lab/social-schema/pkg/apperr"
)

func ptr[T any](v T) *T { return &v }

func TestPostRepository_LikesDefaultAndIncrement(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")

	p := model.NewPost(alice.ID, "hello", nil)
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Likes)
	assert.Nil(t, got.Serialize()["url_img"])

	require.NoError(t, repo.IncrementLikes(ctx, p.ID, 1))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Serialize()["likes"])
}

func TestPostRepository_ForeignKey(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)

	err := repo.Create(context.Background(), model.NewPost(999, "orphan", nil))
	require.ErrorIs(t, err, apperr.ErrConstraintViolation)

	var cnt int64
	require.NoError(t, db.Model(&model.Post{}).Count(&cnt).Error)
	assert.Zero(t, cnt)
}

func TestPostRepository_Validation(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	uid := seedUser(t, db, "alice").ID

	tests := []struct {
		name string
		post *model.Post
	}{
		{"empty text", model.NewPost(uid, "", nil)},
		{"text too long", model.NewPost(uid, strings.Repeat("x", 81), nil)},
		{"url too long", model.NewPost(uid, "ok", ptr(strings.Repeat("u", 256)))},
		{"missing user", model.NewPost(0, "ok", nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, repo.Create(ctx, tt.post), apperr.ErrValidation)
		})
	}

	require.NoError(t, repo.Create(ctx, model.NewPost(uid, strings.Repeat("x", 80), ptr("https://img/1.png"))))
}

func TestPostRepository_IncrementLikesNeverNegative(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	id := seedPost(t, db, seedUser(t, db, "alice"), "hello").ID

	require.ErrorIs(t, repo.IncrementLikes(ctx, id, -1), apperr.ErrValidation)
	require.NoError(t, repo.IncrementLikes(ctx, id, 2))
	require.NoError(t, repo.IncrementLikes(ctx, id, -2))
	require.ErrorIs(t, repo.IncrementLikes(ctx, id, -1), apperr.ErrValidation)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, got.Likes)

	assert.ErrorIs(t, repo.IncrementLikes(ctx, 999, 1), apperr.ErrNotFound)
	assert.ErrorIs(t, repo.IncrementLikes(ctx, 999, 0), apperr.ErrNotFound)
}

func TestPostRepository_Update(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	id := seedPost(t, db, seedUser(t, db, "alice"), "hello").ID
	require.NoError(t, repo.IncrementLikes(ctx, id, 3))

	got, err := repo.Update(ctx, id, "edited", ptr("https://img/2.png"))
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)
	require.NotNil(t, got.URLImg)
	assert.Equal(t, "https://img/2.png", *got.URLImg)
	assert.Equal(t, 3, got.Likes)

	got, err = repo.Update(ctx, id, "edited", nil)
	require.NoError(t, err)
	assert.Nil(t, got.URLImg)

	_, err = repo.Update(ctx, id, "", nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = repo.Update(ctx, 999, "x", nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPostRepository_ListByUserNewestFirst(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	uid := seedUser(t, db, "alice").ID
	seedPost(t, db, seedUser(t, db, "bob"), "bob's")

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, model.NewPost(uid, text, nil)))
	}

	posts, err := repo.ListByUser(ctx, uid, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Text)
	assert.Equal(t, "first", posts[2].Text)

	posts, err = repo.ListByUser(ctx, uid, 1, 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "second", posts[0].Text)
}

func TestPostRepository_DecrementLikesLikedBy(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice, bob := seedUser(t, db, "alice"), seedUser(t, db, "bob")
	p1, p2 := seedPost(t, db, alice, "p1"), seedPost(t, db, alice, "p2")
	seedLike(t, db, bob, p1)
	seedLike(t, db, bob, p2)
	seedLike(t, db, alice, p1)
	// seed 直接写 likes 表，计数需要手动对齐
	require.NoError(t, repo.IncrementLikes(ctx, p1.ID, 2))
	require.NoError(t, repo.IncrementLikes(ctx, p2.ID, 1))

	require.NoError(t, repo.DecrementLikesLikedBy(ctx, bob.ID))

	got1, err := repo.GetByID(ctx, p1.ID)
	require.NoError(t, err)
	got2, err := repo.GetByID(ctx, p2.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got1.Likes)
	assert.Equal(t, 0, got2.Likes)
}

func TestPostRepository_DeleteCascades(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice, bob := seedUser(t, db, "alice"), seedUser(t, db, "bob")
	p := seedPost(t, db, alice, "doomed")
	seedPost(t, db, alice, "keep")
	seedLike(t, db, bob, p)
	seedComment(t, db, bob, p, "nice")

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), apperr.ErrNotFound)

	assertCount(t, db, &model.Like{}, 0)
	assertCount(t, db, &model.Comment{}, 0)
	assertCount(t, db, &model.Post{}, 1)
	assertCount(t, db, &model.User{}, 2)
}

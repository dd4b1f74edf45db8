package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-schema/internal/model"
	"github.com/d60-Lab/social-schema/pkg/database"
)

func setupDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// seed 直接写入记录，父记录必须先于子记录创建
func seed[T any](t testing.TB, db *gorm.DB, v *T) *T {
	t.Helper()
	require.NoError(t, db.Create(v).Error)
	return v
}

func seedUser(t testing.TB, db *gorm.DB, name string) *model.User {
	return seed(t, db, model.NewUser(name, "$2a$10$fixture", true, time.Now()))
}

func seedPost(t testing.TB, db *gorm.DB, author *model.User, text string) *model.Post {
	return seed(t, db, model.NewPost(author.ID, text, nil))
}

func seedLike(t testing.TB, db *gorm.DB, u *model.User, p *model.Post) *model.Like {
	return seed(t, db, model.NewLike(u.ID, p.ID, time.Now()))
}

func seedComment(t testing.TB, db *gorm.DB, u *model.User, p *model.Post, text string) *model.Comment {
	return seed(t, db, model.NewComment(u.ID, p.ID, text, time.Now()))
}

// seedFollow 写入 follower -> followed 的关注边
func seedFollow(t testing.TB, db *gorm.DB, follower, followed *model.User) *model.Follower {
	return seed(t, db, model.NewFollower(follower.ID, followed.ID, time.Now()))
}

func assertCount(t testing.TB, db *gorm.DB, table any, want int64) {
	t.Helper()
	var got int64
	require.NoError(t, db.Model(table).Count(&got).Error)
	require.Equalf(t, want, got, "rows in %T", table)
}

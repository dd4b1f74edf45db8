// Package service 组合 repository，负责事务边界、权限与业务校验。
package service

import (
	"gorm.io/gorm"

	"github.com/d60-Lab/social-schema/config"
	"github.com/d60-Lab/social-schema/internal/repository"
)

// MaxPageSize 单页最多返回的记录数
const MaxPageSize = 100

// NormalizePage page<1 视为 1，pageSize<1 视为 10，pageSize 不超过 MaxPageSize
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func pageOffset(page, pageSize int) (offset, limit int) {
	page, pageSize = NormalizePage(page, pageSize)
	return (page - 1) * pageSize, pageSize
}

// Services 聚合所有业务服务，供 router 与 cmd 使用
type Services struct {
	Users    UserService
	Posts    PostService
	Relation RelationshipService
	Likes    LikeService
	Comments CommentService
	Auth     AuthService
}

func New(db *gorm.DB, jwtCfg config.JWTConfig) *Services {
	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	followers := repository.NewFollowerRepository(db)
	likes := repository.NewLikeRepository(db)
	comments := repository.NewCommentRepository(db)

	return &Services{
		Users:    NewUserService(db, users, posts),
		Posts:    NewPostService(users, posts),
		Relation: NewRelationshipService(db, users, followers),
		Likes:    NewLikeService(db, users, posts, likes),
		Comments: NewCommentService(users, posts, comments),
		Auth:     NewAuthService(users, jwtCfg),
	}
}

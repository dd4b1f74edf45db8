package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-schema/internal/model"
	"github.com/d60-Lab/social-schema/internal/repository"
	"github.com/d60-Lab/social-schema/pkg/apperr"
	"github.com/d60-Lab/social-schema/pkg/logger"
	"github.com/d60-Lab/social-schema/pkg/metrics"
)

// LikeService 点赞服务。likes 行与 posts.likes 计数在同一事务内变更。
type LikeService interface {
	Like(ctx context.Context, userID, postID int64) (*model.Like, error)
	Unlike(ctx context.Context, userID, postID int64) error
	ListByPost(ctx context.Context, postID int64, page, pageSize int) ([]*model.Like, error)
	ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]*model.Like, error)
}

type likeService struct {
	db    *gorm.DB
	users repository.UserRepository
	posts repository.PostRepository
	likes repository.LikeRepository
}

func NewLikeService(db *gorm.DB, users repository.UserRepository, posts repository.PostRepository, likes repository.LikeRepository) LikeService {
	return &likeService{db: db, users: users, posts: posts, likes: likes}
}

func (s *likeService) Like(ctx context.Context, userID, postID int64) (*model.Like, error) {
	const op = "likes.create"
	like := model.NewLike(userID, postID, time.Time{})
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posts, likes := s.posts.WithTx(tx), s.likes.WithTx(tx)
		if _, err := posts.GetByID(ctx, postID); err != nil {
			return err
		}
		exists, err := likes.Exists(ctx, userID, postID)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Constraint(op, fmt.Sprintf("user %d already liked post %d", userID, postID), nil)
		}
		if err := likes.Create(ctx, like); err != nil {
			return err
		}
		return posts.IncrementLikes(ctx, postID, 1)
	})
	if err != nil {
		return nil, err
	}
	metrics.Mutation("likes", "create")
	logger.Debug("post liked", zap.Int64("post_id", postID), zap.Int64("user_id", userID))
	return like, nil
}

func (s *likeService) Unlike(ctx context.Context, userID, postID int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.likes.WithTx(tx).DeleteByUserAndPost(ctx, userID, postID); err != nil {
			return err
		}
		return s.posts.WithTx(tx).IncrementLikes(ctx, postID, -1)
	})
	if err != nil {
		return err
	}
	metrics.Mutation("likes", "delete")
	return nil
}

func (s *likeService) ListByPost(ctx context.Context, postID int64, page, pageSize int) ([]*model.Like, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	offset, limit := pageOffset(page, pageSize)
	return s.likes.ListByPost(ctx, postID, offset, limit)
}

func (s *likeService) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]*model.Like, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	offset, limit := pageOffset(page, pageSize)
	return s.likes.ListByUser(ctx, userID, offset, limit)
}

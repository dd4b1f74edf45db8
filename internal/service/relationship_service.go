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

// RelationshipService 关系链服务
type RelationshipService interface {
	Follow(ctx context.Context, followerID, followedID int64) (*model.Follower, error)
	Unfollow(ctx context.Context, followerID, followedID int64) error
	IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error)
	ListFollowing(ctx context.Context, userID int64, page, pageSize int) ([]*model.Follower, error)
	ListFollowers(ctx context.Context, userID int64, page, pageSize int) ([]*model.Follower, error)
}

type relationshipService struct {
	db        *gorm.DB
	users     repository.UserRepository
	followers repository.FollowerRepository
}

func NewRelationshipService(db *gorm.DB, users repository.UserRepository, followers repository.FollowerRepository) RelationshipService {
	return &relationshipService{db: db, users: users, followers: followers}
}

func (s *relationshipService) Follow(ctx context.Context, followerID, followedID int64) (*model.Follower, error) {
	const op = "relations.follow"
	if followerID == followedID {
		return nil, apperr.Validation(op, "cannot follow self")
	}
	edge := model.NewFollower(followerID, followedID, time.Time{})
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.users.WithTx(tx).GetByID(ctx, followedID); err != nil {
			return err
		}
		followers := s.followers.WithTx(tx)
		exists, err := followers.Exists(ctx, followerID, followedID)
		if err != nil {
			return err
		}
		// 唯一索引兜底，这里给出更明确的提示
		if exists {
			return apperr.Constraint(op, fmt.Sprintf("user %d already follows user %d", followerID, followedID), nil)
		}
		return followers.Create(ctx, edge)
	})
	if err != nil {
		return nil, err
	}
	metrics.Mutation("followers", "create")
	logger.Debug("follow", zap.Int64("follower", followerID), zap.Int64("followed", followedID))
	return edge, nil
}

func (s *relationshipService) Unfollow(ctx context.Context, followerID, followedID int64) error {
	if err := s.followers.DeleteEdge(ctx, followerID, followedID); err != nil {
		return err
	}
	metrics.Mutation("followers", "delete")
	logger.Debug("unfollow", zap.Int64("follower", followerID), zap.Int64("followed", followedID))
	return nil
}

func (s *relationshipService) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	return s.followers.Exists(ctx, followerID, followedID)
}

func (s *relationshipService) ListFollowing(ctx context.Context, userID int64, page, pageSize int) ([]*model.Follower, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	offset, limit := pageOffset(page, pageSize)
	return s.followers.ListFollowing(ctx, userID, offset, limit)
}

func (s *relationshipService) ListFollowers(ctx context.Context, userID int64, page, pageSize int) ([]*model.Follower, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	offset, limit := pageOffset(page, pageSize)
	return s.followers.ListFollowers(ctx, userID, offset, limit)
}

package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/d60-Lab/social-schema/internal/model"
	"github.com/d60-Lab/social-schema/internal/repository"
	"github.com/d60-Lab/social-schema/pkg/apperr"
	"github.com/d60-Lab/social-schema/pkg/logger"
	"github.com/d60-Lab/social-schema/pkg/metrics"
)

type PostInput struct {
	Text   string
	URLImg *string
}

// PostService 帖子服务，修改与删除只允许作者本人
type PostService interface {
	Create(ctx context.Context, userID int64, in PostInput) (*model.Post, error)
	Get(ctx context.Context, id int64) (*model.Post, error)
	ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]*model.Post, error)
	Update(ctx context.Context, actorID, id int64, in PostInput) (*model.Post, error)
	Delete(ctx context.Context, actorID, id int64) error
}

type postService struct {
	users repository.UserRepository
	posts repository.PostRepository
}

func NewPostService(users repository.UserRepository, posts repository.PostRepository) PostService {
	return &postService{users: users, posts: posts}
}

func (s *postService) Create(ctx context.Context, userID int64, in PostInput) (*model.Post, error) {
	p := model.NewPost(userID, in.Text, in.URLImg)
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	metrics.Mutation("posts", "create")
	logger.Debug("post created", zap.Int64("post_id", p.ID), zap.Int64("user_id", userID))
	return p, nil
}

func (s *postService) Get(ctx context.Context, id int64) (*model.Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *postService) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]*model.Post, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	offset, limit := pageOffset(page, pageSize)
	return s.posts.ListByUser(ctx, userID, offset, limit)
}

// owned 读取帖子并确认 actorID 是作者
func (s *postService) owned(ctx context.Context, op string, actorID, id int64) (*model.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != actorID {
		return nil, apperr.Forbidden(op, "post belongs to another user")
	}
	return p, nil
}

func (s *postService) Update(ctx context.Context, actorID, id int64, in PostInput) (*model.Post, error) {
	if _, err := s.owned(ctx, "posts.update", actorID, id); err != nil {
		return nil, err
	}
	p, err := s.posts.Update(ctx, id, in.Text, in.URLImg)
	if err != nil {
		return nil, err
	}
	metrics.Mutation("posts", "update")
	return p, nil
}

func (s *postService) Delete(ctx context.Context, actorID, id int64) error {
	if _, err := s.owned(ctx, "posts.delete", actorID, id); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	metrics.Mutation("posts", "delete")
	logger.Info("post deleted", zap.Int64("post_id", id), zap.Int64("user_id", actorID))
	return nil
}

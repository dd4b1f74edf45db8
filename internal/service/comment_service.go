package service

import (
	"context"
	"time"

	"github.com/d60-Lab/social-schema/internal/model"
	"github.com/d60-Lab/social-schema/internal/repository"
	"github.com/d60-Lab/social-schema/pkg/apperr"
	"github.com/d60-Lab/social-schema/pkg/metrics"
)

// CommentService 评论服务。评论作者可以修改和删除；帖子作者可以删除自己帖子下的评论。
type CommentService interface {
	Create(ctx context.Context, userID, postID int64, content string) (*model.Comment, error)
	Get(ctx context.Context, id int64) (*model.Comment, error)
	ListByPost(ctx context.Context, postID int64, page, pageSize int) ([]*model.Comment, error)
	ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]*model.Comment, error)
	Update(ctx context.Context, actorID, id int64, content string) (*model.Comment, error)
	Delete(ctx context.Context, actorID, id int64) error
}

type commentService struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
}

func NewCommentService(users repository.UserRepository, posts repository.PostRepository, comments repository.CommentRepository) CommentService {
	return &commentService{users: users, posts: posts, comments: comments}
}

func (s *commentService) Create(ctx context.Context, userID, postID int64, content string) (*model.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	c := model.NewComment(userID, postID, content, time.Time{})
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	metrics.Mutation("comments", "create")
	return c, nil
}

func (s *commentService) Get(ctx context.Context, id int64) (*model.Comment, error) {
	return s.comments.GetByID(ctx, id)
}

func (s *commentService) ListByPost(ctx context.Context, postID int64, page, pageSize int) ([]*model.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	offset, limit := pageOffset(page, pageSize)
	return s.comments.ListByPost(ctx, postID, offset, limit)
}

func (s *commentService) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]*model.Comment, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	offset, limit := pageOffset(page, pageSize)
	return s.comments.ListByUser(ctx, userID, offset, limit)
}

func (s *commentService) Update(ctx context.Context, actorID, id int64, content string) (*model.Comment, error) {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != actorID {
		return nil, apperr.Forbidden("comments.update", "comment belongs to another user")
	}
	c, err = s.comments.UpdateContent(ctx, id, content)
	if err != nil {
		return nil, err
	}
	metrics.Mutation("comments", "update")
	return c, nil
}

func (s *commentService) Delete(ctx context.Context, actorID, id int64) error {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.UserID != actorID {
		p, err := s.posts.GetByID(ctx, c.PostID)
		if err != nil {
			return err
		}
		if p.UserID != actorID {
			return apperr.Forbidden("comments.delete", "comment belongs to another user")
		}
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}
	metrics.Mutation("comments", "delete")
	return nil
}

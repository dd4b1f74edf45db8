package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-schema/internal/model"
	"github.com/d60-Lab/social-schema/internal/repository"
	"github.com/d60-Lab/social-schema/pkg/apperr"
	"github.com/d60-Lab/social-schema/pkg/logger"
	"github.com/d60-Lab/social-schema/pkg/metrics"
)

// RegisterInput 注册参数，Password 为明文，落库前做 bcrypt
type RegisterInput struct {
	Username string `validate:"required,max=30"`
	Password string `validate:"required,max=72"`
	IsActive bool
}

type ChangePasswordInput struct {
	OldPassword string `validate:"required"`
	NewPassword string `validate:"required,max=72"`
}

// UserService 用户服务
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, page, pageSize int) ([]*model.User, error)
	SetActive(ctx context.Context, id int64, active bool) error
	ChangePassword(ctx context.Context, id int64, in ChangePasswordInput) error
	// Delete 删除用户及其全部关联记录，并修正其点赞过的帖子的 likes 计数
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	db         *gorm.DB
	users      repository.UserRepository
	posts      repository.PostRepository
	bcryptCost int
}

func NewUserService(db *gorm.DB, users repository.UserRepository, posts repository.PostRepository) UserService {
	return &userService{db: db, users: users, posts: posts, bcryptCost: bcrypt.DefaultCost}
}

func hashPassword(op, plain string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperr.Validation(op, "password is too long")
	}
	if err != nil {
		return "", apperr.Storage(op, err)
	}
	return string(hash), nil
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	const op = "users.register"
	if err := model.Validate(&in); err != nil {
		return nil, apperr.Validation(op, "%s", err.Error())
	}
	hash, err := hashPassword(op, in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	u := model.NewUser(in.Username, hash, in.IsActive, time.Time{})
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	metrics.RegisterSuccess.Inc()
	metrics.Mutation("users", "create")
	logger.Info("user registered", zap.Int64("user_id", u.ID), zap.String("username", u.Username))
	return u, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.users.GetByUsername(ctx, username)
}

func (s *userService) List(ctx context.Context, page, pageSize int) ([]*model.User, error) {
	offset, limit := pageOffset(page, pageSize)
	return s.users.List(ctx, offset, limit)
}

func (s *userService) SetActive(ctx context.Context, id int64, active bool) error {
	if err := s.users.SetActive(ctx, id, active); err != nil {
		return err
	}
	metrics.Mutation("users", "set_active")
	return nil
}

func (s *userService) ChangePassword(ctx context.Context, id int64, in ChangePasswordInput) error {
	const op = "users.change_password"
	if err := model.Validate(&in); err != nil {
		return apperr.Validation(op, "%s", err.Error())
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.OldPassword)) != nil {
		return apperr.Unauthorized(op, "old password does not match")
	}
	hash, err := hashPassword(op, in.NewPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}
	metrics.Mutation("users", "change_password")
	return nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		if _, err := users.GetByID(ctx, id); err != nil {
			return err
		}
		// 点赞行会被级联删除，计数要在同一事务内先扣减
		if err := s.posts.WithTx(tx).DecrementLikesLikedBy(ctx, id); err != nil {
			return err
		}
		return users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	metrics.Mutation("users", "delete")
	logger.Info("user deleted", zap.Int64("user_id", id))
	return nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-schema/internal/model"
	"github.com/d60-Lab/social-schema/pkg/apperr"
)

type LikeRepository interface {
	Create(ctx context.Context, l *model.Like) error
	GetByID(ctx context.Context, id int64) (*model.Like, error)
	Exists(ctx context.Context, userID, postID int64) (bool, error)
	ListByPost(ctx context.Context, postID int64, offset, limit int) ([]*model.Like, error)
	ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*model.Like, error)
	DeleteByUserAndPost(ctx context.Context, userID, postID int64) error
	Delete(ctx context.Context, id int64) error
	WithTx(tx *gorm.DB) LikeRepository
}

type likeRepository struct{ db *gorm.DB }

func NewLikeRepository(db *gorm.DB) LikeRepository { return &likeRepository{db: db} }

func (r *likeRepository) WithTx(tx *gorm.DB) LikeRepository { return &likeRepository{db: tx} }

func (r *likeRepository) Create(ctx context.Context, l *model.Like) error {
	if err := model.Validate(l); err != nil {
		return translate("likes.create", err)
	}
	if l.Date.IsZero() {
		l.Date = r.db.NowFunc()
	}
	return translate("likes.create", r.db.WithContext(ctx).Create(l).Error)
}

func (r *likeRepository) GetByID(ctx context.Context, id int64) (*model.Like, error) {
	var l model.Like
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, translate("likes.get", err)
	}
	return &l, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("id_user = ? AND id_post = ?", userID, postID).
		Count(&cnt).Error
	if err != nil {
		return false, translate("likes.exists", err)
	}
	return cnt > 0, nil
}

func (r *likeRepository) ListByPost(ctx context.Context, postID int64, offset, limit int) ([]*model.Like, error) {
	var res []*model.Like
	err := r.db.WithContext(ctx).Where("id_post = ?", postID).Order("id").Offset(offset).Limit(limit).Find(&res).Error
	return res, translate("likes.list_by_post", err)
}

func (r *likeRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*model.Like, error) {
	var res []*model.Like
	err := r.db.WithContext(ctx).Where("id_user = ?", userID).Order("id").Offset(offset).Limit(limit).Find(&res).Error
	return res, translate("likes.list_by_user", err)
}

func (r *likeRepository) DeleteByUserAndPost(ctx context.Context, userID, postID int64) error {
	res := r.db.WithContext(ctx).
		Where("id_user = ? AND id_post = ?", userID, postID).
		Delete(&model.Like{})
	if res.Error != nil {
		return translate("likes.delete_by_user_and_post", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("likes.delete_by_user_and_post", "user %d has not liked post %d", userID, postID)
	}
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Like{}, id)
	return affected("likes.delete", res, id)
}

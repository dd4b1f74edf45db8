package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-schema/internal/model"
	"github.com/d60-Lab/social-schema/pkg/apperr"
)

type FollowerRepository interface {
	Create(ctx context.Context, f *model.Follower) error
	GetByID(ctx context.Context, id int64) (*model.Follower, error)
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
	// ListFollowing 返回 followerID 关注的边
	ListFollowing(ctx context.Context, followerID int64, offset, limit int) ([]*model.Follower, error)
	// ListFollowers 返回关注 followedID 的边
	ListFollowers(ctx context.Context, followedID int64, offset, limit int) ([]*model.Follower, error)
	Delete(ctx context.Context, id int64) error
	DeleteEdge(ctx context.Context, followerID, followedID int64) error
	WithTx(tx *gorm.DB) FollowerRepository
}

type followerRepository struct {
	db *gorm.DB
}

func NewFollowerRepository(db *gorm.DB) FollowerRepository { return &followerRepository{db: db} }

func (r *followerRepository) WithTx(tx *gorm.DB) FollowerRepository {
	return &followerRepository{db: tx}
}

// Create 重复关注由 ux_followers_pair 拒绝，返回 ConstraintViolation
func (r *followerRepository) Create(ctx context.Context, f *model.Follower) error {
	if err := model.Validate(f); err != nil {
		return translate("followers.create", err)
	}
	if f.Date.IsZero() {
		f.Date = r.db.NowFunc()
	}
	return translate("followers.create", r.db.WithContext(ctx).Create(f).Error)
}

func (r *followerRepository) GetByID(ctx context.Context, id int64) (*model.Follower, error) {
	var f model.Follower
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, translate("followers.get", err)
	}
	return &f, nil
}

func (r *followerRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Follower{}).
		Where("id_follower = ? AND id_followed = ?", followerID, followedID).
		Count(&cnt).Error; err != nil {
		return false, translate("followers.exists", err)
	}
	return cnt > 0, nil
}

func (r *followerRepository) ListFollowing(ctx context.Context, followerID int64, offset, limit int) ([]*model.Follower, error) {
	var res []*model.Follower
	err := r.db.WithContext(ctx).Where("id_follower = ?", followerID).Order("id").Offset(offset).Limit(limit).Find(&res).Error
	return res, translate("followers.list_following", err)
}

func (r *followerRepository) ListFollowers(ctx context.Context, followedID int64, offset, limit int) ([]*model.Follower, error) {
	var res []*model.Follower
	err := r.db.WithContext(ctx).Where("id_followed = ?", followedID).Order("id").Offset(offset).Limit(limit).Find(&res).Error
	return res, translate("followers.list_followers", err)
}

func (r *followerRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Follower{}, id)
	return affected("followers.delete", res, id)
}

func (r *followerRepository) DeleteEdge(ctx context.Context, followerID, followedID int64) error {
	res := r.db.WithContext(ctx).
		Where("id_follower = ? AND id_followed = ?", followerID, followedID).
		Delete(&model.Follower{})
	if res.Error != nil {
		return translate("followers.delete_edge", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("followers.delete_edge", "user %d does not follow user %d", followerID, followedID)
	}
	return nil
}

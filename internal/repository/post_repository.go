package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-schema/internal/model"
	"github.com/d60-Lab/social-schema/pkg/apperr"
)

type PostRepository interface {
	Create(ctx context.Context, p *model.Post) error
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*model.Post, error)
	// Update 修改正文与图片地址；likes 计数只能通过 IncrementLikes 变更
	Update(ctx context.Context, id int64, text string, urlImg *string) (*model.Post, error)
	// IncrementLikes 原子地执行 likes = likes + delta，结果不会小于 0
	IncrementLikes(ctx context.Context, id int64, delta int) error
	DecrementLikesLikedBy(ctx context.Context, userID int64) error
	Delete(ctx context.Context, id int64) error
	WithTx(tx *gorm.DB) PostRepository
}

type postRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) WithTx(tx *gorm.DB) PostRepository { return &postRepository{db: tx} }

func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	if err := model.Validate(p); err != nil {
		return translate("posts.create", err)
	}
	return translate("posts.create", r.db.WithContext(ctx).Create(p).Error)
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate("posts.get", err)
	}
	return &p, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*model.Post, error) {
	var res []*model.Post
	err := r.db.WithContext(ctx).
		Where("id_user = ?", userID).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, translate("posts.list_by_user", err)
}

func (r *postRepository) Update(ctx context.Context, id int64, text string, urlImg *string) (*model.Post, error) {
	const op = "posts.update"
	if err := model.ValidateFields(&model.Post{Text: text, URLImg: urlImg}, "Text", "URLImg"); err != nil {
		return nil, translate(op, err)
	}
	res := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{"text": text, "url_img": urlImg})
	if err := affected(op, res, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *postRepository) IncrementLikes(ctx context.Context, id int64, delta int) error {
	const op = "posts.increment_likes"
	if delta == 0 {
		_, err := r.GetByID(ctx, id)
		return err
	}
	q := r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id)
	if delta < 0 {
		q = q.Where("likes >= ?", -delta)
	}
	res := q.UpdateColumn("likes", gorm.Expr("likes + ?", delta))
	if res.Error != nil {
		return translate(op, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return apperr.Validation(op, "likes cannot become negative")
	}
	return nil
}

// DecrementLikesLikedBy 在删除用户前调用：其点赞即将被级联删除，先同步扣减计数。
func (r *postRepository) DecrementLikesLikedBy(ctx context.Context, userID int64) error {
	sub := r.db.Model(&model.Like{}).Select("id_post").Where("id_user = ?", userID)
	err := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id IN (?) AND likes > 0", sub).
		UpdateColumn("likes", gorm.Expr("likes - 1")).Error
	return translate("posts.decrement_likes_liked_by", err)
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Post{}, id)
	return affected("posts.delete", res, id)
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-schema/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	ListByPost(ctx context.Context, postID int64, offset, limit int) ([]*model.Comment, error)
	ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*model.Comment, error)
	UpdateContent(ctx context.Context, id int64, content string) (*model.Comment, error)
	Delete(ctx context.Context, id int64) error
	WithTx(tx *gorm.DB) CommentRepository
}

type commentRepository struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepository{db: tx}
}

func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	if err := model.Validate(c); err != nil {
		return translate("comments.create", err)
	}
	if c.Date.IsZero() {
		c.Date = r.db.NowFunc()
	}
	return translate("comments.create", r.db.WithContext(ctx).Create(c).Error)
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	var c model.Comment
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate("comments.get", err)
	}
	return &c, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID int64, offset, limit int) ([]*model.Comment, error) {
	var res []*model.Comment
	err := r.db.WithContext(ctx).Where("id_post = ?", postID).Order("id").Offset(offset).Limit(limit).Find(&res).Error
	return res, translate("comments.list_by_post", err)
}

func (r *commentRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*model.Comment, error) {
	var res []*model.Comment
	err := r.db.WithContext(ctx).Where("id_user = ?", userID).Order("id").Offset(offset).Limit(limit).Find(&res).Error
	return res, translate("comments.list_by_user", err)
}

func (r *commentRepository) UpdateContent(ctx context.Context, id int64, content string) (*model.Comment, error) {
	const op = "comments.update"
	if err := model.ValidateFields(&model.Comment{Content: content}, "Content"); err != nil {
		return nil, translate(op, err)
	}
	res := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Update("comments", content)
	if err := affected(op, res, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Comment{}, id)
	return affected("comments.delete", res, id)
}

package model

import "time"

// Like 一个用户对一条 Post 的点赞，(id_user, id_post) 唯一。
type Like struct {
	ID     int64     `gorm:"primaryKey;autoIncrement"`
	PostID int64     `gorm:"column:id_post;not null;index:idx_likes_post;uniqueIndex:ux_likes_user_post" validate:"required"`
	UserID int64     `gorm:"column:id_user;not null;index:idx_likes_user;uniqueIndex:ux_likes_user_post" validate:"required"`
	Date   time.Time `gorm:"<-:create;not null"`

	Post *Post `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" validate:"-"`
	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" validate:"-"`
}

func (Like) TableName() string { return "likes" }

func NewLike(userID, postID int64, now time.Time) *Like {
	return &Like{UserID: userID, PostID: postID, Date: now.UTC()}
}

func (l *Like) Serialize() map[string]any {
	return map[string]any{
		"id":      l.ID,
		"id_post": l.PostID,
		"id_user": l.UserID,
		"date":    FormatTime(l.Date),
	}
}

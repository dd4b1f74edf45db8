package model

import "time"

type Comment struct {
	ID      int64     `gorm:"primaryKey;autoIncrement"`
	PostID  int64     `gorm:"column:id_post;not null;index:idx_comments_post" validate:"required"`
	UserID  int64     `gorm:"column:id_user;not null;index:idx_comments_user" validate:"required"`
	Content string    `gorm:"column:comments;type:varchar(300);not null" validate:"required,max=300"`
	Date    time.Time `gorm:"<-:create;not null"`

	Post *Post `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" validate:"-"`
	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" validate:"-"`
}

func (Comment) TableName() string { return "comments" }

func NewComment(userID, postID int64, content string, now time.Time) *Comment {
	return &Comment{UserID: userID, PostID: postID, Content: content, Date: now.UTC()}
}

func (c *Comment) Serialize() map[string]any {
	return map[string]any{
		"id":       c.ID,
		"id_post":  c.PostID,
		"id_user":  c.UserID,
		"comments": c.Content,
		"date":     FormatTime(c.Date),
	}
}

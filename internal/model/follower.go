package model

import "time"

// Follower 关注关系（FollowerID 关注 FollowedID）
type Follower struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	FollowerID int64     `gorm:"column:id_follower;not null;index:idx_followers_follower;uniqueIndex:ux_followers_pair" validate:"required"`
	FollowedID int64     `gorm:"column:id_followed;not null;index:idx_followers_followed;uniqueIndex:ux_followers_pair" validate:"required"`
	// 复合唯一键，拒绝重复关注
	// ux_followers_pair = (id_follower, id_followed)
	Date time.Time `gorm:"<-:create;not null"`

	FollowerUser *User `gorm:"foreignKey:FollowerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" validate:"-"`
	FollowedUser *User `gorm:"foreignKey:FollowedID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" validate:"-"`
}

func (Follower) TableName() string { return "followers" }

func NewFollower(followerID, followedID int64, now time.Time) *Follower {
	return &Follower{FollowerID: followerID, FollowedID: followedID, Date: now.UTC()}
}

func (f *Follower) Serialize() map[string]any {
	return map[string]any{
		"id":          f.ID,
		"id_follower": f.FollowerID,
		"id_followed": f.FollowedID,
		"date":        FormatTime(f.Date),
	}
}

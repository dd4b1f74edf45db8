package model

import "time"

// User 用户。Password 只保存 bcrypt 哈希，序列化时不输出。
type User struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	Username   string    `gorm:"type:varchar(30);uniqueIndex:ux_users_username;not null" validate:"required,max=30"`
	Password   string    `gorm:"not null" validate:"required"`
	IsActive   bool      `gorm:"not null"`
	SignupDate time.Time `gorm:"<-:create;not null"`
}

func (User) TableName() string { return "users" }

// NewUser 构造用户，注册时间在此刻确定且之后不再改变。
func NewUser(username, passwordHash string, active bool, now time.Time) *User {
	return &User{Username: username, Password: passwordHash, IsActive: active, SignupDate: now.UTC()}
}

// Serialize 对外表示：不含 password，也不含任何关联集合。
func (u *User) Serialize() map[string]any {
	return map[string]any{
		"id":          u.ID,
		"username":    u.Username,
		"is_active":   u.IsActive,
		"signup_date": FormatTime(u.SignupDate),
	}
}

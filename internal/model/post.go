package model

// Post 内容主体。Likes 为点赞计数，由点赞服务与 likes 表同步维护。
type Post struct {
	ID     int64   `gorm:"primaryKey;autoIncrement"`
	Text   string  `gorm:"type:varchar(80);not null" validate:"required,max=80"`
	URLImg *string `gorm:"column:url_img;type:varchar(255)" validate:"omitempty,max=255"`
	Likes  int     `gorm:"not null;default:0" validate:"gte=0"`
	UserID int64   `gorm:"column:id_user;not null;index:idx_posts_user" validate:"required"`

	// 仅用于生成外键约束，从不预加载也不序列化
	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" validate:"-"`
}

func (Post) TableName() string { return "posts" }

func NewPost(userID int64, text string, urlImg *string) *Post {
	return &Post{UserID: userID, Text: text, URLImg: urlImg}
}

func (p *Post) Serialize() map[string]any {
	var url any
	if p.URLImg != nil {
		url = *p.URLImg
	}
	return map[string]any{
		"id":      p.ID,
		"text":    p.Text,
		"url_img": url,
		"id_user": p.UserID,
		"likes":   p.Likes,
	}
}

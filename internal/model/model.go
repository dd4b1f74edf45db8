// Package model 定义五张表的记录结构、约束与对外序列化。
//
// 关联只保留子表到父表的外键字段；集合查询由 repository 显式完成，
// 因此序列化永远是扁平的，不会出现 User → Posts → User 的循环。
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TimeLayout ISO-8601，UTC，微秒精度（与 postgres timestamptz 精度一致）。
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Serializer 所有实体的对外表示。
type Serializer interface {
	Serialize() map[string]any
}

var (
	_ Serializer = (*User)(nil)
	_ Serializer = (*Post)(nil)
	_ Serializer = (*Follower)(nil)
	_ Serializer = (*Like)(nil)
	_ Serializer = (*Comment)(nil)
)

// All 返回需要迁移的全部模型，父表在前。
func All() []any {
	return []any{&User{}, &Post{}, &Follower{}, &Like{}, &Comment{}}
}

func FormatTime(t time.Time) string {
	return t.UTC().Truncate(time.Microsecond).Format(TimeLayout)
}

// SerializeAll 批量序列化，保持顺序。
func SerializeAll[T Serializer](items []T) []map[string]any {
	out := make([]map[string]any, len(items))
	for i, it := range items {
		out[i] = it.Serialize()
	}
	return out
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError 单个字段的校验失败。
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (e FieldError) String() string {
	switch e.Rule {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", e.Field, e.Param)
	case "gte":
		return fmt.Sprintf("%s must be >= %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s failed %s", e.Field, e.Rule)
	}
}

// ValidationError 汇总一条记录的全部字段错误。
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.String()
	}
	return strings.Join(msgs, "; ")
}

// Validate 按 validate 标签检查记录，在写入存储之前调用。
func Validate(record any) error {
	return wrapValidation(validate.Struct(record))
}

// ValidateFields 只校验指定字段（结构体字段名），用于部分更新。
func ValidateFields(record any, fields ...string) error {
	return wrapValidation(validate.StructPartial(record, fields...))
}

func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: columnName(fe.StructField()), Rule: fe.Tag(), Param: fe.Param()})
	}
	return out
}

// columnName 把结构体字段名映射为对外字段名。
func columnName(field string) string {
	switch field {
	case "UserID":
		return "id_user"
	case "PostID":
		return "id_post"
	case "FollowerID":
		return "id_follower"
	case "FollowedID":
		return "id_followed"
	case "URLImg":
		return "url_img"
	case "IsActive":
		return "is_active"
	case "Content":
		return "comments"
	case "OldPassword":
		return "old_password"
	case "NewPassword":
		return "new_password"
	default:
		return strings.ToLower(field)
	}
}

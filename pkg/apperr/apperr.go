// Package apperr 定义与存储无关的错误分类。
package apperr

import (
	"errors"
	"fmt"
)

// 错误类别（哨兵），通过 errors.Is 判断。
var (
	ErrValidation          = errors.New("validation error")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrNotFound            = errors.New("record not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrStorage             = errors.New("storage error")
)

// Error 带操作上下文的错误，Kind 为上面的哨兵之一，Err 为底层原因（可为空）。
type Error struct {
	Op   string
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Msg != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	return msg
}

// Unwrap 同时暴露类别与底层原因。
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func Validation(op, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

// Constraint 的 msg 会返回给调用方，驱动原始错误只保存在 Err 中用于日志。
func Constraint(op, msg string, cause error) error {
	return &Error{Op: op, Kind: ErrConstraintViolation, Msg: msg, Err: cause}
}

func NotFound(op, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Storage 包装无法归类的存储错误，对外一律视为内部错误。
func Storage(op string, cause error) error {
	return &Error{Op: op, Kind: ErrStorage, Err: cause}
}

func Unauthorized(op, msg string) error {
	return &Error{Op: op, Kind: ErrUnauthorized, Msg: msg}
}

func Forbidden(op, msg string) error {
	return &Error{Op: op, Kind: ErrForbidden, Msg: msg}
}

// Message 返回适合对外展示的描述（不含 Op 前缀）。
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Msg != "" {
			return e.Msg
		}
		return e.Kind.Error()
	}
	return err.Error()
}

package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-schema/internal/model"
	"github.com/d60-Lab/social-schema/pkg/apperr"
)

// Postgres SQLSTATE
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// translate 把驱动相关的错误转换为 apperr 分类，调用方不再感知具体存储。
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(op, "record not found")
	}
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return apperr.Validation(op, "%s", verr.Error())
	}
	if msg, ok := constraintMessage(err); ok {
		return apperr.Constraint(op, msg, err)
	}
	return apperr.Storage(op, err)
}

// 对外的约束描述，不暴露表名、索引名等存储细节
const (
	msgUnique     = "unique constraint violated"
	msgForeignKey = "referenced record does not exist"
	msgNotNull    = "required field missing"
	msgConstraint = "constraint violated"
)

// constraintMessage 识别约束类错误并返回与存储无关的描述
func constraintMessage(err error) (string, bool) {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return msgUnique, true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return msgUnique, true
		case sqlite3.ErrConstraintForeignKey:
			return msgForeignKey, true
		case sqlite3.ErrConstraintNotNull:
			return msgNotNull, true
		}
		return msgConstraint, sqliteErr.Code == sqlite3.ErrConstraint
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return msgUnique, true
		case pgForeignKeyViolation:
			return msgForeignKey, true
		case pgNotNullViolation:
			return msgNotNull, true
		}
		return "", false
	}
	// 兜底：部分驱动只给出文本
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"), strings.Contains(msg, "duplicate key"):
		return msgUnique, true
	case strings.Contains(msg, "FOREIGN KEY constraint failed"), strings.Contains(msg, "foreign key constraint"):
		return msgForeignKey, true
	case strings.Contains(msg, "NOT NULL constraint failed"), strings.Contains(msg, "null value in column"):
		return msgNotNull, true
	case strings.Contains(msg, "constraint failed"), strings.Contains(msg, "violates"):
		return msgConstraint, true
	}
	return "", false
}

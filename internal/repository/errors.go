package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// 数据层错误分类，调用方用 errors.Is 判断
var (
	ErrNotFound           = errors.New("repository: record not found")
	ErrConflict           = errors.New("repository: conflict")
	ErrInvalidCredentials = errors.New("repository: invalid credentials")
	ErrTransient          = errors.New("repository: transient database error")

	ErrEmailTaken = fmt.Errorf("%w: email already in use", ErrConflict)
	ErrLoginTaken = fmt.Errorf("%w: username already in use", ErrConflict)
)

// wrapErr 把 gorm / pg 驱动错误翻译成统一分类
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505": // unique_violation
			return fmt.Errorf("%w: %v", ErrConflict, err)
		case len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08": // connection_exception
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		pgconn.SafeToRetry(err) {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}

	return err
}

// IsTransient 判断错误是否值得重试
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

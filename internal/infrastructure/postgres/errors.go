package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nexstu/socialgraph/internal/domain/shared"
)

// Postgres SQLSTATE codes we translate into domain kinds.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
	codeSerialization       = "40001"
	codeDeadlock            = "40P01"
)

// classify maps a pgx error onto the domain error taxonomy.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if shared.KindOf(err) != nil {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return shared.E(op, shared.ErrNotFound, "", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation, codeSerialization, codeDeadlock:
			return shared.E(op, shared.ErrConflict, "concurrent update, retry", err)
		case codeForeignKeyViolation, codeInvalidText:
			return shared.E(op, shared.ErrNotFound, "User not found", err)
		case codeCheckViolation:
			return shared.E(op, shared.ErrSelfFollow, "Cannot follow yourself", err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		pgconn.Timeout(err) ||
		pgconn.SafeToRetry(err) {
		return shared.E(op, shared.ErrServiceUnavailable, "storage unavailable", err)
	}
	return err
}

// likePattern wraps term for a substring ILIKE match, escaping the LIKE
// metacharacters so user input only ever matches literally.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

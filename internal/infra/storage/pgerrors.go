// Package storage holds helpers shared by the postgres repositories.
package storage

import (
	"errors"

	"github.com/lib/pq"
)

const (
	codeUniqueViolation    pq.ErrorCode = "23505"
	codeExclusionViolation pq.ErrorCode = "23P01"
	codeCheckViolation     pq.ErrorCode = "23514"
)

// IsExclusionViolation reports an EXCLUDE constraint failure, e.g. two overlapping confirmed stays
func IsExclusionViolation(err error) bool {
	return hasCode(err, codeExclusionViolation)
}

// IsUniqueViolation reports a unique constraint failure
func IsUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// IsCheckViolation reports a CHECK constraint failure
func IsCheckViolation(err error) bool {
	return hasCode(err, codeCheckViolation)
}

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}

package httperr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind groups business errors by how callers should react to them.
type Kind string

const (
	KindBusiness           Kind = "business"
	KindValidation         Kind = "validation"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindForbidden          Kind = "forbidden"
	KindCloudUnavailable   Kind = "cloud_unavailable"
	KindNoActiveMembership Kind = "no_active_membership"
)

type BusinessError struct {
	Code string
	Kind Kind
	Err  error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code, Kind: KindBusiness}
}

func ErrValidation(code string) error {
	return BusinessError{Code: code, Kind: KindValidation}
}

func ErrNotFound(code string) error {
	return BusinessError{Code: code, Kind: KindNotFound}
}

func ErrConflict(code string) error {
	return BusinessError{Code: code, Kind: KindConflict}
}

func ErrForbidden(code string) error {
	return BusinessError{Code: code, Kind: KindForbidden}
}

// ErrCloud wraps a storage failure. The message keeps the "cloud error"
// prefix the dashboards show to operators.
func ErrCloud(err error) error {
	return BusinessError{
		Code: "cloud_error",
		Kind: KindCloudUnavailable,
		Err:  fmt.Errorf("cloud error: %w", err),
	}
}

var ErrNoActiveMembership = BusinessError{
	Code: "no_active_membership",
	Kind: KindNoActiveMembership,
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf returns the kind of the first BusinessError in the chain, or ""
// when err carries none.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// IsExclusionConflict reports postgres unique (23505) and exclusion
// (23P01) violations.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" || pgErr.Code == "23P01"
	}
	return false
}

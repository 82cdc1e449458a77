package httperr

import (
	"errors"
	"fmt"
)

// Códigos de negócio compartilhados entre domínio, casos de uso e handlers.
const (
	CodeInvalidRequest       = "invalid_request"
	CodeInvalidConfiguration = "invalid_configuration"
	CodeInvalidServiceSet    = "invalid_service_set"
	CodeAlreadyServing       = "already_serving"
	CodeInvalidState         = "invalid_state"
	CodeNotFound             = "not_found"
	CodeConflict             = "store_conflict"
	CodeTimeConflict         = "time_conflict"
	CodeOutsideWorkingHours  = "outside_working_hours"
	CodeTooSoon              = "too_soon"
	CodeServiceInUse         = "service_in_use"
)

type BusinessError struct {
	Code   string
	Detail string
}

func (e BusinessError) Error() string {
	if e.Detail != "" {
		return e.Code + ": " + e.Detail
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessf(code, format string, args ...any) error {
	return BusinessError{Code: code, Detail: fmt.Sprintf(format, args...)}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

// UpstreamError marca falhas de leitura/escrita no banco. A operação inteira
// falha; nunca se trata uma leitura falha como "sem restrições".
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	var be BusinessError
	if errors.As(err, &be) {
		return err
	}
	return &UpstreamError{Op: op, Err: err}
}

func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

package reporting

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFilters    = errors.New("filtros de KPI inválidos")
	ErrWorkspaceNotFound = errors.New("workspace não encontrado")
)

// ReportError carrega o código de erro da API junto do erro base
type ReportError struct {
	Err     error
	Code    string
	Details string
}

func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

func NewReportError(baseErr error, code string, details string) *ReportError {
	return &ReportError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

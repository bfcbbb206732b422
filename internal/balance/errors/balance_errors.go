package balanceerrors

import (
	"go-hr-ticketing/internal/shared/apperror"
	"net/http"
)

var (
	// ErrEntitlementMissing is a configuration error: the employee has no
	// gender profile to read allowances from. Never defaulted to zero.
	ErrEntitlementMissing = apperror.New(
		apperror.CodeConflict,
		"Leave entitlement is not configured for this employee",
		http.StatusConflict,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
)

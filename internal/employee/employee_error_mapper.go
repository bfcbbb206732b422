package employee

import (
	"errors"
	"strings"

	employeeerrors "go-hr-ticketing/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if pgErr.ConstraintName == "uq_employee_email" {
				return employeeerrors.ErrEmployeeAlreadyExists
			}
		case "23503":
			return mapForeignKeyError(pgErr.ConstraintName)
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employee_email") {
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	return err
}

func mapForeignKeyError(constraint string) error {
	switch {
	case strings.Contains(constraint, "department"):
		return employeeerrors.ErrDepartmentNotFound
	case strings.Contains(constraint, "gender"):
		return employeeerrors.ErrGenderProfileNotFound
	default:
		return employeeerrors.ErrEmployeeInUse
	}
}

package leave

import (
	"errors"
	"strings"

	leaveerrors "go-hr-ticketing/internal/leave/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "55P03":
			return leaveerrors.ErrTicketBusy.WithErr(err)
		case "23503":
			if strings.Contains(pgErr.ConstraintName, "employee") {
				return leaveerrors.ErrEmployeeNotFound
			}
			return leaveerrors.ErrReferenceInvalid
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "could not obtain lock") {
		return leaveerrors.ErrTicketBusy.WithErr(err)
	}

	return err
}

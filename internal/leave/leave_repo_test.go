package leave_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"go-hr-ticketing/internal/balance"
	"go-hr-ticketing/internal/domain"
	"go-hr-ticketing/internal/leave"
	leaveerrors "go-hr-ticketing/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return gdb, mock
}

func TestRepository_FindByIDForUpdate(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("lock held elsewhere", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE NOWAIT")).
			WillReturnError(&pgconn.PgError{Code: "55P03", Message: "could not obtain lock on row"})

		_, err := leave.NewRepository(gdb).FindByIDForUpdate(ctx, id)

		assert.ErrorIs(t, err, leaveerrors.ErrTicketBusy)
		var pgErr *pgconn.PgError
		assert.True(t, errors.As(err, &pgErr))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE NOWAIT")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := leave.NewRepository(gdb).FindByIDForUpdate(ctx, id)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("found", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "leave_requests"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "ticket_number", "status", "tl_status", "leave_type"}).
				AddRow(id.String(), "LR-2024-000007", "in-progress", "pending", 2))

		l, err := leave.NewRepository(gdb).FindByIDForUpdate(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, "LR-2024-000007", l.TicketNumber)
		assert.Equal(t, leave.StatusInProgress, l.Status)
		assert.Equal(t, domain.LeaveSick, l.LeaveType)
	})
}

func TestRepository_Delete(t *testing.T) {
	gdb, mock := newGormMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "leave_requests"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := leave.NewRepository(gdb).Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	gdb, mock := newGormMock(t)
	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "leave_requests" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := leave.NewRepository(gdb).Update(context.Background(), &leave.LeaveRequest{
		ID:        id,
		Status:    leave.StatusTLLevel,
		TLStatus:  leave.TLPending,
		UpdatedAt: time.Now(),
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindPersonByEmail(t *testing.T) {
	ctx := context.Background()
	cols := []string{"id", "name", "email", "role", "department_id", "department_name", "department_head", "tl_mail"}
	id := uuid.New()
	dept := uuid.New()

	t.Run("case insensitive", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("lower(e.email) = $1")).
			WithArgs("tl@corp.test").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(id.String(), "Tom Lead", "TL@corp.test", "Team Lead", dept.String(), "Engineering", "Dana Head", "tl@corp.test"))

		p, err := leave.NewRepository(gdb).FindPersonByEmail(ctx, " TL@Corp.Test ")

		require.NoError(t, err)
		assert.Equal(t, id, p.ID)
		assert.Equal(t, domain.RoleTeamLead, p.Role)
		require.NotNil(t, p.DepartmentID)
		assert.Equal(t, dept, *p.DepartmentID)
		assert.Equal(t, "Dana Head", p.DepartmentHead)
	})

	t.Run("no department", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE e.id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(id.String(), "Eve", "eve@corp.test", "Employee", nil, nil, nil, nil))

		p, err := leave.NewRepository(gdb).FindPerson(ctx, id)

		require.NoError(t, err)
		assert.Nil(t, p.DepartmentID)
		assert.Empty(t, p.TLMail)
	})

	t.Run("missing", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("lower(e.email) = $1")).
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := leave.NewRepository(gdb).FindPersonByEmail(ctx, "ghost@corp.test")

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
	})
}

func TestRepository_HasHistory(t *testing.T) {
	gdb, mock := newGormMock(t)
	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "approval_history"`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	ok, err := leave.NewRepository(gdb).HasHistory(context.Background(), id)

	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestRepository_CountFinalApprovedBetween(t *testing.T) {
	gdb, mock := newGormMock(t)
	employeeID := uuid.New()
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	mock.ExpectQuery(regexp.QuoteMeta("start_date >= $3 AND start_date < $4")).
		WithArgs(employeeID, leave.StatusFinalApproved, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"leave_type", "total"}).
			AddRow(1, 2).
			AddRow(2, 1))

	counts, err := leave.NewRepository(gdb).CountFinalApprovedBetween(context.Background(), employeeID, from, to)

	assert.NoError(t, err)
	assert.Equal(t, balance.Counts{Emergency: 2, Sick: 1}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_EnsureTL(t *testing.T) {
	gdb, mock := newGormMock(t)
	repo := leave.NewAssignmentRepository(gdb)
	leaveID := uuid.New()
	insert := regexp.QuoteMeta(`ON CONFLICT ("leave_request_id") DO NOTHING`)

	mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 0))

	row := func() *leave.TLAssignment {
		return &leave.TLAssignment{ID: uuid.New(), LeaveRequestID: leaveID, DepartmentID: departmentID, CreatedAt: time.Now()}
	}

	created, err := repo.EnsureTL(context.Background(), row())
	assert.NoError(t, err)
	assert.True(t, created)

	created, err = repo.EnsureTL(context.Background(), row())
	assert.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_UpsertHR(t *testing.T) {
	gdb, mock := newGormMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT ("leave_request_id") DO UPDATE SET "hr_employee_id"="excluded"."hr_employee_id"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := leave.NewAssignmentRepository(gdb).UpsertHR(context.Background(), &leave.Assignment{
		ID:             uuid.New(),
		LeaveRequestID: uuid.New(),
		HREmployeeID:   hr1.ID,
		AssignedBy:     manager.ID,
		AssignedAt:     time.Now(),
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_FindHRMissing(t *testing.T) {
	gdb, mock := newGormMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "leave_assignments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	a, err := leave.NewAssignmentRepository(gdb).FindHR(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.Nil(t, a)
}

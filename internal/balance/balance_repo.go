package balance

import (
	"context"
	"database/sql"

	balanceerrors "go-hr-ticketing/internal/balance/errors"
	"go-hr-ticketing/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindEntitlement(ctx context.Context, employeeID uuid.UUID) (Counts, error)
	CountApproved(ctx context.Context, employeeID uuid.UUID) (Counts, error)
	UpsertTaken(ctx context.Context, row LeaveTaken) error
	UpsertRemaining(ctx context.Context, row LeaveRemaining) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

type entitlementRow struct {
	EmployeeID     uuid.UUID
	PlannedLeave   *int
	SickLeave      *int
	EmergencyLeave *int
}

func (r *repository) FindEntitlement(ctx context.Context, employeeID uuid.UUID) (Counts, error) {
	var rows []entitlementRow
	err := r.conn(ctx).Raw(`
		SELECT e.id AS employee_id, g.planned_leave, g.sick_leave, g.emergency_leave
		FROM employees e
		LEFT JOIN genders g ON g.id = e.gender_profile_id
		WHERE e.id = ?
	`, employeeID).Scan(&rows).Error
	if err != nil {
		return Counts{}, err
	}
	if len(rows) == 0 {
		return Counts{}, balanceerrors.ErrEmployeeNotFound
	}

	row := rows[0]
	if row.PlannedLeave == nil || row.SickLeave == nil || row.EmergencyLeave == nil {
		return Counts{}, balanceerrors.ErrEntitlementMissing
	}
	return Counts{
		Sick:      *row.SickLeave,
		Planned:   *row.PlannedLeave,
		Emergency: *row.EmergencyLeave,
	}, nil
}

type approvedRow struct {
	LeaveType int
	Total     int
}

// CountApproved is bounded by employee_id; it is the only query whose cost
// grows with request history.
func (r *repository) CountApproved(ctx context.Context, employeeID uuid.UUID) (Counts, error) {
	var rows []approvedRow
	err := r.conn(ctx).Raw(`
		SELECT leave_type, COUNT(*) AS total
		FROM leave_requests
		WHERE employee_id = ? AND status = ?
		GROUP BY leave_type
	`, employeeID, CountedStatus).Scan(&rows).Error
	if err != nil {
		return Counts{}, err
	}

	var counts Counts
	for _, row := range rows {
		counts.Add(domain.LeaveType(row.LeaveType), row.Total)
	}
	return counts, nil
}

func (r *repository) UpsertTaken(ctx context.Context, row LeaveTaken) error {
	return r.conn(ctx).Exec(`
		INSERT INTO leave_taken (employee_id, approved_sick, approved_planned, approved_emergency, updated_at)
		VALUES (?, ?, ?, ?, now())
		ON CONFLICT (employee_id) DO UPDATE
		SET approved_sick = EXCLUDED.approved_sick,
			approved_planned = EXCLUDED.approved_planned,
			approved_emergency = EXCLUDED.approved_emergency,
			updated_at = EXCLUDED.updated_at
	`, row.EmployeeID, row.ApprovedSick, row.ApprovedPlanned, row.ApprovedEmergency).Error
}

func (r *repository) UpsertRemaining(ctx context.Context, row LeaveRemaining) error {
	return r.conn(ctx).Exec(`
		INSERT INTO leave_remaining (employee_id, remaining_sick, remaining_planned, remaining_emergency, updated_at)
		VALUES (?, ?, ?, ?, now())
		ON CONFLICT (employee_id) DO UPDATE
		SET remaining_sick = EXCLUDED.remaining_sick,
			remaining_planned = EXCLUDED.remaining_planned,
			remaining_emergency = EXCLUDED.remaining_emergency,
			updated_at = EXCLUDED.updated_at
	`, row.EmployeeID, row.RemainingSick, row.RemainingPlanned, row.RemainingEmergency).Error
}

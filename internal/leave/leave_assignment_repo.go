package leave

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssignmentRepository holds who handles a ticket: one HR assignee and at
// most one Team Lead department.
//
//go:generate mockgen -source=leave_assignment_repo.go -destination=mock/leave_assignment_repo_mock.go -package=mock
type AssignmentRepository interface {
	WithTx(tx *sql.Tx) AssignmentRepository
	FindHR(ctx context.Context, leaveID uuid.UUID) (*Assignment, error)
	UpsertHR(ctx context.Context, a *Assignment) error
	EnsureTL(ctx context.Context, t *TLAssignment) (bool, error)
	FindTL(ctx context.Context, leaveID uuid.UUID) (*TLAssignment, error)
	DeleteByLeave(ctx context.Context, leaveID uuid.UUID) error
	FindHRQueue(ctx context.Context, hrEmployeeID uuid.UUID) ([]LeaveRequest, error)
	FindTLQueue(ctx context.Context, departmentID uuid.UUID, statuses []Status) ([]LeaveRequest, error)
}

type assignmentRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) WithTx(tx *sql.Tx) AssignmentRepository {
	return &assignmentRepository{db: r.db, tx: tx}
}

func (r *assignmentRepository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

// FindHR returns nil without error when the ticket has no HR assignee.
func (r *assignmentRepository) FindHR(ctx context.Context, leaveID uuid.UUID) (*Assignment, error) {
	var a Assignment
	err := r.conn(ctx).First(&a, "leave_request_id = ?", leaveID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpsertHR replaces the assignee in place; there is never more than one row
// per ticket.
func (r *assignmentRepository) UpsertHR(ctx context.Context, a *Assignment) error {
	err := r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "leave_request_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"hr_employee_id", "assigned_by", "assigned_at"}),
		}).
		Create(a).Error
	return mapRepositoryError(err)
}

// EnsureTL reports whether this call created the row. Concurrent callers
// race on the unique key and exactly one wins.
func (r *assignmentRepository) EnsureTL(ctx context.Context, t *TLAssignment) (bool, error) {
	res := r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "leave_request_id"}},
			DoNothing: true,
		}).
		Create(t)
	if res.Error != nil {
		return false, mapRepositoryError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *assignmentRepository) FindTL(ctx context.Context, leaveID uuid.UUID) (*TLAssignment, error) {
	var t TLAssignment
	err := r.conn(ctx).First(&t, "leave_request_id = ?", leaveID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *assignmentRepository) DeleteByLeave(ctx context.Context, leaveID uuid.UUID) error {
	db := r.conn(ctx)
	if err := db.Where("leave_request_id = ?", leaveID).Delete(&Assignment{}).Error; err != nil {
		return err
	}
	return r.conn(ctx).Where("leave_request_id = ?", leaveID).Delete(&TLAssignment{}).Error
}

func (r *assignmentRepository) FindHRQueue(ctx context.Context, hrEmployeeID uuid.UUID) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.conn(ctx).
		Joins("JOIN leave_assignments la ON la.leave_request_id = leave_requests.id").
		Where("la.hr_employee_id = ?", hrEmployeeID).
		Order("leave_requests.applied_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *assignmentRepository) FindTLQueue(ctx context.Context, departmentID uuid.UUID, statuses []Status) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.conn(ctx).
		Joins("JOIN leave_tl_assignments ta ON ta.leave_request_id = leave_requests.id").
		Where("ta.department_id = ?", departmentID).
		Where("leave_requests.status IN ?", statuses).
		Order("leave_requests.applied_at DESC").
		Find(&leaves).Error
	return leaves, err
}

package leave

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-hr-ticketing/internal/balance"
	"go-hr-ticketing/internal/domain"
	leaveerrors "go-hr-ticketing/internal/leave/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	// FindByIDForUpdate locks the row with NOWAIT; a concurrent holder makes
	// it fail instead of block.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindPerson(ctx context.Context, employeeID uuid.UUID) (Person, error)
	FindPersonByEmail(ctx context.Context, email string) (Person, error)
	AppendHistory(ctx context.Context, h *ApprovalHistory) error
	FindHistory(ctx context.Context, leaveID uuid.UUID) ([]ApprovalHistory, error)
	HasHistory(ctx context.Context, leaveID uuid.UUID) (bool, error)
	CountFinalApprovedBetween(ctx context.Context, employeeID uuid.UUID, from, to time.Time) (balance.Counts, error)
	FindOverview(ctx context.Context) ([]OverviewRow, error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return mapRepositoryError(r.conn(ctx).Create(l).Error)
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	if err := r.conn(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &l, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "NOWAIT"}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &l, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("applied_at DESC").
		Find(&leaves).Error
	return leaves, err
}

// Update writes only the workflow columns. Submitted details are immutable.
func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	err := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", l.ID).
		Updates(map[string]interface{}{
			"status":           l.Status,
			"tl_status":        l.TLStatus,
			"employee_message": l.EmployeeMessage,
			"hr_message":       l.HRMessage,
			"teamlead_message": l.TeamleadMessage,
			"reraise_count":    l.ReRaiseCount,
			"escalated_at":     l.EscalatedAt,
			"tl_decided_at":    l.TLDecidedAt,
			"final_decided_by": l.FinalDecidedBy,
			"final_decided_at": l.FinalDecidedAt,
			"updated_at":       l.UpdatedAt,
		}).Error
	return mapRepositoryError(err)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.conn(ctx).Delete(&LeaveRequest{}, "id = ?", id)
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return mapRepositoryError(gorm.ErrRecordNotFound)
	}
	return nil
}

type personRow struct {
	ID             uuid.UUID
	Name           string
	Email          string
	Role           string
	DepartmentID   *uuid.UUID
	DepartmentName *string
	DepartmentHead *string
	TLMail         *string
}

const personQuery = `
	SELECT e.id, e.name, e.email, e.role, e.department_id,
		d.name AS department_name, d.head_name AS department_head, d.tl_mail AS tl_mail
	FROM employees e
	LEFT JOIN departments d ON d.id = e.department_id AND d.deleted_at IS NULL
`

func (r *repository) FindPerson(ctx context.Context, employeeID uuid.UUID) (Person, error) {
	return r.findPerson(ctx, personQuery+" WHERE e.id = ?", employeeID)
}

func (r *repository) FindPersonByEmail(ctx context.Context, email string) (Person, error) {
	return r.findPerson(ctx, personQuery+" WHERE lower(e.email) = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *repository) findPerson(ctx context.Context, query string, arg interface{}) (Person, error) {
	var rows []personRow
	if err := r.conn(ctx).Raw(query, arg).Scan(&rows).Error; err != nil {
		return Person{}, err
	}
	if len(rows) == 0 {
		return Person{}, leaveerrors.ErrEmployeeNotFound
	}
	row := rows[0]
	return Person{
		ID:             row.ID,
		Name:           row.Name,
		Email:          row.Email,
		Role:           domain.Role(row.Role),
		DepartmentID:   row.DepartmentID,
		DepartmentName: deref(row.DepartmentName),
		DepartmentHead: deref(row.DepartmentHead),
		TLMail:         deref(row.TLMail),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *repository) AppendHistory(ctx context.Context, h *ApprovalHistory) error {
	return mapRepositoryError(r.conn(ctx).Create(h).Error)
}

func (r *repository) FindHistory(ctx context.Context, leaveID uuid.UUID) ([]ApprovalHistory, error) {
	var rows []ApprovalHistory
	err := r.conn(ctx).
		Where("leave_request_id = ?", leaveID).
		Order("created_at").
		Find(&rows).Error
	return rows, err
}

func (r *repository) HasHistory(ctx context.Context, leaveID uuid.UUID) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&ApprovalHistory{}).
		Where("leave_request_id = ?", leaveID).
		Count(&count).Error
	return count > 0, err
}

type typeCountRow struct {
	LeaveType int
	Total     int
}

func (r *repository) CountFinalApprovedBetween(ctx context.Context, employeeID uuid.UUID, from, to time.Time) (balance.Counts, error) {
	var rows []typeCountRow
	err := r.conn(ctx).Raw(`
		SELECT leave_type, COUNT(*) AS total
		FROM leave_requests
		WHERE employee_id = ? AND status = ? AND start_date >= ? AND start_date < ?
		GROUP BY leave_type
	`, employeeID, StatusFinalApproved, from, to).Scan(&rows).Error
	if err != nil {
		return balance.Counts{}, err
	}

	var counts balance.Counts
	for _, row := range rows {
		counts.Add(domain.LeaveType(row.LeaveType), row.Total)
	}
	return counts, nil
}

func (r *repository) FindOverview(ctx context.Context) ([]OverviewRow, error) {
	var rows []OverviewRow
	err := r.conn(ctx).Raw(`
		SELECT lr.*, owner.name AS employee_name,
			COALESCE(hr.name, '') AS hr_name, COALESCE(hr.email, '') AS hr_email
		FROM leave_requests lr
		JOIN employees owner ON owner.id = lr.employee_id
		LEFT JOIN leave_assignments la ON la.leave_request_id = lr.id
		LEFT JOIN employees hr ON hr.id = la.hr_employee_id
		ORDER BY lr.applied_at DESC
	`).Scan(&rows).Error
	return rows, err
}

package leave

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go-hr-ticketing/internal/balance"
	balanceerrors "go-hr-ticketing/internal/balance/errors"
	"go-hr-ticketing/internal/domain"
	"go-hr-ticketing/internal/employee"
	leaveerrors "go-hr-ticketing/internal/leave/errors"
	"go-hr-ticketing/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:generate mockgen -source=leave_query_service.go -destination=mock/leave_query_service_mock.go -package=mock
type QueryService interface {
	MyTickets(ctx context.Context, actor domain.Actor) (MyTicketsResponse, error)
	HRQueue(ctx context.Context, actor domain.Actor) ([]LeaveResponse, error)
	TLQueue(ctx context.Context, actor domain.Actor) ([]LeaveResponse, error)
	MonthlySummary(ctx context.Context, actor domain.Actor, employeeID, month, year string) (MonthlySummaryResponse, error)
	EmployeeBalance(ctx context.Context, actor domain.Actor, employeeID string) (balance.Balance, error)
	ManagerOverview(ctx context.Context, actor domain.Actor) (ManagerOverviewResponse, error)
	History(ctx context.Context, actor domain.Actor, id string) ([]ApprovalHistoryResponse, error)
}

// StaffDirectory lists employees by role.
type StaffDirectory interface {
	GetOptions(ctx context.Context, role string) ([]employee.EmployeeOptionResponse, error)
}

type queryService struct {
	repo        Repository
	assignments AssignmentRepository
	ledger      BalanceLedger
	staff       StaffDirectory
	now         func() time.Time
	logger      *zap.Logger
}

func NewQueryService(
	repo Repository,
	assignments AssignmentRepository,
	ledger BalanceLedger,
	staff StaffDirectory,
	now func() time.Time,
	logger ...*zap.Logger,
) QueryService {
	l := zap.L().Named("leave.query")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.query")
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &queryService{
		repo:        repo,
		assignments: assignments,
		ledger:      ledger,
		staff:       staff,
		now:         now,
		logger:      l,
	}
}

func (s *queryService) MyTickets(ctx context.Context, actor domain.Actor) (MyTicketsResponse, error) {
	leaves, err := s.repo.FindByEmployee(ctx, actor.ID)
	if err != nil {
		return MyTicketsResponse{}, err
	}
	res := MyTicketsResponse{Tickets: mapToListResponse(leaves)}

	bal, err := s.ledger.Current(ctx, actor.ID)
	switch {
	case err == nil:
		res.Remaining = &bal.Remaining
	case errors.Is(err, balanceerrors.ErrEntitlementMissing):
		contextutil.GetLogger(ctx, s.logger).Warn("balance unavailable for tickets view",
			zap.String("employee_id", actor.ID.String()),
			zap.Error(err),
		)
	default:
		return MyTicketsResponse{}, err
	}
	return res, nil
}

func (s *queryService) HRQueue(ctx context.Context, actor domain.Actor) ([]LeaveResponse, error) {
	if actor.Role != domain.RoleHR {
		return nil, leaveerrors.ErrForbiddenRole
	}
	leaves, err := s.assignments.FindHRQueue(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *queryService) TLQueue(ctx context.Context, actor domain.Actor) ([]LeaveResponse, error) {
	if actor.Role != domain.RoleTeamLead {
		return nil, leaveerrors.ErrForbiddenRole
	}
	if actor.DepartmentID == nil {
		return nil, leaveerrors.ErrNoDepartment
	}
	leaves, err := s.assignments.FindTLQueue(ctx, *actor.DepartmentID, TLActive)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

// MonthlySummary counts final-approved requests per leave type whose start
// date falls in the month. Empty month or year means the current one.
func (s *queryService) MonthlySummary(ctx context.Context, actor domain.Actor, employeeID, month, year string) (MonthlySummaryResponse, error) {
	id, err := s.authorizeEmployeeView(actor, employeeID)
	if err != nil {
		return MonthlySummaryResponse{}, err
	}

	now := s.now()
	m := now.Month()
	if strings.TrimSpace(month) != "" {
		if m, err = parseMonth(month); err != nil {
			return MonthlySummaryResponse{}, err
		}
	}
	y := now.Year()
	if strings.TrimSpace(year) != "" {
		y, err = strconv.Atoi(strings.TrimSpace(year))
		if err != nil || y < 1900 || y > 9999 {
			return MonthlySummaryResponse{}, leaveerrors.ErrInvalidYear
		}
	}

	from := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	counts, err := s.repo.CountFinalApprovedBetween(ctx, id, from, from.AddDate(0, 1, 0))
	if err != nil {
		return MonthlySummaryResponse{}, err
	}
	return MonthlySummaryResponse{
		EmployeeID: id.String(),
		Month:      m.String(),
		Year:       y,
		Approved:   counts,
	}, nil
}

func (s *queryService) EmployeeBalance(ctx context.Context, actor domain.Actor, employeeID string) (balance.Balance, error) {
	id, err := s.authorizeEmployeeView(actor, employeeID)
	if err != nil {
		return balance.Balance{}, err
	}
	return s.ledger.Current(ctx, id)
}

func (s *queryService) ManagerOverview(ctx context.Context, actor domain.Actor) (ManagerOverviewResponse, error) {
	if !actor.Is(domain.RoleManager, domain.RoleHR) {
		return ManagerOverviewResponse{}, leaveerrors.ErrForbiddenRole
	}

	rows, err := s.repo.FindOverview(ctx)
	if err != nil {
		return ManagerOverviewResponse{}, err
	}
	hrStaff, err := s.staff.GetOptions(ctx, string(domain.RoleHR))
	if err != nil {
		return ManagerOverviewResponse{}, err
	}

	res := ManagerOverviewResponse{
		Tickets: make([]OverviewTicketResponse, 0, len(rows)),
		HRStaff: make([]HRMemberResponse, 0, len(hrStaff)),
	}
	for _, row := range rows {
		res.Tickets = append(res.Tickets, OverviewTicketResponse{
			LeaveResponse: mapToResponse(row.LeaveRequest),
			EmployeeName:  row.EmployeeName,
			HRName:        row.HRName,
			HREmail:       row.HREmail,
		})
	}
	for _, hr := range hrStaff {
		res.HRStaff = append(res.HRStaff, HRMemberResponse{ID: hr.ID, Name: hr.Name, Email: hr.Email})
	}
	return res, nil
}

// History is visible to the owner, HR, Managers and the owner's Team Lead.
func (s *queryService) History(ctx context.Context, actor domain.Actor, id string) ([]ApprovalHistoryResponse, error) {
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return nil, leaveerrors.ErrInvalidLeaveID
	}
	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		return nil, err
	}

	if l.EmployeeID != actor.ID && !actor.Is(domain.RoleHR, domain.RoleManager) {
		if actor.Role != domain.RoleTeamLead {
			return nil, leaveerrors.ErrForbiddenRole
		}
		owner, err := s.repo.FindPerson(ctx, l.EmployeeID)
		if err != nil {
			return nil, err
		}
		if owner.TLMail == "" || !strings.EqualFold(owner.TLMail, actor.Email) {
			return nil, leaveerrors.ErrNotDepartmentTL
		}
	}

	rows, err := s.repo.FindHistory(ctx, leaveID)
	if err != nil {
		return nil, err
	}
	return mapHistoryResponse(rows), nil
}

func (s *queryService) authorizeEmployeeView(actor domain.Actor, employeeID string) (uuid.UUID, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return uuid.Nil, leaveerrors.ErrInvalidEmployeeID
	}
	if id != actor.ID && !actor.Is(domain.RoleHR, domain.RoleManager) {
		return uuid.Nil, leaveerrors.ErrForbiddenRole
	}
	return id, nil
}

// parseMonth accepts 1-12, a full English month name or its first three
// letters, in any case.
func parseMonth(s string) (time.Month, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, leaveerrors.ErrInvalidMonth
		}
		return time.Month(n), nil
	}

	name := cases.Title(language.English).String(strings.ToLower(s))
	for m := time.January; m <= time.December; m++ {
		full := m.String()
		if name == full || (len(name) == 3 && name == full[:3]) {
			return m, nil
		}
	}
	return 0, leaveerrors.ErrInvalidMonth
}

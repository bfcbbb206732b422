package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-hr-ticketing/internal/balance"
	"go-hr-ticketing/internal/domain"
	leaveerrors "go-hr-ticketing/internal/leave/errors"
	"go-hr-ticketing/internal/notification"
	"go-hr-ticketing/internal/shared/contextutil"
	"go-hr-ticketing/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ticketCounterType        = "leave_ticket"
	DefaultPlannedNoticeDays = 30
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actor domain.Actor, req SubmitLeaveRequest) (LeaveResponse, error)
	ReRaise(ctx context.Context, actor domain.Actor, id string, req MessageRequest) (LeaveResponse, error)
	AcceptRejection(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error)
	AnswerQuery(ctx context.Context, actor domain.Actor, id string, req MessageRequest) (LeaveResponse, error)
	Withdraw(ctx context.Context, actor domain.Actor, id string) error
	AssignHR(ctx context.Context, actor domain.Actor, id string, req AssignHRRequest) (LeaveResponse, error)
	HRReject(ctx context.Context, actor domain.Actor, id string, req MessageRequest) (LeaveResponse, error)
	HRForwardToTL(ctx context.Context, actor domain.Actor, id string, req MessageRequest) (LeaveResponse, error)
	HRAskQuery(ctx context.Context, actor domain.Actor, id string, req MessageRequest) (LeaveResponse, error)
	HRForwardToEmployee(ctx context.Context, actor domain.Actor, id string, req MessageRequest) (LeaveResponse, error)
	TLDecide(ctx context.Context, actor domain.Actor, id string, req DecisionRequest) (LeaveResponse, error)
	FinalAcceptance(ctx context.Context, actor domain.Actor, id string, req DecisionRequest) (LeaveResponse, error)
}

// BalanceLedger is the part of balance.Ledger the workflow uses.
type BalanceLedger interface {
	Recompute(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID) (balance.Balance, error)
	Current(ctx context.Context, employeeID uuid.UUID) (balance.Balance, error)
	Invalidate(ctx context.Context, employeeID uuid.UUID)
}

type Options struct {
	PlannedNoticeDays int
	Now               func() time.Time
}

type service struct {
	db                *sql.DB
	repo              Repository
	assignments       AssignmentRepository
	ledger            BalanceLedger
	counter           counter.Repository
	emitter           notification.Emitter
	plannedNoticeDays int
	now               func() time.Time
	logger            *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	assignments AssignmentRepository,
	ledger BalanceLedger,
	counterRepo counter.Repository,
	emitter notification.Emitter,
	opts Options,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		db:                db,
		repo:              repo,
		assignments:       assignments,
		ledger:            ledger,
		counter:           counterRepo,
		emitter:           emitter,
		plannedNoticeDays: opts.PlannedNoticeDays,
		now:               opts.Now,
		logger:            l,
	}
}

func (s *service) Submit(ctx context.Context, actor domain.Actor, req SubmitLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	leaveType, err := domain.ParseLeaveType(req.LeaveType)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	now := s.now()
	if leaveType == domain.LeavePlanned {
		earliest := truncateToDate(now).AddDate(0, 0, s.plannedNoticeDays)
		if !startDate.After(earliest) {
			log.Warn("submit leave notice too short",
				zap.String("actor_id", actor.ID.String()),
				zap.String("start_date", req.StartDate),
				zap.Int("notice_days", s.plannedNoticeDays),
			)
			return LeaveResponse{}, leaveerrors.ErrPlannedNoticeTooShort
		}
	}

	next, err := Transition(State{}, Command{Op: OpSubmit, Role: actor.Role})
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	seq, err := s.counter.WithTx(tx).GetNextValue(ctx, strconv.Itoa(now.Year()), ticketCounterType)
	if err != nil {
		log.Error("submit leave ticket number failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l := &LeaveRequest{
		ID:            uuid.New(),
		TicketNumber:  formatTicketNumber(now.Year(), seq),
		EmployeeID:    actor.ID,
		LeaveType:     leaveType,
		StartDate:     startDate,
		EndDate:       endDate,
		Reason:        strings.TrimSpace(req.Reason),
		AttachmentRef: normalizeRef(req.AttachmentRef),
		AppliedAt:     now,
		UpdatedAt:     now,
	}
	l.apply(next)

	if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
		log.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		log.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("leave submitted",
		zap.String("leave_id", l.ID.String()),
		zap.String("ticket_number", l.TicketNumber),
		zap.String("actor_id", actor.ID.String()),
		zap.String("leave_type", leaveType.String()),
	)
	return mapToResponse(*l), nil
}

func (s *service) ReRaise(ctx context.Context, actor domain.Actor, id string, req MessageRequest) (LeaveResponse, error) {
	return s.mutate(ctx, actor, id, OpReRaise, func(t *ticketTx) error {
		if err := requireOwner(t.leave, actor); err != nil {
			return err
		}
		if err := t.transition(Command{Op: OpReRaise, Role: actor.Role}); err != nil {
			return err
		}
		t.leave.EmployeeMessage = strings.TrimSpace(req.Message)

		recipients, err := s.handlerIDs(t)
		if err != nil {
			return err
		}
		t.notify(notification.Notice{
			Recipients: recipients,
			Message:    fmt.Sprintf("Leave ticket %s was re-raised by the employee", t.leave.TicketNumber),
		})
		return nil
	})
}

func (s *service) AcceptRejection(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error) {
	return s.mutate(ctx, actor, id, OpAcceptRejection, func(t *ticketTx) error {
		if err := requireOwner(t.leave, actor); err != nil {
			return err
		}
		if err := t.transition(Command{Op: OpAcceptRejection, Role: actor.Role}); err != nil {
			return err
		}
		return s.notifyAssignedHR(t, "The employee accepted the rejection of leave ticket %s")
	})
}

func (s *service) AnswerQuery(ctx context.Context, actor domain.Actor, id string, req MessageRequest) (LeaveResponse, error) {
	return s.mutate(ctx, actor, id, OpAnswerQuery, func(t *ticketTx) error {
		if err := requireOwner(t.leave, actor); err != nil {
			return err
		}
		if err := t.transition(Command{Op: OpAnswerQuery, Role: actor.Role}); err != nil {
			return err
		}
		t.leave.EmployeeMessage = strings.TrimSpace(req.Message)
		return s.notifyAssignedHR(t, "The employee answered your query on leave ticket %s")
	})
}

// Withdraw deletes a ticket nobody has acted on yet.
func (s *service) Withdraw(ctx context.Context, actor domain.Actor, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	leaveID, err := uuid.Parse(id)
	if err != nil {
		return leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("withdraw leave begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByIDForUpdate(ctx, leaveID)
	if err != nil {
		return err
	}
	if err := requireOwner(l, actor); err != nil {
		return err
	}
	if _, err := Transition(l.state(), Command{Op: OpWithdraw, Role: actor.Role}); err != nil {
		return err
	}
	if err := s.assignments.WithTx(tx).DeleteByLeave(ctx, leaveID); err != nil {
		log.Error("withdraw leave assignment cleanup failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}
	if err := qtx.Delete(ctx, leaveID); err != nil {
		log.Error("withdraw leave delete failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("withdraw leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}

	log.Info("leave withdrawn",
		zap.String("leave_id", id),
		zap.String("actor_id", actor.ID.String()),
	)
	return nil
}

func (s *service) AssignHR(ctx context.Context, actor domain.Actor, id string, req AssignHRRequest) (LeaveResponse, error) {
	if !RoleAllowed(OpAssignHR, actor.Role) {
		return LeaveResponse{}, leaveerrors.ErrForbiddenRole
	}
	if req.HREmployeeID == "" && req.HREmail == "" {
		return LeaveResponse{}, leaveerrors.ErrHRRequired
	}

	return s.mutate(ctx, actor, id, OpAssignHR, func(t *ticketTx) error {
		assignee, err := s.resolveAssignee(t, req)
		if err != nil {
			return err
		}

		if err := t.transition(Command{Op: OpAssignHR, Role: actor.Role, MarkInProgress: req.MarkInProgress}); err != nil {
			return err
		}

		current, err := t.assignments.FindHR(t.ctx, t.leave.ID)
		if err != nil {
			return err
		}
		if current != nil && current.HREmployeeID == assignee.ID {
			return leaveerrors.ErrSameHandler
		}

		if err := t.assignments.UpsertHR(t.ctx, &Assignment{
			ID:             uuid.New(),
			LeaveRequestID: t.leave.ID,
			HREmployeeID:   assignee.ID,
			AssignedBy:     actor.ID,
			AssignedAt:     t.now,
		}); err != nil {
			return err
		}

		msg := fmt.Sprintf("Leave ticket %s has been assigned to you", t.leave.TicketNumber)
		t.notify(notification.Notice{
			Recipients: []uuid.UUID{assignee.ID},
			Message:    msg,
			Mail: &notification.Mail{
				To:      []string{assignee.Email},
				Subject: "Leave ticket " + t.leave.TicketNumber + " assigned",
				Body:    fmt.Sprintf("Hello %s,\n\n%s.\n", assignee.Name, msg),
			},
		})
		return nil
	})
}

func (s *service) resolveAssignee(t *ticketTx, req AssignHRRequest) (Person, error) {
	var (
		p   Person
		err error
	)
	if req.HREmployeeID != "" {
		hrID, perr := uuid.Parse(req.HREmployeeID)
		if perr != nil {
			return Person{}, leaveerrors.ErrInvalidEmployeeID
		}
		p, err = t.repo.FindPerson(t.ctx, hrID)
	} else {
		p, err = t.repo.FindPersonByEmail(t.ctx, req.HREmail)
	}
	if errors.Is(err, leaveerrors.ErrEmployeeNotFound) {
		return Person{}, leaveerrors.ErrHREmployeeNotFound
	}
	if err != nil {
		return Person{}, err
	}
	if p.Role != domain.RoleHR {
		return Person{}, leaveerrors.ErrAssigneeNotHR
	}
	return p, nil
}

func (s *service) HRReject(ctx context.Context, actor domain.Actor, id string, req MessageRequest) (LeaveResponse, error) {
	return s.hrStep(ctx, actor, id, OpHRReject, req, func(t *ticketTx) error {
		t.notify(notification.Notice{
			Recipients: []uuid.UUID{t.leave.EmployeeID},
			Message:    fmt.Sprintf("Your leave ticket %s was rejected by HR", t.leave.TicketNumber),
		})
		return nil
	})
}

func (s *service) HRAskQuery(ctx context.Context, actor domain.Actor, id string, req MessageRequest) (LeaveResponse, error) {
	return s.hrStep(ctx, actor, id, OpHRAskQuery, req, func(t *ticketTx) error {
		t.notify(notification.Notice{
			Recipients: []uuid.UUID{t.leave.EmployeeID},
			Message:    fmt.Sprintf("HR has a question about your leave ticket %s", t.leave.TicketNumber),
		})
		return nil
	})
}

func (s *service) HRForwardToTL(ctx context.Context, actor domain.Actor, id string, req MessageRequest) (LeaveResponse, error) {
	return s.hrStep(ctx, actor, id, OpHRForwardToTL, req, func(t *ticketTx) error {
		owner, err := t.repo.FindPerson(t.ctx, t.leave.EmployeeID)
		if err != nil {
			return err
		}
		if owner.DepartmentID == nil {
			return leaveerrors.ErrNoDepartment
		}

		created, err := t.assignments.EnsureTL(t.ctx, &TLAssignment{
			ID:             uuid.New(),
			LeaveRequestID: t.leave.ID,
			DepartmentID:   *owner.DepartmentID,
			CreatedAt:      t.now,
		})
		if err != nil {
			return err
		}
		escalatedAt := t.now
		t.leave.EscalatedAt = &escalatedAt

		contextutil.GetLogger(t.ctx, s.logger).Debug("leave escalated",
			zap.String("leave_id", t.leave.ID.String()),
			zap.String("department_id", owner.DepartmentID.String()),
			zap.Bool("tl_assignment_created", created),
		)

		msg := fmt.Sprintf("Leave ticket %s from %s needs your decision", t.leave.TicketNumber, owner.Name)
		notice := notification.Notice{Message: msg}
		if tl, ok := s.teamLeadOf(t, owner); ok {
			notice.Recipients = []uuid.UUID{tl.ID}
		}
		if owner.TLMail != "" {
			notice.Mail = &notification.Mail{
				To:      []string{owner.TLMail},
				Subject: "Leave ticket " + t.leave.TicketNumber + " awaiting team lead decision",
				Body:    msg + ".\n",
			}
		}
		t.notify(notice)
		return nil
	})
}

func (s *service) HRForwardToEmployee(ctx context.Context, actor domain.Actor, id string, req MessageRequest) (LeaveResponse, error) {
	return s.hrStep(ctx, actor, id, OpHRForwardToEmployee, req, func(t *ticketTx) error {
		t.notify(notification.Notice{
			Recipients: []uuid.UUID{t.leave.EmployeeID},
			Message:    fmt.Sprintf("Team lead decision on leave ticket %s: %s", t.leave.TicketNumber, t.leave.TLStatus),
		})
		return nil
	})
}

// hrStep runs an operation reserved for the ticket's assigned HR.
func (s *service) hrStep(ctx context.Context, actor domain.Actor, id string, op Operation, req MessageRequest, then func(t *ticketTx) error) (LeaveResponse, error) {
	if !RoleAllowed(op, actor.Role) {
		return LeaveResponse{}, leaveerrors.ErrForbiddenRole
	}
	return s.mutate(ctx, actor, id, op, func(t *ticketTx) error {
		assigned, err := t.assignments.FindHR(t.ctx, t.leave.ID)
		if err != nil {
			return err
		}
		if assigned == nil || assigned.HREmployeeID != actor.ID {
			return leaveerrors.ErrNotAssignedHR
		}
		if err := t.transition(Command{Op: op, Role: actor.Role}); err != nil {
			return err
		}
		if msg := strings.TrimSpace(req.Message); msg != "" {
			t.leave.HRMessage = msg
		}
		return then(t)
	})
}

func (s *service) TLDecide(ctx context.Context, actor domain.Actor, id string, req DecisionRequest) (LeaveResponse, error) {
	if !RoleAllowed(OpTLDecide, actor.Role) {
		return LeaveResponse{}, leaveerrors.ErrForbiddenRole
	}
	decision, ok := ParseDecision(req.Decision)
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrInvalidDecision
	}

	return s.mutate(ctx, actor, id, OpTLDecide, func(t *ticketTx) error {
		owner, err := t.repo.FindPerson(t.ctx, t.leave.EmployeeID)
		if err != nil {
			return err
		}
		if owner.TLMail == "" || !strings.EqualFold(owner.TLMail, actor.Email) {
			return leaveerrors.ErrNotDepartmentTL
		}

		if err := t.transition(Command{Op: OpTLDecide, Role: actor.Role, Decision: decision}); err != nil {
			return err
		}

		tla, err := t.assignments.FindTL(t.ctx, t.leave.ID)
		if err != nil {
			return err
		}
		if tla == nil {
			return leaveerrors.ErrTLAssignmentMissing
		}

		decidedAt := t.now
		t.leave.TLDecidedAt = &decidedAt
		t.leave.TeamleadMessage = strings.TrimSpace(req.Message)

		if err := t.repo.AppendHistory(t.ctx, &ApprovalHistory{
			ID:                   uuid.New(),
			EmployeeID:           t.leave.EmployeeID,
			LeaveRequestID:       t.leave.ID,
			ApproverDepartmentID: owner.DepartmentID,
			ApproverID:           actor.ID,
			Action:               historyAction(decision),
			Comment:              t.leave.TeamleadMessage,
			CreatedAt:            t.now,
		}); err != nil {
			return err
		}

		recipients := []uuid.UUID{t.leave.EmployeeID}
		assigned, err := t.assignments.FindHR(t.ctx, t.leave.ID)
		if err != nil {
			return err
		}
		if assigned != nil {
			recipients = append(recipients, assigned.HREmployeeID)
		}
		t.notify(notification.Notice{
			Recipients: recipients,
			Message:    fmt.Sprintf("Team lead %s leave ticket %s", strings.ToLower(string(decision)), t.leave.TicketNumber),
		})
		return nil
	})
}

// FinalAcceptance records HR's final outcome. An approval recomputes the
// owner's ledger in the same transaction.
func (s *service) FinalAcceptance(ctx context.Context, actor domain.Actor, id string, req DecisionRequest) (LeaveResponse, error) {
	if !RoleAllowed(OpFinalAcceptance, actor.Role) {
		return LeaveResponse{}, leaveerrors.ErrForbiddenRole
	}
	decision, ok := ParseDecision(req.Decision)
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrInvalidDecision
	}

	return s.mutate(ctx, actor, id, OpFinalAcceptance, func(t *ticketTx) error {
		if err := t.transition(Command{Op: OpFinalAcceptance, Role: actor.Role, Decision: decision}); err != nil {
			return err
		}

		hasHistory, err := t.repo.HasHistory(t.ctx, t.leave.ID)
		if err != nil {
			return err
		}
		if !hasHistory {
			return leaveerrors.ErrApprovalHistoryMissing
		}

		decidedAt := t.now
		decidedBy := actor.ID
		t.leave.FinalDecidedAt = &decidedAt
		t.leave.FinalDecidedBy = &decidedBy
		if msg := strings.TrimSpace(req.Message); msg != "" {
			t.leave.HRMessage = msg
		}

		owner, err := t.repo.FindPerson(t.ctx, t.leave.EmployeeID)
		if err != nil {
			return err
		}

		t.afterSave(func() error {
			var remaining *balance.Counts
			if t.leave.Status == StatusFinalApproved {
				bal, err := s.ledger.Recompute(t.ctx, t.tx, t.leave.EmployeeID)
				if err != nil {
					return err
				}
				remaining = &bal.Remaining
			}
			t.notify(finalNotice(t.leave, owner, decision, remaining))
			return nil
		})
		t.afterCommit(func() {
			s.ledger.Invalidate(t.ctx, t.leave.EmployeeID)
		})
		return nil
	})
}

func finalNotice(l *LeaveRequest, owner Person, decision Decision, remaining *balance.Counts) notification.Notice {
	outcome := strings.ToLower(string(decision))
	msg := fmt.Sprintf("Your leave ticket %s has been %s", l.TicketNumber, outcome)

	var body strings.Builder
	fmt.Fprintf(&body, "Hello %s,\n\n", owner.Name)
	fmt.Fprintf(&body, "Your %s request %s (%s to %s) has been %s.\n",
		l.LeaveType, l.TicketNumber, l.StartDate.Format(dateLayout), l.EndDate.Format(dateLayout), outcome)
	if owner.DepartmentHead != "" {
		fmt.Fprintf(&body, "Approver: %s\n", owner.DepartmentHead)
	}
	if remaining != nil {
		fmt.Fprintf(&body, "\nRemaining balance:\n  Sick leave: %d\n  Planned leave: %d\n  Emergency leave: %d\n",
			remaining.Sick, remaining.Planned, remaining.Emergency)
	}

	n := notification.Notice{
		Recipients: []uuid.UUID{l.EmployeeID},
		Message:    msg,
	}
	if owner.Email != "" {
		n.Mail = &notification.Mail{
			To:      []string{owner.Email},
			Subject: "Leave ticket " + l.TicketNumber + " " + outcome,
			Body:    body.String(),
		}
	}
	return n
}

// handlerIDs returns who currently works the ticket: the assigned HR and,
// once escalated, the department's Team Lead.
func (s *service) handlerIDs(t *ticketTx) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	assigned, err := t.assignments.FindHR(t.ctx, t.leave.ID)
	if err != nil {
		return nil, err
	}
	if assigned != nil {
		ids = append(ids, assigned.HREmployeeID)
	}

	tla, err := t.assignments.FindTL(t.ctx, t.leave.ID)
	if err != nil {
		return nil, err
	}
	if tla == nil {
		return ids, nil
	}
	owner, err := t.repo.FindPerson(t.ctx, t.leave.EmployeeID)
	if err != nil {
		return nil, err
	}
	if tl, ok := s.teamLeadOf(t, owner); ok {
		ids = append(ids, tl.ID)
	}
	return ids, nil
}

func (s *service) notifyAssignedHR(t *ticketTx, format string) error {
	assigned, err := t.assignments.FindHR(t.ctx, t.leave.ID)
	if err != nil {
		return err
	}
	if assigned == nil {
		return nil
	}
	t.notify(notification.Notice{
		Recipients: []uuid.UUID{assigned.HREmployeeID},
		Message:    fmt.Sprintf(format, t.leave.TicketNumber),
	})
	return nil
}

// teamLeadOf finds the employee record behind the department's tl_mail.
// A Team Lead without an account only gets mail.
func (s *service) teamLeadOf(t *ticketTx, owner Person) (Person, bool) {
	if owner.TLMail == "" {
		return Person{}, false
	}
	tl, err := t.repo.FindPersonByEmail(t.ctx, owner.TLMail)
	if err != nil {
		if !errors.Is(err, leaveerrors.ErrEmployeeNotFound) {
			contextutil.GetLogger(t.ctx, s.logger).Warn("team lead lookup failed",
				zap.String("tl_mail", owner.TLMail),
				zap.Error(err),
			)
		}
		return Person{}, false
	}
	return tl, true
}

func requireOwner(l *LeaveRequest, actor domain.Actor) error {
	if l.EmployeeID != actor.ID {
		return leaveerrors.ErrNotOwner
	}
	return nil
}

// ticketTx is one locked ticket inside an open transaction.
type ticketTx struct {
	ctx         context.Context
	tx          *sql.Tx
	repo        Repository
	assignments AssignmentRepository
	leave       *LeaveRequest
	now         time.Time

	notices   []notification.Notice
	saved     []func() error
	committed []func()
}

func (t *ticketTx) transition(cmd Command) error {
	next, err := Transition(t.leave.state(), cmd)
	if err != nil {
		return err
	}
	t.leave.apply(next)
	return nil
}

func (t *ticketTx) notify(n notification.Notice) {
	n.LeaveID = t.leave.ID
	n.TicketNumber = t.leave.TicketNumber
	t.notices = append(t.notices, n)
}

// afterSave runs once the ticket row is written, still inside the
// transaction.
func (t *ticketTx) afterSave(fn func() error) { t.saved = append(t.saved, fn) }

func (t *ticketTx) afterCommit(fn func()) { t.committed = append(t.committed, fn) }

// mutate locks the ticket with NOWAIT, lets apply change it, saves it and
// commits. Notices go out only after a successful commit.
func (s *service) mutate(ctx context.Context, actor domain.Actor, id string, op Operation, apply func(t *ticketTx) error) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("leave operation begin tx failed", zap.String("op", string(op)), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	t := &ticketTx{
		ctx:         ctx,
		tx:          tx,
		repo:        s.repo.WithTx(tx),
		assignments: s.assignments.WithTx(tx),
		now:         s.now(),
	}

	t.leave, err = t.repo.FindByIDForUpdate(ctx, leaveID)
	if err != nil {
		if errors.Is(err, leaveerrors.ErrTicketBusy) {
			log.Warn("leave ticket busy", zap.String("op", string(op)), zap.String("leave_id", id))
		}
		return LeaveResponse{}, err
	}
	from := t.leave.Status

	if err := apply(t); err != nil {
		log.Warn("leave operation refused",
			zap.String("op", string(op)),
			zap.String("leave_id", id),
			zap.String("actor_id", actor.ID.String()),
			zap.String("from_status", string(from)),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	t.leave.UpdatedAt = t.now
	if err := t.repo.Update(ctx, t.leave); err != nil {
		log.Error("leave operation persist failed", zap.String("op", string(op)), zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	for _, fn := range t.saved {
		if err := fn(); err != nil {
			log.Error("leave operation follow-up failed", zap.String("op", string(op)), zap.String("leave_id", id), zap.Error(err))
			return LeaveResponse{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		log.Error("leave operation commit failed", zap.String("op", string(op)), zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("leave transition",
		zap.String("op", string(op)),
		zap.String("leave_id", id),
		zap.String("actor_id", actor.ID.String()),
		zap.String("from_status", string(from)),
		zap.String("to_status", string(t.leave.Status)),
		zap.String("tl_status", string(t.leave.TLStatus)),
	)

	for _, fn := range t.committed {
		fn()
	}
	if s.emitter != nil && len(t.notices) > 0 {
		s.emitter.Emit(ctx, t.notices...)
	}
	return mapToResponse(*t.leave), nil
}

package leave

import (
	"strings"

	"go-hr-ticketing/internal/balance"
	"go-hr-ticketing/internal/domain"
	leaveerrors "go-hr-ticketing/internal/leave/errors"
)

// Status is the HR-level progress of a ticket.
type Status string

const (
	StatusPending           Status = "pending"
	StatusInProgress        Status = "in-progress"
	StatusTLLevel           Status = "in-progress-tl-level"
	StatusTLLevelReRaised   Status = "in-progress-tl-level-re-raised"
	StatusHRRejected        Status = "hr-rejected"
	StatusQueryRaised       Status = "query-raised-by-hr"
	StatusQueryAnswered     Status = "query-answered"
	StatusApproved          Status = "approved"
	StatusTLRejected        Status = "tl-rejected"
	StatusReRaised          Status = "re-raised"
	StatusRejectionAccepted Status = "rejection-accepted"
	StatusReRaisedApproved  Status = "re-raised-approved"
	StatusReRaisedRejected  Status = "re-raised-rejected"
	StatusFinalApproved     Status = balance.CountedStatus
	StatusFinalRejected     Status = "final-rejected"
)

// TLStatus is the Team Lead's decision for the current escalation round.
type TLStatus string

const (
	TLPending          TLStatus = "pending"
	TLApproved         TLStatus = "approved"
	TLRejected         TLStatus = "tl-rejected"
	TLReRaisedApproved TLStatus = "re-raised-approved"
	TLReRaisedRejected TLStatus = "re-raised-rejected"
)

type Operation string

const (
	OpSubmit              Operation = "submit"
	OpReRaise             Operation = "re-raise"
	OpAcceptRejection     Operation = "accept-rejection"
	OpAnswerQuery         Operation = "answer-query"
	OpWithdraw            Operation = "withdraw"
	OpAssignHR            Operation = "assign-hr"
	OpHRReject            Operation = "hr-reject"
	OpHRForwardToTL       Operation = "hr-forward-to-tl"
	OpHRAskQuery          Operation = "hr-ask-query"
	OpHRForwardToEmployee Operation = "hr-forward-to-employee"
	OpTLDecide            Operation = "tl-decide"
	OpFinalAcceptance     Operation = "final-acceptance"
)

// Decision is an approve or reject verdict given by a Team Lead or by HR.
type Decision string

const (
	DecisionApproved Decision = "Approved"
	DecisionRejected Decision = "Rejected"
)

// ParseDecision accepts approved/approve and rejected/reject in any case.
func ParseDecision(s string) (Decision, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approved", "approve":
		return DecisionApproved, true
	case "rejected", "reject":
		return DecisionRejected, true
	}
	return "", false
}

// State is the part of a ticket the transition rules look at.
type State struct {
	Status       Status
	TLStatus     TLStatus
	ReRaiseCount int
}

// Command is one attempted operation. Decision is read by TLDecide and
// FinalAcceptance, MarkInProgress by AssignHR.
type Command struct {
	Op             Operation
	Role           domain.Role
	Decision       Decision
	MarkInProgress bool
}

var (
	rejectedClass = statusSet(StatusHRRejected, StatusTLRejected, StatusReRaisedRejected, StatusFinalRejected)
	hrDesk        = statusSet(StatusPending, StatusInProgress, StatusQueryAnswered, StatusReRaised)
	tlStage       = statusSet(StatusTLLevel, StatusTLLevelReRaised)
	terminal      = statusSet(StatusFinalApproved, StatusFinalRejected, StatusRejectionAccepted)

	// TLActive is what a Team Lead's queue shows.
	TLActive = []Status{
		StatusTLLevel, StatusTLLevelReRaised, StatusApproved, StatusTLRejected,
		StatusReRaisedApproved, StatusRejectionAccepted, StatusReRaisedRejected,
	}
)

func statusSet(ss ...Status) map[Status]struct{} {
	m := make(map[Status]struct{}, len(ss))
	for _, s := range ss {
		m[s] = struct{}{}
	}
	return m
}

func (s Status) in(set map[Status]struct{}) bool {
	_, ok := set[s]
	return ok
}

func (s Status) IsRejected() bool { return s.in(rejectedClass) }
func (s Status) OnHRDesk() bool   { return s.in(hrDesk) }
func (s Status) AtTLStage() bool  { return s.in(tlStage) }
func (s Status) IsTerminal() bool { return s.in(terminal) }

func (t TLStatus) IsApproved() bool {
	return t == TLApproved || t == TLReRaisedApproved
}

type rule struct {
	roles []domain.Role
	next  func(State, Command) (State, error)
}

var rules = map[Operation]rule{
	OpSubmit: {next: func(s State, _ Command) (State, error) {
		if s.Status != "" {
			return s, leaveerrors.ErrInvalidStatusTransition
		}
		return State{Status: StatusPending, TLStatus: TLPending}, nil
	}},
	OpReRaise: {next: func(s State, _ Command) (State, error) {
		if !s.Status.IsRejected() {
			return s, leaveerrors.ErrInvalidStatusTransition
		}
		return State{Status: StatusReRaised, TLStatus: TLPending, ReRaiseCount: s.ReRaiseCount + 1}, nil
	}},
	OpAcceptRejection: {next: func(s State, _ Command) (State, error) {
		if !s.Status.IsRejected() {
			return s, leaveerrors.ErrInvalidStatusTransition
		}
		s.Status = StatusRejectionAccepted
		return s, nil
	}},
	OpAnswerQuery: {next: func(s State, _ Command) (State, error) {
		if s.Status != StatusQueryRaised {
			return s, leaveerrors.ErrInvalidStatusTransition
		}
		s.Status = StatusQueryAnswered
		return s, nil
	}},
	OpWithdraw: {next: func(s State, _ Command) (State, error) {
		if s.Status != StatusPending {
			return s, leaveerrors.ErrInvalidStatusTransition
		}
		return s, nil
	}},
	OpAssignHR: {roles: []domain.Role{domain.RoleManager, domain.RoleHR}, next: func(s State, c Command) (State, error) {
		if s.Status.AtTLStage() {
			return s, leaveerrors.ErrLockedAtTLStage
		}
		if s.Status.IsTerminal() {
			return s, leaveerrors.ErrInvalidStatusTransition
		}
		if c.MarkInProgress && (s.Status == StatusPending || s.Status == StatusReRaised) {
			s.Status = StatusInProgress
		}
		return s, nil
	}},
	OpHRReject: {roles: []domain.Role{domain.RoleHR}, next: fromHRDesk(func(s State) State {
		s.Status = StatusHRRejected
		return s
	})},
	OpHRAskQuery: {roles: []domain.Role{domain.RoleHR}, next: fromHRDesk(func(s State) State {
		s.Status = StatusQueryRaised
		return s
	})},
	OpHRForwardToTL: {roles: []domain.Role{domain.RoleHR}, next: fromHRDesk(func(s State) State {
		s.Status = StatusTLLevel
		if s.ReRaiseCount > 0 {
			s.Status = StatusTLLevelReRaised
		}
		s.TLStatus = TLPending
		return s
	})},
	OpHRForwardToEmployee: {roles: []domain.Role{domain.RoleHR}, next: func(s State, _ Command) (State, error) {
		if !s.Status.AtTLStage() {
			return s, leaveerrors.ErrInvalidStatusTransition
		}
		if s.TLStatus == TLPending {
			return s, leaveerrors.ErrTLDecisionPending
		}
		s.Status = Status(s.TLStatus)
		return s, nil
	}},
	OpTLDecide: {roles: []domain.Role{domain.RoleTeamLead}, next: func(s State, c Command) (State, error) {
		if !s.Status.AtTLStage() || s.TLStatus != TLPending {
			return s, leaveerrors.ErrInvalidStatusTransition
		}
		reRaised := s.Status == StatusTLLevelReRaised
		switch {
		case c.Decision == DecisionApproved && reRaised:
			s.TLStatus = TLReRaisedApproved
		case c.Decision == DecisionApproved:
			s.TLStatus = TLApproved
		case c.Decision == DecisionRejected && reRaised:
			s.TLStatus = TLReRaisedRejected
		case c.Decision == DecisionRejected:
			s.TLStatus = TLRejected
		default:
			return s, leaveerrors.ErrInvalidDecision
		}
		return s, nil
	}},
	OpFinalAcceptance: {roles: []domain.Role{domain.RoleHR}, next: func(s State, c Command) (State, error) {
		if s.Status.IsTerminal() {
			return s, leaveerrors.ErrAlreadyFinal
		}
		if !s.TLStatus.IsApproved() {
			return s, leaveerrors.ErrTLApprovalRequired
		}
		switch c.Decision {
		case DecisionApproved:
			s.Status = StatusFinalApproved
		case DecisionRejected:
			s.Status = StatusFinalRejected
		default:
			return s, leaveerrors.ErrInvalidDecision
		}
		return s, nil
	}},
}

func fromHRDesk(to func(State) State) func(State, Command) (State, error) {
	return func(s State, _ Command) (State, error) {
		if !s.Status.OnHRDesk() {
			return s, leaveerrors.ErrInvalidStatusTransition
		}
		return to(s), nil
	}
}

// Transition is the only place ticket state changes are decided. It checks
// the role guard and the from-state; ownership and assignment need the
// directory and are checked by the caller first.
func Transition(current State, cmd Command) (State, error) {
	r, ok := rules[cmd.Op]
	if !ok {
		return current, leaveerrors.ErrInvalidStatusTransition
	}
	if len(r.roles) > 0 && !roleIn(cmd.Role, r.roles) {
		return current, leaveerrors.ErrForbiddenRole
	}
	return r.next(current, cmd)
}

// RoleAllowed reports whether role passes the guard of op. Services check
// it before ownership so an outsider is refused before any state is read.
func RoleAllowed(op Operation, role domain.Role) bool {
	r, ok := rules[op]
	return ok && (len(r.roles) == 0 || roleIn(role, r.roles))
}

func roleIn(role domain.Role, roles []domain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

package leave_test

import (
	"testing"

	"go-hr-ticketing/internal/balance"
	"go-hr-ticketing/internal/domain"
	"go-hr-ticketing/internal/leave"
	leaveerrors "go-hr-ticketing/internal/leave/errors"

	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    leave.State
		cmd     leave.Command
		want    leave.State
		wantErr error
	}{
		{
			name: "submit starts pending",
			cmd:  leave.Command{Op: leave.OpSubmit, Role: domain.RoleEmployee},
			want: leave.State{Status: leave.StatusPending, TLStatus: leave.TLPending},
		},
		{
			name: "assign hr keeps pending without mark",
			from: leave.State{Status: leave.StatusPending, TLStatus: leave.TLPending},
			cmd:  leave.Command{Op: leave.OpAssignHR, Role: domain.RoleManager},
			want: leave.State{Status: leave.StatusPending, TLStatus: leave.TLPending},
		},
		{
			name: "assign hr marks in progress",
			from: leave.State{Status: leave.StatusPending, TLStatus: leave.TLPending},
			cmd:  leave.Command{Op: leave.OpAssignHR, Role: domain.RoleHR, MarkInProgress: true},
			want: leave.State{Status: leave.StatusInProgress, TLStatus: leave.TLPending},
		},
		{
			name:    "assign hr locked at tl stage",
			from:    leave.State{Status: leave.StatusTLLevel, TLStatus: leave.TLPending},
			cmd:     leave.Command{Op: leave.OpAssignHR, Role: domain.RoleManager},
			wantErr: leaveerrors.ErrLockedAtTLStage,
		},
		{
			name:    "assign hr refused by employee",
			from:    leave.State{Status: leave.StatusPending, TLStatus: leave.TLPending},
			cmd:     leave.Command{Op: leave.OpAssignHR, Role: domain.RoleEmployee},
			wantErr: leaveerrors.ErrForbiddenRole,
		},
		{
			name: "forward to tl",
			from: leave.State{Status: leave.StatusInProgress, TLStatus: leave.TLPending},
			cmd:  leave.Command{Op: leave.OpHRForwardToTL, Role: domain.RoleHR},
			want: leave.State{Status: leave.StatusTLLevel, TLStatus: leave.TLPending},
		},
		{
			name: "forward re-raised ticket to tl",
			from: leave.State{Status: leave.StatusReRaised, TLStatus: leave.TLPending, ReRaiseCount: 1},
			cmd:  leave.Command{Op: leave.OpHRForwardToTL, Role: domain.RoleHR},
			want: leave.State{Status: leave.StatusTLLevelReRaised, TLStatus: leave.TLPending, ReRaiseCount: 1},
		},
		{
			name:    "forward to tl from query raised",
			from:    leave.State{Status: leave.StatusQueryRaised, TLStatus: leave.TLPending},
			cmd:     leave.Command{Op: leave.OpHRForwardToTL, Role: domain.RoleHR},
			wantErr: leaveerrors.ErrInvalidStatusTransition,
		},
		{
			name: "tl approves",
			from: leave.State{Status: leave.StatusTLLevel, TLStatus: leave.TLPending},
			cmd:  leave.Command{Op: leave.OpTLDecide, Role: domain.RoleTeamLead, Decision: leave.DecisionApproved},
			want: leave.State{Status: leave.StatusTLLevel, TLStatus: leave.TLApproved},
		},
		{
			name: "tl rejects re-raised",
			from: leave.State{Status: leave.StatusTLLevelReRaised, TLStatus: leave.TLPending, ReRaiseCount: 1},
			cmd:  leave.Command{Op: leave.OpTLDecide, Role: domain.RoleTeamLead, Decision: leave.DecisionRejected},
			want: leave.State{Status: leave.StatusTLLevelReRaised, TLStatus: leave.TLReRaisedRejected, ReRaiseCount: 1},
		},
		{
			name:    "tl decides twice",
			from:    leave.State{Status: leave.StatusTLLevel, TLStatus: leave.TLApproved},
			cmd:     leave.Command{Op: leave.OpTLDecide, Role: domain.RoleTeamLead, Decision: leave.DecisionRejected},
			wantErr: leaveerrors.ErrInvalidStatusTransition,
		},
		{
			name: "forward tl decision to employee",
			from: leave.State{Status: leave.StatusTLLevel, TLStatus: leave.TLRejected},
			cmd:  leave.Command{Op: leave.OpHRForwardToEmployee, Role: domain.RoleHR},
			want: leave.State{Status: leave.StatusTLRejected, TLStatus: leave.TLRejected},
		},
		{
			name:    "forward to employee before tl decided",
			from:    leave.State{Status: leave.StatusTLLevel, TLStatus: leave.TLPending},
			cmd:     leave.Command{Op: leave.OpHRForwardToEmployee, Role: domain.RoleHR},
			wantErr: leaveerrors.ErrTLDecisionPending,
		},
		{
			name: "re-raise resets tl decision",
			from: leave.State{Status: leave.StatusTLRejected, TLStatus: leave.TLRejected},
			cmd:  leave.Command{Op: leave.OpReRaise, Role: domain.RoleEmployee},
			want: leave.State{Status: leave.StatusReRaised, TLStatus: leave.TLPending, ReRaiseCount: 1},
		},
		{
			name:    "re-raise from pending",
			from:    leave.State{Status: leave.StatusPending, TLStatus: leave.TLPending},
			cmd:     leave.Command{Op: leave.OpReRaise, Role: domain.RoleEmployee},
			wantErr: leaveerrors.ErrInvalidStatusTransition,
		},
		{
			name: "accept rejection",
			from: leave.State{Status: leave.StatusHRRejected, TLStatus: leave.TLPending},
			cmd:  leave.Command{Op: leave.OpAcceptRejection, Role: domain.RoleEmployee},
			want: leave.State{Status: leave.StatusRejectionAccepted, TLStatus: leave.TLPending},
		},
		{
			name: "answer query",
			from: leave.State{Status: leave.StatusQueryRaised, TLStatus: leave.TLPending},
			cmd:  leave.Command{Op: leave.OpAnswerQuery, Role: domain.RoleEmployee},
			want: leave.State{Status: leave.StatusQueryAnswered, TLStatus: leave.TLPending},
		},
		{
			name:    "withdraw after hr acted",
			from:    leave.State{Status: leave.StatusInProgress, TLStatus: leave.TLPending},
			cmd:     leave.Command{Op: leave.OpWithdraw, Role: domain.RoleEmployee},
			wantErr: leaveerrors.ErrInvalidStatusTransition,
		},
		{
			name: "final approval",
			from: leave.State{Status: leave.StatusApproved, TLStatus: leave.TLApproved},
			cmd:  leave.Command{Op: leave.OpFinalAcceptance, Role: domain.RoleHR, Decision: leave.DecisionApproved},
			want: leave.State{Status: leave.StatusFinalApproved, TLStatus: leave.TLApproved},
		},
		{
			name:    "final approval needs tl approval",
			from:    leave.State{Status: leave.StatusTLRejected, TLStatus: leave.TLRejected},
			cmd:     leave.Command{Op: leave.OpFinalAcceptance, Role: domain.RoleHR, Decision: leave.DecisionApproved},
			wantErr: leaveerrors.ErrTLApprovalRequired,
		},
		{
			name:    "final approval twice",
			from:    leave.State{Status: leave.StatusFinalApproved, TLStatus: leave.TLApproved},
			cmd:     leave.Command{Op: leave.OpFinalAcceptance, Role: domain.RoleHR, Decision: leave.DecisionApproved},
			wantErr: leaveerrors.ErrAlreadyFinal,
		},
		{
			name:    "final approval by manager",
			from:    leave.State{Status: leave.StatusApproved, TLStatus: leave.TLApproved},
			cmd:     leave.Command{Op: leave.OpFinalAcceptance, Role: domain.RoleManager, Decision: leave.DecisionApproved},
			wantErr: leaveerrors.ErrForbiddenRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := leave.Transition(tt.from, tt.cmd)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleAllowed(t *testing.T) {
	assert.True(t, leave.RoleAllowed(leave.OpAssignHR, domain.RoleManager))
	assert.True(t, leave.RoleAllowed(leave.OpAssignHR, domain.RoleHR))
	assert.False(t, leave.RoleAllowed(leave.OpAssignHR, domain.RoleTeamLead))
	assert.True(t, leave.RoleAllowed(leave.OpTLDecide, domain.RoleTeamLead))
	assert.False(t, leave.RoleAllowed(leave.OpTLDecide, domain.RoleHR))
	assert.False(t, leave.RoleAllowed(leave.OpHRReject, domain.RoleManager))
	assert.True(t, leave.RoleAllowed(leave.OpReRaise, domain.RoleTeamLead))
	assert.False(t, leave.RoleAllowed(leave.Operation("escalate"), domain.RoleAdmin))
}

func TestParseDecision(t *testing.T) {
	for _, in := range []string{"Approved", "approve", " APPROVED "} {
		d, ok := leave.ParseDecision(in)
		assert.True(t, ok, in)
		assert.Equal(t, leave.DecisionApproved, d, in)
	}
	d, ok := leave.ParseDecision("reject")
	assert.True(t, ok)
	assert.Equal(t, leave.DecisionRejected, d)

	_, ok = leave.ParseDecision("maybe")
	assert.False(t, ok)
}

func TestStatusClasses(t *testing.T) {
	assert.Equal(t, balance.CountedStatus, string(leave.StatusFinalApproved))
	assert.True(t, leave.StatusReRaisedRejected.IsRejected())
	assert.False(t, leave.StatusRejectionAccepted.IsRejected())
	assert.True(t, leave.StatusRejectionAccepted.IsTerminal())
	assert.True(t, leave.StatusQueryAnswered.OnHRDesk())
	assert.True(t, leave.StatusTLLevelReRaised.AtTLStage())
	assert.True(t, leave.TLReRaisedApproved.IsApproved())
	assert.False(t, leave.TLRejected.IsApproved())
}

package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go-hr-ticketing/internal/balance"
	balanceerrors "go-hr-ticketing/internal/balance/errors"
	"go-hr-ticketing/internal/domain"
	"go-hr-ticketing/internal/employee"
	"go-hr-ticketing/internal/leave"
	leaveerrors "go-hr-ticketing/internal/leave/errors"
	"go-hr-ticketing/internal/notification"

	"github.com/google/uuid"
)

// memStore backs both repositories with maps. Reads hand out copies so a
// refused operation leaves stored state untouched.
type memStore struct {
	mu      sync.Mutex
	leaves  map[uuid.UUID]leave.LeaveRequest
	persons map[uuid.UUID]leave.Person
	hr      map[uuid.UUID]leave.Assignment
	tl      map[uuid.UUID]leave.TLAssignment
	history []leave.ApprovalHistory
	busy    map[uuid.UUID]bool
	locks   map[uuid.UUID]*sql.Tx
}

func newMemStore() *memStore {
	return &memStore{
		leaves:  map[uuid.UUID]leave.LeaveRequest{},
		persons: map[uuid.UUID]leave.Person{},
		hr:      map[uuid.UUID]leave.Assignment{},
		tl:      map[uuid.UUID]leave.TLAssignment{},
		busy:    map[uuid.UUID]bool{},
		locks:   map[uuid.UUID]*sql.Tx{},
	}
}

// txDone reports whether tx has committed or rolled back. A finished Tx
// answers ErrTxDone before touching the driver.
func txDone(tx *sql.Tx) bool {
	return errors.Is(tx.StmtContext(context.Background(), &sql.Stmt{}).Close(), sql.ErrTxDone)
}

// lockRow takes the row lock of id for tx, failing at once while another
// open transaction holds it.
func (m *memStore) lockRow(id uuid.UUID, tx *sql.Tx) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy[id] {
		return leaveerrors.ErrTicketBusy
	}
	if tx == nil {
		return nil
	}
	if holder, ok := m.locks[id]; ok && holder != tx && !txDone(holder) {
		return leaveerrors.ErrTicketBusy
	}
	m.locks[id] = tx
	return nil
}

func (m *memStore) get(id uuid.UUID) leave.LeaveRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leaves[id]
}

func (m *memStore) put(l leave.LeaveRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaves[l.ID] = l
}

func (m *memStore) onlyLeave() leave.LeaveRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.leaves {
		return l
	}
	return leave.LeaveRequest{}
}

type fakeLeaveRepository struct {
	*memStore
	tx *sql.Tx
}

func (f fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	return fakeLeaveRepository{memStore: f.memStore, tx: tx}
}

func (f fakeLeaveRepository) Create(_ context.Context, l *leave.LeaveRequest) error {
	f.put(*l)
	return nil
}

func (f fakeLeaveRepository) FindByID(_ context.Context, id uuid.UUID) (*leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.leaves[id]
	if !ok {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	return &l, nil
}

func (f fakeLeaveRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*leave.LeaveRequest, error) {
	if err := f.lockRow(id, f.tx); err != nil {
		return nil, err
	}
	return f.FindByID(ctx, id)
}

func (f fakeLeaveRepository) FindByEmployee(_ context.Context, employeeID uuid.UUID) ([]leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []leave.LeaveRequest
	for _, l := range f.leaves {
		if l.EmployeeID == employeeID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TicketNumber < out[j].TicketNumber })
	return out, nil
}

func (f fakeLeaveRepository) Update(_ context.Context, l *leave.LeaveRequest) error {
	f.put(*l)
	return nil
}

func (f fakeLeaveRepository) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.leaves[id]; !ok {
		return leaveerrors.ErrLeaveNotFound
	}
	delete(f.leaves, id)
	return nil
}

func (f fakeLeaveRepository) FindPerson(_ context.Context, id uuid.UUID) (leave.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.persons[id]
	if !ok {
		return leave.Person{}, leaveerrors.ErrEmployeeNotFound
	}
	return p, nil
}

func (f fakeLeaveRepository) FindPersonByEmail(_ context.Context, email string) (leave.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.persons {
		if strings.EqualFold(p.Email, email) {
			return p, nil
		}
	}
	return leave.Person{}, leaveerrors.ErrEmployeeNotFound
}

func (f fakeLeaveRepository) AppendHistory(_ context.Context, h *leave.ApprovalHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = append(f.history, *h)
	return nil
}

func (f fakeLeaveRepository) FindHistory(_ context.Context, leaveID uuid.UUID) ([]leave.ApprovalHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []leave.ApprovalHistory
	for _, h := range f.history {
		if h.LeaveRequestID == leaveID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f fakeLeaveRepository) HasHistory(ctx context.Context, leaveID uuid.UUID) (bool, error) {
	rows, _ := f.FindHistory(ctx, leaveID)
	return len(rows) > 0, nil
}

func (f fakeLeaveRepository) CountFinalApprovedBetween(_ context.Context, employeeID uuid.UUID, from, to time.Time) (balance.Counts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var c balance.Counts
	for _, l := range f.leaves {
		if l.EmployeeID == employeeID && l.Status == leave.StatusFinalApproved &&
			!l.StartDate.Before(from) && l.StartDate.Before(to) {
			c.Add(l.LeaveType, 1)
		}
	}
	return c, nil
}

func (f fakeLeaveRepository) FindOverview(context.Context) ([]leave.OverviewRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []leave.OverviewRow
	for _, l := range f.leaves {
		row := leave.OverviewRow{LeaveRequest: l, EmployeeName: f.persons[l.EmployeeID].Name}
		if a, ok := f.hr[l.ID]; ok {
			row.HRName = f.persons[a.HREmployeeID].Name
			row.HREmail = f.persons[a.HREmployeeID].Email
		}
		out = append(out, row)
	}
	return out, nil
}

type fakeAssignmentRepository struct{ *memStore }

func (f fakeAssignmentRepository) WithTx(*sql.Tx) leave.AssignmentRepository { return f }

func (f fakeAssignmentRepository) FindHR(_ context.Context, leaveID uuid.UUID) (*leave.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.hr[leaveID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (f fakeAssignmentRepository) UpsertHR(_ context.Context, a *leave.Assignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hr[a.LeaveRequestID] = *a
	return nil
}

func (f fakeAssignmentRepository) EnsureTL(_ context.Context, t *leave.TLAssignment) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tl[t.LeaveRequestID]; ok {
		return false, nil
	}
	f.tl[t.LeaveRequestID] = *t
	return true, nil
}

func (f fakeAssignmentRepository) FindTL(_ context.Context, leaveID uuid.UUID) (*leave.TLAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tl[leaveID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (f fakeAssignmentRepository) DeleteByLeave(_ context.Context, leaveID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.hr, leaveID)
	delete(f.tl, leaveID)
	return nil
}

func (f fakeAssignmentRepository) FindHRQueue(_ context.Context, hrID uuid.UUID) ([]leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []leave.LeaveRequest
	for id, a := range f.hr {
		if a.HREmployeeID == hrID {
			out = append(out, f.leaves[id])
		}
	}
	return out, nil
}

func (f fakeAssignmentRepository) FindTLQueue(_ context.Context, departmentID uuid.UUID, statuses []leave.Status) ([]leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []leave.LeaveRequest
	for id, t := range f.tl {
		if t.DepartmentID != departmentID {
			continue
		}
		l := f.leaves[id]
		for _, s := range statuses {
			if l.Status == s {
				out = append(out, l)
				break
			}
		}
	}
	return out, nil
}

// fakeLedger derives balances from memStore the same way the real ledger
// derives them from leave_requests.
type fakeLedger struct {
	store        *memStore
	entitlements map[uuid.UUID]balance.Counts

	mu          sync.Mutex
	recomputes  int
	invalidated []uuid.UUID
}

func (f *fakeLedger) compute(employeeID uuid.UUID) (balance.Balance, error) {
	ent, ok := f.entitlements[employeeID]
	if !ok {
		return balance.Balance{}, balanceerrors.ErrEntitlementMissing
	}
	var taken balance.Counts
	f.store.mu.Lock()
	for _, l := range f.store.leaves {
		if l.EmployeeID == employeeID && string(l.Status) == balance.CountedStatus {
			taken.Add(l.LeaveType, 1)
		}
	}
	f.store.mu.Unlock()
	return balance.Balance{EmployeeID: employeeID, Entitlement: ent, Taken: taken, Remaining: ent.Minus(taken)}, nil
}

func (f *fakeLedger) Recompute(_ context.Context, _ *sql.Tx, employeeID uuid.UUID) (balance.Balance, error) {
	f.mu.Lock()
	f.recomputes++
	f.mu.Unlock()
	return f.compute(employeeID)
}

func (f *fakeLedger) Current(_ context.Context, employeeID uuid.UUID) (balance.Balance, error) {
	return f.compute(employeeID)
}

func (f *fakeLedger) Invalidate(_ context.Context, employeeID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, employeeID)
}

type recordingEmitter struct {
	mu      sync.Mutex
	notices []notification.Notice
}

func (r *recordingEmitter) Emit(_ context.Context, notices ...notification.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notices...)
}

func (r *recordingEmitter) last() notification.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return notification.Notice{}
	}
	return r.notices[len(r.notices)-1]
}

type fakeStaffDirectory struct {
	options []employee.EmployeeOptionResponse
	err     error
}

func (f fakeStaffDirectory) GetOptions(_ context.Context, role string) ([]employee.EmployeeOptionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []employee.EmployeeOptionResponse
	for _, o := range f.options {
		if o.Role == role {
			out = append(out, o)
		}
	}
	return out, nil
}

var (
	departmentID = uuid.MustParse("0b9f1c1e-6a53-4c1c-9d6e-2f4b4a1d0001")
	otherDeptID  = uuid.MustParse("0b9f1c1e-6a53-4c1c-9d6e-2f4b4a1d0002")

	employeeActor = domain.Actor{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Role: domain.RoleEmployee, DepartmentID: &departmentID, Email: "emp@corp.test"}
	otherEmployee = domain.Actor{ID: uuid.MustParse("11111111-1111-1111-1111-111111111112"), Role: domain.RoleEmployee, DepartmentID: &departmentID, Email: "other@corp.test"}
	hr1           = domain.Actor{ID: uuid.MustParse("22222222-2222-2222-2222-222222222221"), Role: domain.RoleHR, Email: "hr1@corp.test"}
	hr2           = domain.Actor{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Role: domain.RoleHR, Email: "hr2@corp.test"}
	teamLead      = domain.Actor{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Role: domain.RoleTeamLead, DepartmentID: &departmentID, Email: "tl@corp.test"}
	otherTeamLead = domain.Actor{ID: uuid.MustParse("33333333-3333-3333-3333-333333333334"), Role: domain.RoleTeamLead, DepartmentID: &otherDeptID, Email: "tl2@corp.test"}
	manager       = domain.Actor{ID: uuid.MustParse("44444444-4444-4444-4444-444444444444"), Role: domain.RoleManager, Email: "boss@corp.test"}
)

func seedPeople(m *memStore) {
	person := func(a domain.Actor, name string) leave.Person {
		p := leave.Person{ID: a.ID, Name: name, Email: a.Email, Role: a.Role, DepartmentID: a.DepartmentID}
		if a.DepartmentID != nil && *a.DepartmentID == departmentID {
			p.DepartmentName = "Engineering"
			p.DepartmentHead = "Dana Head"
			p.TLMail = "tl@corp.test"
		}
		return p
	}
	m.persons[employeeActor.ID] = person(employeeActor, "Eve Employee")
	m.persons[otherEmployee.ID] = person(otherEmployee, "Oscar Other")
	m.persons[hr1.ID] = person(hr1, "Hana HR")
	m.persons[hr2.ID] = person(hr2, "Hugo HR")
	m.persons[teamLead.ID] = person(teamLead, "Tom Lead")
	m.persons[otherTeamLead.ID] = person(otherTeamLead, "Tia Lead")
	m.persons[manager.ID] = person(manager, "Mia Manager")
}

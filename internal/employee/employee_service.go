package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"go-hr-ticketing/internal/domain"
	employeeerrors "go-hr-ticketing/internal/employee/errors"
	"go-hr-ticketing/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKeyPrefix = "employees:options:"
	employeeOptionsTTL       = time.Hour
)

// GetEmployeeOptionsKey is the cache key of the option list for role; an
// empty role lists everybody.
func GetEmployeeOptionsKey(role string) string {
	if role == "" {
		role = "all"
	}
	return EmployeeOptionsKeyPrefix + role
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, role string) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	ListGenderProfiles(ctx context.Context) ([]GenderProfileResponse, error)
	UpsertGenderProfile(ctx context.Context, req UpsertGenderProfileRequest) (GenderProfileResponse, error)
}

// BalanceInvalidator drops cached leave balances whose entitlement depends
// on employee data.
type BalanceInvalidator interface {
	Invalidate(ctx context.Context, employeeID uuid.UUID)
}

type service struct {
	db       *sql.DB
	repo     Repository
	rdb      *redis.Client
	balances BalanceInvalidator
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	rdb *redis.Client,
	balances BalanceInvalidator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		rdb:      rdb,
		balances: balances,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) Create(
	ctx context.Context,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	empl := &Employee{ID: uuid.New()}
	if err := applyEmployeeFields(empl, req.Name, req.Email, req.Role, req.DepartmentID, req.GenderProfileID); err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Warn("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, empl.Role)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context, role string) ([]EmployeeOptionResponse, error) {
	if role != "" && !domain.Role(role).Valid() {
		return nil, employeeerrors.ErrInvalidRole
	}
	cacheKey := GetEmployeeOptionsKey(role)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Concurrent misses share one query.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptionsByRole(ctx, role)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, len(empls))
		for i, e := range empls {
			resp[i] = EmployeeOptionResponse{
				ID:    e.ID.String(),
				Name:  e.Name,
				Email: e.Email,
				Role:  e.Role,
			}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, employeeOptionsTTL).Err(); err != nil {
					s.logger.Warn("employee options cache write failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	previousRole := empl.Role

	if err := applyEmployeeFields(empl, req.Name, req.Email, req.Role, req.DepartmentID, req.GenderProfileID); err != nil {
		return EmployeeResponse{}, err
	}
	// Relations were preloaded for the old ids; drop them so the response
	// does not report stale names.
	empl.Department = nil
	empl.GenderProfile = nil

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Warn("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, previousRole, empl.Role)
	// The gender profile decides the entitlement.
	s.invalidateBalances(ctx, empl.ID)
	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Warn("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx, empl.Role)
	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) ListGenderProfiles(ctx context.Context) ([]GenderProfileResponse, error) {
	profiles, err := s.repo.FindGenderProfiles(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]GenderProfileResponse, len(profiles))
	for i, p := range profiles {
		resp[i] = mapGenderProfile(p)
	}
	return resp, nil
}

func (s *service) UpsertGenderProfile(
	ctx context.Context,
	req UpsertGenderProfileRequest,
) (GenderProfileResponse, error) {
	profile := &GenderProfile{
		ID:             uuid.New(),
		Gender:         req.Gender,
		PlannedLeave:   derefInt(req.PlannedLeave),
		SickLeave:      derefInt(req.SickLeave),
		EmergencyLeave: derefInt(req.EmergencyLeave),
	}

	if err := s.repo.UpsertGenderProfile(ctx, profile); err != nil {
		s.logger.Error("upsert gender profile failed", zap.String("gender", req.Gender), zap.Error(err))
		return GenderProfileResponse{}, err
	}

	affected, err := s.repo.FindIDsByGenderProfile(ctx, profile.ID)
	if err != nil {
		// The allowances are saved; stale balances expire with the cache TTL.
		s.logger.Error("list employees of gender profile failed",
			zap.String("profile_id", profile.ID.String()),
			zap.Error(err),
		)
	}
	s.invalidateBalances(ctx, affected...)

	s.logger.Info("gender profile saved",
		zap.String("gender", profile.Gender),
		zap.String("profile_id", profile.ID.String()),
		zap.Int("balances_invalidated", len(affected)),
	)
	return mapGenderProfile(*profile), nil
}

func (s *service) invalidateOptions(ctx context.Context, roles ...string) {
	if s.rdb == nil {
		return
	}
	keys := []string{GetEmployeeOptionsKey("")}
	for _, role := range roles {
		keys = append(keys, GetEmployeeOptionsKey(role))
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.Strings("keys", keys),
		)
	}
}

func (s *service) invalidateBalances(ctx context.Context, employeeIDs ...uuid.UUID) {
	if s.balances == nil {
		return
	}
	for _, id := range employeeIDs {
		s.balances.Invalidate(ctx, id)
	}
}

func applyEmployeeFields(empl *Employee, name, email, role, departmentID, genderProfileID string) error {
	if !domain.Role(role).Valid() {
		return employeeerrors.ErrInvalidRole
	}
	genderID, err := uuid.Parse(genderProfileID)
	if err != nil {
		return employeeerrors.ErrGenderProfileNotFound
	}

	empl.Name = strings.TrimSpace(name)
	empl.Email = strings.ToLower(strings.TrimSpace(email))
	empl.Role = role
	empl.DepartmentID = uuidPtr(departmentID)
	empl.GenderProfileID = genderID
	return nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:              empl.ID.String(),
		Name:            empl.Name,
		Email:           empl.Email,
		Role:            empl.Role,
		DepartmentID:    uuidToString(empl.DepartmentID),
		GenderProfileID: empl.GenderProfileID.String(),
	}
	if empl.Department != nil {
		resp.Department = &EmployeeDepartmentResponse{
			ID:     empl.Department.ID.String(),
			Name:   empl.Department.Name,
			TLMail: empl.Department.TLMail,
		}
	}
	if empl.GenderProfile != nil {
		resp.Gender = empl.GenderProfile.Gender
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}

func mapGenderProfile(p GenderProfile) GenderProfileResponse {
	return GenderProfileResponse{
		ID:             p.ID.String(),
		Gender:         p.Gender,
		PlannedLeave:   p.PlannedLeave,
		SickLeave:      p.SickLeave,
		EmergencyLeave: p.EmergencyLeave,
	}
}

func uuidPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func uuidToString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	departmenterrors "go-hr-ticketing/internal/department/errors"
	"go-hr-ticketing/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	DepartmentsCacheKey = "departments:all"
	departmentsCacheTTL = 30 * time.Minute
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	req CreateDepartmentRequest,
) (DepartmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		HeadName: strings.TrimSpace(req.HeadName),
		TLMail:   strings.ToLower(strings.TrimSpace(req.TLMail)),
	}

	if err := qtx.Create(ctx, dept); err != nil {
		s.logger.Warn("create department persist failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidateCache(ctx)
	s.logger.Info("department created",
		zap.String("request_id", rid),
		zap.String("department_id", dept.ID.String()),
	)
	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, DepartmentsCacheKey).Result()
		if err == nil {
			var resp []DepartmentResponse
			if jsonErr := json.Unmarshal([]byte(cached), &resp); jsonErr == nil {
				return resp, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("department cache read failed", zap.Error(err))
		}
	}

	depts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := mapToListResponse(depts)

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, DepartmentsCacheKey, payload, departmentsCacheTTL).Err(); err != nil {
				s.logger.Warn("department cache write failed", zap.Error(err))
			}
		}
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateDepartmentRequest,
) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, err
	}

	dept.Name = strings.TrimSpace(req.Name)
	dept.HeadName = strings.TrimSpace(req.HeadName)
	dept.TLMail = strings.ToLower(strings.TrimSpace(req.TLMail))

	if err := qtx.Update(ctx, dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidateCache(ctx)
	return mapToResponse(*dept), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, DepartmentsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate department cache",
			zap.Error(err),
			zap.String("key", DepartmentsCacheKey),
		)
	}
}

func mapToResponse(dept Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:       dept.ID.String(),
		Name:     dept.Name,
		HeadName: dept.HeadName,
		TLMail:   dept.TLMail,
	}
	if !dept.CreatedAt.IsZero() {
		resp.CreatedAt = dept.CreatedAt.Format(time.RFC3339)
	}
	if !dept.UpdatedAt.IsZero() {
		resp.UpdatedAt = dept.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}

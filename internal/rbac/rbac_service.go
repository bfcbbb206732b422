package rbac

import (
	"sync"

	"go-hr-ticketing/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadDefaultPolicy() error
	Enforce(req domain.EnforceRequest) (bool, error)
	Permissions() ([]domain.PermissionResponse, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	s := &service{enforcer: enforcer, logger: l}
	if err := s.LoadDefaultPolicy(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) LoadDefaultPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()

	for _, role := range staffRoles {
		if _, err := s.enforcer.AddGroupingPolicy(string(role), groupStaff); err != nil {
			return err
		}
	}
	for _, p := range defaultPolicies {
		if _, err := s.enforcer.AddPolicy(p.sub, p.obj, p.act); err != nil {
			return err
		}
	}

	s.logger.Debug("rbac policy loaded",
		zap.Int("roles", len(staffRoles)),
		zap.Int("policies", len(defaultPolicies)),
	)
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// Permissions lists the effective (role, resource, action) triples,
// expanding group grants onto each member role.
func (s *service) Permissions() ([]domain.PermissionResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.PermissionResponse
	for _, role := range staffRoles {
		perms, err := s.enforcer.GetImplicitPermissionsForUser(string(role))
		if err != nil {
			return nil, err
		}
		for _, p := range perms {
			if len(p) < 3 {
				continue
			}
			out = append(out, domain.PermissionResponse{
				Role:     string(role),
				Resource: p[1],
				Action:   p[2],
			})
		}
	}
	return out, nil
}

package department

import (
	"context"
	"database/sql"
	"errors"

	departmenterrors "go-hr-ticketing/internal/department/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context) ([]Department, error)
	FindByID(ctx context.Context, id string) (*Department, error)
	Update(ctx context.Context, dept *Department) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return mapRepositoryError(r.conn(ctx).Create(dept).Error)
}

func (r *repository) FindAll(ctx context.Context) ([]Department, error) {
	var depts []Department
	err := r.conn(ctx).Order("name").Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Department, error) {
	var dept Department
	err := r.conn(ctx).First(&dept, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &dept, nil
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return mapRepositoryError(r.conn(ctx).Save(dept).Error)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&Department{}, "id = ?", id)
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return departmenterrors.ErrDepartmentNotFound
	}
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return departmenterrors.ErrDepartmentAlreadyExists
		case "23503":
			return departmenterrors.ErrDepartmentInUse
		}
	}
	return err
}

package employee

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindOptionsByRole(ctx context.Context, role string) ([]Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id string) error
	FindGenderProfiles(ctx context.Context) ([]GenderProfile, error)
	UpsertGenderProfile(ctx context.Context, profile *GenderProfile) error
	FindIDsByGenderProfile(ctx context.Context, profileID uuid.UUID) ([]uuid.UUID, error)
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Omit(clause.Associations).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).
		Preload("Department").
		Preload("GenderProfile").
		Order("name").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).
		Preload("Department").
		Preload("GenderProfile").
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).First(&empl, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindOptionsByRole(ctx context.Context, role string) ([]Employee, error) {
	var empls []Employee
	q := r.conn(ctx).Select("id", "name", "email", "role").Order("name")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	err := q.Find(&empls).Error
	return empls, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Omit(clause.Associations).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindGenderProfiles(ctx context.Context) ([]GenderProfile, error) {
	var profiles []GenderProfile
	err := r.conn(ctx).Order("gender").Find(&profiles).Error
	return profiles, err
}

// UpsertGenderProfile replaces the allowances of an existing gender row in
// place so employees keep pointing at the same profile id.
func (r *repository) UpsertGenderProfile(ctx context.Context, profile *GenderProfile) error {
	return r.conn(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "gender"}},
				DoUpdates: clause.AssignmentColumns([]string{"planned_leave", "sick_leave", "emergency_leave", "updated_at"}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "id"}}},
		).
		Create(profile).Error
}

func (r *repository) FindIDsByGenderProfile(ctx context.Context, profileID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.conn(ctx).
		Model(&Employee{}).
		Where("gender_profile_id = ?", profileID).
		Pluck("id", &ids).Error
	return ids, err
}

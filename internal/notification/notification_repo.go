package notification

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateMany(ctx context.Context, rows []Notification) error
	FindByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) CreateMany(ctx context.Context, rows []Notification) error {
	if len(rows) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&rows).Error
}

func (r *repository) FindByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]Notification, error) {
	var rows []Notification
	db := r.conn(ctx).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		db = db.Where("is_read = ?", false)
	}
	err := db.Order("created_at DESC").Limit(200).Find(&rows).Error
	return rows, err
}

// MarkRead reports false when no notification with that id belongs to the
// recipient.
func (r *repository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) (bool, error) {
	res := r.conn(ctx).
		Model(&Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

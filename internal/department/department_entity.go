package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Department owns a group of employees. TLMail identifies its Team Lead:
// a caller whose email matches it may decide escalated leave requests.
type Department struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"size:255;not null;uniqueIndex:uq_department_name"`
	HeadName  string         `gorm:"size:255"`
	TLMail    string         `gorm:"column:tl_mail;size:255;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

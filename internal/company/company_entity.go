package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(150);not null"`
	CountryCode string         `gorm:"type:char(2);not null"`
	Timezone    string         `gorm:"type:varchar(64);not null;default:'UTC'"`
	Currency    string         `gorm:"type:char(3);not null"`
	IsActive    bool           `gorm:"not null;default:true"`
	CreatedAt   time.Time      `gorm:"not null;default:now()"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}

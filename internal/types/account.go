package types

import (
	"time"
)

type Account struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	DisplayName string           `gorm:"not null;column:display_name" json:"display_name"`
	User        *User            `gorm:"foreignKey:AccountID" json:"user,omitempty"`
	Products    []AccountProduct `gorm:"foreignKey:AccountID" json:"products,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (Account) TableName() string {
	return "account"
}

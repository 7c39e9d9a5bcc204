package types

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"not null;uniqueIndex;column:username" json:"username"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	AccountID uint      `gorm:"not null;uniqueIndex;column:account_id" json:"account_id"`
	Account   *Account  `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}

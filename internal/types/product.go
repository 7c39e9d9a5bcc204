package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"not null;column:name" json:"name"`
	Description string           `gorm:"not null;column:description" json:"description"`
	Value       decimal.Decimal  `gorm:"type:numeric(12,2);column:value" json:"value"`
	Addons      []Addon          `gorm:"foreignKey:ProductID" json:"addons,omitempty"`
	Accounts    []AccountProduct `gorm:"foreignKey:ProductID" json:"-"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (Product) TableName() string {
	return "product"
}

package types

import (
	"time"
)

// Addon names are unique within their parent product, backed by the
// composite unique index so concurrent creates surface as conflicts.
type Addon struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;column:name;uniqueIndex:idx_addon_product_name" json:"name"`
	ProductID uint      `gorm:"not null;column:product_id;uniqueIndex:idx_addon_product_name" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Addon) TableName() string {
	return "addon"
}

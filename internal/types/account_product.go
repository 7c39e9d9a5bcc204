package types

// AccountProduct is the subscription join row. The composite primary key
// guarantees at most one row per (account, product) pair.
type AccountProduct struct {
	AccountID uint     `gorm:"primaryKey;column:account_id" json:"account_id"`
	ProductID uint     `gorm:"primaryKey;column:product_id" json:"product_id"`
	Account   *Account `gorm:"foreignKey:AccountID" json:"-"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (AccountProduct) TableName() string {
	return "account_product"
}

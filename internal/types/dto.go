package types

import (
	"github.com/shopspring/decimal"
)

// Response projections. Join rows are flattened to the product list and
// addon back-references are dropped so the output graph never cycles.

type AddonDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ProductDTO struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Addons      []AddonDTO      `json:"addons"`
}

type AccountDTO struct {
	ID          uint         `json:"id"`
	DisplayName string       `json:"display_name"`
	Products    []ProductDTO `json:"products"`
}

type UserDTO struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Account  *AccountDTO `json:"account,omitempty"`
}

// AddonDetailDTO is the standalone addon shape; it carries the parent id
// but never embeds the product graph.
type AddonDetailDTO struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ProductID uint   `json:"product_id"`
}

func NewAddonDTO(a *Addon) AddonDTO {
	return AddonDTO{ID: a.ID, Name: a.Name}
}

func NewAddonDetailDTO(a *Addon) *AddonDetailDTO {
	return &AddonDetailDTO{ID: a.ID, Name: a.Name, ProductID: a.ProductID}
}

func NewProductDTO(p *Product) *ProductDTO {
	dto := &ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Value:       p.Value,
		Addons:      make([]AddonDTO, 0, len(p.Addons)),
	}
	for i := range p.Addons {
		dto.Addons = append(dto.Addons, NewAddonDTO(&p.Addons[i]))
	}
	return dto
}

func NewAccountDTO(a *Account) *AccountDTO {
	dto := &AccountDTO{
		ID:          a.ID,
		DisplayName: a.DisplayName,
		Products:    make([]ProductDTO, 0, len(a.Products)),
	}
	for i := range a.Products {
		if a.Products[i].Product == nil {
			continue
		}
		dto.Products = append(dto.Products, *NewProductDTO(a.Products[i].Product))
	}
	return dto
}

func NewUserDTO(u *User) *UserDTO {
	dto := &UserDTO{ID: u.ID, Username: u.Username}
	if u.Account != nil {
		dto.Account = NewAccountDTO(u.Account)
	}
	return dto
}

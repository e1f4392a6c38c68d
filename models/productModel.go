package models

type ProductSpec struct {
	ID        int    `json:"id"`
	Label     string `json:"label" validate:"required"`
	Value     string `json:"value" validate:"required"`
	ProductID int    `json:"productId"`
}

type ProductImage struct {
	ID        int    `json:"id"`
	Url       string `json:"url"`
	ProductID int    `json:"productId"`
}

type Product struct {
	ID              int            `json:"id"`
	Brand           string         `json:"brand" validate:"required"`
	Name            string         `json:"name" validate:"required"`
	Description     string         `json:"description" validate:"required"`
	Price           float64        `json:"price" validate:"required,gt=0"`
	DiscountedPrice float64        `json:"discountedPrice"`
	Category        string         `json:"category" validate:"required"`
	Stock           int            `json:"stock"`
	Colors          []string       `json:"colors"`
	Sizes           []string       `json:"sizes"`
	Specifications  []ProductSpec  `json:"specifications"`
	Images          []ProductImage `json:"images"`
}

// ImageUrl returns the first image URL, or empty if the product has none.
func (p *Product) ImageUrl() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].Url
}

// UnitPrice returns the price a buyer actually pays: the discounted price
// when one is set, the list price otherwise.
func (p *Product) UnitPrice() float64 {
	if p.DiscountedPrice > 0 && p.DiscountedPrice < p.Price {
		return p.DiscountedPrice
	}
	return p.Price
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name" validate:"required"`
}

type Size struct {
	ID   int    `json:"id"`
	Name string `json:"name" validate:"required"`
}

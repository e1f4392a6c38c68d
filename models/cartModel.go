package models

// CartItem is one line in the cart. Name, price and image are snapshotted
// when the product is first added so the line renders the same even if the
// catalog entry changes afterwards. Stock is the availability figure known
// at add time and caps the quantity.
type CartItem struct {
	ID              int     `json:"id"`
	CartID          int     `json:"cartId"`
	ProductId       int     `json:"productId"`
	ProductName     string  `json:"productName"`
	ProductPrice    float64 `json:"productPrice"`
	DiscountedPrice float64 `json:"discountedPrice"`
	ProductQuantity int     `json:"productQuantity"`
	ProductImageUrl string  `json:"productImageUrl"`
	Stock           int     `json:"stock"`
}

// LineTotal is quantity times the effective unit price.
func (ci CartItem) LineTotal() float64 {
	price := ci.ProductPrice
	if ci.DiscountedPrice > 0 && ci.DiscountedPrice < ci.ProductPrice {
		price = ci.DiscountedPrice
	}
	return price * float64(ci.ProductQuantity)
}

type Cart struct {
	ID     int        `json:"id"`
	UserID int        `json:"userId"`
	Items  []CartItem `json:"items"`
}

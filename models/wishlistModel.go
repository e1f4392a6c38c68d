package models

// WishlistEntry is one (user, product) membership row. ID is assigned by the
// server on creation and is required to remove the entry later.
type WishlistEntry struct {
	ID        int `json:"id"`
	ProductId int `json:"productId"`
	UserID    int `json:"userId"`
}

// WishlistStatus is the shape of the membership check endpoint's data.
type WishlistStatus struct {
	InWishlist bool `json:"inWishlist"`
	EntryID    int  `json:"entryId"`
}

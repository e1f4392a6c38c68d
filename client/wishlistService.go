package client

import (
	"context"
	"fmt"

	"github.com/oren0115/ecommerce-sub000/models"
)

// AddToWishlist creates a membership row for the product. The returned entry
// id may be zero on backend versions whose create response omits it; callers
// follow up with CheckWishlist to learn it.
func (c *Client) AddToWishlist(ctx context.Context, productID int) (int, error) {
	body := struct {
		ProductId int `json:"productId"`
	}{ProductId: productID}
	var resp struct {
		ID int `json:"id"`
	}
	if err := c.post(ctx, "/api/wishlist", body, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// RemoveFromWishlist deletes a membership row by its server-assigned id.
func (c *Client) RemoveFromWishlist(ctx context.Context, entryID int) error {
	if entryID == 0 {
		return &ValidationError{Message: "wishlist entry id is required"}
	}
	return c.delete(ctx, fmt.Sprintf("/api/wishlist/%d", entryID))
}

// CheckWishlist looks up whether the product is in the current user's
// wishlist and, if so, under which entry id.
func (c *Client) CheckWishlist(ctx context.Context, productID int) (models.WishlistStatus, error) {
	var status models.WishlistStatus
	if err := c.get(ctx, fmt.Sprintf("/api/wishlist/check/%d", productID), &status); err != nil {
		return models.WishlistStatus{}, err
	}
	return status, nil
}

// GetWishlist fetches all membership rows for the current user.
func (c *Client) GetWishlist(ctx context.Context) ([]models.WishlistEntry, error) {
	var entries []models.WishlistEntry
	if err := c.get(ctx, "/api/wishlist", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

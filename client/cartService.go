package client

import (
	"context"
	"fmt"

	"github.com/oren0115/ecommerce-sub000/models"
)

// GetCart fetches the server-held cart for a user.
func (c *Client) GetCart(ctx context.Context, userID int) (*models.Cart, error) {
	var cart models.Cart
	if err := c.get(ctx, fmt.Sprintf("/api/cart/%d", userID), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem creates or tops up a server-side cart line. The backend merges
// into an existing line for the same product, so posting the same product
// twice sums the quantities server-side. Returns the line's id.
func (c *Client) AddCartItem(ctx context.Context, item models.CartItem) (int, error) {
	if item.ProductQuantity <= 0 {
		return 0, &ValidationError{Message: "quantity must be positive"}
	}
	var resp struct {
		ID int `json:"id"`
	}
	if err := c.post(ctx, "/api/cart", item, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// UpdateCartItem sets the quantity of an existing cart line.
func (c *Client) UpdateCartItem(ctx context.Context, itemID, quantity int) error {
	if quantity <= 0 {
		return &ValidationError{Message: "quantity must be positive"}
	}
	body := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}
	return c.put(ctx, fmt.Sprintf("/api/cart/items/%d", itemID), body, nil)
}

func (c *Client) DeleteCartItem(ctx context.Context, itemID int) error {
	return c.delete(ctx, fmt.Sprintf("/api/cart/items/%d", itemID))
}

// ClearCart drops every line from a user's server-side cart.
func (c *Client) ClearCart(ctx context.Context, userID int) error {
	return c.delete(ctx, fmt.Sprintf("/api/cart/%d", userID))
}

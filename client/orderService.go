package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/oren0115/ecommerce-sub000/models"
)

type OrderCreated struct {
	Message         string `json:"message"`
	OrderID         int    `json:"order_id"`
	RedirectURL     string `json:"redirect_url"`
	OrderTrackingID string `json:"order_tracking_id"`
}

// CreateOrder places an order and returns the payment redirect details.
func (c *Client) CreateOrder(ctx context.Context, order models.Order) (*OrderCreated, error) {
	if err := c.validateInput(order); err != nil {
		return nil, err
	}
	var created OrderCreated
	if err := c.post(ctx, "/api/orders", order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetOrdersByUser fetches every order the user has placed.
func (c *Client) GetOrdersByUser(ctx context.Context, userID int) ([]models.Order, error) {
	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.get(ctx, fmt.Sprintf("/api/users/%d/orders", userID), &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID int) (*models.Order, error) {
	var order models.Order
	if err := c.get(ctx, fmt.Sprintf("/api/orders/%d", orderID), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// FilterOrdersByStatus narrows an already-fetched order list client-side.
// An empty status returns the list unchanged.
func FilterOrdersByStatus(orders []models.Order, status string) []models.Order {
	if status == "" {
		return orders
	}
	filtered := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if strings.EqualFold(order.Status, status) {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/oren0115/ecommerce-sub000/models"
)

// GetProducts fetches one catalog page. Search is optional and matches on
// product name.
func (c *Client) GetProducts(ctx context.Context, page, limit int, search string) (*models.ProductList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if search != "" {
		query.Set("search", search)
	}

	var list models.ProductList
	if err := c.get(ctx, "/api/products?"+query.Encode(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) GetProduct(ctx context.Context, productID int) (*models.Product, error) {
	var product models.Product
	if err := c.get(ctx, fmt.Sprintf("/api/products/%d", productID), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	if err := c.validateInput(product); err != nil {
		return nil, err
	}
	var created models.Product
	if err := c.post(ctx, "/api/products", product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct saves a product, retrying when the backend reports itself
// temporarily unavailable. Only 503 is retried; every other failure
// propagates immediately.
func (c *Client) UpdateProduct(ctx context.Context, product models.Product) error {
	if product.ID == 0 {
		return &ValidationError{Message: "product id is required for update"}
	}
	if err := c.validateInput(product); err != nil {
		return err
	}

	path := fmt.Sprintf("/api/products/%d", product.ID)
	var lastErr error
	for attempt := 1; attempt <= c.retryBudget; attempt++ {
		err := c.put(ctx, path, product, nil)
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsStatus(err, http.StatusServiceUnavailable) || attempt == c.retryBudget {
			return err
		}
		if err := sleep(ctx, c.backoff(attempt)); err != nil {
			return err
		}
	}
	return lastErr
}

func (c *Client) DeleteProduct(ctx context.Context, productID int) error {
	return c.delete(ctx, fmt.Sprintf("/api/products/%d", productID))
}

func (c *Client) CreateProductSpec(ctx context.Context, spec models.ProductSpec) error {
	if err := c.validateInput(spec); err != nil {
		return err
	}
	return c.post(ctx, "/api/products/specs", spec, nil)
}

const defaultPageSize = 12

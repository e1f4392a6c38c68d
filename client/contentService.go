package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/oren0115/ecommerce-sub000/models"
)

// Blog content, categories, sizes and carousel slides are managed from the
// admin console; the storefront only reads them. The create/delete calls
// require an admin token, which the backend enforces.

func (c *Client) GetBlogs(ctx context.Context, page, limit int) (*models.BlogList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var list models.BlogList
	if err := c.get(ctx, "/api/blogs?"+query.Encode(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) GetBlog(ctx context.Context, blogID int) (*models.Blog, error) {
	var blog models.Blog
	if err := c.get(ctx, fmt.Sprintf("/api/blogs/%d", blogID), &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (c *Client) CreateBlog(ctx context.Context, blog models.Blog) error {
	if err := c.validateInput(blog); err != nil {
		return err
	}
	return c.post(ctx, "/api/blogs", blog, nil)
}

func (c *Client) DeleteBlog(ctx context.Context, blogID int) error {
	return c.delete(ctx, fmt.Sprintf("/api/blogs/%d", blogID))
}

func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.get(ctx, "/api/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, category models.Category) error {
	if err := c.validateInput(category); err != nil {
		return err
	}
	return c.post(ctx, "/api/categories", category, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, categoryID int) error {
	return c.delete(ctx, fmt.Sprintf("/api/categories/%d", categoryID))
}

func (c *Client) GetSizes(ctx context.Context) ([]models.Size, error) {
	var sizes []models.Size
	if err := c.get(ctx, "/api/sizes", &sizes); err != nil {
		return nil, err
	}
	return sizes, nil
}

func (c *Client) CreateSize(ctx context.Context, size models.Size) error {
	if err := c.validateInput(size); err != nil {
		return err
	}
	return c.post(ctx, "/api/sizes", size, nil)
}

func (c *Client) DeleteSize(ctx context.Context, sizeID int) error {
	return c.delete(ctx, fmt.Sprintf("/api/sizes/%d", sizeID))
}

func (c *Client) GetBannerSlides(ctx context.Context) ([]models.BannerSlide, error) {
	var slides []models.BannerSlide
	if err := c.get(ctx, "/api/banners", &slides); err != nil {
		return nil, err
	}
	return slides, nil
}

func (c *Client) CreateBannerSlide(ctx context.Context, slide models.BannerSlide) error {
	if err := c.validateInput(slide); err != nil {
		return err
	}
	return c.post(ctx, "/api/banners", slide, nil)
}

func (c *Client) DeleteBannerSlide(ctx context.Context, slideID int) error {
	return c.delete(ctx, fmt.Sprintf("/api/banners/%d", slideID))
}

// GetSalesReport fetches the aggregated sales rows for a date range.
func (c *Client) GetSalesReport(ctx context.Context, from, to time.Time) ([]models.SalesReportRow, error) {
	query := url.Values{}
	query.Set("from", from.Format("2006-01-02"))
	query.Set("to", to.Format("2006-01-02"))

	var rows []models.SalesReportRow
	if err := c.get(ctx, "/api/reports/sales?"+query.Encode(), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

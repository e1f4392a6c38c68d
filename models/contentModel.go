package models

import "time"

// Blog is a storefront article managed from the admin console.
type Blog struct {
	ID        int       `json:"id"`
	Title     string    `json:"title" validate:"required"`
	Content   string    `json:"content" validate:"required"`
	ImageUrl  string    `json:"imageUrl"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// BannerSlide is one slide of the promotional carousel on the home page.
type BannerSlide struct {
	ID       int    `json:"id"`
	Title    string `json:"title" validate:"required"`
	Subtitle string `json:"subtitle"`
	ImageUrl string `json:"imageUrl" validate:"required"`
	LinkUrl  string `json:"linkUrl"`
	Position int    `json:"position"`
}

// SalesReportRow is one aggregated line of the admin sales report.
type SalesReportRow struct {
	Date       string  `json:"date"`
	OrderCount int     `json:"orderCount"`
	ItemsSold  int     `json:"itemsSold"`
	Revenue    float64 `json:"revenue"`
}

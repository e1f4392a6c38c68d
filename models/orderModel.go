package models

import "time"

type Order struct {
	ID               int         `json:"id"`
	UserID           int         `json:"userId"`
	FirstName        string      `json:"firstName" validate:"required"`
	LastName         string      `json:"lastName" validate:"required"`
	Email            string      `json:"email" validate:"required,email"`
	Phone            string      `json:"phone" validate:"required"`
	DeliveryLocation string      `json:"deliveryLocation" validate:"required"`
	Total            float64     `json:"total"`
	Status           string      `json:"status"`
	PaymentStatus    string      `json:"paymentStatus"`
	CreatedAt        time.Time   `json:"createdAt"`
	OrderItems       []OrderItem `json:"orderItems" validate:"required,min=1,dive"`
}

type OrderItem struct {
	ID        int     `json:"id"`
	OrderID   int     `json:"orderId"`
	ProductId int     `json:"productId" validate:"required"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
}

package storefront

import (
	"context"
	"sync"

	"github.com/oren0115/ecommerce-sub000/client"
	"github.com/oren0115/ecommerce-sub000/models"
)

// Cart is the storefront's local cart: mutations apply synchronously so the
// UI reflects them immediately, and SyncToServer pushes the collection to
// the backend as a separate step. Quantities are capped by the stock figure
// captured when the product was first added, and a line reduced to zero is
// removed rather than kept around.
type Cart struct {
	mu      sync.Mutex
	api     *client.Client
	counter *Counter
	items   map[int]*models.CartItem
	order   []int
}

func NewCart(api *client.Client, counter *Counter) *Cart {
	return &Cart{
		api:     api,
		counter: counter,
		items:   make(map[int]*models.CartItem),
	}
}

// Add puts quantity units of the product in the cart, merging into an
// existing line for the same product. The resulting quantity is always
// min(stock, previous+quantity). No network call is involved.
func (c *Cart) Add(product *models.Product, quantity int) (models.CartItem, error) {
	if product == nil {
		return models.CartItem{}, &client.ValidationError{Message: "product is required"}
	}
	if quantity <= 0 {
		return models.CartItem{}, &client.ValidationError{Message: "quantity must be positive"}
	}
	if product.Stock <= 0 {
		return models.CartItem{}, &client.ValidationError{Message: "product is out of stock"}
	}

	c.mu.Lock()
	item, exists := c.items[product.ID]
	if !exists {
		item = &models.CartItem{
			ProductId:       product.ID,
			ProductName:     product.Name,
			ProductPrice:    product.Price,
			DiscountedPrice: product.DiscountedPrice,
			ProductImageUrl: product.ImageUrl(),
			Stock:           product.Stock,
		}
		c.items[product.ID] = item
		c.order = append(c.order, product.ID)
	}

	before := item.ProductQuantity
	item.ProductQuantity += quantity
	if item.ProductQuantity > item.Stock {
		item.ProductQuantity = item.Stock
	}
	delta := item.ProductQuantity - before
	snapshot := *item
	c.mu.Unlock()

	if delta != 0 {
		c.counter.Add(delta)
	}
	return snapshot, nil
}

// ItemQuantity returns the quantity held for a product, zero if absent.
// The product page uses it to label the add button.
func (c *Cart) ItemQuantity(productID int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if item, ok := c.items[productID]; ok {
		return item.ProductQuantity
	}
	return 0
}

// UpdateQuantity sets a line's quantity outright, clamped to stock. Setting
// it to zero or below removes the line.
func (c *Cart) UpdateQuantity(productID, quantity int) error {
	c.mu.Lock()
	item, ok := c.items[productID]
	if !ok {
		c.mu.Unlock()
		return &client.ValidationError{Message: "product is not in the cart"}
	}
	if quantity <= 0 {
		delta := -item.ProductQuantity
		c.removeLocked(productID)
		c.mu.Unlock()
		c.counter.Add(delta)
		return nil
	}
	if quantity > item.Stock {
		quantity = item.Stock
	}
	delta := quantity - item.ProductQuantity
	item.ProductQuantity = quantity
	c.mu.Unlock()

	if delta != 0 {
		c.counter.Add(delta)
	}
	return nil
}

// Remove drops a line entirely.
func (c *Cart) Remove(productID int) {
	c.mu.Lock()
	delta := 0
	if item, ok := c.items[productID]; ok {
		delta = -item.ProductQuantity
		c.removeLocked(productID)
	}
	c.mu.Unlock()

	if delta != 0 {
		c.counter.Add(delta)
	}
}

// Clear empties the cart, e.g. after a successful order.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = make(map[int]*models.CartItem)
	c.order = nil
	c.mu.Unlock()
	c.counter.Set(0)
}

// Items returns the lines in the order products were first added.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]models.CartItem, 0, len(c.order))
	for _, id := range c.order {
		if item, ok := c.items[id]; ok {
			items = append(items, *item)
		}
	}
	return items
}

// Count is the total number of units across all lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, item := range c.items {
		total += item.ProductQuantity
	}
	return total
}

// Subtotal sums the effective line totals.
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, item := range c.items {
		total += item.LineTotal()
	}
	return total
}

// SyncToServer replaces the server-held cart with the local lines. This is
// the deferred persistence path: local state stays authoritative and is left
// untouched whether the push succeeds or fails.
func (c *Cart) SyncToServer(ctx context.Context) error {
	user, ok := c.api.CurrentUser()
	if !ok {
		return client.ErrUnauthenticated
	}

	items := c.Items()
	if err := c.api.ClearCart(ctx, user.ID); err != nil {
		if !client.IsStatus(err, 404) {
			return err
		}
	}
	for _, item := range items {
		if _, err := c.api.AddCartItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// removeLocked deletes a line and its position. Caller holds the lock.
func (c *Cart) removeLocked(productID int) {
	delete(c.items, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

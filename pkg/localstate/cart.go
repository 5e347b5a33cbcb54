package localstate

import "sync"

const cartKey = "cart_v1"

// CartItem is one purchasable line: a product (or bottle variant)
// identified by a stable id, with its quantity.
type CartItem[T any] struct {
	ID      string `json:"id"`
	Product T      `json:"product"`
	Qty     int    `json:"qty"`
}

type cartSnapshot[T any] struct {
	Items []CartItem[T] `json:"items"`
}

// Cart is a persisted shopping cart. Every mutation writes the
// cart_v1 snapshot through the store.
type Cart[T any] struct {
	store *Store

	mu    sync.Mutex
	items []CartItem[T]
}

// NewCart restores the cart from its snapshot when one exists.
func NewCart[T any](store *Store) (*Cart[T], error) {
	c := &Cart[T]{store: store}
	var snap cartSnapshot[T]
	if _, err := store.Load(cartKey, &snap); err != nil {
		return nil, err
	}
	c.items = snap.Items
	return c, nil
}

// Add merges qty into an existing line or appends a new one. A qty
// below 1 counts as 1.
func (c *Cart[T]) Add(id string, product T, qty int) error {
	if qty < 1 {
		qty = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Qty += qty
			c.items[i].Product = product
			return c.persist()
		}
	}
	c.items = append(c.items, CartItem[T]{ID: id, Product: product, Qty: qty})
	return c.persist()
}

// Decrement lowers a line's quantity by one, removing the line when it
// reaches zero.
func (c *Cart[T]) Decrement(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Qty--
			if c.items[i].Qty <= 0 {
				c.items = append(c.items[:i], c.items[i+1:]...)
			}
			return c.persist()
		}
	}
	return nil
}

// SetQty pins a line's quantity; qty <= 0 removes the line.
func (c *Cart[T]) SetQty(id string, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			if qty <= 0 {
				c.items = append(c.items[:i], c.items[i+1:]...)
			} else {
				c.items[i].Qty = qty
			}
			return c.persist()
		}
	}
	return nil
}

func (c *Cart[T]) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return c.persist()
		}
	}
	return nil
}

func (c *Cart[T]) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	return c.persist()
}

// Count is the total quantity across all lines.
func (c *Cart[T]) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, item := range c.items {
		total += item.Qty
	}
	return total
}

// UniqueCount is the number of distinct lines.
func (c *Cart[T]) UniqueCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart[T]) Has(id string) bool {
	return c.Qty(id) > 0
}

func (c *Cart[T]) Qty(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.ID == id {
			return item.Qty
		}
	}
	return 0
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart[T]) Items() []CartItem[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CartItem[T](nil), c.items...)
}

// persist writes the snapshot. Caller holds the lock.
func (c *Cart[T]) persist() error {
	return c.store.Save(cartKey, cartSnapshot[T]{Items: c.items})
}

package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type ModifierOption struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"priceDelta"`
}

type Modifier struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Multiple bool             `json:"multiple"`
	Required bool             `json:"required"`
	Options  []ModifierOption `json:"options"`
}

type MenuItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Available bool            `json:"available"`
	Modifiers []Modifier      `json:"modifiers,omitempty"`
}

// UnitPrice is the base price plus the delta of every chosen option.
// choices maps modifier id to option id.
func (m MenuItem) UnitPrice(choices map[string]string) decimal.Decimal {
	price := m.Price
	for _, modifier := range m.Modifiers {
		optionID, ok := choices[modifier.ID]
		if !ok {
			continue
		}
		for _, option := range modifier.Options {
			if option.ID == optionID {
				price = price.Add(option.PriceDelta)
			}
		}
	}
	return price
}

type CartItem struct {
	ID         string            `json:"id"`
	MenuItemID string            `json:"menuItemId"`
	Name       string            `json:"name"`
	Quantity   int               `json:"quantity"`
	Modifiers  map[string]string `json:"modifiers,omitempty"`
	Note       string            `json:"note,omitempty"`
	UnitPrice  decimal.Decimal   `json:"unitPrice"`
}

func (c CartItem) Subtotal() decimal.Decimal {
	return c.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// Cart is the ephemeral list of items a customer is about to order.
type Cart struct {
	Items []CartItem
	now   func() time.Time
}

func NewCart() *Cart {
	return &Cart{now: time.Now}
}

// Add appends a new line; quantities below one are raised to one.
func (c *Cart) Add(item MenuItem, quantity int, modifiers map[string]string, note string) CartItem {
	if quantity < 1 {
		quantity = 1
	}
	line := CartItem{
		ID:         fmt.Sprintf("%s-%d", item.ID, c.clock().UnixNano()),
		MenuItemID: item.ID,
		Name:       item.Name,
		Quantity:   quantity,
		Modifiers:  modifiers,
		Note:       note,
		UnitPrice:  item.UnitPrice(modifiers),
	}
	c.Items = append(c.Items, line)
	return line
}

// AddLine appends an already priced line, as submitted with an order.
func (c *Cart) AddLine(line LineItem) {
	quantity := line.Quantity
	if quantity < 1 {
		quantity = 1
	}
	c.Items = append(c.Items, CartItem{
		ID:         fmt.Sprintf("%s-%d", line.MenuItemID, len(c.Items)),
		MenuItemID: line.MenuItemID,
		Name:       line.Name,
		Quantity:   quantity,
		Modifiers:  line.Modifiers,
		Note:       line.Note,
		UnitPrice:  line.UnitPrice,
	})
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.Remove(id)
		return
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity = quantity
		}
	}
}

func (c *Cart) Remove(id string) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// LineItems converts the cart into order lines.
func (c *Cart) LineItems() []LineItem {
	lines := make([]LineItem, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, LineItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Modifiers:  item.Modifiers,
			Note:       item.Note,
			UnitPrice:  item.UnitPrice,
		})
	}
	return lines
}

func (c *Cart) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

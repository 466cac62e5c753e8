// Package cart maintains an ordered sequence of customized line items.
// Lines merge by identity key, quantities clamp at 1, and the whole sequence
// round-trips through JSON for durable storage between requests.
package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Line is one customized, priced, quantified entry. UnitPrice is captured
// when the line is added and never changes afterwards, even if the catalog
// price moves.
type Line struct {
	Key       string          `json:"key"`
	ItemID    string          `json:"item_id"`
	Label     string          `json:"label"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int32           `json:"quantity"`
}

// Cart is an ordered collection of lines. The zero value is an empty cart.
type Cart struct {
	lines []Line
}

// Load rehydrates a cart from serialized line data. Malformed data yields an
// empty cart, never an error: a corrupt stored cart must not take the
// storefront down.
func Load(data []byte) *Cart {
	c := &Cart{}
	if len(data) == 0 {
		return c
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return &Cart{}
	}
	for _, l := range lines {
		// Discard lines a corrupt write left unusable.
		if l.Key == "" || l.Quantity < 1 {
			return &Cart{}
		}
	}
	c.lines = lines
	return c
}

// Serialize renders the full line sequence for durable storage.
func (c *Cart) Serialize() ([]byte, error) {
	if c.lines == nil {
		return json.Marshal([]Line{})
	}
	return json.Marshal(c.lines)
}

// AddLine merges by identity: an existing line with the same key gains the
// incoming quantity; otherwise the line appends at the end. A non-positive
// incoming quantity counts as 1.
func (c *Cart) AddLine(line Line) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].Key == line.Key {
			c.lines[i].Quantity += line.Quantity
			return
		}
	}
	c.lines = append(c.lines, line)
}

// UpdateQuantity applies a delta to the line with the given key, clamping at
// a floor of 1: decrementing below 1 is a no-op, not a removal. Returns false
// when no such line exists.
func (c *Cart) UpdateQuantity(key string, delta int32) bool {
	for i := range c.lines {
		if c.lines[i].Key == key {
			q := c.lines[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			c.lines[i].Quantity = q
			return true
		}
	}
	return false
}

// RemoveLine deletes the line entirely regardless of quantity. Returns false
// when no such line exists.
func (c *Cart) RemoveLine(key string) bool {
	for i := range c.lines {
		if c.lines[i].Key == key {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// Total recomputes the running total on every call; it is never cached.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity)))
	}
	return total
}

// Lines returns a copy of the line sequence in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len reports the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

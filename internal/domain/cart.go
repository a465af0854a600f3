package domain

// CartLine is a product snapshot plus a positive quantity. It encodes as the
// flattened product fields with an added "quantity".
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal returns price × quantity.
func (l CartLine) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// Cart holds at most one line per product id, in insertion order.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// NewCart builds a cart from loaded lines, dropping lines with a
// non-positive quantity and keeping the first line for duplicate ids.
func NewCart(lines []CartLine) Cart {
	c := Cart{Lines: make([]CartLine, 0, len(lines))}
	for _, l := range lines {
		if l.Quantity <= 0 || c.FindIndex(l.ID) >= 0 {
			continue
		}
		l.Product = l.Product.Clone()
		c.Lines = append(c.Lines, l)
	}
	return c
}

// FindIndex returns the index of the line for productID, or -1.
func (c *Cart) FindIndex(productID int) int {
	for i := range c.Lines {
		if c.Lines[i].ID == productID {
			return i
		}
	}
	return -1
}

// Add increments the line for p or appends a new snapshot line with quantity 1.
func (c *Cart) Add(p Product) {
	if i := c.FindIndex(p.ID); i >= 0 {
		c.Lines[i].Quantity++
		return
	}
	c.Lines = append(c.Lines, CartLine{Product: p.Clone(), Quantity: 1})
}

// Remove deletes the line for productID. It reports whether a line existed.
func (c *Cart) Remove(productID int) bool {
	i := c.FindIndex(productID)
	if i < 0 {
		return false
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return true
}

// SetQuantity sets the line's quantity; zero removes it. Absent ids are
// ignored. It reports whether the cart changed.
func (c *Cart) SetQuantity(productID, quantity int) bool {
	if quantity == 0 {
		return c.Remove(productID)
	}
	i := c.FindIndex(productID)
	if i < 0 || c.Lines[i].Quantity == quantity {
		return false
	}
	c.Lines[i].Quantity = quantity
	return true
}

// Clear removes all lines.
func (c *Cart) Clear() {
	c.Lines = c.Lines[:0]
}

// Contains reports whether a line for productID exists.
func (c *Cart) Contains(productID int) bool {
	return c.FindIndex(productID) >= 0
}

// Total is Σ price × quantity.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	return total
}

// Count is Σ quantity.
func (c *Cart) Count() int {
	var count int
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

// Snapshot returns a deep copy of the lines.
func (c *Cart) Snapshot() []CartLine {
	out := make([]CartLine, len(c.Lines))
	for i, l := range c.Lines {
		l.Product = l.Product.Clone()
		out[i] = l
	}
	return out
}

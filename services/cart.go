// services/cart.go
package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

const (
	// IVARate is the Mexican value-added tax. All listed prices already
	// include it, so totals are decomposed by division, never added on top.
	IVARate = 0.16

	CartLineService = "service"
	CartLineProduct = "product"
)

var ErrDuplicatePair = errors.New("Este par ya está en la orden")

// CartLine is one line of an in-progress POS order or booking.
type CartLine struct {
	Kind      string    `json:"kind"`
	ItemID    uuid.UUID `json:"itemId"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`

	// Shoe descriptors, services only. A line carrying any of these is a
	// specific pair and is never merged with another line.
	ShoeBrand       string `json:"shoeBrand,omitempty"`
	ShoeModel       string `json:"shoeModel,omitempty"`
	ShoeDescription string `json:"shoeDescription,omitempty"`
}

// HasShoeMetadata reports whether the line describes a specific pair.
func (l CartLine) HasShoeMetadata() bool {
	return strings.TrimSpace(l.ShoeBrand) != "" ||
		strings.TrimSpace(l.ShoeModel) != "" ||
		strings.TrimSpace(l.ShoeDescription) != ""
}

func normalizeShoeKey(brand, model, description string) string {
	norm := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	return norm(brand) + "|" + norm(model) + "|" + norm(description)
}

type Cart struct {
	Lines []CartLine `json:"lines"`
}

// AddProduct merges by product id: adding the same product twice increases
// the quantity instead of creating a second line.
func (c *Cart) AddProduct(productID uuid.UUID, name string, quantity int, unitPrice float64) {
	for i := range c.Lines {
		if c.Lines[i].Kind == CartLineProduct && c.Lines[i].ItemID == productID {
			c.Lines[i].Quantity += quantity
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{
		Kind:      CartLineProduct,
		ItemID:    productID,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
}

// AddService applies the merge policy for services:
//   - without shoe metadata, lines merge by service id;
//   - with shoe metadata each pair is its own line, and an identical
//     (brand, model, description) triple after trim+lowercase for the same
//     service is rejected as a duplicate pair.
func (c *Cart) AddService(line CartLine) error {
	line.Kind = CartLineService
	if line.Quantity <= 0 {
		line.Quantity = 1
	}

	if !line.HasShoeMetadata() {
		for i := range c.Lines {
			if c.Lines[i].Kind == CartLineService &&
				c.Lines[i].ItemID == line.ItemID &&
				!c.Lines[i].HasShoeMetadata() {
				c.Lines[i].Quantity += line.Quantity
				return nil
			}
		}
		c.Lines = append(c.Lines, line)
		return nil
	}

	key := normalizeShoeKey(line.ShoeBrand, line.ShoeModel, line.ShoeDescription)
	for i := range c.Lines {
		if c.Lines[i].Kind != CartLineService || c.Lines[i].ItemID != line.ItemID {
			continue
		}
		if !c.Lines[i].HasShoeMetadata() {
			continue
		}
		if normalizeShoeKey(c.Lines[i].ShoeBrand, c.Lines[i].ShoeModel, c.Lines[i].ShoeDescription) == key {
			return ErrDuplicatePair
		}
	}
	c.Lines = append(c.Lines, line)
	return nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// HasService reports whether the cart carries at least one service line.
// Every order must.
func (c *Cart) HasService() bool {
	for _, l := range c.Lines {
		if l.Kind == CartLineService {
			return true
		}
	}
	return false
}

type CartTotals struct {
	Subtotal float64 `json:"subtotal"`
	IVA      float64 `json:"iva"`
	Total    float64 `json:"total"`
}

// Totals computes the tax breakdown. Prices are IVA-inclusive, so
// subtotal = total / 1.16 and iva = total - subtotal.
func (c *Cart) Totals() CartTotals {
	var total float64
	for _, l := range c.Lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return SplitIVA(total)
}

// SplitIVA decomposes a tax-inclusive amount into subtotal and IVA.
func SplitIVA(total float64) CartTotals {
	subtotal := total / (1 + IVARate)
	return CartTotals{
		Subtotal: subtotal,
		IVA:      total - subtotal,
		Total:    total,
	}
}

// CashChange returns what to hand back for a cash payment. A payment's
// amount is independent of the order total, so the change is computed
// against the amount being charged, never enforced equal.
func CashChange(amount, received float64) float64 {
	if received > amount {
		return received - amount
	}
	return 0
}

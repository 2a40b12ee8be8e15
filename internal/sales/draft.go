// Package sales builds invoice drafts on the sales panel.
package sales

import (
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// WalkInCustomer is the name recorded when a sale is submitted without one.
const WalkInCustomer = "Walk-in Customer"

// LineItem is one product row of a draft. Amount is fixed when the item is
// added and keeps full float precision.
type LineItem struct {
	ID       string  `json:"id"`
	Product  string  `json:"product"`
	Quantity int     `json:"qty"`
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
}

// Entry holds the order-entry fields as typed by the user.
type Entry struct {
	Product  string  `json:"product"`
	Quantity int     `json:"qty"`
	Rate     float64 `json:"rate"`
}

// Total previews the amount the entry would add to the draft.
func (e Entry) Total() float64 {
	return float64(e.Quantity) * e.Rate
}

// Valid reports whether the entry can become a line item. Its amount must
// be a finite number.
func (e Entry) Valid() bool {
	return e.Product != "" && e.Quantity > 0 && e.Rate > 0 && !math.IsInf(e.Total(), 0)
}

// Customer identifies who the draft is for. Both fields are optional.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Confirmation is what a successful Submit reports.
type Confirmation struct {
	Customer string
	Email    string
	Items    []LineItem
	Total    float64
}

// Draft is an in-progress sale. The zero value is ready to use.
// It is not safe for concurrent use.
type Draft struct {
	Entry    Entry
	Customer Customer

	items []LineItem
	newID func() string
}

func NewDraft() *Draft {
	return &Draft{}
}

// AddLineItem records the entry fields and, when they are valid, appends a
// line item and clears the fields. Invalid input, or an item that would push
// the grand total past the float range, leaves the item list untouched and
// keeps the fields so the user can correct them.
func (d *Draft) AddLineItem(product string, quantity int, rate float64) (LineItem, bool) {
	d.Entry = Entry{Product: product, Quantity: quantity, Rate: rate}
	if !d.Entry.Valid() || math.IsInf(d.GrandTotal()+d.Entry.Total(), 0) {
		return LineItem{}, false
	}

	item := LineItem{
		ID:       d.nextID(),
		Product:  product,
		Quantity: quantity,
		Rate:     rate,
		Amount:   d.Entry.Total(),
	}
	d.items = append(d.items, item)
	d.Entry = Entry{}
	return item, true
}

// RemoveLineItem drops the item with the given id and reports whether one
// was found.
func (d *Draft) RemoveLineItem(id string) bool {
	i := slices.IndexFunc(d.items, func(it LineItem) bool { return it.ID == id })
	if i < 0 {
		return false
	}
	d.items = slices.Delete(d.items, i, i+1)
	return true
}

// Items returns a copy of the line items in insertion order.
func (d *Draft) Items() []LineItem {
	return slices.Clone(d.items)
}

func (d *Draft) Len() int { return len(d.items) }

func (d *Draft) GrandTotal() float64 {
	var total float64
	for _, it := range d.items {
		total += it.Amount
	}
	return total
}

// Submit closes the draft. An empty draft is left as is and reports false.
// Otherwise the items and customer fields are cleared and the returned
// confirmation carries the total at the moment of submission.
func (d *Draft) Submit() (Confirmation, bool) {
	if len(d.items) == 0 {
		return Confirmation{}, false
	}

	name := strings.TrimSpace(d.Customer.Name)
	if name == "" {
		name = WalkInCustomer
	}
	c := Confirmation{
		Customer: name,
		Email:    strings.TrimSpace(d.Customer.Email),
		Items:    d.items,
		Total:    d.GrandTotal(),
	}

	d.items = nil
	d.Customer = Customer{}
	return c, true
}

// Reopen puts the lines and customer of a submitted draft back in front of
// any items added since, keeping their ids. The entry fields are left alone.
func (d *Draft) Reopen(c Confirmation) {
	d.items = append(slices.Clone(c.Items), d.items...)
	d.Customer = Customer{Name: c.Customer, Email: c.Email}
	if c.Customer == WalkInCustomer {
		d.Customer.Name = ""
	}
}

func (d *Draft) nextID() string {
	if d.newID != nil {
		return d.newID()
	}
	return uuid.NewString()
}

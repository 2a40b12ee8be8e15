package sales

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLineItem(t *testing.T) {
	d := NewDraft()

	item, ok := d.AddLineItem("Widget", 3, 10)
	require.True(t, ok)
	assert.NotEmpty(t, item.ID)

	items := d.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Widget", items[0].Product)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 10.0, items[0].Rate)
	assert.Equal(t, 30.0, items[0].Amount)
	assert.Equal(t, Entry{}, d.Entry, "entry fields are cleared after a successful add")
}

func TestAddLineItemRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		product  string
		quantity int
		rate     float64
	}{
		{name: "empty product", product: "", quantity: 1, rate: 10},
		{name: "zero quantity", product: "X", quantity: 0, rate: 10},
		{name: "negative quantity", product: "X", quantity: -2, rate: 10},
		{name: "zero rate", product: "X", quantity: 1, rate: 0},
		{name: "negative rate", product: "X", quantity: 1, rate: -4.5},
		{name: "amount overflows", product: "X", quantity: 2, rate: 1e308},
		{name: "infinite rate", product: "X", quantity: 1, rate: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft()
			_, ok := d.AddLineItem("Keep", 1, 5)
			require.True(t, ok)
			before := d.Items()

			_, ok = d.AddLineItem(tt.product, tt.quantity, tt.rate)
			assert.False(t, ok)
			assert.Equal(t, before, d.Items())
			assert.Equal(t, 5.0, d.GrandTotal())
			assert.Equal(t, Entry{Product: tt.product, Quantity: tt.quantity, Rate: tt.rate}, d.Entry,
				"rejected input stays in the entry fields")
		})
	}
}

func TestRepeatedProductsAreNotMerged(t *testing.T) {
	d := NewDraft()
	_, _ = d.AddLineItem("USB-C Hub", 1, 29.99)
	_, _ = d.AddLineItem("USB-C Hub", 2, 29.99)

	items := d.Items()
	require.Len(t, items, 2)
	assert.NotEqual(t, items[0].ID, items[1].ID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 2, items[1].Quantity)
}

func TestItemsPreserveInsertionOrder(t *testing.T) {
	d := NewDraft()
	for _, p := range []string{"Standing Desk", "Office Chair", "Webcam 4K"} {
		_, ok := d.AddLineItem(p, 1, 1)
		require.True(t, ok)
	}

	var got []string
	for _, it := range d.Items() {
		got = append(got, it.Product)
	}
	assert.Equal(t, []string{"Standing Desk", "Office Chair", "Webcam 4K"}, got)
}

func TestItemsReturnsCopy(t *testing.T) {
	d := NewDraft()
	_, _ = d.AddLineItem("Widget", 1, 1)

	items := d.Items()
	items[0].Amount = 1000

	assert.Equal(t, 1.0, d.GrandTotal())
}

func TestGrandTotalIsOrderIndependent(t *testing.T) {
	type entry struct {
		qty  int
		rate float64
	}
	r := rand.New(rand.NewSource(1))

	entries := make([]entry, 50)
	var want float64
	for i := range entries {
		entries[i] = entry{qty: 1 + r.Intn(20), rate: float64(1+r.Intn(10000)) / 4}
		want += float64(entries[i].qty) * entries[i].rate
	}

	forward := NewDraft()
	for i, e := range entries {
		_, ok := forward.AddLineItem(fmt.Sprintf("p%d", i), e.qty, e.rate)
		require.True(t, ok)
	}

	shuffled := NewDraft()
	for _, i := range r.Perm(len(entries)) {
		_, ok := shuffled.AddLineItem(fmt.Sprintf("p%d", i), entries[i].qty, entries[i].rate)
		require.True(t, ok)
	}

	assert.InDelta(t, want, forward.GrandTotal(), 1e-6)
	assert.InDelta(t, forward.GrandTotal(), shuffled.GrandTotal(), 1e-6)
}

func TestGrandTotalSkipsRejectedAdds(t *testing.T) {
	d := NewDraft()
	_, _ = d.AddLineItem("A", 2, 5)
	_, _ = d.AddLineItem("", 2, 5)
	_, _ = d.AddLineItem("B", 1, 20)
	_, _ = d.AddLineItem("C", 0, 20)

	assert.Equal(t, 30.0, d.GrandTotal())
}

func TestRemoveLineItem(t *testing.T) {
	d := NewDraft()
	first, _ := d.AddLineItem("A", 2, 5)
	second, _ := d.AddLineItem("B", 1, 20)

	assert.True(t, d.RemoveLineItem(first.ID))
	items := d.Items()
	require.Len(t, items, 1)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, 20.0, d.GrandTotal())
}

func TestRemoveLineItemUnknownID(t *testing.T) {
	d := NewDraft()
	_, _ = d.AddLineItem("A", 2, 5)
	before := d.Items()

	assert.False(t, d.RemoveLineItem("does-not-exist"))
	assert.Equal(t, before, d.Items())
	assert.Equal(t, 10.0, d.GrandTotal())
}

func TestSubmitEmptyDraftIsNoop(t *testing.T) {
	d := NewDraft()
	d.Customer = Customer{Name: "Alice Smith", Email: "alice@example.com"}

	c, ok := d.Submit()
	assert.False(t, ok)
	assert.Zero(t, c)
	assert.Empty(t, d.Items())
	assert.Equal(t, "Alice Smith", d.Customer.Name, "customer fields survive a rejected submit")
}

func TestSubmit(t *testing.T) {
	d := NewDraft()
	d.Customer = Customer{Name: "  Bob Wilson ", Email: "bob@example.com"}
	_, _ = d.AddLineItem("A", 2, 5)
	_, _ = d.AddLineItem("B", 1, 20)

	c, ok := d.Submit()
	require.True(t, ok)
	assert.Equal(t, "Bob Wilson", c.Customer)
	assert.Equal(t, "bob@example.com", c.Email)
	assert.Equal(t, 30.0, c.Total)
	assert.Len(t, c.Items, 2)

	assert.Empty(t, d.Items())
	assert.Zero(t, d.GrandTotal())
	assert.Equal(t, Customer{}, d.Customer)
}

func TestSubmitDefaultsToWalkInCustomer(t *testing.T) {
	d := NewDraft()
	d.Customer.Name = "   "
	_, _ = d.AddLineItem("Widget", 1, 9.5)

	c, ok := d.Submit()
	require.True(t, ok)
	assert.Equal(t, WalkInCustomer, c.Customer)
}

func TestDraftReusableAfterSubmit(t *testing.T) {
	d := NewDraft()
	_, _ = d.AddLineItem("Widget", 1, 9.5)
	_, ok := d.Submit()
	require.True(t, ok)

	_, ok = d.AddLineItem("Gadget", 2, 3)
	require.True(t, ok)
	assert.Equal(t, 6.0, d.GrandTotal())
}

func TestAmountKeepsFullPrecision(t *testing.T) {
	d := NewDraft()
	item, ok := d.AddLineItem("Wireless Keyboard", 3, 45.99)
	require.True(t, ok)
	assert.Equal(t, 3*45.99, item.Amount)
}

func TestEntryTotal(t *testing.T) {
	assert.Equal(t, 0.0, Entry{}.Total())
	assert.Equal(t, 24.0, Entry{Product: "x", Quantity: 4, Rate: 6}.Total())
}

func TestDeterministicIDs(t *testing.T) {
	n := 0
	d := &Draft{newID: func() string { n++; return fmt.Sprintf("li-%d", n) }}
	a, _ := d.AddLineItem("A", 1, 1)
	b, _ := d.AddLineItem("B", 1, 1)
	assert.Equal(t, "li-1", a.ID)
	assert.Equal(t, "li-2", b.ID)
}

func TestAddLineItemRejectsTotalOverflow(t *testing.T) {
	d := NewDraft()
	_, ok := d.AddLineItem("Big", 1, 1e308)
	require.True(t, ok)

	_, ok = d.AddLineItem("Bigger", 1, 1e308)
	assert.False(t, ok)
	assert.Equal(t, 1, d.Len())
	assert.Equal(t, 1e308, d.GrandTotal())
	assert.False(t, math.IsInf(d.GrandTotal(), 0))
	assert.Equal(t, "Bigger", d.Entry.Product)
}

func TestReopen(t *testing.T) {
	d := NewDraft()
	d.Customer = Customer{Name: "Bob", Email: "bob@example.com"}
	first, _ := d.AddLineItem("A", 2, 5)
	second, _ := d.AddLineItem("B", 1, 20)
	c, ok := d.Submit()
	require.True(t, ok)

	d.Entry = Entry{Product: "Half typed", Quantity: 3}
	d.Reopen(c)

	items := d.Items()
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
	assert.Equal(t, 30.0, d.GrandTotal())
	assert.Equal(t, Customer{Name: "Bob", Email: "bob@example.com"}, d.Customer)
	assert.Equal(t, Entry{Product: "Half typed", Quantity: 3}, d.Entry)
}

func TestReopenWalkIn(t *testing.T) {
	d := NewDraft()
	_, _ = d.AddLineItem("A", 1, 1)
	c, ok := d.Submit()
	require.True(t, ok)
	require.Equal(t, WalkInCustomer, c.Customer)

	d.Reopen(c)
	assert.Empty(t, d.Customer.Name, "the walk-in placeholder is not written back")
	assert.Equal(t, 1, d.Len())
}

package domain

import (
	"encoding/json"
	"iter"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// DraftEntry is a session snapshot of a menu item taken when it was first added.
type DraftEntry struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

type DraftLine struct {
	ItemID   int             `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Draft is the in-progress order kept in the session, keyed by item id.
// MaxLineQuantity bounds a single draft line so an order always fits the
// order_items and orders.total_amount columns.
const MaxLineQuantity = 999

// Stored entries always have a quantity of at least 1.
type Draft struct {
	entries map[string]DraftEntry
}

func (d *Draft) Add(item MenuItem) {
	if d.entries == nil {
		d.entries = make(map[string]DraftEntry)
	}
	key := strconv.Itoa(item.ID)
	if entry, ok := d.entries[key]; ok {
		entry.Quantity++
		d.entries[key] = entry
		return
	}
	d.entries[key] = DraftEntry{
		Name:     item.Name,
		Price:    item.Price,
		Quantity: 1,
		Image:    item.ImageURL,
	}
}

// SetQuantity overwrites the quantity of an entry already in the draft.
// A quantity of zero or less removes the entry.
func (d *Draft) SetQuantity(itemID, quantity int) {
	key := strconv.Itoa(itemID)
	entry, ok := d.entries[key]
	if !ok {
		return
	}
	if quantity <= 0 {
		delete(d.entries, key)
		return
	}
	entry.Quantity = quantity
	d.entries[key] = entry
}

func (d *Draft) Remove(itemID int) {
	delete(d.entries, strconv.Itoa(itemID))
}

func (d *Draft) Entry(itemID int) (DraftEntry, bool) {
	entry, ok := d.entries[strconv.Itoa(itemID)]
	return entry, ok
}

func (d *Draft) Clear() {
	d.entries = nil
}

func (d *Draft) Len() int {
	return len(d.entries)
}

func (d *Draft) IsEmpty() bool {
	return len(d.entries) == 0
}

// Lines yields the entries ordered by item id. The sequence reads the draft
// on every iteration and can be ranged over any number of times.
func (d *Draft) Lines() iter.Seq[DraftLine] {
	return func(yield func(DraftLine) bool) {
		for _, id := range d.itemIDs() {
			entry := d.entries[strconv.Itoa(id)]
			line := DraftLine{
				ItemID:   id,
				Name:     entry.Name,
				Price:    entry.Price,
				Quantity: entry.Quantity,
				Image:    entry.Image,
				Subtotal: entry.Price.Mul(decimal.NewFromInt(int64(entry.Quantity))),
			}
			if !yield(line) {
				return
			}
		}
	}
}

func (d *Draft) Total() decimal.Decimal {
	total := decimal.Zero
	for line := range d.Lines() {
		total = total.Add(line.Subtotal)
	}
	return total
}

// Count is the number of units across all entries.
func (d *Draft) Count() int {
	count := 0
	for _, entry := range d.entries {
		count += entry.Quantity
	}
	return count
}

func (d *Draft) itemIDs() []int {
	ids := make([]int, 0, len(d.entries))
	for key := range d.entries {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (d Draft) MarshalJSON() ([]byte, error) {
	if d.entries == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d.entries)
}

func (d *Draft) UnmarshalJSON(data []byte) error {
	var entries map[string]DraftEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	for key, entry := range entries {
		if entry.Quantity < 1 {
			delete(entries, key)
		}
	}
	d.entries = entries
	return nil
}

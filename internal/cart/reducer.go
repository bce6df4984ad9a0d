package cart

import "time"

// Mutation is one of the tagged cart operations. Keeping the state
// transition a pure function of (items, mutation) makes every cart
// behavior unit-testable without storage.
type Mutation interface {
	mutation()
}

type AddItem struct {
	ProductID string
	Product   ProductSnapshot
	Size      string
	Quantity  int
}

type RemoveItem struct {
	ID string
}

type SetQuantity struct {
	ID       string
	Quantity int
}

type Clear struct{}

func (AddItem) mutation()     {}
func (RemoveItem) mutation()  {}
func (SetQuantity) mutation() {}
func (Clear) mutation()       {}

// apply returns the items after m. The input slice is never modified.
func apply(items []Item, m Mutation, now time.Time, newID func() string) []Item {
	switch m := m.(type) {
	case AddItem:
		next := make([]Item, len(items))
		copy(next, items)

		// Same product in the same size merges into the existing
		// line instead of duplicating it.
		for i := range next {
			if next[i].ProductID == m.ProductID && next[i].Size == m.Size {
				next[i].Quantity += m.Quantity
				return next
			}
		}

		return append(next, Item{
			ID:        newID(),
			ProductID: m.ProductID,
			Product:   m.Product,
			Size:      m.Size,
			Quantity:  m.Quantity,
			AddedAt:   now,
		})

	case RemoveItem:
		next := make([]Item, 0, len(items))
		for _, it := range items {
			if it.ID != m.ID {
				next = append(next, it)
			}
		}
		return next

	case SetQuantity:
		if m.Quantity < 1 {
			return apply(items, RemoveItem{ID: m.ID}, now, newID)
		}
		next := make([]Item, len(items))
		copy(next, items)
		for i := range next {
			if next[i].ID == m.ID {
				next[i].Quantity = m.Quantity
			}
		}
		return next

	case Clear:
		return []Item{}

	default:
		return items
	}
}

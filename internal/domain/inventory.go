package domain

// Inventory maps item id to owned count. A missing key means zero.
type Inventory map[string]int

// Count returns the owned count for an item
func (inv Inventory) Count(itemID string) int {
	if inv == nil {
		return 0
	}
	return inv[itemID]
}

// Add increases the owned count of an item by quantity
func (inv Inventory) Add(itemID string, quantity int) {
	inv[itemID] += quantity
}

// Remove decreases the owned count of an item. It returns false and leaves the
// inventory untouched when fewer than quantity units are owned.
func (inv Inventory) Remove(itemID string, quantity int) bool {
	if inv.Count(itemID) < quantity {
		return false
	}
	inv[itemID] -= quantity
	return true
}

// IsEmpty reports whether no entry has a positive count
func (inv Inventory) IsEmpty() bool {
	for _, count := range inv {
		if count > 0 {
			return false
		}
	}
	return true
}

// Clone returns an independent copy
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for id, count := range inv {
		out[id] = count
	}
	return out
}

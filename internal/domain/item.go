package domain

// ItemKind distinguishes catalog items that change gameplay from purely cosmetic ones
type ItemKind string

const (
	ItemKindWeapon    ItemKind = "weapon"
	ItemKindPrivilege ItemKind = "privilege"
)

// Currency selects which balance pays for an operation
type Currency string

const (
	// CurrencySoft is the earned currency (coins)
	CurrencySoft Currency = "coins"
	// CurrencyHard is the premium currency (donat)
	CurrencyHard Currency = "donat"
)

// IsValid reports whether c is a known currency
func (c Currency) IsValid() bool {
	return c == CurrencySoft || c == CurrencyHard
}

// Item is an immutable catalog entry. Multiplier is only set for weapons.
type Item struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Price      int      `json:"price"`
	Multiplier int      `json:"multiplier,omitempty"`
	Kind       ItemKind `json:"kind"`
}

// IsWeapon reports whether the item contributes to the click multiplier
func (i Item) IsWeapon() bool {
	return i.Kind == ItemKindWeapon
}

// IsPrivilege reports whether the item is a status label
func (i Item) IsPrivilege() bool {
	return i.Kind == ItemKindPrivilege
}

// SellValue is what liquidation pays per unit: half the price, rounded down
func (i Item) SellValue() int {
	return i.Price / SellValueDivisor
}

// CaseDefinition is a purchasable pack of standard cases
type CaseDefinition struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Count int    `json:"count"`
}

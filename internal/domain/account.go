package domain

import "time"

// Account is the mutable per-player record persisted by the repository.
// Identity is the login email and never changes after registration.
type Account struct {
	Identity         string    `json:"identity"`
	PasswordHash     string    `json:"-"`
	DisplayName      string    `json:"display_name"`
	SoftCurrency     int       `json:"coins"`
	HardCurrency     int       `json:"donat"`
	ClickCount       int       `json:"clicks"`
	Inventory        Inventory `json:"inventory"`
	ActivePrivilege  string    `json:"privilege"`
	CaseCount        int       `json:"cases"`
	PremiumCaseCount int       `json:"premium_cases"`
	Version          int64     `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewAccount builds a freshly registered account with zeroed counters
func NewAccount(identity, passwordHash, displayName string, now time.Time) *Account {
	return &Account{
		Identity:        identity,
		PasswordHash:    passwordHash,
		DisplayName:     displayName,
		Inventory:       Inventory{},
		ActivePrivilege: BaselinePrivilegeName,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Balance returns the balance for the given currency
func (a *Account) Balance(currency Currency) int {
	if currency == CurrencyHard {
		return a.HardCurrency
	}
	return a.SoftCurrency
}

// Debit subtracts amount from the chosen balance. It refuses, leaving the
// account untouched, when the balance cannot cover the amount.
func (a *Account) Debit(currency Currency, amount int) bool {
	if a.Balance(currency) < amount {
		return false
	}
	if currency == CurrencyHard {
		a.HardCurrency -= amount
	} else {
		a.SoftCurrency -= amount
	}
	return true
}

// Credit adds amount to the chosen balance
func (a *Account) Credit(currency Currency, amount int) {
	if currency == CurrencyHard {
		a.HardCurrency += amount
	} else {
		a.SoftCurrency += amount
	}
}

// Grant adds one unit of item to the inventory. Privileges also become the
// active label, replacing whatever was active before.
func (a *Account) Grant(item Item, quantity int) {
	if a.Inventory == nil {
		a.Inventory = Inventory{}
	}
	a.Inventory.Add(item.ID, quantity)
	if item.IsPrivilege() {
		a.ActivePrivilege = item.Name
	}
}

// Clone returns a deep copy so stores never share inventory maps with callers
func (a *Account) Clone() *Account {
	out := *a
	out.Inventory = a.Inventory.Clone()
	return &out
}

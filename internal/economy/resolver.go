package economy

import (
	"fmt"

	"github.com/osse101/MineClicker_Go/internal/catalog"
	"github.com/osse101/MineClicker_Go/internal/domain"
)

// PayoutPolicy turns the current click multiplier into a soft-currency payout
type PayoutPolicy func(multiplier int) int

// FlatPayout pays exactly the multiplier
func FlatPayout(multiplier int) int {
	return multiplier
}

// RandomPayout pays a uniform roll in [ClickRandomMin, ClickRandomMax] times the multiplier.
// randInt must return an integer in [min, max] inclusive.
func RandomPayout(randInt func(min, max int) int) PayoutPolicy {
	return func(multiplier int) int {
		return randInt(domain.ClickRandomMin, domain.ClickRandomMax) * multiplier
	}
}

// PolicyByName resolves a configured policy name
func PolicyByName(name string, randInt func(min, max int) int) (PayoutPolicy, error) {
	switch name {
	case PayoutPolicyFlat:
		return FlatPayout, nil
	case PayoutPolicyRandom, "":
		return RandomPayout(randInt), nil
	default:
		return nil, fmt.Errorf("%w: unknown payout policy %q", domain.ErrInvalidInput, name)
	}
}

// ClickMultiplier is 1 plus the owned count of every catalog weapon times its multiplier
func ClickMultiplier(inv domain.Inventory) int {
	multiplier := 1
	for _, weapon := range catalog.Weapons() {
		multiplier += inv.Count(weapon.ID) * weapon.Multiplier
	}
	return multiplier
}

// IsPrivilegeActive reports whether item is the account's current privilege label
func IsPrivilegeActive(account *domain.Account, item domain.Item) bool {
	return item.IsPrivilege() && account.ActivePrivilege == item.Name
}

// ApplyPurchase debits the price and grants one unit. It changes nothing when
// the balance is short. Re-buying the active privilege is allowed.
func ApplyPurchase(account *domain.Account, item domain.Item, currency domain.Currency) error {
	if !currency.IsValid() {
		return fmt.Errorf("%w: currency %q", domain.ErrInvalidInput, currency)
	}
	if !account.Debit(currency, item.Price) {
		return fmt.Errorf(ErrMsgInsufficientFundsFmt, item.Name, item.Price, currency, account.Balance(currency), domain.ErrInsufficientFunds)
	}
	account.Grant(item, 1)
	return nil
}

// Liquidate sells every owned unit at half price (rounded down per unit) and
// empties the inventory. The active privilege label is left as it was.
// Entries with no catalog item are cleared for nothing.
func Liquidate(account *domain.Account) (itemsSold, credited int, err error) {
	if account.Inventory.IsEmpty() {
		return 0, 0, fmt.Errorf("%w: inventory is empty", domain.ErrNoItemsAvailable)
	}

	for itemID, count := range account.Inventory {
		if count <= 0 {
			continue
		}
		itemsSold += count
		if item, lookupErr := catalog.FindItem(itemID); lookupErr == nil {
			credited += item.SellValue() * count
		}
	}

	account.Credit(domain.CurrencySoft, credited)
	account.Inventory = domain.Inventory{}
	return itemsSold, credited, nil
}

// Package catalog holds the static item, case and bet tables of the game.
// Slices returned by this package are copies; callers may modify them.
package catalog

import (
	"fmt"

	"github.com/osse101/MineClicker_Go/internal/domain"
)

// Weapons are listed in ascending price order
var weapons = []domain.Item{
	{ID: WeaponWoodSword, Name: "Деревянный меч", Price: 0, Multiplier: 1, Kind: domain.ItemKindWeapon},
	{ID: WeaponIronSword, Name: "Железный меч", Price: 10000, Multiplier: 2, Kind: domain.ItemKindWeapon},
	{ID: WeaponNetheriteSword, Name: "Незеритовый меч", Price: 100000, Multiplier: 5, Kind: domain.ItemKindWeapon},
	{ID: WeaponGodSword, Name: "Меч Бога x5", Price: 34000000, Multiplier: 25, Kind: domain.ItemKindWeapon},
}

// Privileges are listed in ascending rank order
var privileges = []domain.Item{
	{ID: PrivilegeSurvivor, Name: domain.BaselinePrivilegeName, Price: 0, Kind: domain.ItemKindPrivilege},
	{ID: PrivilegeProfessional, Name: "Профессионал", Price: 100, Kind: domain.ItemKindPrivilege},
	{ID: PrivilegeBedwars, Name: "БедВарсер", Price: 123, Kind: domain.ItemKindPrivilege},
	{ID: PrivilegeHacker, Name: "Хакер", Price: 345, Kind: domain.ItemKindPrivilege},
	{ID: PrivilegeCheater, Name: "Читер", Price: 567, Kind: domain.ItemKindPrivilege},
	{ID: PrivilegeHydra, Name: "Гидра", Price: 1239, Kind: domain.ItemKindPrivilege},
	{ID: PrivilegeGod, Name: "Бог", Price: 12383, Kind: domain.ItemKindPrivilege},
}

var casePacks = []domain.CaseDefinition{
	{ID: "case-1", Name: "1 кейс", Price: 500, Count: 1},
	{ID: "case-3", Name: "3 кейса", Price: 1500, Count: 3},
	{ID: "case-5", Name: "5 кейсов", Price: 2000, Count: 5},
	{ID: "case-10", Name: "10 кейсов", Price: 4500, Count: 10},
}

var betTiers = []int{10000, 50000, 100000, 1000000, 10000000}

var itemsByID = func() map[string]domain.Item {
	m := make(map[string]domain.Item, len(weapons)+len(privileges))
	for _, item := range weapons {
		m[item.ID] = item
	}
	for _, item := range privileges {
		m[item.ID] = item
	}
	return m
}()

// Weapons returns every weapon, cheapest first
func Weapons() []domain.Item {
	return append([]domain.Item(nil), weapons...)
}

// Privileges returns every privilege, lowest rank first
func Privileges() []domain.Item {
	return append([]domain.Item(nil), privileges...)
}

// Items returns weapons followed by privileges
func Items() []domain.Item {
	return append(Weapons(), privileges...)
}

// FindItem looks an item up by id
func FindItem(id string) (domain.Item, error) {
	item, ok := itemsByID[id]
	if !ok {
		return domain.Item{}, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	return item, nil
}

// FindItemByName looks an item up by display name. Active privileges are
// stored by name, so this resolves them back to catalog entries.
func FindItemByName(name string) (domain.Item, error) {
	for _, item := range Items() {
		if item.Name == name {
			return item, nil
		}
	}
	return domain.Item{}, fmt.Errorf("%w: %s", domain.ErrItemNotFound, name)
}

// CasePacks returns the purchasable standard case packs
func CasePacks() []domain.CaseDefinition {
	return append([]domain.CaseDefinition(nil), casePacks...)
}

// FindCasePack looks a case pack up by id
func FindCasePack(id string) (domain.CaseDefinition, error) {
	for _, pack := range casePacks {
		if pack.ID == id {
			return pack, nil
		}
	}
	return domain.CaseDefinition{}, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
}

// BetTiers returns the suggested casino stakes
func BetTiers() []int {
	return append([]int(nil), betTiers...)
}

// StandardCasePool is the uniform prize pool of a standard case
func StandardCasePool() []domain.Item {
	pool := append([]domain.Item(nil), weapons[:StandardPoolWeapons]...)
	return append(pool, privileges[:StandardPoolPrivileges]...)
}

// PremiumCommonPool is the uniform fallback pool of a premium case
func PremiumCommonPool() []domain.Item {
	return append([]domain.Item(nil), privileges[:PremiumCommonPrivileges]...)
}

// PrivilegeByRank returns the privilege n places from the top (0 is the highest)
func PrivilegeByRank(n int) domain.Item {
	return privileges[len(privileges)-1-n]
}

// DefaultCurrency is what an item is paid with when the caller does not say
func DefaultCurrency(item domain.Item) domain.Currency {
	if item.IsPrivilege() {
		return domain.CurrencyHard
	}
	return domain.CurrencySoft
}

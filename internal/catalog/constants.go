package catalog

// Weapon ids
const (
	WeaponWoodSword      = "wood-sword"
	WeaponIronSword      = "iron-sword"
	WeaponNetheriteSword = "netherite-sword"
	WeaponGodSword       = "god-sword"
)

// Privilege ids
const (
	PrivilegeSurvivor     = "survivor"
	PrivilegeProfessional = "professional"
	PrivilegeBedwars      = "bedwars"
	PrivilegeHacker       = "hacker"
	PrivilegeCheater      = "cheater"
	PrivilegeHydra        = "hydra"
	PrivilegeGod          = "god"
)

// Case pool shape
const (
	StandardPoolWeapons     = 3
	StandardPoolPrivileges  = 5
	PremiumCommonPrivileges = 4
)

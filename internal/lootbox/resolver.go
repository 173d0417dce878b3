package lootbox

import (
	"github.com/osse101/MineClicker_Go/internal/catalog"
	"github.com/osse101/MineClicker_Go/internal/domain"
)

// Premium case buckets. A single draw below each cut selects the privilege
// that many places from the top; anything else falls to the common pool.
var premiumBuckets = []float64{0.01, 0.02, 0.03}

// DrawStandard picks uniformly from the standard pool
func DrawStandard(rnd func() float64) domain.Item {
	return pickUniform(catalog.StandardCasePool(), rnd())
}

// DrawPremium resolves a premium case. The common fallback uses a second draw.
func DrawPremium(rnd func() float64) domain.Item {
	r := rnd()
	for rank, cut := range premiumBuckets {
		if r < cut {
			return catalog.PrivilegeByRank(rank)
		}
	}
	return pickUniform(catalog.PremiumCommonPool(), rnd())
}

func pickUniform(pool []domain.Item, draw float64) domain.Item {
	idx := int(draw * float64(len(pool)))
	if idx >= len(pool) {
		idx = len(pool) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return pool[idx]
}

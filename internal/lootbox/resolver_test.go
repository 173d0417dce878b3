package lootbox

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/MineClicker_Go/internal/catalog"
)

// sequence returns the given draws in order
func sequence(draws ...float64) func() float64 {
	i := 0
	return func() float64 {
		d := draws[i]
		i++
		return d
	}
}

func TestDrawPremium_Buckets(t *testing.T) {
	tests := []struct {
		name  string
		draws []float64
		want  string
	}{
		{"top bucket", []float64{0.005}, catalog.PrivilegeGod},
		{"second bucket", []float64{0.01}, catalog.PrivilegeHydra},
		{"third bucket", []float64{0.025}, catalog.PrivilegeCheater},
		{"common first", []float64{0.03, 0.0}, catalog.PrivilegeSurvivor},
		{"common last", []float64{0.99, 0.99}, catalog.PrivilegeHacker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DrawPremium(sequence(tt.draws...)).ID)
		})
	}
}

func TestDrawStandard_Edges(t *testing.T) {
	assert.Equal(t, catalog.WeaponWoodSword, DrawStandard(sequence(0)).ID)
	assert.Equal(t, catalog.PrivilegeCheater, DrawStandard(sequence(0.999999)).ID)
	assert.Equal(t, catalog.PrivilegeCheater, DrawStandard(sequence(1.0)).ID, "clamped")
}

func TestDrawStandard_Uniform(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const draws = 80000
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		counts[DrawStandard(rng.Float64).ID]++
	}

	assert.Len(t, counts, 8)
	for id, n := range counts {
		assert.InDelta(t, 1.0/8, float64(n)/draws, 0.01, id)
	}
}

func TestDrawPremium_Distribution(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	const draws = 200000
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		counts[DrawPremium(rng.Float64).ID]++
	}

	expected := map[string]float64{
		catalog.PrivilegeGod:          0.01,
		catalog.PrivilegeHydra:        0.01,
		catalog.PrivilegeCheater:      0.01,
		catalog.PrivilegeSurvivor:     0.2425,
		catalog.PrivilegeProfessional: 0.2425,
		catalog.PrivilegeBedwars:      0.2425,
		catalog.PrivilegeHacker:       0.2425,
	}
	for id, p := range expected {
		assert.InDelta(t, p, float64(counts[id])/draws, 0.005, id)
	}
}

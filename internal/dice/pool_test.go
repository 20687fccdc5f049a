package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qninhdt/last-compound/server/internal/random"
)

func TestRollSizeAndRange(t *testing.T) {
	var p Pool
	values := p.Roll(random.New(3), 4)

	require.Len(t, values, 4)
	assert.Equal(t, 4, p.Len())
	for _, v := range values {
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, Sides)
	}
}

func TestSpendRemovesFirstMatch(t *testing.T) {
	var p Pool
	p.Set([]int{3, 5, 3})

	assert.True(t, p.Spend(3))
	assert.Equal(t, []int{5, 3}, p.Values())
}

func TestSpendAbsentIsNoOp(t *testing.T) {
	var p Pool
	p.Set([]int{1, 2})

	assert.False(t, p.Spend(6))
	assert.Equal(t, []int{1, 2}, p.Values())
}

func TestRerollOncePerDay(t *testing.T) {
	r := random.New(9)
	var p Pool
	p.Roll(r, 3)
	first := p.Values()[0]

	_, ok := p.Reroll(r, first)
	assert.True(t, ok)
	assert.True(t, p.RerollUsed())
	assert.Equal(t, 3, p.Len())

	_, ok = p.Reroll(r, p.Values()[0])
	assert.False(t, ok, "second reroll in the same day must be refused")

	p.Roll(r, 3)
	assert.False(t, p.RerollUsed(), "new roll resets the reroll flag")
}

func TestRerollAbsentValueDoesNotUseFlag(t *testing.T) {
	var p Pool
	p.Set([]int{2, 2})

	_, ok := p.Reroll(random.New(1), 6)
	assert.False(t, ok)
	assert.False(t, p.RerollUsed())
}

func TestValuesIsCopy(t *testing.T) {
	var p Pool
	p.Set([]int{4})
	v := p.Values()
	v[0] = 1
	assert.Equal(t, []int{4}, p.Values())
}

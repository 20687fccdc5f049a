// Package dice implements the shared pool of action dice for a day.
package dice

import (
	"github.com/qninhdt/last-compound/server/internal/random"
)

// Sides is the number of faces on an action die
const Sides = 6

// Pool is the ordered list of pip values available today. Dice only leave
// the pool by being spent; the pool is refilled by Roll once per day.
type Pool struct {
	dice     []int
	rerolled bool
}

// Roll replaces the pool with n fresh dice and clears the daily reroll flag.
func (p *Pool) Roll(r random.Source, n int) []int {
	if n < 0 {
		n = 0
	}
	p.dice = make([]int, n)
	for i := range p.dice {
		p.dice[i] = roll(r)
	}
	p.rerolled = false
	return p.Values()
}

// Spend removes the first die showing value. Spending an absent value is a
// no-op and reports false.
func (p *Pool) Spend(value int) bool {
	i := p.index(value)
	if i < 0 {
		return false
	}
	p.dice = append(p.dice[:i], p.dice[i+1:]...)
	return true
}

// Reroll replaces the first die showing value with a fresh roll. Only one
// reroll is allowed per day; a second call, or an absent value, is a no-op.
func (p *Pool) Reroll(r random.Source, value int) (int, bool) {
	if p.rerolled {
		return 0, false
	}
	i := p.index(value)
	if i < 0 {
		return 0, false
	}
	p.dice[i] = roll(r)
	p.rerolled = true
	return p.dice[i], true
}

// RerollUsed reports whether today's reroll has been spent.
func (p *Pool) RerollUsed() bool {
	return p.rerolled
}

// Len returns the number of dice left.
func (p *Pool) Len() int {
	return len(p.dice)
}

// Values returns a copy of the pool.
func (p *Pool) Values() []int {
	result := make([]int, len(p.dice))
	copy(result, p.dice)
	return result
}

// Set overwrites the pool contents without touching the reroll flag.
func (p *Pool) Set(values []int) {
	p.dice = append([]int(nil), values...)
}

func (p *Pool) index(value int) int {
	for i, d := range p.dice {
		if d == value {
			return i
		}
	}
	return -1
}

func roll(r random.Source) int {
	return r.IntN(Sides) + 1
}

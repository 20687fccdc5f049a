package random

// Scripted replays queued values in order, for tests that need to pin
// dice, exposure rolls and card draws. Once a queue is empty IntN returns 0
// and Float64 returns 0.99, which never passes a probability check.
type Scripted struct {
	Ints   []int
	Floats []float64
}

// IntN pops the next queued int, clamped into [0, n).
func (s *Scripted) IntN(n int) int {
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Float64 pops the next queued float.
func (s *Scripted) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0.99
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

// PushDie queues a die face (1-6) for the next roll.
func (s *Scripted) PushDie(faces ...int) {
	for _, f := range faces {
		s.Ints = append(s.Ints, f-1)
	}
}

// PushPercentile queues a percentile result (1-100).
func (s *Scripted) PushPercentile(p int) {
	s.Ints = append(s.Ints, p-1)
}

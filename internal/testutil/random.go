package testutil

// ScriptedSource replays fixed random values. Once a script is exhausted it returns
// FloatDefault / 0.
type ScriptedSource struct {
	Floats       []float64
	Ints         []int
	FloatDefault float64

	floatCalls int
	intCalls   int
}

// Float64 returns the next scripted float.
func (s *ScriptedSource) Float64() float64 {
	s.floatCalls++
	if len(s.Floats) == 0 {
		return s.FloatDefault
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

// IntN returns the next scripted int, reduced into [0, n).
func (s *ScriptedSource) IntN(n int) int {
	s.intCalls++
	if len(s.Ints) == 0 || n <= 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	return v % n
}

// Calls reports how many floats and ints were drawn.
func (s *ScriptedSource) Calls() (floats, ints int) {
	return s.floatCalls, s.intCalls
}

package cpu

// Comparison is the result recorded by the last compare instruction.
type Comparison uint8

//go:generate go tool stringer -linecomment -type=Comparison
const (
	CMP_EQ  = Comparison(0) // eq
	CMP_NE  = Comparison(1) // ne
	CMP_LT  = Comparison(2) // lt
	CMP_LTE = Comparison(3) // lte
	CMP_GT  = Comparison(4) // gt
	CMP_GTE = Comparison(5) // gte
)

// ComparisonFrom decodes a comparison byte.
func ComparisonFrom(value byte) (cmp Comparison, err error) {
	if value > byte(CMP_GTE) {
		err = ErrInvalidComparison(value)
		return
	}

	cmp = Comparison(value)
	return
}

// Compare a against b. Only CMP_EQ, CMP_GT and CMP_LT are produced.
func Compare(a, b uint32) Comparison {
	switch {
	case a > b:
		return CMP_GT
	case a < b:
		return CMP_LT
	default:
		return CMP_EQ
	}
}

// State of the execution engine.
type State uint8

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING = State(0) // running
	STATE_HALTED  = State(1) // halted
)

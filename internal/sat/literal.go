package sat

import "fmt"

// Literal represents a signed DIMACS literal: a positive value names the
// variable, a negative value names its negation. Variable IDs start at 1.
type Literal int32

// PositiveLiteral returns the positive literal of variable v.
func PositiveLiteral(v int) Literal {
	return Literal(v)
}

// NegativeLiteral returns the negative literal of variable v.
func NegativeLiteral(v int) Literal {
	return Literal(-v)
}

// VarID returns the ID of the literal's variable.
func (l Literal) VarID() int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

// IsPositive returns true if and only if the literal represents the value of
// its boolean variable (i.e. not its negation).
func (l Literal) IsPositive() bool {
	return l > 0
}

// Opposite returns the opposite literal.
func (l Literal) Opposite() Literal {
	return -l
}

func (l Literal) String() string {
	return fmt.Sprintf("%d", int(l))
}

package aggregation

import (
	"github.com/shopspring/decimal"
)

// Op is the merge rule for one aggregate measure. The write path and the drift
// auditor share these so a replayed log folds to the same values as the live upsert.
type Op string

const (
	OpCount Op = "count" // completed
	OpSum   Op = "sum"   // total play time
	OpMin   Op = "min"   // best time
	OpMax   Op = "max"   // best score
)

func (op Op) Valid() bool {
	switch op {
	case OpCount, OpSum, OpMin, OpMax:
		return true
	}
	return false
}

// Seed is the measure's value after its first observation.
func (op Op) Seed(v decimal.Decimal) decimal.Decimal {
	if op == OpCount {
		return decimal.NewFromInt(1)
	}
	return v
}

// Merge folds v into cur. Unknown ops keep cur.
func (op Op) Merge(cur, v decimal.Decimal) decimal.Decimal {
	switch op {
	case OpCount:
		return cur.Add(decimal.NewFromInt(1))
	case OpSum:
		return cur.Add(v)
	case OpMin:
		if v.LessThan(cur) {
			return v
		}
	case OpMax:
		if v.GreaterThan(cur) {
			return v
		}
	}
	return cur
}

// FoldOptional merges an optional measure: a nil v keeps cur, a nil cur is seeded from v.
func FoldOptional(op Op, cur, v *decimal.Decimal) *decimal.Decimal {
	if v == nil {
		return cur
	}
	next := op.Seed(*v)
	if cur != nil {
		next = op.Merge(*cur, *v)
	}
	return &next
}

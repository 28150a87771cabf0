package aggregation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestOp_SeedAndMerge(t *testing.T) {
	tests := []struct {
		name      string
		op        Op
		first     decimal.Decimal
		cur, v    decimal.Decimal
		wantSeed  decimal.Decimal
		wantMerge decimal.Decimal
	}{
		{name: "count ignores the measure", op: OpCount, first: d(4200), cur: d(2), v: d(900), wantSeed: d(1), wantMerge: d(3)},
		{name: "sum adds play time", op: OpSum, first: d(4200), cur: d(4200), v: d(3100), wantSeed: d(4200), wantMerge: d(7300)},
		{name: "min takes a faster time", op: OpMin, first: d(4200), cur: d(4200), v: d(3100), wantSeed: d(4200), wantMerge: d(3100)},
		{name: "min keeps the best time", op: OpMin, first: d(3100), cur: d(3100), v: d(5000), wantSeed: d(3100), wantMerge: d(3100)},
		{name: "max takes a higher score", op: OpMax, first: d(7), cur: d(7), v: d(9), wantSeed: d(7), wantMerge: d(9)},
		{name: "max keeps the best score", op: OpMax, first: d(9), cur: d(9), v: d(2), wantSeed: d(9), wantMerge: d(9)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.True(t, tc.wantSeed.Equal(tc.op.Seed(tc.first)), "seed %s", tc.op.Seed(tc.first))
			require.True(t, tc.wantMerge.Equal(tc.op.Merge(tc.cur, tc.v)), "merge %s", tc.op.Merge(tc.cur, tc.v))
		})
	}
}

func TestOp_UnknownKeepsCurrent(t *testing.T) {
	require.True(t, d(5).Equal(Op("avg").Merge(d(5), d(1))))
}

func TestFoldOptional_BestTime(t *testing.T) {
	slow, fast := d(5000), d(3100)

	require.Nil(t, FoldOptional(OpMin, nil, nil), "no time reported yet")
	require.True(t, slow.Equal(*FoldOptional(OpMin, nil, &slow)))
	require.True(t, fast.Equal(*FoldOptional(OpMin, &slow, &fast)))
	require.True(t, fast.Equal(*FoldOptional(OpMin, &fast, &slow)))

	kept := FoldOptional(OpMin, &fast, nil)
	require.NotNil(t, kept)
	require.True(t, fast.Equal(*kept))
}

func TestOp_Valid(t *testing.T) {
	for _, op := range []Op{OpCount, OpSum, OpMin, OpMax} {
		require.True(t, op.Valid(), op)
	}
	require.False(t, Op("avg").Valid())
	require.False(t, Op("").Valid())
}

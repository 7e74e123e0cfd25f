package service

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"book-talk-api/internal/domain"
)

// For any pair of vote counts, the rounded percentages are each within
// 0..100 and differ from an exact split by at most one point of rounding.
func TestProperty_SplitRatioBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("ratios stay within 0..100 and sum to 100±1 when votes exist", prop.ForAll(
		func(count1, count2 int64) bool {
			ratio1, ratio2 := SplitRatio(count1, count2)
			if ratio1 < 0 || ratio1 > 100 || ratio2 < 0 || ratio2 > 100 {
				return false
			}
			if count1+count2 == 0 {
				return ratio1 == 0 && ratio2 == 0
			}
			sum := ratio1 + ratio2
			return sum >= 99 && sum <= 101
		},
		gen.Int64Range(0, 1_000_000),
		gen.Int64Range(0, 1_000_000),
	))

	properties.Property("a unanimous vote is reported as 100 to 0", prop.ForAll(
		func(count int64) bool {
			ratio1, ratio2 := SplitRatio(count, 0)
			return ratio1 == 100 && ratio2 == 0
		},
		gen.Int64Range(1, 1_000_000),
	))

	properties.TestingRun(t)
}

// Level never decreases as exp grows, and always stays within 1..5
func TestProperty_LevelForExpMonotonic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("level is monotonic in exp and bounded by 1..5", prop.ForAll(
		func(exp, delta int) bool {
			before := domain.LevelForExp(exp)
			after := domain.LevelForExp(exp + delta)
			if before < 1 || before > domain.MaxLevel {
				return false
			}
			return after >= before
		},
		gen.IntRange(0, 10_000),
		gen.IntRange(0, 10_000),
	))

	properties.TestingRun(t)
}

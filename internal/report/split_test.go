package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCentiHours(t *testing.T) {
	assert.Equal(t, int64(150), CentiHours(90))
	assert.Equal(t, int64(200), CentiHours(120))
	assert.Equal(t, int64(25), CentiHours(15))
	assert.Equal(t, int64(33), CentiHours(20))
	assert.Equal(t, int64(0), CentiHours(0))
}

func TestCostCents(t *testing.T) {
	assert.Equal(t, int64(1200), CostCents(150, 800))
	assert.Equal(t, int64(2000), CostCents(200, 1000))
	assert.Equal(t, int64(0), CostCents(200, 0))
}

func TestSplitEvenly(t *testing.T) {
	assert.Equal(t, []int64{667, 667, 666}, SplitEvenly(2000, 3))
	assert.Equal(t, []int64{1000, 1000}, SplitEvenly(2000, 2))
	assert.Equal(t, []int64{1, 1, 0, 0}, SplitEvenly(2, 4))
	assert.Equal(t, []int64{0}, SplitEvenly(0, 1))
	assert.Nil(t, SplitEvenly(100, 0))
}

func TestSplitEvenly_SumsToTotal(t *testing.T) {
	for total := int64(0); total < 500; total++ {
		for n := 1; n <= 4; n++ {
			var sum int64
			for _, s := range SplitEvenly(total, n) {
				sum += s
			}
			assert.Equal(t, total, sum, "total=%d n=%d", total, n)
		}
	}
}

func TestParticipationBasisPoints(t *testing.T) {
	assert.Equal(t, int64(10000), ParticipationBasisPoints(1200, 1200, 1))
	assert.Equal(t, int64(3335), ParticipationBasisPoints(667, 2000, 3))
	assert.Equal(t, int64(3330), ParticipationBasisPoints(666, 2000, 3))
	assert.Equal(t, int64(3333), ParticipationBasisPoints(0, 0, 3))
	assert.Equal(t, int64(5000), ParticipationBasisPoints(0, 0, 2))
}

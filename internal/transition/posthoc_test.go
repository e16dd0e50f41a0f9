package transition

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/gonum/mat"
)

// fixedResult wraps a change-metric column set into a Result so the
// post-hoc testers can run without the surrogate machinery.
func fixedResult(cols ...[]float64) *Result {
	rows := len(cols[0])
	m := mat.NewDense(rows, len(cols), nil)
	for c, col := range cols {
		m.SetCol(c, col)
	}
	return &Result{Change: m}
}

func countFlags(flags [][]bool, col int) int {
	n := 0
	for _, row := range flags {
		if row[col] {
			n++
		}
	}
	return n
}

func TestQuantileFlags_IIDColumnFlagsExpectedFraction(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	col := make([]float64, 1000)
	for i := range col {
		col[i] = rng.NormFloat64()
	}
	res := fixedResult(col)

	flags, err := QuantileFlags(res, 0.95, TailRight)
	require.NoError(t, err)

	n := countFlags(flags, 0)
	assert.Greater(t, n, 0, "p<1 must never flag zero points")
	assert.InDelta(t, 50, n, 25, "roughly a 5%% fraction is flagged")
}

func TestQuantileFlags_NeverZeroForSubUnityP(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	col := make([]float64, 200)
	for i := range col {
		col[i] = rng.Float64()
	}
	res := fixedResult(col)

	for _, p := range []float64{0.5, 0.9, 0.99, 0.999} {
		for _, tail := range []Tail{TailLeft, TailRight, TailBoth} {
			flags, err := QuantileFlags(res, p, tail)
			require.NoError(t, err)
			assert.Greater(t, countFlags(flags, 0), 0, "p=%v tail=%s", p, tail)
		}
	}
}

func TestQuantileFlags_TailDirections(t *testing.T) {
	col := []float64{0, 0, 0, 0, 0, 0, 0, 0, -10, 10}
	res := fixedResult(col)

	right, err := QuantileFlags(res, 0.9, TailRight)
	require.NoError(t, err)
	assert.True(t, right[9][0], "maximum flagged on the right tail")
	assert.False(t, right[8][0], "minimum not flagged on the right tail")

	left, err := QuantileFlags(res, 0.9, TailLeft)
	require.NoError(t, err)
	assert.True(t, left[8][0])
	assert.False(t, left[9][0])

	both, err := QuantileFlags(res, 0.9, TailBoth)
	require.NoError(t, err)
	assert.True(t, both[8][0])
	assert.True(t, both[9][0])
}

func TestQuantileFlags_Validation(t *testing.T) {
	res := fixedResult([]float64{1, 2, 3})
	_, err := QuantileFlags(res, 0.95, "upper")
	assert.ErrorIs(t, err, ErrBadTail)
	_, err = QuantileFlags(res, 0, TailRight)
	assert.ErrorIs(t, err, ErrBadThreshold)
	_, err = QuantileFlags(res, 1, TailRight)
	assert.ErrorIs(t, err, ErrBadThreshold)
}

func TestSigmaFlags_KnownOutliers(t *testing.T) {
	// Tight cluster with one extreme point in each direction.
	col := []float64{0.1, -0.1, 0.05, -0.05, 0.1, -0.1, 0.02, -0.02, 25, -25}
	res := fixedResult(col)

	right, err := SigmaFlags(res, []float64{2}, TailRight)
	require.NoError(t, err)
	assert.Equal(t, 1, countFlags(right, 0))
	assert.True(t, right[8][0])

	left, err := SigmaFlags(res, []float64{2}, TailLeft)
	require.NoError(t, err)
	assert.Equal(t, 1, countFlags(left, 0))
	assert.True(t, left[9][0])

	both, err := SigmaFlags(res, []float64{2}, TailBoth)
	require.NoError(t, err)
	assert.Equal(t, 2, countFlags(both, 0))
}

func TestSigmaFlags_NoGuaranteeOfFlags(t *testing.T) {
	res := fixedResult([]float64{1, 2, 3, 4, 5})
	flags, err := SigmaFlags(res, []float64{10}, TailBoth)
	require.NoError(t, err)
	assert.Zero(t, countFlags(flags, 0), "a wide sigma band may flag nothing")
}

func TestSigmaFlags_PerColumnFactors(t *testing.T) {
	loud := []float64{0, 0, 0, 0, 9}
	quiet := []float64{0, 0, 0, 0, 9}
	res := fixedResult(loud, quiet)

	flags, err := SigmaFlags(res, []float64{0.5, 50}, TailRight)
	require.NoError(t, err)
	assert.True(t, flags[4][0], "tight factor flags the spike")
	assert.False(t, flags[4][1], "huge factor suppresses the same spike")
}

func TestSigmaFlags_Validation(t *testing.T) {
	res := fixedResult([]float64{1, 2, 3}, []float64{4, 5, 6})

	_, err := SigmaFlags(res, []float64{2}, "wide")
	assert.ErrorIs(t, err, ErrBadTail)

	_, err = SigmaFlags(res, []float64{1, 2, 3}, TailRight)
	assert.ErrorIs(t, err, ErrBadSigmaFactors)

	_, err = SigmaFlags(res, nil, TailRight)
	assert.ErrorIs(t, err, ErrBadSigmaFactors)
}

func TestPostHocFlags_AndColumn(t *testing.T) {
	a := []float64{0, 0, 0, 0, 10}
	b := []float64{0, 0, 0, 0, 10}
	res := fixedResult(a, b)

	flags, err := SigmaFlags(res, []float64{1}, TailRight)
	require.NoError(t, err)
	for _, row := range flags {
		require.Len(t, row, 3)
		assert.Equal(t, row[0] && row[1], row[2])
	}
	assert.True(t, flags[4][2], "point extreme under every metric lights the AND column")
}

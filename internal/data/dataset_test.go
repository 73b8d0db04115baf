package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

func sequenceDataset(n int) *Dataset {
	ds := &Dataset{}
	for i := 0; i < n; i++ {
		ds.Inputs = append(ds.Inputs, []float64{float64(i), float64(-i)})
		ds.Targets = append(ds.Targets, []float64{float64(i)})
	}
	return ds
}

func TestDatasetValidate(t *testing.T) {
	ds := sequenceDataset(3)
	assert.NoError(t, ds.Validate(2, 1))
	assert.ErrorContains(t, ds.Validate(3, 1), "record 0 has 2 features")
	assert.ErrorContains(t, ds.Validate(2, 2), "record 0 has 1 targets")

	ds.Targets = ds.Targets[:2]
	assert.ErrorContains(t, ds.Validate(2, 1), "3 inputs but 2 targets")
}

// TestDatasetShuffle tests that shuffling keeps records paired and is reproducible.
func TestDatasetShuffle(t *testing.T) {
	a := sequenceDataset(50)
	b := sequenceDataset(50)

	a.Shuffle(rand.New(rand.NewSource(1)))
	b.Shuffle(rand.New(rand.NewSource(1)))
	assert.Equal(t, a, b)
	assert.NotEqual(t, sequenceDataset(50), a)

	seen := make(map[float64]bool)
	for i := range a.Inputs {
		assert.Equal(t, a.Inputs[i][0], a.Targets[i][0])
		assert.Equal(t, -a.Inputs[i][0], a.Inputs[i][1])
		seen[a.Inputs[i][0]] = true
	}
	assert.Len(t, seen, 50)
}

func TestDatasetNormalization(t *testing.T) {
	dataset := &Dataset{
		Inputs: [][]float64{
			{10, 0, 7},
			{20, 5, 7},
			{30, 10, 7},
		},
	}

	dataset.Normalize()

	expected := [][]float64{
		{0.0, 0.0, 0},
		{0.5, 0.5, 0},
		{1.0, 1.0, 0},
	}
	assert.Equal(t, expected, dataset.Inputs)

	empty := &Dataset{}
	empty.Normalize()
	assert.Equal(t, 0, empty.Len())
}

func TestDatasetSplit(t *testing.T) {
	ds := sequenceDataset(10)

	train, test := ds.Split(0.8)
	assert.Equal(t, 8, train.Len())
	assert.Equal(t, 2, test.Len())
	assert.Equal(t, []float64{8}, test.Targets[0])

	train, test = ds.Split(0)
	assert.Equal(t, 0, train.Len())
	assert.Same(t, ds, test)

	train, test = ds.Split(1.5)
	assert.Same(t, ds, train)
	assert.Equal(t, 0, test.Len())
}

func TestOneHotAndClass(t *testing.T) {
	v := OneHot(3, 5)
	assert.Equal(t, []float64{0, 0, 0, 1, 0}, v)
	assert.Equal(t, 3, Class(v))
	assert.Equal(t, 1, Class([]float64{0.1, 0.7, 0.2}))
}

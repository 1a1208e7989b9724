package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopPredictions(t *testing.T) {
	plantClassNames = []string{"Aloe Vera", "Boston Fern", "Monstera", "Snake Plant"}
	t.Cleanup(func() { plantClassNames = nil })

	probs := []float64{0.05, 0.6, 0.25, 0.1}
	top := topPredictions(probs, 3)

	require.Len(t, top, 3)
	assert.Equal(t, "Boston Fern", top[0].Name)
	assert.Equal(t, 1, top[0].Index)
	assert.Equal(t, "60.0", top[0].Confidence)
	assert.Equal(t, "Monstera", top[1].Name)
	assert.Equal(t, "Snake Plant", top[2].Name)
}

func TestTopPredictionsUnknownClass(t *testing.T) {
	plantClassNames = []string{"Aloe Vera"}
	t.Cleanup(func() { plantClassNames = nil })

	top := topPredictions([]float64{0.2, 0.8}, 3)

	require.Len(t, top, 2)
	assert.Equal(t, "Unknown Plant", top[0].Name)
	assert.Equal(t, 1, top[0].Index)
	assert.Equal(t, "Aloe Vera", top[1].Name)
}

func TestTopPredictionsFewerThanRequested(t *testing.T) {
	plantClassNames = nil
	top := topPredictions([]float64{0.9}, 3)
	require.Len(t, top, 1)
	assert.Equal(t, "90.0", top[0].Confidence)
}

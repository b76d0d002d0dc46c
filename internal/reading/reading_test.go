package reading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotator_Reading(t *testing.T) {
	a, err := NewAnnotator()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "prefecture", input: "東京都", expected: "トウキョウト"},
		{name: "empty", input: "", expected: ""},
		{name: "digits kept", input: "123", expected: "123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, a.Reading(tt.input))
		})
	}
}

func TestAnnotator_Annotate(t *testing.T) {
	a, err := NewAnnotator()
	require.NoError(t, err)

	r := a.Annotate("東京都", "", "", "")
	assert.Equal(t, "トウキョウト", r.Prefecture)
	assert.Empty(t, r.Municipality)
	assert.Empty(t, r.Street)
	assert.Empty(t, r.TownArea)
}

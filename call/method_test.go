package call

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMethodOf(t *testing.T) {
	testcases := []struct {
		desc     string
		input    string
		expected Method
	}{
		{desc: "standard token", input: "GET", expected: MethodGet},
		{desc: "standard token lowercase", input: "delete", expected: MethodDelete},
		{desc: "extension token", input: "PATCH", expected: Method("PATCH")},
		{desc: "extension token keeps case", input: "Brew", expected: Method("Brew")},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, MethodOf(tc.input))
		})
	}
}

func TestMethodSet(t *testing.T) {
	s := NewMethodSet(MethodGet, MethodHead)

	assert.True(t, s.Has(MethodGet))
	assert.True(t, s.Has(MethodHead))
	assert.False(t, s.Has(MethodPost))

	s.Add(MethodPost)
	assert.True(t, s.Has(MethodPost))

	s.Clear()
	assert.Empty(t, s)
}

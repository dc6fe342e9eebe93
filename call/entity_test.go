package call

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaTypeIncludes(t *testing.T) {
	testcases := []struct {
		desc     string
		r        MediaType
		mt       MediaType
		expected bool
	}{
		{desc: "wildcard covers all", r: "*/*", mt: "text/html", expected: true},
		{desc: "subtype wildcard", r: "text/*", mt: "text/plain", expected: true},
		{desc: "subtype wildcard wrong main", r: "text/*", mt: "image/png", expected: false},
		{desc: "exact", r: "text/html", mt: "text/html", expected: true},
		{desc: "mismatch", r: "text/html", mt: "text/plain", expected: false},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.r.Includes(tc.mt))
		})
	}
}

func TestMediaTypeParts(t *testing.T) {
	mt := MediaType("application/json")
	assert.Equal(t, "application", mt.Main())
	assert.Equal(t, "json", mt.Sub())

	bare := MediaType("text")
	assert.Equal(t, "text", bare.Main())
	assert.Equal(t, "", bare.Sub())
}

func TestLanguagePrimary(t *testing.T) {
	assert.Equal(t, "en", Language("en-US").Primary())
	assert.Equal(t, "fr", Language("fr").Primary())
}

func TestRepresentationAvailable(t *testing.T) {
	var r *Representation
	assert.False(t, r.Available())

	assert.False(t, (&Representation{}).Available())

	withBody := &Representation{Content: io.NopCloser(strings.NewReader("hi"))}
	assert.True(t, withBody.Available())
}

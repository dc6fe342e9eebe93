package iolib

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitReader(t *testing.T) {
	r := LimitReader(strings.NewReader("hello world"), 5)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	// Exhausted.
	n, err := r.Read(make([]byte, 1))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestLimitReadCloser(t *testing.T) {
	tracker := &closeTracker{Reader: strings.NewReader("hello world")}

	rc := LimitReadCloser(tracker, 5)

	out, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	require.NoError(t, rc.Close())
	assert.True(t, tracker.closed)
}

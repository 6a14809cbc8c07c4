package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForTagsCategory(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetDebug(true)
	t.Cleanup(func() {
		SetDebug(false)
	})

	For(CatFetch).Debug("requesting catalog")

	out := buf.String()
	assert.Contains(t, out, "category=fetch")
	assert.Contains(t, out, "requesting catalog")
}

func TestDebugSuppressedByDefault(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetDebug(false)

	For(CatRender).Debug("hidden")
	For(CatRender).Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0 B", FormatSize(0))
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "1.00 KB", FormatSize(1024))
	assert.Equal(t, "1.50 KB", FormatSize(1536))
	assert.Equal(t, "2.00 MB", FormatSize(2*1024*1024))
	assert.Equal(t, "3.00 GB", FormatSize(3*1024*1024*1024))
}

func TestNewStyler_ColorModes(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, NewStyler("always", &buf).ColorsEnabled())
	assert.False(t, NewStyler("never", &buf).ColorsEnabled())
	// A plain buffer is not a terminal.
	assert.False(t, NewStyler("auto", &buf).ColorsEnabled())
}

func TestStyler_StatusLines(t *testing.T) {
	var buf bytes.Buffer
	s := NewStyler("never", &buf)

	s.PrintSuccess("saved")
	s.PrintError("broke")
	s.PrintWarning("careful")
	s.PrintInfo("note")

	assert.Equal(t, "✓ saved\n✗ broke\n⚠ careful\n• note\n", buf.String())
}

func TestStyler_Header(t *testing.T) {
	var buf bytes.Buffer
	s := NewStyler("never", &buf)

	s.PrintHeader("Cache")

	assert.Equal(t, "Cache\n─────\n", buf.String())
}

func TestStyler_KVAlignment(t *testing.T) {
	var buf bytes.Buffer
	s := NewStyler("never", &buf)

	s.PrintKV("Size", "1.00 KB", 10)
	s.PrintKV("Components", "3", 10)

	assert.Equal(t, "      Size: 1.00 KB\nComponents: 3\n", buf.String())
}

package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(doc *Document) []string {
	// strip the ESC @ init sequence
	body := bytes.TrimPrefix(doc.Bytes(), []byte{ESC, '@'})
	return strings.Split(strings.TrimSuffix(string(body), "\n"), "\n")
}

func TestColumnsAlignToWidth(t *testing.T) {
	doc := NewDocument(32)
	doc.Columns("  Central Tax", "9%", "90.00")

	got := lines(doc)
	require.Len(t, got, 1)
	assert.Len(t, got[0], 32)
	assert.True(t, strings.HasSuffix(got[0], "     90.00"))
	assert.True(t, strings.HasPrefix(got[0], "  Central Tax"))
}

func TestWrapBreaksOnSpaces(t *testing.T) {
	doc := NewDocument(20)
	doc.Wrap("ONE THOUSAND, SEVEN HUNDRED FORTY ONLY")

	got := lines(doc)
	assert.Equal(t, []string{"ONE THOUSAND, SEVEN", "HUNDRED FORTY ONLY"}, got)
	for _, l := range got {
		assert.LessOrEqual(t, len(l), 20)
	}
}

func TestNewPrinterFromConfig(t *testing.T) {
	p, err := NewPrinterFromConfig("memory", "", "")
	require.NoError(t, err)
	require.NoError(t, p.Print([]byte("job")))
	assert.Equal(t, [][]byte{[]byte("job")}, p.(*BufferPrinter).Jobs())

	_, err = NewPrinterFromConfig("network", "", "")
	assert.Error(t, err)

	none, err := NewPrinterFromConfig("none", "", "")
	require.NoError(t, err)
	assert.ErrorIs(t, none.Print([]byte("x")), ErrNotConfigured)
	assert.False(t, none.IsConnected())
}

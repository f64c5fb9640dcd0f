package pdfgen

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument(t *testing.T) {
	doc, err := Document([]string{"SALARY SLIP", "Employee: Jane Doe", "Net: 15000.00"})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-1.4")))
	assert.Contains(t, string(doc), "(SALARY SLIP) Tj")
	assert.Contains(t, string(doc), "%%EOF")
}

func TestDocument_EscapesDelimiters(t *testing.T) {
	doc, err := Document([]string{"Net (after tax): 100\\month"})
	require.NoError(t, err)

	assert.Contains(t, string(doc), `\(after tax\)`)
	assert.Contains(t, string(doc), `100\\month`)
}

func TestDocument_Empty(t *testing.T) {
	_, err := Document(nil)
	assert.Error(t, err)
}

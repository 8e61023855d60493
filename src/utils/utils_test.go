package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainText(t *testing.T) {
	tests := map[string]string{
		"  plain  ":                            "plain",
		"<p>First</p><p>Second</p>":            "First\n\nSecond",
		"Calf<br>gilt<br/>edges":               "Calf\ngilt\nedges",
		"<i>Inscribed</i> &amp; <b>signed</b>": "Inscribed & signed",
		"":                                     "",
	}
	for in, want := range tests {
		assert.Equal(t, want, PlainText(in), in)
	}
}

func TestExtractFileIDFromURL(t *testing.T) {
	tests := map[string]string{
		"https://drive.google.com/file/d/1AbC_d-9/view?usp=sharing": "1AbC_d-9",
		"https://drive.google.com/open?id=XyZ123":                   "XyZ123",
		"https://docs.google.com/spreadsheets/d/Sheet42/edit#gid=0": "Sheet42",
	}
	for url, want := range tests {
		id, err := ExtractFileIDFromURL(url)
		require.NoError(t, err, url)
		assert.Equal(t, want, id)
	}

	_, err := ExtractFileIDFromURL("https://example.org/census.xlsx")
	assert.Error(t, err)
}

func TestIsGoogleDriveURL(t *testing.T) {
	assert.True(t, IsGoogleDriveURL("https://drive.google.com/file/d/abc/view"))
	assert.True(t, IsGoogleDriveURL("https://docs.google.com/spreadsheets/d/abc"))
	assert.False(t, IsGoogleDriveURL("https://example.org/drive.google.com/abc"))
	assert.False(t, IsGoogleDriveURL("census.xlsx"))
}

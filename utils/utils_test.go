package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStringListJSONArray(t *testing.T) {
	assert.Equal(t, []string{"lifetime access", "certificate"},
		ParseStringList(`["lifetime access", "certificate"]`))
}

func TestParseStringListJSONArrayKeepsEmbeddedCommas(t *testing.T) {
	assert.Equal(t, []string{"a, b"}, ParseStringList(`["a, b"]`))
}

func TestParseStringListCommaSeparated(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, ParseStringList("a, b ,c"))
}

func TestParseStringListDropsBlankEntries(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ParseStringList("a,,b,  "))
}

func TestParseStringListSingleValue(t *testing.T) {
	assert.Equal(t, []string{"lifetime access"}, ParseStringList("lifetime access"))
}

func TestParseStringListEmpty(t *testing.T) {
	assert.Empty(t, ParseStringList(""))
	assert.Empty(t, ParseStringList("   "))
	assert.Empty(t, ParseStringList("[]"))
}

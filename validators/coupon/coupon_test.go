package couponValidator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpiryEmpty(t *testing.T) {
	expiry, errMsg := parseExpiry("")
	assert.Nil(t, expiry)
	assert.Empty(t, errMsg)

	expiry, errMsg = parseExpiry("   ")
	assert.Nil(t, expiry)
	assert.Empty(t, errMsg)
}

func TestParseExpiryRFC3339(t *testing.T) {
	expiry, errMsg := parseExpiry("2026-12-31T18:00:00Z")
	require.Empty(t, errMsg)
	require.NotNil(t, expiry)
	assert.Equal(t, time.Date(2026, 12, 31, 18, 0, 0, 0, time.UTC), *expiry)
}

func TestParseExpiryBareDateExpandsToEndOfDay(t *testing.T) {
	expiry, errMsg := parseExpiry("2026-12-31")
	require.Empty(t, errMsg)
	require.NotNil(t, expiry)

	assert.Equal(t, 2026, expiry.Year())
	assert.Equal(t, time.December, expiry.Month())
	assert.Equal(t, 31, expiry.Day())
	assert.Equal(t, 23, expiry.Hour())
	assert.Equal(t, 59, expiry.Minute())
}

func TestParseExpiryInvalid(t *testing.T) {
	expiry, errMsg := parseExpiry("31/12/2026")
	assert.Nil(t, expiry)
	assert.NotEmpty(t, errMsg)
}

package interest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterestCommand_Metadata(t *testing.T) {
	assert.Equal(t, "interest", Cmd.Use)
	assert.Contains(t, Cmd.Short, "yearly interest")
	assert.Contains(t, Cmd.Long, "FROM:TO:RATE")
	assert.NotNil(t, Cmd.Run)
}

func TestInterestCommand_Flags(t *testing.T) {
	accountFlag := Cmd.Flags().Lookup("account")
	assert.NotNil(t, accountFlag)
	assert.Equal(t, "a", accountFlag.Shorthand)

	balanceFlag := Cmd.Flags().Lookup("balance")
	assert.NotNil(t, balanceFlag)
	assert.Equal(t, "b", balanceFlag.Shorthand)

	zoneFlag := Cmd.Flags().Lookup("zone")
	assert.NotNil(t, zoneFlag)
	assert.Equal(t, "z", zoneFlag.Shorthand)
}

func TestParseZoneFlag(t *testing.T) {
	zone, err := parseZoneFlag("0:100000:1")
	require.NoError(t, err)
	assert.Equal(t, "0", zone.FromAmount.String())
	assert.Equal(t, "100000", zone.ToAmount.String())
	assert.Equal(t, "1", zone.InterestRate.String())

	zone, err = parseZoneFlag("100000:0:2.5")
	require.NoError(t, err)
	assert.True(t, zone.IsUnbounded())
	assert.Equal(t, "2.5", zone.InterestRate.String())

	// Unparsable numbers degrade to zero rather than failing
	zone, err = parseZoneFlag("abc:def:ghi")
	require.NoError(t, err)
	assert.True(t, zone.FromAmount.IsZero())
	assert.True(t, zone.InterestRate.IsZero())

	_, err = parseZoneFlag("0:100000")
	assert.Error(t, err)
}

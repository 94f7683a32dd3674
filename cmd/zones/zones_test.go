package zones

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZonesCommand_Metadata(t *testing.T) {
	assert.Equal(t, "zones", Cmd.Use)
	assert.Contains(t, Cmd.Short, "interest zones")
	assert.Contains(t, Cmd.Long, "unbounded top zone")
}

func TestZonesCommand_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range Cmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["list"])
	assert.True(t, names["add"])
	assert.True(t, names["rm"])
}

func TestAddCommand_Flags(t *testing.T) {
	for _, name := range []string{"account", "from", "to", "rate"} {
		assert.NotNil(t, addCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "0", addCmd.Flags().Lookup("to").DefValue)
}

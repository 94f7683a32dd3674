package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImportCommand_Metadata(t *testing.T) {
	assert.Equal(t, "import", Cmd.Use)
	assert.Contains(t, Cmd.Short, "CSV")
	assert.NotNil(t, Cmd.Run)
}

func TestImportCommand_Flags(t *testing.T) {
	profileFlag := Cmd.Flags().Lookup("profile")
	assert.NotNil(t, profileFlag)
	assert.Equal(t, "generic", profileFlag.DefValue)

	accountFlag := Cmd.Flags().Lookup("account")
	assert.NotNil(t, accountFlag)
	assert.Equal(t, "a", accountFlag.Shorthand)
}

func TestProfiles(t *testing.T) {
	assert.Equal(t, "CHF", profiles["swiss"].Currency)
	assert.Equal(t, "EUR", profiles["european"].Currency)
	assert.Empty(t, profiles["generic"].Currency)
}

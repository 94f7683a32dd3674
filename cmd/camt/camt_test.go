package camt_test

import (
	"testing"

	"mwehrli/finview/cmd/camt"

	"github.com/stretchr/testify/assert"
)

func TestCamtCommand_Metadata(t *testing.T) {
	assert.Equal(t, "camt", camt.Cmd.Use)
	assert.Contains(t, camt.Cmd.Short, "CAMT.053")
	assert.NotNil(t, camt.Cmd.Run)
}

func TestCamtCommand_HelpText(t *testing.T) {
	assert.Contains(t, camt.Cmd.Long, "CAMT.053")
	assert.Contains(t, camt.Cmd.Long, "CSV")
	assert.Contains(t, camt.Cmd.Long, "--validate")
}

func TestCamtCommand_Flags(t *testing.T) {
	accountFlag := camt.Cmd.Flags().Lookup("account")
	assert.NotNil(t, accountFlag)
	assert.Equal(t, "a", accountFlag.Shorthand)
}

package main

import (
	"testing"
)

// runCommand executes the root command with the given arguments, as if
// invoked from the shell.
func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	RootCmd.SetArgs(args)
	return RootCmd.Execute()
}

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	require.NoError(t, execute([]string{"--ops", "100", "--block-size", "4"}))
	require.Error(t, execute([]string{"--ops=-5"}))
}

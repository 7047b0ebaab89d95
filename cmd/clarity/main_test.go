package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPNGDistType(t *testing.T) {
	assert.NoError(t, checkPNGDistType("hist"))
	assert.NoError(t, checkPNGDistType("auto"))
	assert.Error(t, checkPNGDistType("box"))
	assert.Error(t, checkPNGDistType("violin"))
}

func TestSplitColumnMethod(t *testing.T) {
	column, method, err := splitColumnMethod("price:zscore", "minmax")
	require.NoError(t, err)
	assert.Equal(t, "price", column)
	assert.Equal(t, "zscore", method)

	column, method, err = splitColumnMethod("price", "minmax")
	require.NoError(t, err)
	assert.Equal(t, "price", column)
	assert.Equal(t, "minmax", method)

	_, _, err = splitColumnMethod(":zscore", "minmax")
	assert.Error(t, err)
}

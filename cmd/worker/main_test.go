package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/btto/orgaccess/internal/app"
	_ "github.com/btto/orgaccess/testing"
)

func TestMainSkipsInTestMode(t *testing.T) {
	app.RefreshTestMode()
	assert.True(t, app.InTestMode())
	assert.NotPanics(t, main)
}

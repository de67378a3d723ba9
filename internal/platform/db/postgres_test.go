package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigTagsApplication(t *testing.T) {
	cfg, err := ParseConfig("postgres://u:p@localhost:5432/orgaccess", WithMaxConns(7))
	require.NoError(t, err)
	assert.Equal(t, "orgaccess", cfg.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, int32(7), cfg.MaxConns)
}

func TestParseConfigKeepsExplicitApplicationName(t *testing.T) {
	cfg, err := ParseConfig("postgres://u:p@localhost:5432/orgaccess?application_name=ops", WithMaxConns(0))
	require.NoError(t, err)
	assert.Equal(t, "ops", cfg.ConnConfig.RuntimeParams["application_name"])
	assert.NotZero(t, cfg.MaxConns)
}

func TestParseConfigRejectsGarbage(t *testing.T) {
	_, err := ParseConfig("postgres://%zz")
	assert.Error(t, err)
}

package version

import (
	"encoding/json"
	"testing"

	// Packages
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

// Tag takes precedence over branch
func Test_version_001(t *testing.T) {
	assert := assert.New(t)
	defer func(tag, branch string) { GitTag, GitBranch = tag, branch }(GitTag, GitBranch)

	GitTag, GitBranch = "v1.2.3", "main"
	assert.Equal("v1.2.3", Version())

	GitTag = ""
	assert.Equal("main", Version())
}

// Metadata marshals with the executable name
func Test_version_002(t *testing.T) {
	assert := assert.New(t)
	var meta map[string]any
	require.NoError(t, json.Unmarshal(JSON("fnschema"), &meta))
	assert.Equal("fnschema", meta["name"])
	assert.NotEmpty(meta["version"])
	assert.NotEmpty(meta["compiler"])
}

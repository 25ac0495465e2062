// Package version reports build metadata, set through ldflags or read from
// the module build information
package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Metadata describes the running binary
type Metadata struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Compiler  string `json:"compiler"`
	Tag       string `json:"tag,omitempty"`
	Branch    string `json:"branch,omitempty"`
	Source    string `json:"source,omitempty"`
	Hash      string `json:"hash,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	Platform  string `json:"platform,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	GitTag    string
	GitBranch string
)

const (
	shortHash = 12
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Version returns the tag, branch or short revision, or "dev"
func Version() string {
	if GitTag != "" {
		return GitTag
	}
	if GitBranch != "" {
		return GitBranch
	}
	if hash := setting("vcs.revision"); len(hash) >= shortHash {
		return hash[:shortHash]
	}
	return "dev"
}

// Get returns the metadata for the named executable
func Get(execName string) Metadata {
	meta := Metadata{
		Name:      execName,
		Version:   Version(),
		Compiler:  runtime.Version(),
		Tag:       GitTag,
		Branch:    GitBranch,
		Hash:      setting("vcs.revision"),
		BuildTime: setting("vcs.time"),
		Modified:  setting("vcs.modified") == "true",
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		meta.Source = info.Main.Path
	}
	if goos, goarch := setting("GOOS"), setting("GOARCH"); goos != "" && goarch != "" {
		meta.Platform = goos + "/" + goarch
	}
	return meta
}

// JSON returns the metadata as indented JSON
func JSON(execName string) []byte {
	data, err := json.MarshalIndent(Get(execName), "", "  ")
	if err != nil {
		panic(err)
	}
	return data
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func setting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

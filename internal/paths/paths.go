// Package paths maps install locations to filesystem roots and the
// canonical directory layout beneath a root.
//
// Everything here is pure string manipulation -- no function in this
// package touches the filesystem or checks that a path exists.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// rootDirName is the directory forge owns under the home directory
// (global installs) or the working directory (local installs).
const rootDirName = ".forge"

// Canonical names under an install root.
const (
	AgentsDirName   = "agents"
	CommandsDirName = "commands"
	SkillsDirName   = "skills"
	RulesFileName   = "skill-rules.json"
)

// Location selects where components are installed.
type Location string

const (
	// LocationGlobal installs under the user's home directory, shared
	// across projects.
	LocationGlobal Location = "global"

	// LocationLocal installs under the current project directory.
	LocationLocal Location = "local"
)

// ParseLocation validates a location string from a flag or config file.
//
// Parameters:
//   - s: the raw location value
//
// Returns:
//   - Location: the parsed location
//   - error: if s is not "global" or "local"
func ParseLocation(s string) (Location, error) {
	switch Location(s) {
	case LocationGlobal, LocationLocal:
		return Location(s), nil
	}
	return "", fmt.Errorf("unknown install location %q (expected global or local)", s)
}

// Layout holds the canonical subpaths under an install root.
type Layout struct {
	// AgentsDir receives agent instruction and rules files.
	AgentsDir string

	// CommandsDir receives command instruction files.
	CommandsDir string

	// SkillsDir receives per-category skill directories.
	SkillsDir string

	// RulesFile is the consolidated skill-rules.json document.
	RulesFile string
}

// RootIn maps a location to its install root given explicit base
// directories. Pure; exists so tests can supply their own bases.
//
// Parameters:
//   - location: global or local
//   - home: the user's home directory
//   - cwd: the current working directory
//
// Returns:
//   - string: the install root for the location
func RootIn(location Location, home, cwd string) string {
	if location == LocationGlobal {
		return filepath.Join(home, rootDirName)
	}
	return filepath.Join(cwd, rootDirName)
}

// Root maps a location to its install root using the process home and
// working directory.
//
// Parameters:
//   - location: global or local
//
// Returns:
//   - string: the install root
//   - error: if the home or working directory cannot be determined
func Root(location Location) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return RootIn(location, home, cwd), nil
}

// Subpaths returns the canonical layout under an install root.
//
// Parameters:
//   - root: the install root
//
// Returns:
//   - Layout: joined subpaths; no existence checks are performed
func Subpaths(root string) Layout {
	return Layout{
		AgentsDir:   filepath.Join(root, AgentsDirName),
		CommandsDir: filepath.Join(root, CommandsDirName),
		SkillsDir:   filepath.Join(root, SkillsDirName),
		RulesFile:   filepath.Join(root, RulesFileName),
	}
}

// Package picker drives the interactive selection of discovered
// components.
//
// Two selection protocols exist behind one Selector interface: a
// sequential category-by-category multi-select flow, and a persistent
// hierarchical browser over a folder tree. Both produce the same
// Selection shape, so the installer never knows which was used.
package picker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/forgeworks/forge-cli/internal/catalog"
	"github.com/forgeworks/forge-cli/internal/paths"
)

// ErrCancelled reports that the user aborted selection. Callers treat
// it as a graceful exit, not a failure.
var ErrCancelled = errors.New("selection cancelled")

// Selector turns an inventory and an install location into a Selection.
type Selector interface {
	Run(inv catalog.Inventory, location paths.Location) (catalog.Selection, error)
}

// SelectorMode names the available Selector implementations.
type SelectorMode string

const (
	// ModePrompts runs one multi-select prompt per kind and skill
	// category.
	ModePrompts SelectorMode = "prompts"

	// ModeBrowser runs a single navigable folder tree.
	ModeBrowser SelectorMode = "browser"
)

// ParseSelectorMode validates a selector mode string.
func ParseSelectorMode(s string) (SelectorMode, error) {
	switch SelectorMode(s) {
	case ModePrompts, ModeBrowser:
		return SelectorMode(s), nil
	}
	return "", fmt.Errorf("unknown selector mode %q (expected prompts or browser)", s)
}

// NewSelector returns the Selector for a mode.
func NewSelector(mode SelectorMode) Selector {
	if mode == ModeBrowser {
		return BrowserSelector{}
	}
	return SequentialSelector{}
}

// SuggestedCategories returns the skill categories default-checked for a
// location. Local installs additionally suggest the frontend and backend
// categories.
//
// Parameters:
//   - location: the install location
//
// Returns:
//   - map[string]bool: suggested skill-category names
func SuggestedCategories(location paths.Location) map[string]bool {
	suggested := map[string]bool{
		"code-quality": true,
		"shared":       true,
	}
	if location == paths.LocationLocal {
		suggested["frontend"] = true
		suggested["backend"] = true
	}
	return suggested
}

// --- Leaf id scheme ---
//
// Every selectable component has one globally unique id:
//
//	agent:<name>
//	command:<name>
//	skill:<category>/<name>
//
// The marked-id set is flat, so ids stay stable no matter how the menu
// tree nests them.

const (
	kindAgent   = "agent"
	kindCommand = "command"
	kindSkill   = "skill"
)

// AgentID returns the leaf id for an agent.
func AgentID(name string) string { return kindAgent + ":" + name }

// CommandID returns the leaf id for a command.
func CommandID(name string) string { return kindCommand + ":" + name }

// SkillID returns the leaf id for a skill within its category.
func SkillID(category, name string) string {
	return kindSkill + ":" + category + "/" + name
}

// ParseLeafID splits a leaf id into its kind and name part. For skills
// the name part is "<category>/<name>".
//
// Parameters:
//   - id: the leaf id
//
// Returns:
//   - kind: agent, command, or skill
//   - name: the remainder of the id
//   - ok: whether the id is well formed
func ParseLeafID(id string) (kind, name string, ok bool) {
	kind, name, found := strings.Cut(id, ":")
	if !found || name == "" {
		return "", "", false
	}
	switch kind {
	case kindAgent, kindCommand:
		return kind, name, true
	case kindSkill:
		if !strings.Contains(name, "/") {
			return "", "", false
		}
		return kind, name, true
	}
	return "", "", false
}

// SelectionFromIDs reconstructs a Selection by filtering the inventory
// against a flat set of marked leaf ids.
//
// Parameters:
//   - inv: the discovered inventory
//   - ids: marked leaf ids
//
// Returns:
//   - catalog.Selection: chosen components; the skills map is sparse
func SelectionFromIDs(inv catalog.Inventory, ids map[string]bool) catalog.Selection {
	sel := catalog.Selection{}
	for _, agent := range inv.Agents {
		if ids[AgentID(agent.Name)] {
			sel.Agents = append(sel.Agents, agent)
		}
	}
	for _, command := range inv.Commands {
		if ids[CommandID(command.Name)] {
			sel.Commands = append(sel.Commands, command)
		}
	}
	for _, cat := range inv.SkillCategories {
		var chosen []catalog.Skill
		for _, sk := range cat.Skills {
			if ids[SkillID(cat.Name, sk.Name)] {
				chosen = append(chosen, sk)
			}
		}
		if len(chosen) > 0 {
			if sel.Skills == nil {
				sel.Skills = map[string][]catalog.Skill{}
			}
			sel.Skills[cat.Name] = chosen
		}
	}
	return sel
}

// SelectAll marks every component in the inventory, for non-interactive
// runs.
func SelectAll(inv catalog.Inventory) catalog.Selection {
	ids := map[string]bool{}
	for _, agent := range inv.Agents {
		ids[AgentID(agent.Name)] = true
	}
	for _, command := range inv.Commands {
		ids[CommandID(command.Name)] = true
	}
	for _, cat := range inv.SkillCategories {
		for _, sk := range cat.Skills {
			ids[SkillID(cat.Name, sk.Name)] = true
		}
	}
	return SelectionFromIDs(inv, ids)
}

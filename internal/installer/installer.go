// Package installer copies a finalized selection into an install root
// and consolidates the selected rule fragments.
//
// Directory creation is lazy and selection-driven: a kind with zero
// selected components never creates its directory. Copies run in a fixed
// order (agents, commands, skills) and the rules merge runs once at the
// end, when every fragment source is known. Installation is not
// transactional: a failed copy aborts the remaining steps and leaves
// prior copies in place.
package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/forgeworks/forge-cli/internal/catalog"
	"github.com/forgeworks/forge-cli/internal/paths"
	"github.com/forgeworks/forge-cli/internal/rules"
)

// Options tunes installation behavior.
type Options struct {
	// Force overwrites components that already exist at the target.
	// Without it, existing files are skipped and reported.
	Force bool
}

// Result summarizes one installation run, for display only.
type Result struct {
	// RunID identifies this installation in logs.
	RunID string

	// Agents, Commands, and Skills list installed component names.
	// Skills are qualified as "<category>/<name>".
	Agents   []string
	Commands []string
	Skills   []string

	// Skipped lists components left untouched because they already
	// existed and Force was off.
	Skipped []string

	// MergedRuleSources is the number of rule fragments merged into the
	// consolidated rules document.
	MergedRuleSources int
}

// Total returns the number of installed components across kinds.
func (r *Result) Total() int {
	return len(r.Agents) + len(r.Commands) + len(r.Skills)
}

// Install copies the selection under targetRoot and merges the rule
// fragments carried by the selected directory skills.
//
// Parameters:
//   - targetRoot: the install root (layout derived via paths.Subpaths)
//   - sel: the finalized selection
//   - opts: installation options
//
// Returns:
//   - *Result: summary of what was installed
//   - error: the first I/O failure; prior copies are not rolled back
func Install(targetRoot string, sel catalog.Selection, opts Options) (*Result, error) {
	layout := paths.Subpaths(targetRoot)
	res := &Result{RunID: uuid.NewString()}
	log.Debug("starting install", "run", res.RunID, "root", targetRoot)

	if err := installAgents(layout, sel.Agents, opts, res); err != nil {
		return res, err
	}
	if err := installCommands(layout, sel.Commands, opts, res); err != nil {
		return res, err
	}
	fragments, err := installSkills(layout, sel.Skills, opts, res)
	if err != nil {
		return res, err
	}

	if len(fragments) > 0 {
		count, err := rules.MergeSources(layout.RulesFile, fragments)
		if err != nil {
			return res, err
		}
		res.MergedRuleSources = count
		log.Debug("merged rule fragments", "run", res.RunID, "count", count)
	}

	return res, nil
}

// installAgents copies each agent's instruction and rules file pair.
func installAgents(layout paths.Layout, agents []catalog.Agent, opts Options, res *Result) error {
	if len(agents) == 0 {
		return nil
	}
	if err := os.MkdirAll(layout.AgentsDir, 0755); err != nil {
		return fmt.Errorf("creating agents directory: %w", err)
	}
	for _, agent := range agents {
		dest := filepath.Join(layout.AgentsDir, filepath.Base(agent.Path))
		if skipExisting(dest, opts) {
			res.Skipped = append(res.Skipped, agent.Name)
			continue
		}
		if err := copyFile(agent.Path, dest); err != nil {
			return fmt.Errorf("copying agent %s: %w", agent.Name, err)
		}
		rulesDest := filepath.Join(layout.AgentsDir, filepath.Base(agent.RulesPath))
		if err := copyFile(agent.RulesPath, rulesDest); err != nil {
			return fmt.Errorf("copying agent rules %s: %w", agent.Name, err)
		}
		res.Agents = append(res.Agents, agent.Name)
	}
	return nil
}

// installCommands copies each command's single instruction file.
func installCommands(layout paths.Layout, commands []catalog.Command, opts Options, res *Result) error {
	if len(commands) == 0 {
		return nil
	}
	if err := os.MkdirAll(layout.CommandsDir, 0755); err != nil {
		return fmt.Errorf("creating commands directory: %w", err)
	}
	for _, command := range commands {
		dest := filepath.Join(layout.CommandsDir, filepath.Base(command.Path))
		if skipExisting(dest, opts) {
			res.Skipped = append(res.Skipped, command.Name)
			continue
		}
		if err := copyFile(command.Path, dest); err != nil {
			return fmt.Errorf("copying command %s: %w", command.Name, err)
		}
		res.Commands = append(res.Commands, command.Name)
	}
	return nil
}

// installSkills copies the selected skills grouped by category and
// collects the rule-fragment paths of the copied directory skills.
//
// A directory skill named after its own category is collapsed: its
// contents land directly in the category directory instead of nesting a
// same-named folder.
func installSkills(layout paths.Layout, byCategory map[string][]catalog.Skill, opts Options, res *Result) ([]string, error) {
	if len(byCategory) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(layout.SkillsDir, 0755); err != nil {
		return nil, fmt.Errorf("creating skills directory: %w", err)
	}

	categories := make([]string, 0, len(byCategory))
	for name := range byCategory {
		categories = append(categories, name)
	}
	sort.Strings(categories)

	var fragments []string
	for _, catName := range categories {
		catDir := filepath.Join(layout.SkillsDir, catName)
		if err := os.MkdirAll(catDir, 0755); err != nil {
			return nil, fmt.Errorf("creating skill category %s: %w", catName, err)
		}
		for _, sk := range byCategory[catName] {
			qualified := catName + "/" + sk.Name
			if sk.Type == catalog.SkillTypeDirectory {
				dest := filepath.Join(catDir, sk.Name)
				if sk.Name == catName {
					dest = catDir
				}
				if dest != catDir && skipExisting(dest, opts) {
					res.Skipped = append(res.Skipped, qualified)
					continue
				}
				if err := copyDir(sk.Path, dest); err != nil {
					return nil, fmt.Errorf("copying skill %s: %w", qualified, err)
				}
				if sk.HasRulesFragment {
					fragments = append(fragments, filepath.Join(sk.Path, catalog.FragmentFileName))
				}
			} else {
				dest := filepath.Join(catDir, filepath.Base(sk.Path))
				if skipExisting(dest, opts) {
					res.Skipped = append(res.Skipped, qualified)
					continue
				}
				if err := copyFile(sk.Path, dest); err != nil {
					return nil, fmt.Errorf("copying skill %s: %w", qualified, err)
				}
			}
			res.Skills = append(res.Skills, qualified)
		}
	}
	return fragments, nil
}

// skipExisting reports whether dest already exists and overwriting is
// disabled.
func skipExisting(dest string, opts Options) bool {
	if opts.Force {
		return false
	}
	_, err := os.Stat(dest)
	return err == nil
}

// copyFile copies a single file, preserving its mode.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}

// copyDir recursively copies a directory tree.
func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}
	return nil
}

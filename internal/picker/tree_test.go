package picker

import (
	"testing"

	"github.com/forgeworks/forge-cli/internal/catalog"
	"github.com/forgeworks/forge-cli/internal/paths"
)

// findChild returns the direct child with the given id, or nil.
func findChild(node *MenuNode, id string) *MenuNode {
	for _, child := range node.Children {
		if child.ID == id {
			return child
		}
	}
	return nil
}

func TestBuildTreeGlobalHasOnlyGeneralBranch(t *testing.T) {
	tree := BuildTree(testInventory(), paths.LocationGlobal)

	if len(tree.Children) != 1 {
		t.Fatalf("expected only the general branch globally, got %d branches", len(tree.Children))
	}
	general := tree.Children[0]
	if general.ID != "general" || general.Kind != KindFolder {
		t.Fatalf("unexpected branch %+v", general)
	}
}

func TestBuildTreeLocalBranchesAndFolders(t *testing.T) {
	tree := BuildTree(testInventory(), paths.LocationLocal)

	general := findChild(tree, "general")
	backend := findChild(tree, "backend")
	if general == nil || backend == nil {
		t.Fatal("expected general and backend branches for local install")
	}
	// The inventory has no frontend agents/commands and one frontend skill.
	frontend := findChild(tree, "frontend")
	if frontend == nil {
		t.Fatal("expected frontend branch")
	}
	if findChild(frontend, "frontend/agents") != nil {
		t.Fatal("empty agents folder must be omitted")
	}
	skills := findChild(frontend, "frontend/skills")
	if skills == nil || len(skills.Children) != 1 {
		t.Fatalf("expected one frontend skill leaf, got %+v", skills)
	}

	// Backend branch holds only the one backend agent.
	agents := findChild(backend, "backend/agents")
	if agents == nil || len(agents.Children) != 1 || agents.Children[0].ID != AgentID("api-designer") {
		t.Fatalf("unexpected backend agents folder %+v", agents)
	}
}

func TestBuildTreeOmitsEmptyFolders(t *testing.T) {
	tree := BuildTree(catalog.Inventory{}, paths.LocationLocal)
	if len(tree.Children) != 0 {
		t.Fatalf("expected no branches for empty inventory, got %d", len(tree.Children))
	}

	var walk func(node *MenuNode)
	walk = func(node *MenuNode) {
		if node.Kind == KindFolder && node != tree && len(node.Children) == 0 {
			t.Fatalf("empty folder %q in tree", node.ID)
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(BuildTree(testInventory(), paths.LocationLocal))
}

func TestBuildTreeLeafIDsUnique(t *testing.T) {
	tree := BuildTree(testInventory(), paths.LocationLocal)
	seen := map[string]bool{}
	for _, leaf := range tree.Leaves() {
		if seen[leaf.ID] {
			t.Fatalf("duplicate leaf id %q", leaf.ID)
		}
		seen[leaf.ID] = true
		if _, _, ok := ParseLeafID(leaf.ID); !ok {
			t.Fatalf("leaf id %q does not parse", leaf.ID)
		}
	}
}

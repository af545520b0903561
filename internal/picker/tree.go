package picker

import (
	"github.com/forgeworks/forge-cli/internal/catalog"
	"github.com/forgeworks/forge-cli/internal/paths"
)

// NodeKind distinguishes navigable folders from selectable leaves.
type NodeKind int

const (
	KindFolder NodeKind = iota
	KindLeaf
)

// MenuNode is one node of the selection tree. Folder ids are synthetic
// (e.g. "frontend/commands"); leaf ids follow the flat leaf id scheme
// and are globally unique across the tree.
type MenuNode struct {
	ID       string
	Label    string
	Kind     NodeKind
	Children []*MenuNode
}

// folder creates a folder node, or nil when it would have no children.
// Empty folders are never part of the tree.
func folder(id, label string, children []*MenuNode) *MenuNode {
	if len(children) == 0 {
		return nil
	}
	return &MenuNode{ID: id, Label: label, Kind: KindFolder, Children: children}
}

// appendNode appends node to nodes unless it is nil.
func appendNode(nodes []*MenuNode, node *MenuNode) []*MenuNode {
	if node == nil {
		return nodes
	}
	return append(nodes, node)
}

// BuildTree builds the browser menu tree: category branches holding
// agents/commands/skills sub-folders holding component leaves.
//
// The general branch always exists; frontend and backend branches only
// for local installs. Branches and sub-folders that would be empty are
// omitted entirely, so every folder in the result has at least one
// child.
//
// Parameters:
//   - inv: the discovered inventory
//   - location: the install location
//
// Returns:
//   - *MenuNode: the tree root (a folder; possibly with zero children
//     when the inventory has nothing to offer the location)
func BuildTree(inv catalog.Inventory, location paths.Location) *MenuNode {
	branches := []catalog.Category{catalog.CategoryGeneral}
	if location == paths.LocationLocal {
		branches = append(branches, catalog.CategoryFrontend, catalog.CategoryBackend)
	}

	root := &MenuNode{ID: "root", Label: "Components", Kind: KindFolder}
	for _, branch := range branches {
		root.Children = appendNode(root.Children, buildBranch(inv, branch))
	}
	return root
}

// buildBranch builds one category branch, or nil when the category has
// no components at all.
func buildBranch(inv catalog.Inventory, branch catalog.Category) *MenuNode {
	var agents []*MenuNode
	for _, agent := range inv.Agents {
		if agent.Category == branch {
			agents = append(agents, &MenuNode{
				ID:    AgentID(agent.Name),
				Label: agent.DisplayName,
				Kind:  KindLeaf,
			})
		}
	}

	var commands []*MenuNode
	for _, command := range inv.Commands {
		if command.Category == branch {
			commands = append(commands, &MenuNode{
				ID:    CommandID(command.Name),
				Label: command.DisplayName,
				Kind:  KindLeaf,
			})
		}
	}

	var skills []*MenuNode
	for _, cat := range inv.SkillCategories {
		for _, sk := range cat.Skills {
			if sk.Category == branch {
				skills = append(skills, &MenuNode{
					ID:    SkillID(cat.Name, sk.Name),
					Label: sk.DisplayName + " · " + cat.DisplayName,
					Kind:  KindLeaf,
				})
			}
		}
	}

	var children []*MenuNode
	children = appendNode(children, folder(string(branch)+"/agents", "Agents", agents))
	children = appendNode(children, folder(string(branch)+"/commands", "Commands", commands))
	children = appendNode(children, folder(string(branch)+"/skills", "Skills", skills))

	return folder(string(branch), catalog.DisplayName(string(branch)), children)
}

// Leaves returns all leaf nodes of the subtree rooted at node, in menu
// order.
func (n *MenuNode) Leaves() []*MenuNode {
	if n.Kind == KindLeaf {
		return []*MenuNode{n}
	}
	var leaves []*MenuNode
	for _, child := range n.Children {
		leaves = append(leaves, child.Leaves()...)
	}
	return leaves
}

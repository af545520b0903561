package paths

import (
	"path/filepath"
	"testing"
)

func TestParseLocation(t *testing.T) {
	if loc, err := ParseLocation("global"); err != nil || loc != LocationGlobal {
		t.Fatalf("ParseLocation(global) = %v, %v", loc, err)
	}
	if loc, err := ParseLocation("local"); err != nil || loc != LocationLocal {
		t.Fatalf("ParseLocation(local) = %v, %v", loc, err)
	}
	if _, err := ParseLocation("remote"); err == nil {
		t.Fatal("expected error for unknown location")
	}
}

func TestRootInGlobalUsesHome(t *testing.T) {
	root := RootIn(LocationGlobal, "/home/dev", "/work/project")
	if root != filepath.Join("/home/dev", ".forge") {
		t.Fatalf("unexpected global root %q", root)
	}
}

func TestRootInLocalUsesCwd(t *testing.T) {
	root := RootIn(LocationLocal, "/home/dev", "/work/project")
	if root != filepath.Join("/work/project", ".forge") {
		t.Fatalf("unexpected local root %q", root)
	}
}

func TestSubpaths(t *testing.T) {
	layout := Subpaths("/tmp/target")

	if layout.AgentsDir != filepath.Join("/tmp/target", "agents") {
		t.Fatalf("unexpected agents dir %q", layout.AgentsDir)
	}
	if layout.CommandsDir != filepath.Join("/tmp/target", "commands") {
		t.Fatalf("unexpected commands dir %q", layout.CommandsDir)
	}
	if layout.SkillsDir != filepath.Join("/tmp/target", "skills") {
		t.Fatalf("unexpected skills dir %q", layout.SkillsDir)
	}
	if layout.RulesFile != filepath.Join("/tmp/target", "skill-rules.json") {
		t.Fatalf("unexpected rules file %q", layout.RulesFile)
	}
}

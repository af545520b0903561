package main

import (
	"testing"

	"github.com/forgeworks/forge-cli/internal/catalog"
	"github.com/forgeworks/forge-cli/internal/config"
	"github.com/forgeworks/forge-cli/internal/paths"
	"github.com/forgeworks/forge-cli/internal/picker"
)

func TestResolveSourcePrecedence(t *testing.T) {
	cfg := &config.Config{Source: "./catalog"}
	if got := resolveSource("./explicit", cfg); got != "./explicit" {
		t.Fatalf("flag must win, got %q", got)
	}
	if got := resolveSource("", cfg); got != "./catalog" {
		t.Fatalf("config must win over default, got %q", got)
	}
	if got := resolveSource("", &config.Config{}); got != "." {
		t.Fatalf("expected working-directory default, got %q", got)
	}
}

func TestResolveLocation(t *testing.T) {
	if got := resolveLocation(true, &config.Config{Location: "local"}); got != paths.LocationGlobal {
		t.Fatalf("--global must win, got %v", got)
	}
	if got := resolveLocation(false, &config.Config{Location: "global"}); got != paths.LocationGlobal {
		t.Fatalf("config location must apply, got %v", got)
	}
	if got := resolveLocation(false, &config.Config{Location: "bogus"}); got != paths.LocationLocal {
		t.Fatalf("invalid config location must fall back to local, got %v", got)
	}
	if got := resolveLocation(false, &config.Config{}); got != paths.LocationLocal {
		t.Fatalf("expected local default, got %v", got)
	}
}

func TestResolveDiscoveryMode(t *testing.T) {
	mode, err := resolveDiscoveryMode("partitioned", &config.Config{})
	if err != nil || mode != catalog.ModePartitioned {
		t.Fatalf("resolveDiscoveryMode(partitioned) = %v, %v", mode, err)
	}
	mode, err = resolveDiscoveryMode("", &config.Config{Discovery: "flat"})
	if err != nil || mode != catalog.ModeFlat {
		t.Fatalf("config discovery mode = %v, %v", mode, err)
	}
	mode, err = resolveDiscoveryMode("", &config.Config{})
	if err != nil || mode != catalog.ModeFlat {
		t.Fatalf("expected flat default, got %v, %v", mode, err)
	}
	if _, err := resolveDiscoveryMode("zigzag", &config.Config{}); err == nil {
		t.Fatal("expected error for unknown layout")
	}
}

func TestResolveSelectorMode(t *testing.T) {
	mode, err := resolveSelectorMode("browser", &config.Config{})
	if err != nil || mode != picker.ModeBrowser {
		t.Fatalf("resolveSelectorMode(browser) = %v, %v", mode, err)
	}
	mode, err = resolveSelectorMode("", &config.Config{Selector: "prompts"})
	if err != nil || mode != picker.ModePrompts {
		t.Fatalf("config selector mode = %v, %v", mode, err)
	}
	mode, err = resolveSelectorMode("", &config.Config{})
	if err != nil || mode != picker.ModePrompts {
		t.Fatalf("expected prompts default, got %v, %v", mode, err)
	}
	if _, err := resolveSelectorMode("wheel", &config.Config{}); err == nil {
		t.Fatal("expected error for unknown selector")
	}
}

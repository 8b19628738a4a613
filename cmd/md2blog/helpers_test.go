package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and site fixtures
// ---------------------------------------------------------------------------

var testNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// testEnv returns an Environment with captured output, a fixed clock, and
// ids drawn from ids in order.
func testEnv(ids ...string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	next := 0
	return &Environment{
		Now:    func() time.Time { return testNow },
		Stdout: &stdout,
		Stderr: &stderr,
		NewID: func() string {
			if next >= len(ids) {
				return "zzzzzz"
			}
			id := ids[next]
			next++
			return id
		},
	}, &stdout, &stderr
}

// testSite creates source and output directories plus a config file
// pointing at them, and returns the config path.
func testSite(t *testing.T, sources map[string]string) (cfgPath, inDir, outDir string) {
	t.Helper()

	root := t.TempDir()
	inDir = filepath.Join(root, "source")
	outDir = filepath.Join(root, "output")
	if err := os.Mkdir(inDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range sources {
		if err := os.WriteFile(filepath.Join(inDir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfgPath = filepath.Join(root, "site.yaml")
	cfg := fmt.Sprintf("site:\n  title: Field Notes\ninput:\n  dir: %q\noutput:\n  dir: %q\n", inDir, outDir)
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath, inDir, outDir
}

const helloPost = "timestamp: 2024-03-01T10:00:00Z\ntitle: Hello\n---\n\nBody text.\n"

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunConvertsText(t *testing.T) {
	t.Parallel()

	in := filepath.Join(t.TempDir(), "names.txt")
	if err := os.WriteFile(in, []byte("Alice\n\nBob\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-i", in, "-w", "800", "-h", "600"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v (stderr %s)", err, stderr.String())
	}

	var export struct {
		Version   string `json:"version"`
		People    []struct{ ID string }
		Positions []struct{ ID string }
	}
	if err := json.Unmarshal(stdout.Bytes(), &export); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	if len(export.People) != 2 || len(export.Positions) != 4 {
		t.Errorf("people %d positions %d, want 2 and 4", len(export.People), len(export.Positions))
	}

	// cards span (100,100)-(850,400); centre (475,250)
	if !strings.Contains(stderr.String(), "pan (-75.0, 50.0)") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunWritesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "names.txt")
	out := filepath.Join(dir, "board.json")
	os.WriteFile(in, []byte("Alice\n"), 0o644)

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-i", in, "-o", out}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"alice-recipient"`)) {
		t.Errorf("output missing recipient card:\n%s", data)
	}
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	if err := run(nil, &stdout, &stderr); err == nil {
		t.Error("run without -i succeeded")
	}
	bad := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(bad, []byte("{oops"), 0o644)
	if err := run([]string{"-i", bad}, &stdout, &stderr); err == nil {
		t.Error("malformed export accepted")
	}
}

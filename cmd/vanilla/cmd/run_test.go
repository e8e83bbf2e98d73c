package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func captureStderr(t *testing.T, fn func() error) (error, string) {
	t.Helper()
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	runErr := fn()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return runErr, buf.String()
}

func TestRunScriptSucceedsOnValidProgram(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.vnl", `x = 1 + 2; x;`)

	if err := runScript(runCmd, []string{path}); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

// TestRunScriptReportsParseErrorInSpecFormat locks in spec.md §6's exact
// "[line:col] Stage error : message" diagnostic line for a parse failure.
func TestRunScriptReportsParseErrorInSpecFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "bad.vnl", `1 + ;`)

	err, stderr := captureStderr(t, func() error {
		return runScript(runCmd, []string{path})
	})

	if err == nil {
		t.Fatal("expected an error for a syntax error")
	}
	if err.Error() != "" {
		t.Fatalf("expected the silent sentinel error, got %q", err.Error())
	}
	stderr = strings.TrimRight(stderr, "\n")
	if !strings.HasPrefix(stderr, "[1:") || !strings.Contains(stderr, "Parsing error : ") {
		t.Fatalf("unexpected diagnostic line: %q", stderr)
	}
}

func TestRunScriptReportsEvaluationErrorInSpecFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "bad.vnl", `undefinedVar + 1;`)

	err, stderr := captureStderr(t, func() error {
		return runScript(runCmd, []string{path})
	})

	if err == nil {
		t.Fatal("expected an error for an undefined variable")
	}
	stderr = strings.TrimRight(stderr, "\n")
	if !strings.Contains(stderr, "Evaluation error : ") {
		t.Fatalf("unexpected diagnostic line: %q", stderr)
	}
}

func TestRunScriptMissingFileFails(t *testing.T) {
	if err := runScript(runCmd, []string{"/no/such/file.vnl"}); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestRunScriptDumpASTFlagPrintsXML(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.vnl", `1 + 2;`)

	oldDumpAST := dumpAST
	dumpAST = true
	defer func() { dumpAST = oldDumpAST }()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := runScript(runCmd, []string{path})

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	stdout := buf.String()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "<Program>") || !strings.Contains(stdout, "BinaryExpression") {
		t.Fatalf("expected an XML AST dump on stdout, got %q", stdout)
	}
}

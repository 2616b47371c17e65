package xmldiff

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeTempXML(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewRootCommandDiffsByDefault(t *testing.T) {
	dir := t.TempDir()
	expected := writeTempXML(t, dir, "expected.xml", `<root><a x="1"/></root>`)
	actual := writeTempXML(t, dir, "actual.xml", `<root><a x="1"/></root>`)

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{expected, actual})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "no differences found\n" {
		t.Fatalf("expected no-differences output, got %q", out.String())
	}
}

func TestDiffSubcommandRespectsOutputFlag(t *testing.T) {
	dir := t.TempDir()
	expected := writeTempXML(t, dir, "expected.xml", `<root><a x="1"/></root>`)
	actual := writeTempXML(t, dir, "actual.xml", `<root><a x="2"/></root>`)

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"diff", "--output", "brief", expected, actual})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "1 modified\n" {
		t.Fatalf("expected brief summary, got %q", out.String())
	}
}

func TestDiffSubcommandUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	expected := writeTempXML(t, dir, "expected.xml", `<root/>`)
	actual := writeTempXML(t, dir, "actual.xml", `<root/>`)

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"diff", "--output", "bogus", expected, actual})

	err := root.Execute()
	if err == nil {
		t.Fatal("expected an error for an unknown output format")
	}
	if ExitCode(err) != ExitCodeError {
		t.Fatalf("expected ExitCodeError, got %d", ExitCode(err))
	}
}

func TestDiffSubcommandIncludeExcludeFlags(t *testing.T) {
	dir := t.TempDir()
	expected := writeTempXML(t, dir, "expected.xml", `<root><a x="1"/><b/></root>`)
	actual := writeTempXML(t, dir, "actual.xml", `<root><a x="2"/><b/><c/></root>`)

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"diff", "--output", "brief", "--include", "a", expected, actual})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "1 modified\n" {
		t.Fatalf("expected only the included element's change to be reported, got %q", out.String())
	}
}

func TestExitCodeHelpers(t *testing.T) {
	if ExitCode(nil) != ExitCodeSuccess {
		t.Fatal("expected ExitCodeSuccess for nil error")
	}
	if ExitCode(exitCodeError{code: ExitCodeDifferences}) != ExitCodeDifferences {
		t.Fatal("expected exitCodeError to round-trip through ExitCode")
	}
}

package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/mdconv/internal/cli"
	"github.com/yaklabco/mdconv/internal/configloader"
	"github.com/yaklabco/mdconv/pkg/convert"
	"github.com/yaklabco/mdconv/pkg/fsutil"
)

var testInfo = cli.BuildInfo{
	Version: "test-version",
	Commit:  "test-commit",
	Date:    "test-date",
}

// execute runs the root command with args and stdin, returning stdout,
// stderr and the command error.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	if cmd.Use != "mdconv" {
		t.Errorf("expected Use to be 'mdconv', got %q", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}
	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}

	for _, name := range []string{"debug", "config", "no-config", "color"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag --%s", name)
		}
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"html", "ast", "tree", "meta", "build", "options", "init", "version"} {
		sub, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}
		if sub.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, sub.Name())
		}
	}
}

func TestHTMLCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "# Title\n\nHello, **world**!\n", "--no-config", "html")
	if err != nil {
		t.Fatalf("html failed: %v", err)
	}

	want := "<h1>Title</h1>\n<p>Hello, <strong>world</strong>!</p>\n"
	if stdout != want {
		t.Errorf("html output = %q, want %q", stdout, want)
	}
}

func TestHTMLCommand_FileToFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "in.md")
	output := filepath.Join(dir, "out.html")
	if err := os.WriteFile(input, []byte("~~gone~~\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, "", "--no-config", "html", input, "-o", output)
	if err != nil {
		t.Fatalf("html failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected nothing on stdout, got %q", stdout)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(got), "<del>gone</del>") {
		t.Errorf("output file = %q, want strikethrough", got)
	}
}

func TestASTCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "# Title", "--no-config", "ast")
	if err != nil {
		t.Fatalf("ast failed: %v", err)
	}

	want, err := convert.MarkdownToAST("# Title")
	if err != nil {
		t.Fatal(err)
	}
	if stdout != want+"\n" {
		t.Errorf("ast output = %q, want %q", stdout, want+"\n")
	}
}

func TestASTCommand_Indent(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "***\n", "--no-config", "ast", "--indent", "2")
	if err != nil {
		t.Fatalf("ast failed: %v", err)
	}

	want := "{\n  \"children\": [\n    {\n      \"type\": \"thematic_break\"\n    }\n  ],\n  \"type\": \"document\"\n}\n"
	if stdout != want {
		t.Errorf("ast output = %q, want %q", stdout, want)
	}
}

func TestTreeCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "# Title\n", "--no-config", "--color", "never", "tree", "--stats")
	if err != nil {
		t.Fatalf("tree failed: %v", err)
	}

	for _, want := range []string{"document", "heading", "level=1", `"Title"`, "3 nodes"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("tree output missing %q:\n%s", want, stdout)
		}
	}
}

func TestMetaCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "---\ntitle: Hi\ntags: [a, b]\n---\nbody\n", "--no-config", "meta")
	if err != nil {
		t.Fatalf("meta failed: %v", err)
	}

	want := "tags:\n    - a\n    - b\ntitle: Hi\n"
	if stdout != want {
		t.Errorf("meta output = %q, want %q", stdout, want)
	}
}

func TestBuildCommand(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	out := t.TempDir()
	for name, content := range map[string]string{"a.md": "# A\n", "docs/b.md": "b\n"} {
		path := filepath.Join(src, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	stdout, _, err := execute(t, "", "--no-config", "--color", "never", "build", src, "-d", out, "-f", "ast")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !strings.Contains(stdout, "Converted 2 files (2 written, 0 unchanged)") {
		t.Errorf("unexpected build output:\n%s", stdout)
	}

	// Sources outside the working directory land directly in the output directory.
	outputs, err := filepath.Glob(filepath.Join(out, "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(outputs) != 2 {
		t.Errorf("expected 2 json outputs in %s, found %v", out, outputs)
	}

	_, _, err = execute(t, "", "--no-config", "build", src, "-f", "pdf")
	if got := cli.ExitCode(err); got != cli.ExitInvalidUsage {
		t.Errorf("unknown format exit code = %d, want %d", got, cli.ExitInvalidUsage)
	}
}

func TestOptionsCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "--no-config", "options")
	if err != nil {
		t.Fatalf("options failed: %v", err)
	}

	for _, want := range []string{"# effective mdconv configuration", "extension:", "parse:", "render:", "hardbreaks:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("options output missing %q:\n%s", want, stdout)
		}
	}
}

func TestOptionsCommand_Env(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "options", "--env")
	if err != nil {
		t.Fatalf("options --env failed: %v", err)
	}

	want := strings.Join(configloader.EnvVarNames(), "\n") + "\n"
	if stdout != want {
		t.Errorf("options --env output = %q, want %q", stdout, want)
	}
	if !strings.Contains(stdout, "MDCONV_RENDER_HARDBREAKS") {
		t.Errorf("expected MDCONV_RENDER_HARDBREAKS in:\n%s", stdout)
	}
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".mdconv.yml")

	if _, _, err := execute(t, "", "--no-config", "init", "-o", path); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(content), "extension:") {
		t.Errorf("config file missing extension section:\n%s", content)
	}

	_, _, err = execute(t, "", "--no-config", "init", "-o", path)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected already exists error, got %v", err)
	}

	if _, _, err := execute(t, "", "--no-config", "init", "-o", path, "--force"); err != nil {
		t.Errorf("init --force failed: %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}

	for _, want := range []string{"mdconv", "test-version", "test-commit", "test-date"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("version output missing %q: %q", want, stdout)
		}
	}
}

func TestCommandErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	badConfig := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(badConfig, []byte("extension: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantCode int
	}{
		{"unknown command", "", []string{"bogus"}, cli.ExitInvalidUsage},
		{"unknown flag", "", []string{"html", "--bogus"}, cli.ExitInvalidUsage},
		{"too many args", "", []string{"--no-config", "html", "a.md", "b.md"}, cli.ExitInvalidUsage},
		{"negative indent", "", []string{"--no-config", "ast", "--indent", "-1"}, cli.ExitInvalidUsage},
		{"missing file", "", []string{"--no-config", "html", filepath.Join(dir, "missing.md")}, cli.ExitIOError},
		{"directory input", "", []string{"--no-config", "html", dir}, cli.ExitIOError},
		{"bad config", "x", []string{"--no-config", "--config", badConfig, "html"}, cli.ExitConfigError},
		{"invalid utf-8", "ok \xff", []string{"--no-config", "html"}, cli.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, tt.stdin, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := cli.ExitCode(err); got != tt.wantCode {
				t.Errorf("ExitCode(%v) = %d, want %d", err, got, tt.wantCode)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"usage", fmt.Errorf("%w: bad flag", cli.ErrUsage), cli.ExitInvalidUsage},
		{"config", fmt.Errorf("load: %w", configloader.ErrInvalidConfig), cli.ExitConfigError},
		{"not found", fmt.Errorf("read: %w", fsutil.ErrNotFound), cli.ExitIOError},
		{"path error", &fs.PathError{Op: "write", Path: "x", Err: fs.ErrPermission}, cli.ExitIOError},
		{"utf-8", convert.ErrInvalidUTF8, cli.ExitFailure},
		{"other", errors.New("boom"), cli.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := cli.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHelp(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "--color", "never", "build", "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}

	for _, want := range []string{"mdconv build", "Usage:", "Flags:", "--out-dir", "Global Flags:", "--no-config"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output missing %q:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "\x1b[") {
		t.Errorf("expected no escape sequences with --color never:\n%s", stdout)
	}
}

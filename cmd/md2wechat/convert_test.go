package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		f, args, err := parseConvertFlags([]string{"input.md"})
		if err != nil {
			t.Fatalf("parseConvertFlags: %v", err)
		}
		if f.theme != "" || f.mode != "news" || f.output != "" || f.asJSON {
			t.Errorf("flags = %#v", f)
		}
		if len(args) != 1 || args[0] != "input.md" {
			t.Errorf("args = %v", args)
		}
	})

	t.Run("all flags", func(t *testing.T) {
		t.Parallel()

		f, _, err := parseConvertFlags([]string{
			"-s", "tech", "-m", "newspic", "-o", "out.html",
			"--source", "https://e.com", "--json", "-v", "in.md",
		})
		if err != nil {
			t.Fatalf("parseConvertFlags: %v", err)
		}
		if f.theme != "tech" || f.mode != "newspic" || f.output != "out.html" ||
			f.source != "https://e.com" || !f.asJSON || !f.verbose {
			t.Errorf("flags = %#v", f)
		}
	})

	t.Run("unknown flag is a usage error", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseConvertFlags([]string{"--bogus"})
		if !errors.Is(err, errUsage) {
			t.Errorf("error = %v, want errUsage", err)
		}
	})
}

func TestRunConvert(t *testing.T) {
	t.Run("file to output file", func(t *testing.T) {
		dir := t.TempDir()
		in := filepath.Join(dir, "post.md")
		out := filepath.Join(dir, "post.html")
		if err := os.WriteFile(in, []byte("# Hello\n\nWorld."), 0o600); err != nil {
			t.Fatal(err)
		}

		if err := runConvert([]string{in, "-o", out}); err != nil {
			t.Fatalf("runConvert: %v", err)
		}

		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		html := string(data)
		for _, want := range []string{"Hello", "World.", "<table"} {
			if !strings.Contains(html, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("json output", func(t *testing.T) {
		dir := t.TempDir()
		in := filepath.Join(dir, "post.md")
		out := filepath.Join(dir, "post.json")
		if err := os.WriteFile(in, []byte("# T\n\nSummary text."), 0o600); err != nil {
			t.Fatal(err)
		}

		if err := runConvert([]string{in, "--json", "-o", out}); err != nil {
			t.Fatalf("runConvert: %v", err)
		}

		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{`"title": "T"`, `"summary": "Summary text."`} {
			if !strings.Contains(string(data), want) {
				t.Errorf("json missing %q in %s", want, data)
			}
		}
	})

	t.Run("missing file", func(t *testing.T) {
		err := runConvert([]string{filepath.Join(t.TempDir(), "absent.md")})
		if err == nil {
			t.Fatal("expected error")
		}
		if exitCodeFor(err) != ExitIO {
			t.Errorf("exit code = %d, want %d (%v)", exitCodeFor(err), ExitIO, err)
		}
	})

	t.Run("bad theme", func(t *testing.T) {
		dir := t.TempDir()
		in := filepath.Join(dir, "post.md")
		if err := os.WriteFile(in, []byte("# x"), 0o600); err != nil {
			t.Fatal(err)
		}
		err := runConvert([]string{in, "-s", "nope"})
		if exitCodeFor(err) != ExitUsage {
			t.Errorf("exit code = %d, want %d (%v)", exitCodeFor(err), ExitUsage, err)
		}
	})

	t.Run("bad mode", func(t *testing.T) {
		dir := t.TempDir()
		in := filepath.Join(dir, "post.md")
		if err := os.WriteFile(in, []byte("# x"), 0o600); err != nil {
			t.Fatal(err)
		}
		err := runConvert([]string{in, "-m", "gallery"})
		if exitCodeFor(err) != ExitUsage {
			t.Errorf("exit code = %d, want %d (%v)", exitCodeFor(err), ExitUsage, err)
		}
	})
}

func TestRun_Dispatch(t *testing.T) {
	t.Run("no args prints usage", func(t *testing.T) {
		if err := run([]string{"md2wechat"}); !errors.Is(err, errUsage) {
			t.Errorf("error = %v, want errUsage", err)
		}
	})

	t.Run("unknown command", func(t *testing.T) {
		if err := run([]string{"md2wechat", "frobnicate"}); !errors.Is(err, errUsage) {
			t.Errorf("error = %v, want errUsage", err)
		}
	})

	t.Run("version", func(t *testing.T) {
		if err := run([]string{"md2wechat", "version"}); err != nil {
			t.Errorf("version: %v", err)
		}
	})

	t.Run("help", func(t *testing.T) {
		if err := run([]string{"md2wechat", "help"}); err != nil {
			t.Errorf("help: %v", err)
		}
	})
}

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	if got := resolveWorkers(4, 10); got != 4 {
		t.Errorf("explicit flag ignored: %d", got)
	}
	if got := resolveWorkers(100, 10); got != maxPublishWorkers {
		t.Errorf("cap not applied: %d", got)
	}
	if got := resolveWorkers(4, 2); got != 2 {
		t.Errorf("file count clamp not applied: %d", got)
	}
	if got := resolveWorkers(0, 1); got != 1 {
		t.Errorf("auto minimum wrong: %d", got)
	}
}

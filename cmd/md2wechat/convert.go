package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	md2wechat "github.com/zkkython/md2wechat-skills"
)

// errNoInput marks a convert invocation with nothing to read.
var errNoInput = errors.New("no input: pass a file path or pipe content on stdin")

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	theme   string
	mode    string
	output  string
	source  string
	asJSON  bool
	verbose bool
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.theme, "theme", "s", "", "visual theme (default: academic_gray)")
	fs.StringVarP(&f.mode, "mode", "m", "news", "article mode: news, newspic")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.StringVar(&f.source, "source", "", "source URL for the article footer")
	fs.BoolVar(&f.asJSON, "json", false, "emit JSON with html, title, summary, cover and images")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logging")

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return f, fs.Args(), nil
}

// runConvert transforms one document and writes the result, without
// touching the WeChat API.
func runConvert(args []string) error {
	f, paths, err := parseConvertFlags(args)
	if err != nil {
		return err
	}
	setupLogging(f.verbose)

	content, format, err := readInput(paths)
	if err != nil {
		return err
	}

	mode, err := md2wechat.ParseMode(f.mode)
	if err != nil {
		return err
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	svc := md2wechat.New()
	result, err := svc.Convert(ctx, md2wechat.Input{
		Content: content,
		Format:  format,
		Theme:   f.theme,
		Mode:    mode,
		Source:  f.source,
	})
	if err != nil {
		return err
	}

	var out []byte
	if f.asJSON {
		out, err = json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		out = append(out, '\n')
	} else {
		out = []byte(result.HTML)
	}

	if f.output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(f.output, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", f.output, err)
	}
	return nil
}

// readInput returns the document content and a format identifier: the
// filename when a path was given, empty (Markdown) for stdin.
func readInput(paths []string) (content, format string, err error) {
	switch {
	case len(paths) == 0 || paths[0] == "-":
		stat, statErr := os.Stdin.Stat()
		if statErr == nil && (stat.Mode()&os.ModeCharDevice) != 0 && (len(paths) == 0) {
			return "", "", errNoInput
		}
		data, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			return "", "", fmt.Errorf("reading stdin: %w", readErr)
		}
		return string(data), "", nil
	default:
		data, readErr := os.ReadFile(paths[0])
		if readErr != nil {
			return "", "", fmt.Errorf("reading input: %w", readErr)
		}
		return string(data), paths[0], nil
	}
}

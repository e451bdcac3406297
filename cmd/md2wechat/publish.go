package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sync"

	flag "github.com/spf13/pflag"

	md2wechat "github.com/zkkython/md2wechat-skills"
	"github.com/zkkython/md2wechat-skills/internal/config"
	"github.com/zkkython/md2wechat-skills/internal/publisher"
	"github.com/zkkython/md2wechat-skills/internal/wechat"
)

// maxPublishWorkers bounds the fan-out so the API is not hammered.
const maxPublishWorkers = 8

// publishFlags holds all flags for the publish command.
type publishFlags struct {
	theme       string
	mode        string
	title       string
	author      string
	cover       string
	source      string
	comment     bool
	fansComment bool
	envFile     string
	workers     int
	verbose     bool
}

// parsePublishFlags parses publish command flags and returns positional args.
func parsePublishFlags(args []string) (*publishFlags, []string, error) {
	fs := flag.NewFlagSet("publish", flag.ContinueOnError)
	f := &publishFlags{}

	fs.StringVarP(&f.theme, "theme", "s", "", "visual theme (default: academic_gray)")
	fs.StringVarP(&f.mode, "mode", "m", "news", "article mode: news, newspic")
	fs.StringVar(&f.title, "title", "", "override the extracted title")
	fs.StringVar(&f.author, "author", "", "article author")
	fs.StringVar(&f.cover, "cover", "", "cover image URL (default: first image in the document)")
	fs.StringVar(&f.source, "source", "", "original article URL")
	fs.BoolVar(&f.comment, "comment", false, "open the comment section")
	fs.BoolVar(&f.fansComment, "fans-only-comment", false, "restrict comments to followers")
	fs.StringVar(&f.envFile, "env", "", ".env file path (default: nearest .env)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel uploads (0 = auto)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logging")

	fs.Usage = func() { printPublishUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return f, fs.Args(), nil
}

// fileOutcome pairs a source path with its publish result for the JSON
// report.
type fileOutcome struct {
	File   string            `json:"file"`
	Result *publisher.Result `json:"result"`
}

// runPublish converts each file and pushes it to the draft box. Files
// are processed concurrently; one failure does not stop the rest.
func runPublish(args []string) error {
	f, paths, err := parsePublishFlags(args)
	if err != nil {
		return err
	}
	setupLogging(f.verbose)

	if len(paths) == 0 {
		return errNoInput
	}

	mode, err := md2wechat.ParseMode(f.mode)
	if err != nil {
		return err
	}
	if _, err := md2wechat.LookupTheme(f.theme); err != nil {
		return err
	}

	cfg, err := config.LoadFrom(f.envFile)
	if err != nil {
		return err
	}
	cfg.Validate()

	ctx, stop := notifyContext(context.Background())
	defer stop()

	client := wechat.NewClient(wechat.Credentials{
		AppID:     cfg.AppID,
		AppSecret: cfg.AppSecret,
	})
	pub := publisher.New(md2wechat.New(), client)
	opts := publisher.Options{
		Theme:              f.theme,
		Mode:               mode,
		Title:              f.title,
		Author:             f.author,
		CoverURL:           f.cover,
		SourceURL:          f.source,
		OpenComment:        f.comment,
		OnlyFansCanComment: f.fansComment,
	}

	outcomes := publishAll(ctx, pub, paths, opts, resolveWorkers(f.workers, len(paths)))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	failed := 0
	for _, o := range outcomes {
		if !o.Result.Success {
			failed++
		}
		if err := enc.Encode(o); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errPublishFailed, failed, len(outcomes))
	}
	return nil
}

// publishAll fans the files out over n workers and returns outcomes in
// input order.
func publishAll(ctx context.Context, pub *publisher.Publisher, paths []string, opts publisher.Options, n int) []fileOutcome {
	outcomes := make([]fileOutcome, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < n; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = fileOutcome{
					File:   paths[i],
					Result: publishOne(ctx, pub, paths[i], opts),
				}
			}
		}()
	}

dispatch:
	for i := range paths {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	// Files never dispatched because of cancellation still get a result.
	for i := range outcomes {
		if outcomes[i].Result == nil {
			outcomes[i] = fileOutcome{
				File: paths[i],
				Result: &publisher.Result{
					Success: false,
					Error:   context.Cause(ctx).Error(),
					Code:    "CANCELED",
				},
			}
		}
	}
	return outcomes
}

// publishOne reads one file and publishes it, folding read errors into
// the Result shape.
func publishOne(ctx context.Context, pub *publisher.Publisher, path string, opts publisher.Options) *publisher.Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return &publisher.Result{
			Success: false,
			Error:   err.Error(),
			Code:    "READ_FAILED",
		}
	}
	res, err := pub.Publish(ctx, path, string(data), opts)
	if err != nil {
		return &publisher.Result{
			Success: false,
			Error:   err.Error(),
			Code:    "CANCELED",
		}
	}
	return res
}

// resolveWorkers picks the fan-out width: explicit flag, else half of
// GOMAXPROCS, clamped to the file count and maxPublishWorkers.
func resolveWorkers(flagWorkers, files int) int {
	n := flagWorkers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0) / 2
	}
	if n < 1 {
		n = 1
	}
	if n > maxPublishWorkers {
		n = maxPublishWorkers
	}
	if n > files {
		n = files
	}
	return n
}

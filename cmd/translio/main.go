// Command translio manages CMS translation state: it serves the admin JSON
// API, scans source trees for translatable strings, and exports translation
// memory.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nesmachny/translio"
	"github.com/nesmachny/translio/cache"
	"github.com/nesmachny/translio/catalog"
	"github.com/nesmachny/translio/memory"
	"github.com/nesmachny/translio/provider"
	"github.com/nesmachny/translio/scanner"
	"github.com/nesmachny/translio/server"
	"github.com/nesmachny/translio/store"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = translio.Version
	commit    = translio.GitCommit
	buildDate = translio.BuildDate
)

const usage = `Usage: translio [flags] <command> [args]

Commands:
  serve                 Start the admin JSON API
  scan <dir> [dir...]   Scan source trees for translatable strings
  strings               List scanned strings
  clear-strings         Delete every scanned string and its translations
  memory-export         Export translation memory for a language as JSON
  version               Show version

Flags:
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("translio", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "translio.toml", "Path to TOML config file")
	lang := fs.String("lang", "", "Language code (e.g. fr_FR) for memory-export and strings")
	domain := fs.String("domain", "", "Domain filter for strings listing")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("a command is required")
	}

	command := fs.Arg(0)
	if command == "version" {
		fmt.Fprintf(stdout, "%s %s\n", translio.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit: %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:  %s\n", buildDate)
		}
		return nil
	}

	cfg, err := server.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	st, err := store.OpenSQLite(cfg.DB.File)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()
	cat := catalog.NewSQLiteCatalog(st.DB())

	ctx := context.Background()

	switch command {
	case "serve":
		return runServe(cfg, st, cat, stdout)
	case "scan":
		if fs.NArg() < 2 {
			return fmt.Errorf("scan requires at least one directory")
		}
		return runScan(ctx, cat, fs.Args()[1:], stdout)
	case "strings":
		return runStrings(ctx, cat, *domain, *lang, stdout)
	case "clear-strings":
		if err := cat.ClearAll(ctx); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "cleared scanned strings and their translations")
		return nil
	case "memory-export":
		if *lang == "" {
			return fmt.Errorf("--lang is required for memory-export")
		}
		return runMemoryExport(ctx, st, *lang, *output, stdout)
	default:
		fs.Usage()
		return fmt.Errorf("unrecognised command %q", command)
	}
}

func runServe(cfg server.Config, st *store.SQLiteStore, cat catalog.Catalog, stdout io.Writer) error {
	var c cache.Cache
	if cfg.Redis.URL != "" {
		rc, err := cache.NewRedisCache(cache.RedisConfig{URL: cfg.Redis.URL, TTL: cfg.Redis.TTL})
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rc.Close()
		c = rc
	} else {
		c = cache.NewInMemoryCache(cfg.Redis.TTL)
	}

	idx := memory.NewIndex(st, memory.WithCache(c))

	var p translio.TranslationProvider = provider.NewOpenAIProvider(provider.OpenAIConfig{
		APIKey: cfg.OpenAI.APIKey,
		Model:  cfg.OpenAI.Model,
	})
	p = translio.NewRateLimitedProvider(p, translio.RateLimitConfig{RequestsPerMinute: 60})
	p = translio.NewRetryableProvider(p, translio.DefaultRetryConfig())

	engine := translio.NewEngine(st, p,
		translio.WithMemory(idx),
		translio.WithCache(c),
		translio.WithSourceLang(cfg.Translate.SourceLang),
		translio.WithGlobalContext(cfg.Translate.Context),
		translio.WithMaxBatchSize(cfg.Translate.MaxBatchSize),
	)

	srv := server.New(st, cat, idx, engine)
	fmt.Fprintf(stdout, "Listening on port %d\n", cfg.Server.Port)
	return srv.ListenAndServe(cfg.Server.Port, stdout)
}

func runScan(ctx context.Context, cat catalog.Catalog, dirs []string, stdout io.Writer) error {
	var all []scanner.Found
	for _, dir := range dirs {
		found, err := scanner.ScanDir(dir)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", dir, err)
		}
		all = append(all, found...)
	}

	recorded, err := scanner.RecordAll(ctx, cat, all)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "found %d marker calls, recorded %d distinct strings\n", len(all), recorded)
	return nil
}

func runStrings(ctx context.Context, cat catalog.Catalog, domain, lang string, stdout io.Writer) error {
	entries, err := cat.List(ctx, catalog.Filter{Domain: domain, LanguageCode: lang})
	if err != nil {
		return err
	}
	for _, e := range entries {
		mark := " "
		if e.Translated {
			mark = "x"
		}
		fmt.Fprintf(stdout, "[%s] %-20s %s\n", mark, e.Domain, e.Text)
	}
	fmt.Fprintf(stdout, "%d strings\n", len(entries))
	return nil
}

func runMemoryExport(ctx context.Context, st *store.SQLiteStore, lang, output string, stdout io.Writer) error {
	exporter := memory.NewExporter(st)
	if output == "" {
		return exporter.Export(ctx, stdout, lang, nil)
	}
	if err := exporter.ExportToFile(ctx, output, lang, nil); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "exported translation memory for %s to %s\n", lang, output)
	return nil
}

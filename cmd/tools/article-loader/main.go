// cmd/tools/article-loader/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"nlp-dashboard/internal/articles"
	"nlp-dashboard/internal/common/config"
	commonhttp "nlp-dashboard/internal/common/http"
	"nlp-dashboard/internal/common/logger"
	"nlp-dashboard/internal/common/validation"
	"nlp-dashboard/internal/ingest"
)

var configPath string

func main() {
	jsonCmd := flag.NewFlagSet("json", flag.ExitOnError)
	feedCmd := flag.NewFlagSet("feed", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	schemaCmd := flag.NewFlagSet("schema", flag.ExitOnError)

	jsonFile := jsonCmd.String("file", "", "Path to a JSON array of articles")
	feedURL := feedCmd.String("url", "", "RSS or Atom feed URL")
	feedTimeout := feedCmd.Duration("timeout", 30*time.Second, "Feed download timeout")
	validateFile := validateCmd.String("file", "", "Path to a JSON array of articles")
	printSchema := schemaCmd.Bool("print", false, "Print the article JSON schema instead of creating the table/index")

	for _, fs := range []*flag.FlagSet{jsonCmd, feedCmd, schemaCmd} {
		fs.StringVar(&configPath, "config", "", "Config file (defaults to configs/config.yaml)")
	}

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "json":
		jsonCmd.Parse(os.Args[2:])
		if *jsonFile == "" {
			fmt.Println("Error: -file is required for json.")
			jsonCmd.Usage()
			os.Exit(1)
		}
		records, err := ingest.ReadJSONFile(*jsonFile)
		if err != nil {
			fail("Error reading articles", err)
		}
		load(ctx, *jsonFile, records)

	case "feed":
		feedCmd.Parse(os.Args[2:])
		if !validation.ValidateURL(*feedURL) {
			fmt.Println("Error: -url must be an http(s) URL.")
			feedCmd.Usage()
			os.Exit(1)
		}
		fetchCtx, cancel := context.WithTimeout(ctx, *feedTimeout)
		records, err := ingest.FetchFeed(fetchCtx, commonhttp.NewClient(*feedTimeout), *feedURL)
		cancel()
		if err != nil {
			fail("Error fetching feed", err)
		}
		load(ctx, *feedURL, records)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if *validateFile == "" {
			fmt.Println("Error: -file is required for validate.")
			validateCmd.Usage()
			os.Exit(1)
		}
		records, err := ingest.ReadJSONFile(*validateFile)
		if err != nil {
			fail("Error reading articles", err)
		}
		report := ingest.Validate(records)
		printReport(report)
		if report.Skipped > 0 {
			os.Exit(1)
		}
		fmt.Println("Article validation passed.")

	case "schema":
		schemaCmd.Parse(os.Args[2:])
		if *printSchema {
			fmt.Println(validation.ArticleSchema)
			return
		}
		store, _ := openStore()
		if err := useStore(store, func(b *articles.Backend) error {
			return b.EnsureSchema(ctx)
		}); err != nil {
			fail("Error creating schema", err)
		}
		fmt.Printf("Schema ready on %s store.\n", store.Name)

	case "help":
		fallthrough
	default:
		help()
	}
}

func load(ctx context.Context, source string, records []ingest.Record) {
	store, log := openStore()

	var report *ingest.Report
	err := useStore(store, func(b *articles.Backend) error {
		var err error
		report, err = ingest.NewLoader(b, log).Load(ctx, source, records)
		return err
	})

	printReport(report)
	if err != nil {
		fail("Load stopped", err)
	}
}

// useStore runs fn and closes the store before returning, so callers may exit on error.
func useStore(store *articles.Backend, fn func(*articles.Backend) error) error {
	defer store.Close()
	return fn(store)
}

func openStore() (*articles.Backend, logger.Logger) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fail("Error loading config", err)
	}

	log := logger.NewStructured(cfg.Logging.Level, "console", "stderr")

	store, err := articles.Open(cfg.Store)
	if err != nil {
		fail("Error opening store", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		store.Close()
		fail("Error connecting to store", err)
	}
	return store, log
}

func printReport(report *ingest.Report) {
	if report == nil {
		return
	}
	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))
}

func fail(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}

func help() {
	fmt.Println(`Usage: article-loader <command> [options]

Commands:
  json      Load articles from a JSON file      (-file, -config)
  feed      Load articles from an RSS/Atom feed (-url, -timeout, -config)
  validate  Check a JSON file against the article schema (-file)
  schema    Create the articles table or index  (-print, -config)
  help      Show this help`)
}

// Command schemex infers structural schemas from XML, JSON, and YAML
// documents, and serves the same capabilities over MCP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"

	"github.com/usestring/schemex/internal/config"
	"github.com/usestring/schemex/internal/logging"
	"github.com/usestring/schemex/internal/nodeindex"
	"github.com/usestring/schemex/internal/query"
	"github.com/usestring/schemex/internal/store"
	"github.com/usestring/schemex/internal/validate"
	"github.com/usestring/schemex/pkg/extract"
	"github.com/usestring/schemex/pkg/mcpsrv"
	"github.com/usestring/schemex/pkg/schema"
)

const usage = `Usage: schemex <command> [flags]

Commands:
  extract    Infer a schema from a single document
  merge      Merge schemas from multiple documents or saved artifacts
  convert    Render a schema as json, jsonschema, or xsd
  validate   Validate a document against a schema
  query      Evaluate a JQ expression against a schema or JSON document
  nodes      Search extracted data nodes by type, name, and depth
  mcp        Run the MCP server on stdio

Run 'schemex <command> -h' for command flags.
`

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	logCleanup, err := logging.Setup(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup logging: %v\n", err)
		os.Exit(1)
	}
	defer logCleanup()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := newApp(cfg)
	if err != nil {
		fatal(err)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "extract":
		err = app.runExtract(args)
	case "merge":
		err = app.runMerge(ctx, args)
	case "convert":
		err = app.runConvert(args)
	case "validate":
		err = app.runValidate(args)
	case "query":
		err = app.runQuery(args)
	case "nodes":
		err = app.runNodes(args)
	case "mcp":
		err = runMCP(ctx)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	slog.Error("command failed", "error", err)
	fmt.Fprintf(os.Stderr, "schemex: %v\n", err)
	os.Exit(1)
}

// app bundles the long-lived pieces shared by the subcommands.
type app struct {
	cfg       *config.Config
	extractor *extract.Extractor
	store     *store.Store
	query     *query.Engine
}

func newApp(cfg *config.Config) (*app, error) {
	st, err := store.New(cfg.SchemaCacheMaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema store: %w", err)
	}
	return &app{
		cfg:       cfg,
		extractor: extract.New(),
		store:     st,
		query:     query.NewEngine(),
	}, nil
}

// resolveSchema loads a saved artifact (.schema.json) or extracts a schema
// from a raw document.
func (a *app) resolveSchema(path string) (*schema.Schema, error) {
	if strings.HasSuffix(strings.ToLower(path), ".schema.json") {
		return a.store.Load(path)
	}
	return a.extractor.ExtractFile(path)
}

func (a *app) runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	input := fs.String("i", "", "input document (xml, json, or yaml)")
	output := fs.String("o", "", "output path for the schema artifact")
	format := fs.String("f", "json", "output format: json, jsonschema, or xsd")
	display := fs.Bool("display", false, "print the schema to stdout")
	pretty := fs.Bool("pretty", false, "print a human-readable schema summary")
	fs.Parse(args)

	if *input == "" {
		return fmt.Errorf("extract: -i is required")
	}

	s, err := a.extractor.ExtractFile(*input)
	if err != nil {
		return err
	}
	slog.Info("schema extracted",
		"input", *input,
		"elements", s.TotalElements,
		"data_nodes", s.TotalDataNodes,
		"max_depth", s.MaxDepth,
	)

	return a.emitSchema(s, *output, *format, *display, *pretty)
}

func (a *app) runMerge(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	var inputs stringSlice
	fs.Var(&inputs, "i", "input document or saved artifact (repeatable)")
	output := fs.String("o", "", "output path for the merged schema")
	format := fs.String("f", "json", "output format: json, jsonschema, or xsd")
	display := fs.Bool("display", false, "print the merged schema to stdout")
	pretty := fs.Bool("pretty", false, "print a human-readable schema summary")
	fs.Parse(args)

	if len(inputs) == 0 {
		return fmt.Errorf("merge: at least one -i is required")
	}

	var documents, artifacts []string
	for _, p := range inputs {
		if strings.HasSuffix(strings.ToLower(p), ".schema.json") {
			artifacts = append(artifacts, p)
		} else {
			documents = append(documents, p)
		}
	}

	schemas := make([]*schema.Schema, 0, len(inputs))
	if len(documents) > 0 {
		extracted, err := a.extractor.ExtractFiles(ctx, documents, a.cfg.ExtractWorkers)
		if err != nil {
			return err
		}
		schemas = append(schemas, extracted...)
	}
	if len(artifacts) > 0 {
		loaded, err := a.store.LoadAll(artifacts)
		if err != nil {
			return err
		}
		schemas = append(schemas, loaded...)
	}

	merged, err := extract.Merge(schemas)
	if err != nil {
		return err
	}
	slog.Info("schemas merged", "inputs", len(schemas), "elements", merged.TotalElements)

	return a.emitSchema(merged, *output, *format, *display, *pretty)
}

func (a *app) runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	input := fs.String("i", "", "saved artifact or raw document")
	output := fs.String("o", "", "output path for the rendered schema")
	format := fs.String("f", "", "target format: json, jsonschema, or xsd")
	fs.Parse(args)

	if *input == "" {
		return fmt.Errorf("convert: -i is required")
	}
	if *format == "" {
		return fmt.Errorf("convert: -f is required")
	}

	s, err := a.resolveSchema(*input)
	if err != nil {
		return err
	}
	return a.emitSchema(s, *output, *format, *output == "", false)
}

func (a *app) runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	schemaPath := fs.String("s", "", "schema: saved artifact or reference document")
	input := fs.String("i", "", "document to validate (xml or json)")
	fs.Parse(args)

	if *schemaPath == "" || *input == "" {
		return fmt.Errorf("validate: -s and -i are required")
	}

	s, err := a.resolveSchema(*schemaPath)
	if err != nil {
		return err
	}
	validator, err := validate.New(s)
	if err != nil {
		return err
	}
	result, err := validator.ValidateFile(*input)
	if err != nil {
		return err
	}

	if result.Valid {
		fmt.Printf("%s: valid\n", *input)
		return nil
	}
	fmt.Printf("%s: invalid\n", *input)
	for _, msg := range result.Errors {
		fmt.Printf("  %s\n", msg)
	}
	os.Exit(1)
	return nil
}

func (a *app) runQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	input := fs.String("i", "", "saved artifact or JSON document")
	expression := fs.String("e", "", "JQ expression")
	limit := fs.Int("limit", 0, "max values to return (default from config)")
	fs.Parse(args)

	if *input == "" || *expression == "" {
		return fmt.Errorf("query: -i and -e are required")
	}

	maxResults := *limit
	if maxResults <= 0 {
		maxResults = a.cfg.DefaultQueryLimit
	}

	var (
		result *query.Result
		err    error
	)
	if strings.HasSuffix(strings.ToLower(*input), ".schema.json") {
		s, loadErr := a.store.Load(*input)
		if loadErr != nil {
			return loadErr
		}
		result, err = a.query.QuerySchema(s, *expression, maxResults)
	} else {
		data, readErr := os.ReadFile(*input)
		if readErr != nil {
			return readErr
		}
		result, err = a.query.Query(data, *expression, maxResults)
	}
	if err != nil {
		return err
	}

	for _, v := range result.Values {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Println(string(b))
	}
	for _, msg := range result.Errors {
		fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
	}
	return nil
}

func (a *app) runNodes(args []string) error {
	fs := flag.NewFlagSet("nodes", flag.ExitOnError)
	var inputs stringSlice
	fs.Var(&inputs, "i", "document or saved artifact (repeatable)")
	typeFilter := fs.String("type", "", "filter by data type")
	nameFilter := fs.String("name", "", "filter by node name")
	leafOnly := fs.Bool("leaf", false, "only leaf nodes")
	maxDepth := fs.Int("max-depth", 0, "only nodes at or above this depth")
	limit := fs.Int("limit", 0, "max nodes to print (default from config)")
	fs.Parse(args)

	if len(inputs) == 0 {
		return fmt.Errorf("nodes: at least one -i is required")
	}

	ix := nodeindex.New()
	for _, p := range inputs {
		s, err := a.resolveSchema(p)
		if err != nil {
			return err
		}
		ix.Add(s)
	}

	found := ix.Find(nodeindex.Filter{
		Type:     schema.DataType(*typeFilter),
		Name:     *nameFilter,
		LeafOnly: *leafOnly,
		MaxDepth: *maxDepth,
	})

	limitN := *limit
	if limitN <= 0 {
		limitN = a.cfg.DefaultNodeLimit
	}
	truncated := false
	if len(found) > limitN {
		found = found[:limitN]
		truncated = true
	}

	for _, n := range found {
		b, err := json.Marshal(n)
		if err != nil {
			return err
		}
		fmt.Println(string(b))
	}
	if truncated {
		fmt.Fprintf(os.Stderr, "output truncated to %d nodes\n", limitN)
	}
	return nil
}

// emitSchema writes a schema to a file, stdout, or both, in the
// requested format.
func (a *app) emitSchema(s *schema.Schema, output, format string, display, pretty bool) error {
	f, err := store.ParseFormat(format)
	if err != nil {
		return err
	}

	if output != "" {
		if err := a.store.Save(s, output, f); err != nil {
			return err
		}
		slog.Info("schema saved", "path", output, "format", string(f))
	}

	if pretty {
		fmt.Print(schema.Pretty(s))
	}
	if display || (output == "" && !pretty) {
		var text string
		switch f {
		case store.FormatJSON:
			b, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return err
			}
			text = string(b)
		case store.FormatJSONSchema:
			b, err := json.MarshalIndent(schema.ToJSONSchema(s), "", "  ")
			if err != nil {
				return err
			}
			text = string(b)
		case store.FormatXSD:
			text = schema.ToXSD(s)
		}
		fmt.Println(text)
	}
	return nil
}

func runMCP(ctx context.Context) error {
	// mcpsrv does its own config and logging setup so it behaves the same
	// when embedded outside this CLI.
	server, err := mcpsrv.NewServer()
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	slog.Info("starting schemex MCP server on stdio")
	if err := server.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	slog.Info("server stopped")
	return nil
}

// stringSlice is a repeatable string flag.
type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ",") }

func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/goliatone/go-hotelconfig/internal/config"
	"github.com/goliatone/go-hotelconfig/pkg/document"
	"github.com/goliatone/go-hotelconfig/pkg/export"
	"github.com/goliatone/go-hotelconfig/pkg/generator"
	"github.com/goliatone/go-hotelconfig/pkg/model"
	"github.com/goliatone/go-hotelconfig/pkg/renderers/tui"
	"github.com/goliatone/go-hotelconfig/pkg/schema"
	"github.com/goliatone/go-hotelconfig/pkg/seed"
	"github.com/goliatone/go-hotelconfig/pkg/validation"
)

// errInvalid is returned after the validation report was printed.
var errInvalid = errors.New("configuration is invalid")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errInvalid) || errors.Is(err, flag.ErrHelp) {
			os.Exit(1)
		}
		log.Fatalf("hotelconfig: %v", err)
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage: hotelconfig <command> [flags]

Commands:
  edit     interactively edit partners, room types and rate plans
  build    validate a seed file and export the configuration
  check    verify an existing configuration file
  schema   print the configuration JSON schema
`)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return flag.ErrHelp
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "edit":
		return runEdit(ctx, rest, stdout, stderr)
	case "build":
		return runBuild(ctx, rest, stdout, stderr)
	case "check":
		return runCheck(rest, stdout, stderr)
	case "schema":
		return runSchema(stdout)
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// newLogger writes development-format logs to stderr, at info level unless
// debug is set.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if !cfg.Debug {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return zcfg.Build()
}

func loadForm(cfg config.Config) (*model.Form, error) {
	if strings.TrimSpace(cfg.Seed) == "" {
		return seed.Default(), nil
	}
	return seed.Load(cfg.Seed)
}

func newGenerator(cfg config.Config, logger *zap.Logger) (*generator.Generator, error) {
	policy, err := cfg.DuplicatePolicy()
	if err != nil {
		return nil, err
	}
	return generator.New(generator.WithDuplicatePolicy(policy), generator.WithLogger(logger)), nil
}

func runEdit(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	empty := fs.Bool("empty", false, "start from one blank row per list instead of the sample rows")
	cfg, err := config.ParseArgs(fs, args)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	form, err := loadForm(cfg)
	if err != nil {
		return err
	}
	if *empty && cfg.Seed == "" {
		form = seed.Empty()
	}

	gen, err := newGenerator(cfg, logger)
	if err != nil {
		return err
	}

	exporter := export.New(
		export.WithDownloadDir(cfg.OutputDir),
		export.WithSaveDialog(tui.NewSaveDialog(nil, tui.WithDialogDir(cfg.OutputDir))),
		export.WithLogger(logger),
	)

	session, err := tui.NewSession(form,
		tui.WithOutput(stdout),
		tui.WithExporter(exporter),
		tui.WithGenerator(gen),
		tui.WithFilename(cfg.Filename),
		tui.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	return session.Run(ctx)
}

func runBuild(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	toStdout := fs.Bool("stdout", false, "print the document instead of writing a file")
	toClipboard := fs.Bool("copy", false, "also copy the document to the clipboard")
	cfg, err := config.ParseArgs(fs, args)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	form, err := loadForm(cfg)
	if err != nil {
		return err
	}
	gen, err := newGenerator(cfg, logger)
	if err != nil {
		return err
	}

	out, err := gen.Generate(ctx, form)
	if errors.Is(err, validation.ErrInvalid) {
		printIssues(stderr, form, out.Validation)
		return errInvalid
	}
	if err != nil {
		return err
	}

	payload := export.NewPayload(string(out.JSON))
	payload.Filename = cfg.Filename
	exporter := export.New(export.WithDownloadDir(cfg.OutputDir), export.WithLogger(logger))

	if *toClipboard {
		if err := exporter.CopyToClipboard(ctx, payload); err != nil {
			fmt.Fprintf(stderr, "clipboard: %v\n", err)
		}
	}
	if *toStdout {
		_, err := fmt.Fprintln(stdout, string(out.JSON))
		return err
	}

	res, err := exporter.Download(ctx, payload)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Configuration written to %s\n", res.Path)
	return nil
}

func printIssues(w io.Writer, form *model.Form, result validation.Result) {
	fmt.Fprintln(w, result.Message())
	for _, issue := range result.Issues {
		fmt.Fprintf(w, "  * %s row %d, %s: %s\n", issue.Kind, rowNumber(form, issue), issue.Field, issue.Message)
	}
}

func rowNumber(form *model.Form, issue validation.Issue) int {
	if issue.Kind == model.KindPartners {
		return form.Partners.Index(issue.ID) + 1
	}
	entries, err := form.Entries(issue.Kind)
	if err != nil {
		return 0
	}
	return entries.Index(issue.ID) + 1
}

func runCheck(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("check expects exactly one file")
	}

	path := fs.Arg(0)
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := schema.Check(raw); err != nil {
		var checkErr *schema.CheckError
		if errors.As(err, &checkErr) {
			fmt.Fprintf(stderr, "%s does not match the configuration schema:\n", filepath.Base(path))
			for _, v := range checkErr.Violations {
				fmt.Fprintf(stderr, "  * %s\n", v.Error())
			}
			return errInvalid
		}
		return err
	}

	doc, err := document.Parse(raw)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s: %d partners, %d room types, %d rate plans\n",
		filepath.Base(path), doc.Partners.Len(), len(doc.DisplayOrder.Rooms), len(doc.DisplayOrder.Plans))
	return nil
}

func runSchema(stdout io.Writer) error {
	raw, err := schema.JSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(raw))
	return err
}

// Command stamp-report checks a directory of drawing PDFs and writes the
// results workbook without starting a server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/a3tai/pdf-stamp-checker/internal/checker"
	"github.com/a3tai/pdf-stamp-checker/internal/config"
	"github.com/a3tai/pdf-stamp-checker/internal/report"
	"github.com/a3tai/pdf-stamp-checker/internal/stamp"
)

type options struct {
	recursive    bool
	output       string
	tables       string
	keywordsFile string
	format       string
	workers      int
	maxFiles     int
	skipFilename bool
	skipSheet    bool
	skipProject  bool
}

// Summary is the machine readable outcome printed with --format=json
type Summary struct {
	Directory string             `json:"directory"`
	Output    string             `json:"output"`
	Summary   stamp.BatchSummary `json:"summary"`
	Rows      []report.Row       `json:"rows"`
	Failures  []string           `json:"failures"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("stamp-report", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	var opts options
	flags.BoolVarP(&opts.recursive, "recursive", "r", false, "Include subdirectories")
	flags.StringVarP(&opts.output, "output", "o", "", "Workbook path (default: <dir>/"+report.FileName+")")
	flags.StringVar(&opts.tables, "tables", "", "YAML file overriding engineers, project codes and keywords")
	flags.StringVar(&opts.keywordsFile, "keywords", "", "File with supplementary keywords, one per line")
	flags.StringVar(&opts.format, "format", "text", "Summary format: text, json")
	flags.IntVar(&opts.workers, "workers", config.DefaultWorkers, "Number of files analyzed in parallel")
	flags.IntVar(&opts.maxFiles, "maxfiles", config.DefaultMaxFiles, "Maximum number of files")
	flags.BoolVar(&opts.skipFilename, "skip-filename", false, "Do not look for the file name")
	flags.BoolVar(&opts.skipSheet, "skip-sheet", false, "Do not look for the sheet number")
	flags.BoolVar(&opts.skipProject, "skip-project", false, "Do not look for the project description")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: stamp-report [OPTIONS] <directory>\n\nOptions:\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 2
	}

	if err := generate(ctx, flags.Arg(0), opts, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func generate(ctx context.Context, directory string, opts options, stdout io.Writer) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unsupported output format: %s", opts.format)
	}

	absDir, err := filepath.Abs(directory)
	if err != nil {
		return fmt.Errorf("failed to resolve directory: %w", err)
	}

	cfg := config.DefaultConfig()
	cfg.PDFDirectory = absDir
	cfg.TablesFile = opts.tables
	cfg.Workers = opts.workers
	cfg.MaxFiles = opts.maxFiles

	tables, err := checker.LoadTables(cfg)
	if err != nil {
		return err
	}

	svc, err := checker.NewService(cfg, tables)
	if err != nil {
		return err
	}

	req, err := buildRequest(opts)
	if err != nil {
		return err
	}

	rep, err := svc.CheckDirectory(ctx, "", opts.recursive, req)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = filepath.Join(absDir, report.FileName)
	}
	if err := writeWorkbook(svc, output, rep); err != nil {
		return err
	}

	if opts.format == "json" {
		return printJSON(stdout, absDir, output, rep)
	}
	printText(stdout, output, rep)
	return nil
}

func buildRequest(opts options) (checker.Request, error) {
	req := checker.DefaultRequest()
	req.Options.CheckFilename = !opts.skipFilename
	req.Options.CheckSheet = !opts.skipSheet
	req.Options.CheckProject = !opts.skipProject

	if opts.keywordsFile != "" {
		data, err := os.ReadFile(opts.keywordsFile)
		if err != nil {
			return req, fmt.Errorf("failed to read keywords file: %w", err)
		}
		req.Keywords = stamp.SplitKeywordText(string(data))
	}

	return req, nil
}

func writeWorkbook(svc *checker.Service, output string, rep *stamp.BatchReport) error {
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create workbook: %w", err)
	}

	if err := svc.WriteWorkbook(f, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printJSON(w io.Writer, dir, output string, rep *stamp.BatchReport) error {
	failures := make([]string, 0, len(rep.Failures))
	for _, f := range rep.Failures {
		failures = append(failures, f.Error())
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Summary{
		Directory: dir,
		Output:    output,
		Summary:   rep.Summary,
		Rows:      report.Rows(rep.Results),
		Failures:  failures,
	})
}

func printText(w io.Writer, output string, rep *stamp.BatchReport) {
	s := rep.Summary
	fmt.Fprintf(w, "Total files: %d\n", s.Total)
	fmt.Fprintf(w, "Name found: %d\n", s.FilenameFound)
	fmt.Fprintf(w, "Sheet found: %d\n", s.SheetFound)
	fmt.Fprintf(w, "Signed: %d\n", s.Signed)
	fmt.Fprintf(w, "Project found: %d\n", s.ProjectFound)

	if len(rep.Failures) > 0 {
		fmt.Fprintf(w, "\nFailed files:\n")
		for _, f := range rep.Failures {
			fmt.Fprintf(w, "  %v\n", f)
		}
	}

	fmt.Fprintf(w, "\nReport written to: %s\n", output)
}

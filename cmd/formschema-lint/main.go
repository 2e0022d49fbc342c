package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-formschema/internal/demo"
	"github.com/goliatone/go-formschema/pkg/lint"
)

func main() {
	strict := flag.Bool("strict", false, "treat warnings as failures")
	warnings := flag.Bool("warnings", true, "report missing and unused error messages")
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint JSON or YAML field lists. Without paths the built-in demo form is linted.\n\n"); err != nil {
			panic(err)
		}
		flag.PrintDefaults()
	}
	flag.Parse()

	linter, err := lint.New(lint.WithWarnings(*warnings))
	if err != nil {
		fmt.Fprintf(os.Stderr, "lint: %v\n", err)
		os.Exit(1)
	}

	var reports []lint.Report
	if flag.NArg() == 0 {
		report, err := linter.Lint("demo", demo.RawYAML())
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint demo: %v\n", err)
			os.Exit(1)
		}
		reports = append(reports, report)
	}
	for _, path := range flag.Args() {
		report, err := linter.LintFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		reports = append(reports, report)
	}

	failed := false
	for _, report := range reports {
		for _, issue := range report.Issues {
			fmt.Fprintf(os.Stderr, "%s: %s\n", report.Source, issue)
		}
		if report.Failed(*strict) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

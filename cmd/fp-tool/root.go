// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/structured-commons/tools/fingerprint"
)

const noSplit = -1

var (
	flagAll     bool
	flagCompare bool
	flagFormat  string
	flagSplit   int
)

var rootCmd = &cobra.Command{
	Use:   "fp-tool [OPTION]... FINGERPRINT...",
	Short: "Parse, convert, and compare Structured Commons fingerprints",
	Long: `fp-tool recognizes a fingerprint in any of its textual forms (long,
compact, or hex) and converts it to any other, or compares several
fingerprints for equality.`,
	Example: fmt.Sprintf(
		"  fp-tool -a %s\n"+
			"  fp-tool -f hex %s\n"+
			"  fp-tool -f long -s 2 %s\n"+
			"  fp-tool -f compact %s\n"+
			"  fp-tool -c %s %s",
		fingerprint.Zero.Compact(),
		fingerprint.Zero.Long(0),
		fingerprint.Ones.Long(),
		fingerprint.Zero.Compact(),
		fingerprint.Zero.Compact(), fingerprint.Ones.Compact(),
	),
	Args: cobra.MinimumNArgs(1),
	RunE: runFpTool,
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVarP(&flagAll, "all", "a", false, "display all representations")
	flags.BoolVarP(&flagCompare, "compare", "c", false, "compare the fingerprints")
	flags.StringVarP(&flagFormat, "format", "f", "", "display a specific representation (compact, long, hex, binary, carray, dec)")
	flags.IntVarP(&flagSplit, "split", "s", noSplit, "split with hyphens every N characters")
}

// Execute runs the fp-tool command line, returning any error so main can
// translate it into a process exit code.
func Execute() error {
	return rootCmd.Execute()
}

type parsedArg struct {
	fp  fingerprint.Fingerprint
	fmt fingerprint.Format
	raw string
}

func runFpTool(cmd *cobra.Command, args []string) error {
	parsed := make([]parsedArg, 0, len(args))
	hasError := false
	for _, s := range args {
		fp, f, err := fingerprint.FromString(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: fp-tool: unable to recognize %q\n", s)
			fmt.Fprintf(os.Stderr, "error: fp-tool: %v\n", err)
			hasError = true
			continue
		}
		parsed = append(parsed, parsedArg{fp: fp, fmt: f, raw: s})
	}
	if hasError {
		return fmt.Errorf("one or more arguments could not be parsed")
	}

	if flagCompare {
		return runCompare(parsed)
	}
	return runPrint(parsed)
}

func runCompare(parsed []parsedArg) error {
	first := parsed[0].fp
	var mismatched []int
	for i, p := range parsed[1:] {
		if p.fp != first {
			mismatched = append(mismatched, i+1)
		}
	}
	if len(mismatched) > 0 {
		fmt.Fprintf(os.Stderr, "fingerprints at positions %v differ from the first\n", mismatched)
		return fmt.Errorf("fingerprints differ")
	}
	return nil
}

func runPrint(parsed []parsedArg) error {
	split := splitArg()
	for _, p := range parsed {
		if flagAll {
			fmt.Printf("Argument: %q (%s)\n"+
				"  compact: %s\n"+
				"  long:    %s\n"+
				"  hex:     %s\n"+
				"  dec:     %s\n"+
				"  carray:  %s\n",
				p.raw, p.fmt,
				p.fp.Compact(),
				longWithSplit(p.fp, split),
				hexWithSplit(p.fp, split),
				p.fp.Int().String(),
				p.fp.CArray())
			continue
		}

		format := flagFormat
		if format == "" {
			format = string(p.fmt)
		}
		switch format {
		case "binary":
			os.Stdout.Write(p.fp.Binary())
		case "hex":
			fmt.Println(hexWithSplit(p.fp, split))
		case "long":
			fmt.Println(longWithSplit(p.fp, split))
		case "compact":
			fmt.Println(p.fp.Compact())
		case "carray":
			fmt.Println(p.fp.CArray())
		case "dec":
			fmt.Println(p.fp.Int().String())
		default:
			return fmt.Errorf("unknown format %q", format)
		}
	}
	return nil
}

func splitArg() []int {
	if flagSplit == noSplit {
		return nil
	}
	return []int{flagSplit}
}

func hexWithSplit(fp fingerprint.Fingerprint, split []int) string {
	return fp.Hex(split...)
}

func longWithSplit(fp fingerprint.Fingerprint, split []int) string {
	return fp.Long(split...)
}

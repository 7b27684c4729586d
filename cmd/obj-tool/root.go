// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/structured-commons/tools/fingerprint"
)

var (
	flagAllFiles bool
	flagIgnore   []string
	flagVerbose  bool
	flagProfile  bool
	flagConfig   string

	loadedConfig fileConfig
)

var rootCmd = &cobra.Command{
	Use:   "obj-tool [OPTIONS] [SOURCE] [DESTINATION]",
	Short: "Convert a Structured Commons object tree between representations",
	Long: `obj-tool reads an object tree from SOURCE and writes it to DESTINATION.
Both are METHOD:PATH, where METHOD is one of fs, json, raw, utf8, str, or
archive for SOURCE, plus fp for DESTINATION. PATH of "-" means stdin or
stdout for file-bearing methods.`,
	Example: "  obj-tool fs:. fp:compact",
	Args:    cobra.MaximumNArgs(2),
	RunE:    runObjTool,
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVarP(&flagAllFiles, "all", "a", false, "include filenames starting with .")
	flags.StringArrayVarP(&flagIgnore, "ignore", "i", nil, "ignore filenames matching PAT (repeatable)")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "run verbosely")
	flags.BoolVar(&flagProfile, "profile", false, "enable CPU profiling for this run")
	flags.StringVar(&flagConfig, "config", "", "read defaults from a YAML config file")
}

// Execute runs the obj-tool command line.
func Execute() error {
	return rootCmd.Execute()
}

func runObjTool(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}

	if flagProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	src := "raw:-"
	dst := "fp:compact"
	if len(args) > 0 {
		src = args[0]
	}
	if len(args) > 1 {
		dst = args[1]
	}

	loadedConfig = cfg

	srcMethod, srcPath, err := splitMethodPath(src)
	if err != nil {
		return fmt.Errorf("obj-tool: bad SOURCE %q: %w", src, err)
	}
	dstMethod, dstPath, err := splitMethodPath(dst)
	if err != nil {
		return fmt.Errorf("obj-tool: bad DESTINATION %q: %w", dst, err)
	}

	producer, err := readSource(srcMethod, srcPath)
	if err != nil {
		return err
	}
	if flagVerbose {
		producer = verboseProducer{p: producer, label: "source"}
	}

	base64 := cfg.Base64
	return writeDestination(dstMethod, dstPath, producer, base64)
}

func splitMethodPath(s string) (method, path string, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("expected METHOD:PATH")
	}
	return parts[0], parts[1], nil
}

func openSourceFile(path string) (*os.File, error) {
	if path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func openDestFile(path string) (*os.File, error) {
	if path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

func printFingerprint(fp fingerprint.Fingerprint, format string, split int) error {
	switch format {
	case "compact":
		fmt.Println(fp.Compact())
	case "hex":
		if split != 0 {
			fmt.Println(fp.Hex(split))
		} else {
			fmt.Println(fp.Hex())
		}
	case "long":
		if split != 0 {
			fmt.Println(fp.Long(split))
		} else {
			fmt.Println(fp.Long())
		}
	case "binary":
		os.Stdout.Write(fp.Binary())
	case "dec":
		fmt.Println(fp.Int().String())
	default:
		return fmt.Errorf("obj-tool: unknown fingerprinting method %q", format)
	}
	return nil
}

// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/structured-commons/tools/fsobject"
	"github.com/structured-commons/tools/jsonobject"
	"github.com/structured-commons/tools/object"
	"github.com/structured-commons/tools/objarchive"
	"github.com/structured-commons/tools/objtree"
)

func readSource(method, path string) (objtree.Producer, error) {
	switch method {
	case "fs":
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("obj-tool: %w", err)
		}
		return fsobject.Dir(path, flagIgnoreList()), nil

	case "raw":
		data, err := readAll(path)
		if err != nil {
			return nil, err
		}
		return object.Wrap(object.File(data)), nil

	case "utf8", "str":
		data, err := readAll(path)
		if err != nil {
			return nil, err
		}
		return object.Wrap(object.File(data)), nil

	case "json":
		data, err := readAll(path)
		if err != nil {
			return nil, err
		}
		return jsonobject.Decode(data)

	case "archive":
		f, err := openSourceFile(path)
		if err != nil {
			return nil, fmt.Errorf("obj-tool: %w", err)
		}
		if f != os.Stdin {
			defer f.Close()
		}
		return objarchive.Decode(f)

	default:
		return nil, fmt.Errorf("obj-tool: unknown input method %q", method)
	}
}

func writeDestination(method, path string, p objtree.Producer, base64 bool) error {
	switch method {
	case "fs":
		return fsobject.WriteTree(path, p, flagVerbose)

	case "json":
		f, err := openDestFile(path)
		if err != nil {
			return fmt.Errorf("obj-tool: %w", err)
		}
		if f != os.Stdout {
			defer f.Close()
		}
		return jsonobject.Write(f, p, base64)

	case "raw", "utf8", "str":
		v, err := object.Build(p)
		if err != nil {
			return err
		}
		file, ok := v.(object.File)
		if !ok {
			return fmt.Errorf("obj-tool: destination method %q requires a file, got a dictionary", method)
		}
		f, err := openDestFile(path)
		if err != nil {
			return fmt.Errorf("obj-tool: %w", err)
		}
		if f != os.Stdout {
			defer f.Close()
		}
		_, err = f.Write([]byte(file))
		return err

	case "archive":
		f, err := openDestFile(path)
		if err != nil {
			return fmt.Errorf("obj-tool: %w", err)
		}
		if f != os.Stdout {
			defer f.Close()
		}
		return objarchive.Encode(p, f)

	case "fp":
		fp, err := objtree.ComputeVerbose(p, flagVerbose)
		if err != nil {
			return err
		}
		return printFingerprint(fp, path, loadedConfig.Split)

	default:
		return fmt.Errorf("obj-tool: unknown output method %q", method)
	}
}

func readAll(path string) ([]byte, error) {
	f, err := openSourceFile(path)
	if err != nil {
		return nil, fmt.Errorf("obj-tool: %w", err)
	}
	if f != os.Stdin {
		defer f.Close()
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("obj-tool: %w", err)
	}
	return data, nil
}

func flagIgnoreList() []string {
	ignore := append([]string{}, loadedConfig.Ignore...)
	if !flagAllFiles {
		ignore = append(ignore, ".*")
	}
	ignore = append(ignore, flagIgnore...)
	return ignore
}

// verboseProducer wraps a Producer and prints one line to stderr each time
// it is driven. Only the top-level source is wrapped, so nested nodes are
// not reported here; per-node tracing comes from the fs and fp
// destinations' own verbose logging.
type verboseProducer struct {
	p     objtree.Producer
	label string
}

func (v verboseProducer) Visit(c objtree.Consumer) error {
	fmt.Fprintf(os.Stderr, "obj-tool: visiting %s\n", v.label)
	return v.p.Visit(c)
}

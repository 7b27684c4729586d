// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package jsonobject

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/structured-commons/tools/fingerprint"
	"github.com/structured-commons/tools/object"
	"github.com/structured-commons/tools/objtree"
)

// Decode parses data as a JSON document and returns an objtree.Producer
// for the tree it describes. Text-mode and base64-mode files, plain
// dictionaries, and fingerprint links are all recognized without being
// told in advance which was used, mirroring pyjson_wrap's behavior of
// inspecting each value's shape.
func Decode(data []byte) (objtree.Producer, error) {
	log.Debugf("decoding %d bytes of JSON", len(data))
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("jsonobject: %w", err)
	}
	return Read(v)
}

// ReadFrom decodes a single JSON document from r.
func ReadFrom(r io.Reader) (objtree.Producer, error) {
	var v interface{}
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return nil, fmt.Errorf("jsonobject: %w", err)
	}
	return Read(v)
}

// Read converts an already-decoded JSON value (as produced by
// encoding/json: map[string]interface{}, []interface{}, string, float64,
// bool, or nil, or as returned by Encode, which also uses []string) into
// an objtree.Producer. It is the bridge between a raw
// JSON value and object.Wrap, which already understands the
// File/Dict/Link classification once array-encoded files and links have
// been resolved to concrete Go values.
func Read(v interface{}) (objtree.Producer, error) {
	converted, err := convert(v)
	if err != nil {
		return nil, err
	}
	return object.Wrap(converted), nil
}

func convert(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case string:
		data, err := textToBytes(val)
		if err != nil {
			return nil, err
		}
		return object.File(data), nil

	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for name, child := range val {
			if err := objtree.ValidateName(name); err != nil {
				return nil, err
			}
			c, err := convertEntry(child)
			if err != nil {
				return nil, fmt.Errorf("jsonobject: entry %q: %w", name, err)
			}
			out[name] = c
		}
		return out, nil

	case []interface{}:
		return decodeArray(val)

	case []string:
		arr := make([]interface{}, len(val))
		for i, s := range val {
			arr[i] = s
		}
		return decodeArray(arr)

	default:
		return nil, fmt.Errorf("%w: top-level value of type %T", ErrInvalidDocument, v)
	}
}

// convertEntry converts a dictionary entry's JSON value. Like convert, it
// hands the one-element-array shape used for base64 files and fingerprint
// links to decodeArray. At the top level that shape is also accepted, but
// an "fp:" string there decodes to a bare fingerprint, which object.Wrap
// rejects with objtree.ErrWrongKind when the producer is visited.
func convertEntry(v interface{}) (interface{}, error) {
	if arr, ok := v.([]interface{}); ok {
		return decodeArray(arr)
	}
	return convert(v)
}

func decodeArray(arr []interface{}) (interface{}, error) {
	if len(arr) != 1 {
		return nil, fmt.Errorf("%w: array of length %d", ErrInvalidDocument, len(arr))
	}
	s, ok := arr[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: array element of type %T", ErrInvalidDocument, arr[0])
	}
	if strings.HasPrefix(strings.ToLower(s), "fp:") {
		fp, _, err := fingerprint.FromString(s)
		if err != nil {
			return nil, fmt.Errorf("jsonobject: %w", err)
		}
		return fp, nil
	}
	decoded, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return object.File(decoded), nil
}

func textToBytes(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return nil, fmt.Errorf("%w: %U", ErrNotByteValue, r)
		}
		out = append(out, byte(r))
	}
	return out, nil
}

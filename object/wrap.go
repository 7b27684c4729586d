// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package object

import (
	"fmt"

	"github.com/structured-commons/tools/fingerprint"
	"github.com/structured-commons/tools/objtree"
)

// Wrap returns an objtree.Producer that emits the canonical event sequence
// for value. value may be a File, []byte, string (all classified as a
// File), a *Dict (classified as a Dictionary) or a plain
// map[string]interface{} whose values are recursively classified: a
// fingerprint.Fingerprint becomes a Link, a File/[]byte/string becomes a
// Subordinate, and a *Dict/map[string]interface{} becomes a Table.
func Wrap(value interface{}) objtree.Producer {
	return wrapper{value}
}

type wrapper struct {
	value interface{}
}

func (w wrapper) Visit(c objtree.Consumer) error {
	switch v := w.value.(type) {
	case File:
		return visitFile(c, []byte(v))
	case []byte:
		return visitFile(c, v)
	case string:
		return visitFile(c, []byte(v))
	case *Dict:
		return visitDict(c, v)
	case map[string]interface{}:
		return visitDict(c, fromMap(v))
	default:
		return fmt.Errorf("%w: cannot wrap value of type %T", objtree.ErrWrongKind, w.value)
	}
}

func fromMap(m map[string]interface{}) *Dict {
	d := NewDict()
	for name, val := range m {
		kind, child := classify(val)
		d.Set(name, kind, child)
	}
	return d
}

func classify(val interface{}) (objtree.Kind, interface{}) {
	switch v := val.(type) {
	case fingerprint.Fingerprint:
		return objtree.KindLink, v
	case *Dict:
		return objtree.KindTable, v
	case map[string]interface{}:
		return objtree.KindTable, fromMap(v)
	case File:
		return objtree.KindSubordinate, v
	case []byte:
		return objtree.KindSubordinate, File(v)
	case string:
		return objtree.KindSubordinate, File(v)
	default:
		log.Debugf("classify: no direct mapping for %T, stringifying as a file", val)
		return objtree.KindSubordinate, File(fmt.Sprintf("%v", v))
	}
}

func visitFile(c objtree.Consumer, data []byte) error {
	if err := c.EnterFile(int64(len(data))); err != nil {
		return err
	}
	if len(data) > 0 {
		if err := c.VisitData(data); err != nil {
			return err
		}
	}
	return c.LeaveFile()
}

func visitDict(c objtree.Consumer, d *Dict) error {
	if err := c.EnterDict(); err != nil {
		return err
	}
	for _, name := range d.Names() {
		kind, child, _ := d.Get(name)
		var arg interface{}
		switch kind {
		case objtree.KindLink:
			f, ok := child.(fingerprint.Fingerprint)
			if !ok {
				return fmt.Errorf("%w: link entry %q does not carry a fingerprint", objtree.ErrWrongKind, name)
			}
			arg = f
		case objtree.KindSubordinate, objtree.KindTable:
			arg = Wrap(child)
		default:
			return fmt.Errorf("%w: entry %q has unknown kind %q", objtree.ErrWrongKind, name, kind)
		}
		if err := c.VisitEntry(name, kind, arg); err != nil {
			return err
		}
	}
	return c.LeaveDict()
}

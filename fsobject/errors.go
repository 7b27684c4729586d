// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package fsobject

import "errors"

// ErrExists is returned by WriteTree when the destination path already
// exists; the adapter never overwrites existing filesystem state.
var ErrExists = errors.New("fsobject: destination already exists")

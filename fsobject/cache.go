// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package fsobject

import (
	"encoding/binary"
	"os"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/minio/highwayhash"

	"github.com/structured-commons/tools/fingerprint"
	"github.com/structured-commons/tools/objtree"
)

const defaultCacheSize = 8192

// a fixed, arbitrary highwayhash key: the cache key only needs to be a
// fast, stable function of the stat tuple, not a secret.
var highwayKey = [32]byte{
	0x73, 0x74, 0x72, 0x75, 0x63, 0x74, 0x75, 0x72,
	0x65, 0x64, 0x2d, 0x63, 0x6f, 0x6d, 0x6d, 0x6f,
	0x6e, 0x73, 0x2d, 0x66, 0x73, 0x6f, 0x62, 0x6a,
	0x65, 0x63, 0x74, 0x2d, 0x63, 0x61, 0x63, 0x68,
}

// StatCache memoizes the fingerprint of a regular file keyed by its path
// plus a fast digest of its size, modification time and name length, so
// that repeated FingerprintPath calls on the same unchanged file do not
// re-hash it. Files reached by walking a directory are not cached. It is
// never consulted by
// fsobject's Producer/Consumer implementations directly (those always
// read real content so that any objtree.Consumer -- not just a fingerprint
// computation -- gets correct data); it is a convenience used by
// FingerprintPath, grounded on scanner/cache.go and scanner/file_scanner.go's
// stat-based memoization.
type StatCache struct {
	mu  sync.Mutex
	lru *lru.Cache
}

// NewStatCache returns a StatCache holding up to size entries (0 uses a
// sensible default).
func NewStatCache(size int) (*StatCache, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &StatCache{lru: c}, nil
}

func statKey(info os.FileInfo) uint64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(info.Size()))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(info.ModTime().UnixNano()))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(len(info.Name())))
	return highwayhash.Sum64(buf[:], highwayKey[:])
}

func (c *StatCache) lookup(path string, info os.FileInfo) (fingerprint.Fingerprint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.lru.Get(cacheKey{path, statKey(info)})
	if !ok {
		return fingerprint.Fingerprint{}, false
	}
	return v.(fingerprint.Fingerprint), true
}

func (c *StatCache) store(path string, info os.FileInfo, fp fingerprint.Fingerprint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(cacheKey{path, statKey(info)}, fp)
}

type cacheKey struct {
	path string
	stat uint64
}

// FingerprintPath computes the fingerprint of the file or directory tree
// rooted at path, consulting cache (if non-nil) first. Only a path that is
// itself a regular file is memoized; a directory is walked and hashed in
// full on every call, and neither it nor the files inside it are looked up
// in or stored to the cache.
func FingerprintPath(path string, ignore []string, cache *StatCache) (fingerprint.Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fingerprint.Fingerprint{}, err
	}
	if !info.IsDir() && cache != nil {
		if fp, ok := cache.lookup(path, info); ok {
			log.Debugf("cache hit for %s", path)
			return fp, nil
		}
	}
	fp, err := objtree.Compute(Dir(path, ignore))
	if err != nil {
		return fingerprint.Fingerprint{}, err
	}
	if !info.IsDir() && cache != nil {
		cache.store(path, info, fp)
	}
	return fp, nil
}

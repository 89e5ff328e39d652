package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/loopcontext/msgcode"
	"github.com/loopcontext/msgcode/resource"
)

// syncCatalog merges Entry literals found in code into c (overwriting), then
// adds every other referenced code that c lacks with an empty template at
// the given level. It returns the number of messages added or replaced.
func syncCatalog(c msgcode.Catalog, ext *codeExtractor, level msgcode.Level) (int, error) {
	entries := make([]msgcode.Entry, 0, len(ext.entries))
	for _, entry := range ext.entries {
		entries = append(entries, entry)
	}
	if err := c.LoadEntries(entries, msgcode.ReplaceExists); err != nil {
		return 0, err
	}
	added := len(entries)

	for _, code := range ext.sortedCodes() {
		if _, found := c.Get(code); found {
			continue
		}
		definition := code
		if !msgcode.IsValidDefinitionCode(code) {
			var err error
			definition, err = msgcode.DefinitionCodeOf(code, level)
			if err != nil {
				return added, err
			}
		}
		if err := c.Add(definition, "", false); err != nil {
			return added, err
		}
		added++
	}

	return added, nil
}

// writeResource replaces path with the encoding of entries, in the format
// given by its extension. Concurrent writers of the same file are refused.
func writeResource(path string, entries []msgcode.Entry) error {
	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("cannot lock %s: %w", path, err)
	}
	if !locked {
		return fmt.Errorf("%s is being written by another process", path)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	f, err := os.CreateTemp(filepath.Dir(path), ".msgcode-*")
	if err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	tmp := f.Name()

	if err := resource.Write(f, resource.FormatOf(path), entries); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("cannot encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}

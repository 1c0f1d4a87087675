// Package fixer writes rewritten documents back to disk.
package fixer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
)

type Fixer struct {
	DryRun bool
}

func New(dryRun bool) *Fixer {
	return &Fixer{
		DryRun: dryRun,
	}
}

// Fix stores content at filename when it differs from original. It
// reports whether the file was (or, in dry-run mode, would be) changed.
func (f *Fixer) Fix(filename string, original []byte, content string) (bool, error) {
	if string(original) == content {
		return false, nil
	}
	if f.DryRun {
		return true, nil
	}

	if err := WriteFile(filename, []byte(content)); err != nil {
		return false, fmt.Errorf("failed to write file: %w", err)
	}
	return true, nil
}

// WriteFile replaces filename with data through a temporary file in the
// same directory, so readers never observe a partial write. An existing
// file keeps its permissions.
func WriteFile(filename string, data []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(filename); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}

// Diff renders a unified diff between the two versions of filename. It
// is empty when they are equal.
func Diff(filename, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + filepath.ToSlash(filename),
		ToFile:   "b/" + filepath.ToSlash(filename),
		Context:  3,
	}
	out, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to diff %s: %w", filename, err)
	}
	return out, nil
}

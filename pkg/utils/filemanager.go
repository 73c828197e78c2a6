// =============================================================================
// Repeater List Creator - File Manager Utility
// =============================================================================
//
// This module provides the file handling the process command needs:
//   - Input directory checks and CSV discovery
//   - Output filename validation
//   - Atomic output writes
//
// WRITE STRATEGY:
//   Output is written to a hidden, uuid-named temporary file in the target
//   directory and renamed over the destination only after the writer
//   returns successfully. An interrupted or failed run leaves no output file.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ginjaninja78/repeater-list-creator/internal/repeater"
)

// CSVExtension is the only extension accepted for input and output files.
const CSVExtension = ".csv"

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureInputDir returns a FormatError unless dir exists and is a directory.
func EnsureInputDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return &repeater.FormatError{Value: dir, Reason: "directory does not exist"}
	}
	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles lists the CSV files directly inside inputDir, sorted by
// name. Subdirectories are not descended into.
func DiscoverInputFiles(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, errors.Wrap(err, "read input directory")
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), CSVExtension) {
			files = append(files, filepath.Join(inputDir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// =============================================================================
// OUTPUT NAMING
// =============================================================================

// ResolveOutputFileName validates a user-supplied output name. A name with
// no extension gets ".csv" appended; any other extension is a FormatError.
//
// EXAMPLES:
//   "colorado"      -> "colorado.csv"
//   "colorado.csv"  -> "colorado.csv"
//   "colorado.xlsx" -> FormatError
func ResolveOutputFileName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &repeater.FormatError{Value: name, Reason: "output filename is empty"}
	}

	switch filepath.Ext(name) {
	case CSVExtension:
		return name, nil
	case "":
		return name + CSVExtension, nil
	default:
		return "", &repeater.FormatError{
			Value:  name,
			Reason: fmt.Sprintf("filename must either have no extension or end with %q", CSVExtension),
		}
	}
}

// ReplaceExtension swaps the extension of path for ext.
func ReplaceExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// WriteFileAtomic calls write with a buffered writer on a temporary file and
// renames the result to path once write and the flush both succeed.
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	tmpPath := tempPath(path)

	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return errors.Wrap(err, "create temporary file")
	}
	defer func() {
		if err != nil {
			file.Close()
			os.Remove(tmpPath)
		}
	}()

	buf := bufio.NewWriter(file)
	if err = write(buf); err != nil {
		return err
	}
	if err = buf.Flush(); err != nil {
		return errors.Wrap(err, "flush temporary file")
	}
	if err = file.Close(); err != nil {
		return errors.Wrap(err, "close temporary file")
	}
	if err = os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "rename temporary file")
	}

	return nil
}

// WriteFileAtomicFrom writes a file produced by a library that only knows
// how to save to a path. save receives the temporary path.
func WriteFileAtomicFrom(path string, save func(tmpPath string) error) error {
	tmpPath := tempPath(path)
	if err := save(tmpPath); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "rename temporary file")
	}
	return nil
}

// tempPath returns a hidden sibling of path with a random component and the
// original extension, so libraries that infer format from it still work.
func tempPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s%s", base, uuid.New().String(), filepath.Ext(base)))
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

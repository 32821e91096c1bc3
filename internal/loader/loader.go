// Package loader reads account name lists from a plain text file or from
// inside a zip, rar, or 7z archive bundling one or more name-list files.
package loader

import (
	"archive/zip"
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode/v2"
)

// LoadNames dispatches to LoadNamesFromArchive or LoadNamesFromFile based
// on path's extension.
func LoadNames(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".rar", ".7z":
		return LoadNamesFromArchive(path)
	default:
		return LoadNamesFromFile(path)
	}
}

// LoadNamesFromFile reads one account name per non-blank line of a plain
// text file.
func LoadNamesFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return namesFromReader(f), nil
}

// LoadNamesFromArchive extracts every member file of the archive at path
// and parses each one line-per-name, concatenating the result across all
// member files.
func LoadNamesFromArchive(archivePath string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(archivePath))

	var contents map[string][]byte
	var err error
	switch ext {
	case ".zip":
		contents, err = extractZIP(archivePath)
	case ".rar":
		contents, err = extractRAR(archivePath)
	case ".7z":
		contents, err = extract7Z(archivePath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}
	if err != nil {
		return nil, err
	}

	// Member order from archive readers is not guaranteed stable across
	// formats, so sort member names for a deterministic name order.
	members := make([]string, 0, len(contents))
	for name := range contents {
		members = append(members, name)
	}
	sort.Strings(members)

	var names []string
	for _, name := range members {
		names = append(names, namesFromReader(bytes.NewReader(contents[name]))...)
	}
	return names, nil
}

func namesFromReader(r io.Reader) []string {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	return names
}

func extractZIP(archivePath string) (map[string][]byte, error) {
	contents := make(map[string][]byte)

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open ZIP: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open file %s: %w", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", file.Name, err)
		}
		contents[file.Name] = data
	}

	return contents, nil
}

func extractRAR(archivePath string) (contents map[string][]byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️  RAR recovery: panic while reading %s: %v", archivePath, r)
			err = fmt.Errorf("rar reader panic: %v", r)
		}
	}()
	contents = make(map[string][]byte)

	reader, err := rardecode.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open RAR: %w", err)
	}
	defer reader.Close()

	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read RAR header: %w", err)
		}
		if header.IsDir {
			continue
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", header.Name, err)
		}
		contents[header.Name] = data
	}

	return contents, nil
}

func extract7Z(archivePath string) (map[string][]byte, error) {
	contents := make(map[string][]byte)

	reader, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open 7Z: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open file %s: %w", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", file.Name, err)
		}
		contents[file.Name] = data
	}

	return contents, nil
}

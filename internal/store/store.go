// Package store persists Report results keyed by a fingerprint of the
// input name list plus the clustering parameters, so a repeat run with
// identical input and settings can skip reclustering entirely.
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/dontbeproud/accountcluster/internal/reporter"
)

// Store wraps a sqlite-backed report cache.
type Store struct {
	db *sql.DB
}

// New opens (creating if necessary) the cache database under the user's
// config directory.
func New() (*Store, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	dbPath := filepath.Join(configDir, "account-cluster-cache.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS report_cache (
		fingerprint TEXT NOT NULL,
		mode TEXT NOT NULL,
		threshold REAL NOT NULL,
		min_group_members INTEGER NOT NULL,
		report_json TEXT NOT NULL,
		PRIMARY KEY (fingerprint, mode, threshold, min_group_members)
	)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Fingerprint hashes the sorted, deduplicated name list into a stable
// cache key, independent of input ordering or duplicate entries.
func Fingerprint(names []string) string {
	seen := make(map[string]struct{}, len(names))
	uniq := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		uniq = append(uniq, n)
	}
	sort.Strings(uniq)

	h := sha256.New()
	for _, n := range uniq {
		h.Write([]byte(n))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Get looks up a previously cached report for the given fingerprint and
// parameters.
func (s *Store) Get(fingerprint, mode string, threshold float64, minGroupMembers int) (reporter.Report, bool) {
	var jsonStr string
	err := s.db.QueryRow(
		"SELECT report_json FROM report_cache WHERE fingerprint = ? AND mode = ? AND threshold = ? AND min_group_members = ?",
		fingerprint, mode, threshold, minGroupMembers,
	).Scan(&jsonStr)
	if err != nil {
		return reporter.Report{}, false
	}

	var rep reporter.Report
	if err := json.Unmarshal([]byte(jsonStr), &rep); err != nil {
		return reporter.Report{}, false
	}
	return rep, true
}

// Put stores a report under the given fingerprint and parameters.
func (s *Store) Put(fingerprint, mode string, threshold float64, minGroupMembers int, rep reporter.Report) {
	data, err := json.Marshal(rep)
	if err != nil {
		return
	}
	_, _ = s.db.Exec(
		"INSERT OR REPLACE INTO report_cache (fingerprint, mode, threshold, min_group_members, report_json) VALUES (?, ?, ?, ?, ?)",
		fingerprint, mode, threshold, minGroupMembers, string(data),
	)
}

// Package database discovers formatted BLAST databases on disk.
package database

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type Type string

const (
	Nucleotide Type = "nucleotide"
	Protein    Type = "protein"
)

// Database is one formatted BLAST database. Name is the directory-relative
// identifier used in forms and retrieval links; Path is the absolute
// argument handed to the BLAST binaries.
type Database struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
	Path string `json:"path"`
}

// Multi-volume databases carry a numeric infix (nt.00.nin, nt.01.nin).
var volumeSuffix = regexp.MustCompile(`\.\d+$`)

// Scan walks dir recursively for BLAST volume index files (*.nin for
// nucleotide, *.pin for protein databases) and returns one entry per
// database, volumes collapsed, sorted by name.
func Scan(dir string) ([]Database, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), "**/*.{nin,pin}")
	if err != nil {
		return nil, fmt.Errorf("scan database dir %q: %w", dir, err)
	}

	seen := make(map[string]struct{})
	var dbs []Database
	for _, m := range matches {
		typ := Nucleotide
		if strings.HasSuffix(m, ".pin") {
			typ = Protein
		}
		base := strings.TrimSuffix(strings.TrimSuffix(m, ".nin"), ".pin")
		base = volumeSuffix.ReplaceAllString(base, "")

		key := string(typ) + ":" + base
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		dbs = append(dbs, Database{
			Name: base,
			Type: typ,
			Path: filepath.Join(dir, filepath.FromSlash(base)),
		})
	}

	sort.Slice(dbs, func(i, j int) bool {
		if dbs[i].Name != dbs[j].Name {
			return dbs[i].Name < dbs[j].Name
		}
		return dbs[i].Type < dbs[j].Type
	})
	return dbs, nil
}

// Find resolves a database by name.
func Find(dbs []Database, name string) (Database, bool) {
	for _, db := range dbs {
		if db.Name == name {
			return db, true
		}
	}
	return Database{}, false
}

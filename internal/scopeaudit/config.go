// Package scopeaudit statically checks that every SQL statement touching a
// tenant-owned table carries an outfitter_id predicate. It parses Go source
// with go/ast and inspects string literals, so it runs offline with no
// database and no running server.
package scopeaudit

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives an audit run. Tables lists the tenant-owned tables every
// statement must scope; Exempt lists tables that are intentionally not
// tenant-scoped (global tables, or tables keyed by something else).
type Config struct {
	// Roots are the directories to walk for Go files, relative to the
	// repository root.
	Roots []string `yaml:"roots"`
	// Tables are tenant-owned: any SQL literal referencing one of these
	// must also reference outfitter_id.
	Tables []string `yaml:"tables"`
	// Exempt tables are ignored entirely.
	Exempt []string `yaml:"exempt"`
	// SkipFiles are path suffixes to skip, such as generated code.
	SkipFiles []string `yaml:"skipFiles"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.Tables) == 0 {
		return Config{}, fmt.Errorf("config %s lists no tables to audit", path)
	}
	if len(cfg.Roots) == 0 {
		cfg.Roots = []string{"."}
	}
	return cfg, nil
}

package scopeaudit

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Finding is one unscoped SQL statement.
type Finding struct {
	File       string
	Line       int
	Table      string
	Snippet    string
	Suggestion string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s:%d: %s touches %q without an outfitter_id predicate\n\t%s", f.File, f.Line, f.Snippet, f.Table, f.Suggestion)
}

// verbRe matches the clause that names the target table, so plain column
// names that happen to equal a table name do not trip the audit.
var verbRe = regexp.MustCompile(`(?i)\b(from|into|update|join)\s+([a-z_]+)`)

var outfitterIDRe = regexp.MustCompile(`(?i)\boutfitter_id\b`)

// Run walks the configured roots under rootDir and returns every SQL string
// literal that references a tenant table without scoping it.
func Run(rootDir string, cfg Config) ([]Finding, error) {
	tenantTables := make(map[string]bool, len(cfg.Tables))
	for _, t := range cfg.Tables {
		tenantTables[strings.ToLower(t)] = true
	}
	exempt := make(map[string]bool, len(cfg.Exempt))
	for _, t := range cfg.Exempt {
		exempt[strings.ToLower(t)] = true
	}

	var findings []Finding
	for _, root := range cfg.Roots {
		dir := filepath.Join(rootDir, root)
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if d.Name() == "testdata" || strings.HasPrefix(d.Name(), "_") {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
				return nil
			}
			for _, skip := range cfg.SkipFiles {
				if strings.HasSuffix(path, skip) {
					return nil
				}
			}

			rel, relErr := filepath.Rel(rootDir, path)
			if relErr != nil {
				rel = path
			}
			fileFindings, auditErr := auditFile(path, rel, tenantTables, exempt)
			if auditErr != nil {
				return auditErr
			}
			findings = append(findings, fileFindings...)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return findings, nil
}

func auditFile(path, rel string, tenantTables, exempt map[string]bool) ([]Finding, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rel, err)
	}

	var findings []Finding
	ast.Inspect(file, func(n ast.Node) bool {
		lit, ok := n.(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return true
		}
		value, err := strconv.Unquote(lit.Value)
		if err != nil {
			return true
		}
		if f, bad := checkStatement(value, tenantTables, exempt); bad {
			f.File = rel
			f.Line = fset.Position(lit.Pos()).Line
			findings = append(findings, f)
		}
		return true
	})
	return findings, nil
}

// checkStatement reports whether a string literal is a SQL statement on a
// tenant table that never mentions outfitter_id.
func checkStatement(value string, tenantTables, exempt map[string]bool) (Finding, bool) {
	lowered := strings.ToLower(value)
	if !looksLikeSQL(lowered) {
		return Finding{}, false
	}

	for _, m := range verbRe.FindAllStringSubmatch(lowered, -1) {
		table := m[2]
		if exempt[table] || !tenantTables[table] {
			continue
		}
		if outfitterIDRe.MatchString(lowered) {
			continue
		}
		return Finding{
			Table:      table,
			Snippet:    snippet(value),
			Suggestion: suggestionFor(strings.ToLower(m[1]), table),
		}, true
	}
	return Finding{}, false
}

func looksLikeSQL(lowered string) bool {
	for _, verb := range []string{"select ", "insert ", "update ", "delete "} {
		if strings.Contains(lowered, verb) {
			return true
		}
	}
	return false
}

func suggestionFor(verb, table string) string {
	if verb == "into" {
		return fmt.Sprintf("add outfitter_id to the %s column list and bind it from the request scope", table)
	}
	return fmt.Sprintf("add an outfitter_id predicate to the statement on %s", table)
}

// snippet collapses a statement to its first meaningful line.
func snippet(value string) string {
	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			if len(line) > 80 {
				line = line[:80] + "..."
			}
			return line
		}
	}
	return ""
}

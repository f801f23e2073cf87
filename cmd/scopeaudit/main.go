// Command scopeaudit statically verifies that every SQL statement on a
// tenant-owned table carries an outfitter_id predicate. It is meant to run
// in CI; a non-zero exit means an unscoped statement slipped in.
package main

import (
	"flag"
	"fmt"
	"os"

	"outfitter_backend/internal/scopeaudit"
)

func main() {
	configPath := flag.String("config", ".scopeaudit.yaml", "path to the audit configuration")
	rootDir := flag.String("root", ".", "repository root to scan")
	flag.Parse()

	cfg, err := scopeaudit.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "scopeaudit:", err)
		os.Exit(2)
	}

	findings, err := scopeaudit.Run(*rootDir, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "scopeaudit:", err)
		os.Exit(2)
	}

	if len(findings) == 0 {
		fmt.Println("scopeaudit: all statements on tenant tables are scoped")
		return
	}

	for _, f := range findings {
		fmt.Fprintln(os.Stderr, f.String())
	}
	fmt.Fprintf(os.Stderr, "scopeaudit: %d unscoped statement(s)\n", len(findings))
	os.Exit(1)
}

//go:build mage

// Package main contains Mage build targets for nllegalcit developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "nllegalcit"
	cmdPkg  = "./cmd/nllegalcit"

	// grammarDump is the checked-in BNF listing of the built-in grammar.
	grammarDump = "internal/grammar/resources/citations.bnf"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version := "dev"
	if v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty"); err == nil && v != "" {
		version = v
	}
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Grammar validates the built-in grammar and writes its compiled
// productions to the BNF listing next to the resources.
func Grammar() error {
	mg.Deps(Build)

	bin := filepath.Join(binDir, binName)
	if err := sh.RunV(bin, "grammar", "check"); err != nil {
		return err
	}
	dump, err := sh.Output(bin, "grammar", "dump")
	if err != nil {
		return fmt.Errorf("dumping grammar: %w", err)
	}
	if err := os.WriteFile(grammarDump, []byte(dump+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", grammarDump, err)
	}
	fmt.Printf("Wrote %s (%d productions)\n", grammarDump, strings.Count(dump, "\n")+1)
	return nil
}

// Stats prints project metrics: Go production/test LOC, grammar size and
// documentation word count.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}
	grammarLines, err := countGrammarLines("internal/grammar/resources")
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Lines of grammar (YAML):        %d\n", grammarLines)
	fmt.Printf("Words (documentation):          %d\n", docWords)
	return nil
}

// skipDir reports whether a directory is outside the project sources.
func skipDir(name string) bool {
	return name != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == binDir)
}

// countGoLines walks the directory tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	return countLines(root, func(path string) bool {
		if filepath.Ext(path) != ".go" {
			return false
		}
		return strings.HasSuffix(path, "_test.go") == testOnly
	})
}

// countGrammarLines counts non-blank, non-comment lines in grammar documents.
func countGrammarLines(root string) (int, error) {
	return countLines(root, func(path string) bool {
		return filepath.Ext(path) == ".yaml"
	})
}

func countLines(root string, match func(path string) bool) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if skipDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !match(path) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "#") {
				total++
			}
		}
		return nil
	})
	return total, err
}

// countDocWords counts words in the Markdown files at the top of root.
func countDocWords(root string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(root, "*.md"))
	if err != nil {
		return 0, err
	}
	total := 0
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(strings.Fields(string(data)))
	}
	return total, nil
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docgen reads docs/commands/*.md and generates man pages (via md2man) and
// tldr pages from them. The markdown layout is fixed: an H1 title, a
// "Short description" paragraph, and a "Quick examples" fenced block where
// comment lines describe the command line that follows.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
)

func main() {
	var (
		repoRoot      string
		onlyIfChanged bool
	)
	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&onlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	if err := generate(repoRoot, onlyIfChanged); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// page is one parsed command document.
type page struct {
	Command  string
	Raw      []byte
	Short    string
	Examples []example
}

type example struct {
	Desc string
	Cmd  string
}

func generate(repoRoot string, onlyIfChanged bool) error {
	commandsDir := filepath.Join(repoRoot, "docs", "commands")
	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(repoRoot, "docs", "tldr")

	for _, dir := range []string{manOutDir, tldrOutDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir %s: %w", dir, err)
		}
	}

	entries, err := os.ReadDir(commandsDir)
	if err != nil {
		return fmt.Errorf("reading commands dir %s: %w", commandsDir, err)
	}

	var processed int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}

		p, err := parsePage(commandsDir, e.Name())
		if err != nil {
			return err
		}

		manPath := filepath.Join(manOutDir, "parkmenu-"+p.Command+".1")
		if err := writeFileIfChanged(manPath, md2man.Render(p.Raw), onlyIfChanged); err != nil {
			return fmt.Errorf("writing man page for %s: %w", p.Command, err)
		}

		tldrPath := filepath.Join(tldrOutDir, "parkmenu-"+p.Command+".md")
		if err := writeFileIfChanged(tldrPath, []byte(p.tldr()), onlyIfChanged); err != nil {
			return fmt.Errorf("writing tldr page for %s: %w", p.Command, err)
		}

		processed++
	}

	if processed == 0 {
		return fmt.Errorf("no command markdown found under %s", commandsDir)
	}
	return nil
}

func parsePage(dir, name string) (page, error) {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return page{}, fmt.Errorf("reading %s: %w", name, err)
	}

	p := page{
		Command: strings.TrimSuffix(name, ".md"),
		Raw:     raw,
	}
	p.Short = shortDescription(string(raw))
	p.Examples = quickExamples(string(raw))
	return p, nil
}

// shortDescription returns the first paragraph after the "Short description"
// heading, joined to one line.
func shortDescription(md string) string {
	idx := strings.Index(strings.ToLower(md), "short description")
	if idx < 0 {
		return ""
	}

	var parts []string
	lines := strings.Split(md[idx:], "\n")
	for _, ln := range lines[1:] {
		trimmed := strings.TrimSpace(ln)
		if trimmed == "" {
			if len(parts) > 0 {
				break
			}
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			break
		}
		parts = append(parts, trimmed)
	}
	return strings.Join(parts, " ")
}

// quickExamples parses the fenced block under "Quick examples": a comment
// line is the description of the command line that follows it.
func quickExamples(md string) []example {
	idx := strings.Index(strings.ToLower(md), "quick examples")
	if idx < 0 {
		return nil
	}

	const fence = "```"
	rest := md[idx:]
	start := strings.Index(rest, fence)
	if start < 0 {
		return nil
	}
	rest = rest[start+len(fence):]
	end := strings.Index(rest, fence)
	if end < 0 {
		return nil
	}

	var (
		exs  []example
		desc string
	)
	for _, ln := range strings.Split(rest[:end], "\n") {
		trimmed := strings.TrimSpace(ln)
		switch {
		case trimmed == "":
		case strings.HasPrefix(trimmed, "#"):
			desc = strings.TrimSpace(strings.TrimLeft(trimmed, "# "))
		default:
			if desc == "" {
				desc = "Example"
			}
			exs = append(exs, example{Desc: desc, Cmd: strings.Join(strings.Fields(trimmed), " ")})
			desc = ""
		}
	}
	return exs
}

func (p page) tldr() string {
	var b strings.Builder
	b.WriteString("# parkmenu-" + p.Command + "\n\n")
	if p.Short != "" {
		b.WriteString("> " + p.Short + "\n")
	} else {
		b.WriteString("> parkmenu " + p.Command + "\n")
	}
	b.WriteString("> More information: https://github.com/staranto/parkmenugo.\n\n")

	if len(p.Examples) == 0 {
		b.WriteString("- Show help for the command:\n\n")
		b.WriteString("`parkmenu " + p.Command + " --help`\n")
		return b.String()
	}

	for i, ex := range p.Examples {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + ex.Desc + ":\n\n")
		b.WriteString("`" + ex.Cmd + "`\n")
	}
	return b.String()
}

func writeFileIfChanged(path string, content []byte, onlyIfChanged bool) error {
	if onlyIfChanged {
		old, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err == nil && bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(content)) {
			return nil
		}
	}
	return os.WriteFile(path, content, 0o644)
}

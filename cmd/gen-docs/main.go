package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/stigoleg/jiggler/internal/cli"
)

// gen-docs writes shell completions and a roff man page generated from the
// command tree, so they never drift from --help.

const appName = "jiggler"

func main() {
	root := cli.NewRootCommand("")

	if err := writeCompletions(root, filepath.Join("docs", "completions")); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := writeMan(root, "man"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func writeCompletions(root *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	gens := map[string]func(*os.File) error{
		appName + ".bash": func(f *os.File) error { return root.GenBashCompletionV2(f, true) },
		"_" + appName:     func(f *os.File) error { return root.GenZshCompletion(f) },
		appName + ".fish": func(f *os.File) error { return root.GenFishCompletion(f, true) },
		appName + ".ps1":  func(f *os.File) error { return root.GenPowerShellCompletionWithDesc(f) },
	}

	for name, gen := range gens {
		if err := writeFile(filepath.Join(dir, name), gen); err != nil {
			return fmt.Errorf("completion %s: %w", name, err)
		}
	}
	return nil
}

func writeFile(path string, gen func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gen(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeMan(root *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(".TH \"" + strings.ToUpper(appName) + "\" \"1\" \"\" \"" + appName + "\" \"User Commands\"\n")
	b.WriteString(".SH NAME\n" + appName + " \\- " + roff(root.Short) + "\n")
	b.WriteString(".SH SYNOPSIS\n.B " + appName + "\n[flags]\n")
	b.WriteString(".br\n.B " + appName + "\n<command> [flags]\n")
	b.WriteString(".SH DESCRIPTION\n" + roff(root.Long) + "\n")

	b.WriteString(".SH OPTIONS\n")
	seen := map[string]bool{}
	visit := func(f *pflag.Flag) {
		if f.Hidden || seen[f.Name] {
			return
		}
		seen[f.Name] = true
		b.WriteString(".TP\n\\fB" + flagNames(f) + "\\fR\n" + roff(f.Usage) + "\n")
	}
	root.PersistentFlags().VisitAll(visit)
	root.Flags().VisitAll(visit)

	b.WriteString(".SH COMMANDS\n")
	for _, c := range root.Commands() {
		if c.Hidden || !c.IsAvailableCommand() {
			continue
		}
		b.WriteString(".TP\n\\fB" + appName + " " + c.Name() + "\\fR\n" + roff(c.Short) + "\n")
		for _, sub := range c.Commands() {
			b.WriteString(".TP\n\\fB" + appName + " " + c.Name() + " " + sub.Name() + "\\fR\n" + roff(sub.Short) + "\n")
		}
	}

	b.WriteString(".SH EXAMPLES\n.nf\n" + roff(root.Example) + "\n.fi\n")
	b.WriteString(".SH FILES\nSettings are read from \\fIjiggler/config.toml\\fR in the user config directory and reloaded when the file changes.\n")
	return os.WriteFile(filepath.Join(dir, appName+".1"), []byte(b.String()), 0o644)
}

func flagNames(f *pflag.Flag) string {
	names := "\\-\\-" + f.Name
	if f.Shorthand != "" {
		names = "\\-" + f.Shorthand + ", " + names
	}
	if f.Value.Type() != "bool" {
		names += " <" + f.Value.Type() + ">"
	}
	return names
}

// roff escapes backslashes and hyphens, and guards lines that start with a control character.
func roff(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "-", "\\-")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, ".") || strings.HasPrefix(line, "'") {
			lines[i] = "\\&" + line
		}
	}
	return strings.Join(lines, "\n")
}

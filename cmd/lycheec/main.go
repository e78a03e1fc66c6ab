// Command lycheec wires the Name Resolver, the Expression Analyzer, and
// the Generic Instantiation Tracker into a runnable CLI: read a project
// manifest, hand its entry program to the resolver, run the analyzer, and
// report diagnostics or (with -print-typed) the resulting typed tree.
//
// The lexer and parser are external collaborators spec.md §1 places out
// of scope, so this binary has no source-text-to-AST path; it resolves a
// manifest's entry name against the built-in example programs in
// examples.go instead. A downstream build that wires a real parser swaps
// loadProgram's body for one that calls it.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lychee-tools/lychee/internal/analyzer"
	"github.com/lychee-tools/lychee/internal/ast"
	"github.com/lychee-tools/lychee/internal/clog"
	"github.com/lychee-tools/lychee/internal/config"
	"github.com/lychee-tools/lychee/internal/diagnostics"
	"github.com/lychee-tools/lychee/internal/resolver"
	"github.com/lychee-tools/lychee/internal/session"
	"github.com/lychee-tools/lychee/internal/typesystem"
)

func main() {
	manifestPath := flag.String("manifest", "lychee.yaml", "path to the project manifest")
	printTyped := flag.Bool("print-typed", false, "print the analyzed typed tree on success")
	verbose := flag.Bool("verbose", false, "emit progress lines to stderr")
	flag.Parse()

	clog.Verbose = *verbose

	os.Exit(run(*manifestPath, *printTyped))
}

func run(manifestPath string, printTyped bool) int {
	entry := "examples::arithmetic"
	if manifest, err := config.Load(manifestPath); err != nil {
		clog.Printf("no usable manifest at %s (%v); running the default example", manifestPath, err)
	} else {
		entry = manifest.Entry
		clog.Printf("loaded manifest %s, entry %s, roots %v", manifestPath, manifest.Entry, manifest.Roots)
	}

	program, err := loadProgram(entry)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	sess := session.New()
	clog.Printf("session %s: resolving %s", sess, entry)

	resolved, err := resolver.Build(program)
	if err != nil {
		reportFatal(sess, err)
		return 1
	}

	analyzed, err := analyzer.AnalyzeProgram(program, resolved, sess)
	if err != nil {
		reportFatal(sess, err)
		return 1
	}

	clog.Printf("session %s: analyzed %d function(s), %d generic function instance(s), %d generic struct instance(s)",
		sess, len(analyzed.Functions), len(analyzed.Instances.Functions()), len(analyzed.Instances.Structs()))

	if printTyped {
		fmt.Println(analyzer.PrintProgram(analyzed))
	}

	for _, inst := range analyzed.Instances.Functions() {
		fmt.Printf("instance fn %s%s\n", inst.ID, formatArgs(inst.Args))
	}
	for _, inst := range analyzed.Instances.Structs() {
		fmt.Printf("instance struct %s%s\n", inst.ID, formatArgs(inst.Args))
	}

	return 0
}

func loadProgram(entry string) (*ast.Program, error) {
	build, ok := examplePrograms[entry]
	if !ok {
		return nil, fmt.Errorf("lycheec: unknown entry %q; known examples: %v", entry, exampleNames())
	}
	return build(), nil
}

func exampleNames() []string {
	names := make([]string, 0, len(examplePrograms))
	for name := range examplePrograms {
		names = append(names, name)
	}
	return names
}

func formatArgs(args []typesystem.Type) string {
	out := "<"
	for i, a := range args {
		if i > 0 {
			out += ", "
		}
		out += a.String()
	}
	return out + ">"
}

// reportFatal prints a single analysis failure. A *diagnostics.Error
// carries a stable code, so it is routed through a one-element
// diagnostics.Set to reuse the same isatty-gated formatting the CLI would
// use for a batch of errors; any other error (resolver failures are still
// plain fmt.Errorf-wrapped values, per spec.md §4.1) is printed as-is.
func reportFatal(sess session.Session, err error) {
	clog.Printf("session %s: analysis failed", sess)
	if diag, ok := err.(*diagnostics.Error); ok {
		set := diagnostics.NewSet()
		set.Add(diag)
		set.Print(os.Stderr)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

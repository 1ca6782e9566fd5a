// Package cmd implements the unboxlower CLI, grounded on go-dws's
// cmd/dwscript/cmd package: a cobra root command with subcommands
// registered from init(), a package-level Version/GitCommit/BuildDate set
// by build flags, and a shared --verbose persistent flag.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "unboxlower",
	Short: "Unboxing Lowering Pass driver",
	Long: `unboxlower runs the Unboxing Lowering Pass over a program's AST,
rewriting boxed-primitive types (Bool/Char/Byte/Short/Int/Long/Float/Double
wrappers) to their unboxed primitives wherever a surrounding context
permits it, inserting box/unbox/convert nodes at the boundaries that
remain.

Since this pass sits downstream of parsing, name binding, and type
checking, unboxlower operates on hand-built and sample programs rather
than source text — see 'unboxlower list-samples' for the fixtures it
ships with.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

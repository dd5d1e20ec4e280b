package internal

import (
	"errors"
	"fmt"

	"github.com/goplus/mkpatch/internal/env"
	"github.com/goplus/mkpatch/pkgs/buildfile"
	"github.com/goplus/mkpatch/pkgs/buildfile/gmake"
	"github.com/spf13/cobra"
)

var (
	compilerCC      string
	compilerCXX     string
	compilerEnvFile string
	compilerDryRun  bool
)

var compilerCmd = &cobra.Command{
	Use:     "compiler --cc=<cc> --cxx=<cxx> <dir>",
	Aliases: []string{"cc"},
	Short:   "Replace CC/CXX in generated makefiles",
	Long: `Compiler rewrites the CC and CXX assignments of every *.make file in dir.
A variable is only rewritten when a value is given for it.`,
	Example: "  mkpatch compiler --cc=gcc --cxx=g++ build",
	Args:    cobra.ExactArgs(1),
	RunE:    runCompiler,
}

func init() {
	compilerCmd.Flags().StringVar(&compilerCC, "cc", "", "C compiler to assign to CC")
	compilerCmd.Flags().StringVar(&compilerCXX, "cxx", "", "C++ compiler to assign to CXX")
	compilerCmd.Flags().StringVar(&compilerEnvFile, "env-file", "", "Dotenv file providing CC/CXX not given as flags")
	addDryRunFlag(compilerCmd.Flags(), &compilerDryRun)
	rootCmd.AddCommand(compilerCmd)
}

func runCompiler(cmd *cobra.Command, args []string) error {
	dir := args[0]

	c := gmake.Compilers{CC: compilerCC, CXX: compilerCXX}
	if compilerEnvFile != "" {
		cc, cxx, err := env.Compilers(compilerEnvFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", compilerEnvFile, err)
		}
		if c.CC == "" {
			c.CC = cc
		}
		if c.CXX == "" {
			c.CXX = cxx
		}
	}

	results, err := gmake.Patch(dir, c, buildfile.Options{DryRun: compilerDryRun})
	if errors.Is(err, gmake.ErrNoCompiler) {
		return fmt.Errorf("%w\nusage: %s", err, cmd.UseLine())
	}
	if err != nil {
		return err
	}

	report(cmd.OutOrStdout(), results, compilerDryRun)
	return nil
}

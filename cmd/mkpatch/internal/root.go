package internal

import (
	"fmt"
	"io"

	"github.com/goplus/mkpatch/pkgs/buildfile"
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "mkpatch",
	Short: "mkpatch fixes up build files generated by premake",
	Long: `mkpatch rewrites generated build files in place: compiler variables in
gmake makefiles and the platform toolset of Visual Studio projects.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := log.Linfo
		if verbose {
			level = log.Ldebug
		}
		log.SetOutputLevel(level)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every processed file")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// A failing command exits the process with a non-zero status.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}

func addDryRunFlag(fs *pflag.FlagSet, p *bool) {
	fs.BoolVarP(p, "dry-run", "n", false, "Report files that would change without writing them")
}

// report prints one line per changed file and logs a summary.
func report(w io.Writer, results []buildfile.Result, dryRun bool) {
	verb := "patched"
	if dryRun {
		verb = "would patch"
	}
	changed := buildfile.Changed(results)
	for _, res := range changed {
		fmt.Fprintf(w, "%s %s\n", verb, res.Path)
	}
	log.Debugf("%d of %d files changed", len(changed), len(results))
}

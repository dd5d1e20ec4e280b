package internal

import (
	"github.com/goplus/mkpatch/internal/env"
	"github.com/goplus/mkpatch/pkgs/buildfile"
	"github.com/goplus/mkpatch/pkgs/buildfile/vcxproj"
	"github.com/spf13/cobra"
)

var (
	toolsetTag    string
	toolsetDryRun bool
)

var toolsetCmd = &cobra.Command{
	Use:   "toolset [dir]",
	Short: "Force the platform toolset of generated Visual Studio projects",
	Long: `Toolset sets the PlatformToolset of every *.vcxproj file in dir
(default "build"), whatever it was before.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runToolset,
}

func init() {
	toolsetCmd.Flags().StringVar(&toolsetTag, "toolset", string(vcxproj.DefaultToolset), "PlatformToolset to write")
	addDryRunFlag(toolsetCmd.Flags(), &toolsetDryRun)
	rootCmd.AddCommand(toolsetCmd)
}

func runToolset(cmd *cobra.Command, args []string) error {
	dir := env.DefaultBuildDir
	if len(args) == 1 {
		dir = args[0]
	}

	results, err := vcxproj.Rewrite(dir, vcxproj.Toolset(toolsetTag), buildfile.Options{DryRun: toolsetDryRun})
	if err != nil {
		return err
	}

	report(cmd.OutOrStdout(), results, toolsetDryRun)
	return nil
}

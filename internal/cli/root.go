package cli

import "github.com/spf13/cobra"

func NewRootCmd(version string) *cobra.Command {
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "boarding",
		Short:         "Bus boarding sequence generator",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	outputFn := func(cmd *cobra.Command) *Output {
		return NewOutput(jsonOutput, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	rootCmd.AddCommand(
		NewGenerateCmd(outputFn),
		NewInteractiveCmd(outputFn),
		NewSampleCmd(outputFn),
	)

	return rootCmd
}

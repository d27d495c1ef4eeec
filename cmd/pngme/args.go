package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/ysh86/pngme/commands"
	"github.com/ysh86/pngme/png"
)

// invocation is the result of parsing the command line.
type invocation struct {
	request commands.Request

	configPath string
	logLevel   string
	noColor    bool
	// verboseSet is true if --verbose was given explicitly.
	verboseSet bool
}

// parseArgs maps the command line to a request. A fresh command tree is built
// on every call. It returns nil if only help was requested.
func parseArgs(args []string, out io.Writer) (*invocation, error) {
	inv := &invocation{}
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}

	rootCmd := &cobra.Command{
		Use:           "pngme",
		Short:         "Hide and recover messages in png chunks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&inv.configPath, "config", "", "Path to the config file. Alternatively, set PNGME_CONFIG.")
	flags.StringVar(&inv.logLevel, "log-level", "", "Log level: debug, info, warn or error.")
	flags.BoolVar(&inv.noColor, "no-color", false, "Disable colored log output.")
	_ = rootCmd.MarkPersistentFlagFilename("config", "yaml", "yml")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "encode PATH CHUNK_TYPE MESSAGE",
			Short: "Append a chunk holding MESSAGE to the png file",
			Long: "Append a chunk holding MESSAGE to the png file.\n\n" +
				"Use a lower case first letter (ancillary) and an upper case third letter,\n" +
				"e.g. ruSt, so that image viewers ignore the chunk.",
			Args: cobra.MatchAll(cobra.ExactArgs(3), chunkTypeArg(1)),
			RunE: func(cmd *cobra.Command, args []string) error {
				inv.request = commands.Encode{Path: args[0], ChunkType: args[1], Message: args[2]}
				return nil
			},
		},
		&cobra.Command{
			Use:   "decode PATH CHUNK_TYPE",
			Short: "Print the message of the first chunk of CHUNK_TYPE",
			Args:  cobra.MatchAll(cobra.ExactArgs(2), chunkTypeArg(1)),
			RunE: func(cmd *cobra.Command, args []string) error {
				inv.request = commands.Decode{Path: args[0], ChunkType: args[1]}
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove PATH CHUNK_TYPE",
			Short: "Remove the first chunk of CHUNK_TYPE from the png file",
			Args:  cobra.MatchAll(cobra.ExactArgs(2), chunkTypeArg(1)),
			RunE: func(cmd *cobra.Command, args []string) error {
				inv.request = commands.Remove{Path: args[0], ChunkType: args[1]}
				return nil
			},
		},
		newPrintCmd(inv),
		&cobra.Command{
			Use:   "verify PATH...",
			Short: "Check the signature and every chunk CRC of the png files",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				inv.request = commands.Verify{Paths: args}
				return nil
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}
	if inv.request == nil {
		return nil, nil
	}
	return inv, nil
}

func newPrintCmd(inv *invocation) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "print PATH",
		Short: "List the chunks of the png file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv.verboseSet = cmd.Flags().Changed("verbose")
			inv.request = commands.Print{Path: args[0], Verbose: verbose}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show offsets, sizes, CRCs and decoded well-known chunks.")
	return cmd
}

// chunkTypeArg validates that args[i] is a chunk type code.
func chunkTypeArg(i int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if i >= len(args) {
			return nil
		}
		_, err := png.ParseChunkType(args[i])
		return err
	}
}

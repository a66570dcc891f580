package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/asteroid-crossing/internal/config"
)

var flagForce bool

var initConfigCmd = &cobra.Command{
	Use:   "init-config [path]",
	Short: "Write the default config file",
	Long: `Write the built-in configuration to a file so it can be edited.

Without a path the file is written to ~/.crossing/config.yaml, which is
the first place 'crossing play' looks.

Examples:
  crossing init-config
  crossing init-config ./configs/crossing.yaml
  crossing init-config --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInitConfig,
}

func init() {
	initConfigCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	path := config.UserConfigPath()
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return errors.New("no home directory; pass a path")
	}

	if err := config.WriteDefault(path, flagForce); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		return err
	}

	loaded, err := config.LoadFile(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s\n", path)
	fmt.Fprintf(out, "  arena      %dx%d\n", loaded.Info.Width, loaded.Info.Height)
	fmt.Fprintf(out, "  max rounds %d\n", loaded.Info.MaxRounds)
	fmt.Fprintf(out, "  icon       %s\n", loaded.Info.Icon)
	fmt.Fprintf(out, "  font       %s\n", loaded.Info.Font)
	return nil
}

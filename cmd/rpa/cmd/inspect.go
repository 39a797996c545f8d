package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meigma/rpa"
)

func newInspectCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <archive>",
		Short: "Show archive metadata",
		Long: `Show the header, digest and entry names of <archive>.

Entry names are stored in the clear, so no key is needed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			info, err := rpa.Inspect(data)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Digest:   %s\n", info.Digest)
			fmt.Fprintf(out, "Version:  %d\n", info.Version)
			fmt.Fprintf(out, "Keyed:    %t\n", info.Keyed)
			fmt.Fprintf(out, "Entries:  %d\n", len(info.Names))
			fmt.Fprintf(out, "Size:     %d (index %d, body %d)\n", info.Size, info.IndexSize, info.BodySize)
			for _, name := range info.Names {
				fmt.Fprintf(out, "  %s\n", name)
			}
			return nil
		},
	}
}

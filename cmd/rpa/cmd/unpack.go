package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meigma/rpa"
)

func newUnpackCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "unpack <archive> <dest>",
		Short: "Unpack an archive into a directory",
		Long: `Unpack every entry of <archive> below <dest>.

Existing files are left alone unless --overwrite is given. An archive
holding names that would escape <dest> is rejected before anything is
written.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUnpack(cmd, args[0], args[1])
		},
	}
	c.Flags().Bool("overwrite", false, "replace existing files")
	a.v.BindPFlag("overwrite", c.Flags().Lookup("overwrite"))
	return c
}

// openArchive reads and validates an archive file with the configured key.
func (a *app) openArchive(path string) (*rpa.Reader, error) {
	key, err := a.key()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := a.archive().Open(data, key)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return r, nil
}

func (a *app) runUnpack(cmd *cobra.Command, src, dest string) error {
	r, err := a.openArchive(src)
	if err != nil {
		return err
	}

	stats, err := r.ExtractTo(cmd.Context(), dest,
		rpa.ExtractWithConcurrency(a.v.GetInt("concurrency")),
		rpa.ExtractWithOverwrite(a.v.GetBool("overwrite")),
	)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Unpacked %d entries (%d bytes) into %s\n", stats.FileCount, stats.TotalBytes, dest)
	if stats.Skipped > 0 {
		fmt.Fprintf(out, "Skipped %d existing files\n", stats.Skipped)
	}
	return nil
}

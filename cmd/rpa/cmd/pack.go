package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meigma/rpa"
)

func newPackCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pack <dir> <archive>",
		Short: "Pack a directory into an archive",
		Long: `Pack every regular file below <dir> into <archive>.

Entries are named by their slash-separated path relative to <dir> and
packed in lexical order. Symlinks and other special files are skipped.
The archive is written atomically.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPack(cmd, args[0], args[1])
		},
	}
}

func (a *app) runPack(cmd *cobra.Command, dir, dest string) error {
	key, err := a.key()
	if err != nil {
		return err
	}

	entries, err := rpa.CollectDir(cmd.Context(), dir,
		rpa.CollectWithConcurrency(a.v.GetInt("concurrency")),
		rpa.CollectWithLogger(a.logger),
	)
	if err != nil {
		return fmt.Errorf("collect %s: %w", dir, err)
	}

	data, err := a.archive().Pack(entries, key)
	if err != nil {
		return fmt.Errorf("pack: %w", err)
	}

	if err := rpa.SaveFile(dest, data); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Packed %d entries (%d bytes) into %s\n", entries.Len(), len(data), dest)
	return nil
}

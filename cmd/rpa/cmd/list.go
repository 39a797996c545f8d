package cmd

import (
	"fmt"
	"iter"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meigma/rpa"
)

func newListCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "list <archive> [prefix]",
		Short: "List archive entries",
		Long: `List the entries of <archive>.

Without a prefix, entries are listed in packing order. With a prefix,
only entries whose names start with it are listed, in name order.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 2 {
				prefix = rpa.NormalizeName(args[1])
			}
			long, _ := cmd.Flags().GetBool("long")
			return a.runList(cmd, args[0], prefix, long)
		},
	}
	c.Flags().BoolP("long", "l", false, "show offsets and lengths")
	return c
}

func (a *app) runList(cmd *cobra.Command, src, prefix string, long bool) error {
	r, err := a.openArchive(src)
	if err != nil {
		return err
	}

	var seq iter.Seq[rpa.EntryInfo]
	if prefix == "" {
		seq = r.Entries()
	} else {
		seq = r.EntriesWithPrefix(prefix)
	}

	out := cmd.OutOrStdout()
	if !long {
		for e := range seq {
			fmt.Fprintln(out, e.Name)
		}
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OFFSET\tLENGTH\tNAME")
	for e := range seq {
		fmt.Fprintf(tw, "%d\t%d\t%s\n", e.Offset, e.Length, e.Name)
	}
	return tw.Flush()
}

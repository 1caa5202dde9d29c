package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/proserc/cmd/proserc/opts"
	"github.com/walteh/proserc/pkg/operation"
)

// NewSplitCmd creates a new split command
func NewSplitCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		parts  int
		outDir string
		prune  bool
		ignore []string
	)

	cmd := &cobra.Command{
		Use:   "split [files...]",
		Short: "Split chapters into parts of similar word count",
		Long: `Split divides each chapter into parts without breaking a paragraph.
A leading "Chapter N" or "Chương N" line is repeated on every part as
"Chapter N.1", "Chapter N.2", and so on.

Parts are printed to stdout, or written to --out-dir as <name>.part<i><ext>.
Inputs from different folders keep their folders under --out-dir.
A part that receives no paragraph is reported but never written.`,
		Example: `  proserc split chapter12.txt --parts 3
  proserc split "book/*.txt" -n 4 --out-dir parts --prune`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !cmd.Flags().Changed("parts") {
				parts = opts.Settings.Parts
			}
			if parts < 1 {
				return errors.Errorf("--parts must be at least 1, got %d", parts)
			}
			if prune && outDir == "" {
				return errors.New("--prune needs --out-dir")
			}

			inputs, err := expandArgs(cmd, args, ignore)
			if err != nil {
				return err
			}

			var names map[string]string
			if outDir != "" {
				if names, err = operation.OutputNames(inputs); err != nil {
					return err
				}
			}

			streams := opts.IO()
			ops := make([]*operation.SplitOperation, 0, len(inputs))
			for _, input := range inputs {
				ops = append(ops, &operation.SplitOperation{
					Input:   input,
					Parts:   parts,
					OutDir:  outDir,
					OutName: names[input],
					Prune:   prune,
					IO:      streams,
				})
			}

			if err := opts.Runner(ctx).Run(ctx, toOperations(ops)...); err != nil {
				return err
			}
			if outDir != "" {
				return opts.ReportOutputs(ctx)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&parts, "parts", "n", 2, "number of parts (default $PROSERC_PARTS or 2)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "write parts into this directory")
	cmd.Flags().BoolVar(&prune, "prune", false, "remove part files left over from an earlier split")
	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "glob patterns of inputs to skip")

	return cmd
}

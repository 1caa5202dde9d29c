package commands

import (
	"github.com/spf13/cobra"

	"github.com/walteh/proserc/cmd/proserc/opts"
	"github.com/walteh/proserc/pkg/operation"
)

// NewCountCmd creates a new count command
func NewCountCmd(opts *opts.RootOpts) *cobra.Command {
	var ignore []string

	cmd := &cobra.Command{
		Use:   "count [files...]",
		Short: "Count words",
		Long: `Count prints the number of words in each input. A word is any run of
non-whitespace characters. A total line follows when there is more than one input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			inputs, err := expandArgs(cmd, args, ignore)
			if err != nil {
				return err
			}

			streams := opts.IO()
			ops := make([]*operation.CountOperation, 0, len(inputs))
			for _, input := range inputs {
				ops = append(ops, &operation.CountOperation{Input: input, IO: streams})
			}

			// counts are printed in input order
			if err := operation.NewRunner(nil, false).Run(ctx, toOperations(ops)...); err != nil {
				return err
			}
			return operation.CountTotal(ops, streams)
		},
	}

	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "glob patterns of inputs to skip")
	return cmd
}

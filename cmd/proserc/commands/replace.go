package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/proserc/cmd/proserc/opts"
	"github.com/walteh/proserc/pkg/operation"
	"github.com/walteh/proserc/pkg/text"
)

type replaceFlags struct {
	mode          string
	caseSensitive bool
	wholeWord     bool
	noNormalize   bool
	ignore        []string
	out           string
	outDir        string
}

// NewReplaceCmd creates a new replace command
func NewReplaceCmd(opts *opts.RootOpts) *cobra.Command {
	flags := &replaceFlags{}

	cmd := &cobra.Command{
		Use:   "replace [files...]",
		Short: "Apply the rules of a mode to text",
		Long: `Replace rewrites each input with the ordered rules of a mode.
It will:
1. Read each file, or standard input when none is given
2. Apply every rule in order, each one seeing the output of the previous one
3. Leave exactly one blank line between paragraphs
4. Print the result, or write it with --out / --out-dir

Matching is case-insensitive unless the mode or --case-sensitive says
otherwise; replacements then follow the casing of the text they replace.`,
		Example: `  proserc replace chapter1.txt
  cat draft.txt | proserc replace --mode novel
  proserc replace "chapters/**/*.txt" --ignore "*.bak" --out-dir fixed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			modeName := opts.ModeName(flags.mode)
			mode, err := opts.Config.Mode(modeName)
			if err != nil {
				return err
			}

			options := mode.Options()
			options.Normalize = !flags.noNormalize
			if cmd.Flags().Changed("case-sensitive") {
				options.CaseSensitive = flags.caseSensitive
			}
			if cmd.Flags().Changed("whole-word") {
				options.WholeWord = flags.wholeWord
			}

			engine := text.NewEngine()
			if err := engine.ValidateRules(mode.Rules); err != nil {
				opts.UserLogger.LogValidation(false, "Skipping incomplete rules: "+strings.ReplaceAll(err.Error(), "\n", "; "), nil)
			}

			inputs, err := expandArgs(cmd, args, flags.ignore)
			if err != nil {
				return err
			}
			if flags.out != "" && len(inputs) > 1 {
				return errors.Errorf("--out needs a single input, got %d", len(inputs))
			}

			var names map[string]string
			if flags.outDir != "" {
				if names, err = operation.OutputNames(inputs); err != nil {
					return err
				}
			}

			streams := opts.IO()
			ops := make([]*operation.ReplaceOperation, 0, len(inputs))
			for _, input := range inputs {
				op := &operation.ReplaceOperation{
					Input:    input,
					Mode:     modeName,
					Rules:    mode.Rules,
					Options:  options,
					Replacer: engine,
					IO:       streams,
				}
				switch {
				case flags.out != "":
					op.Output = flags.out
				case flags.outDir != "":
					op.Output = operation.OutputPath(flags.outDir, names[input])
				}
				ops = append(ops, op)
			}

			if err := opts.Runner(ctx).Run(ctx, toOperations(ops)...); err != nil {
				return err
			}

			for _, op := range ops {
				if op.Result != nil {
					opts.UserLogger.LogCount(op.Input, op.Result.ReplacementCount)
				}
			}
			if flags.outDir != "" {
				return opts.ReportOutputs(ctx)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "", "mode to apply (default $PROSERC_MODE or the current mode)")
	cmd.Flags().BoolVar(&flags.caseSensitive, "case-sensitive", false, "match case exactly, overriding the mode")
	cmd.Flags().BoolVar(&flags.wholeWord, "whole-word", false, "only replace whole words, overriding the mode")
	cmd.Flags().BoolVar(&flags.noNormalize, "no-normalize", false, "do not convert text and rules to Unicode NFC")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns of inputs to skip")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "write the result to this file")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "write one result per input into this directory")
	cmd.MarkFlagsMutuallyExclusive("out", "out-dir")

	return cmd
}

// expandArgs resolves file arguments, reading standard input when there are none
func expandArgs(cmd *cobra.Command, args []string, ignore []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{operation.Stdin}
	}
	return operation.ExpandInputs(cmd.Context(), args, ignore)
}

func toOperations[T operation.Operation](ops []T) []operation.Operation {
	out := make([]operation.Operation, len(ops))
	for i, op := range ops {
		out[i] = op
	}
	return out
}

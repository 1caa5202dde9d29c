package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/proserc/cmd/proserc/opts"
	"github.com/walteh/proserc/pkg/text"
)

// NewRulesCmd creates the rules command and its subcommands
func NewRulesCmd(opts *opts.RootOpts) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Edit the rules of a mode",
		Long: `Rules run in the order they are listed. Find is literal text, never a
pattern. An empty replace deletes the match.`,
	}
	cmd.PersistentFlags().StringVarP(&mode, "mode", "m", "", "mode to edit (default $PROSERC_MODE or the current mode)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List the rules of a mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := opts.ModeName(mode)
			m, err := opts.Config.Mode(name)
			if err != nil {
				return err
			}
			return renderMode(cmd.OutOrStdout(), name, m)
		},
	}

	add := &cobra.Command{
		Use:   "add FIND [REPLACE]",
		Short: "Append a rule",
		Example: `  proserc rules add "colour" "color"
  proserc rules add "  " " " --mode cleanup`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule := text.Rule{Find: args[0]}
			if len(args) == 2 {
				rule.Replace = args[1]
			}
			name := opts.ModeName(mode)
			if err := opts.Config.AddRule(name, rule); err != nil {
				return err
			}
			return opts.SaveConfig(cmd.Context(), fmt.Sprintf("Mode %q: added %q → %q", name, rule.Find, rule.Replace))
		},
	}

	remove := &cobra.Command{
		Use:   "remove INDEX",
		Short: "Remove the rule at INDEX, as shown by rules list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Errorf("invalid rule index %q: %w", args[0], err)
			}
			name := opts.ModeName(mode)
			if err := opts.Config.RemoveRule(name, index); err != nil {
				return err
			}
			return opts.SaveConfig(cmd.Context(), fmt.Sprintf("Mode %q: removed rule %d", name, index))
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}

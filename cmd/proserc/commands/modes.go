package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/proserc/cmd/proserc/opts"
	"github.com/walteh/proserc/pkg/config"
)

// NewModesCmd creates the modes command and its subcommands
func NewModesCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modes",
		Short: "Manage named rule sets",
		Long: `A mode is a named list of rules with its own match-case and whole-word
flags. One mode is current; replace uses it unless --mode says otherwise.
The "default" mode always exists and cannot be renamed or deleted.`,
	}

	cmd.AddCommand(
		newModesListCmd(opts),
		newModesShowCmd(opts),
		newModesAddCmd(opts),
		newModesCopyCmd(opts),
		newModesRenameCmd(opts),
		newModesDeleteCmd(opts),
		newModesUseCmd(opts),
		newModesSetCmd(opts),
		newModesImportCmd(opts),
		newModesExportCmd(opts),
	)

	return cmd
}

func newModesListCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List modes, marking the current one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, name := range opts.Config.ModeNames() {
				marker := " "
				if name == opts.Config.CurrentMode {
					marker = "*"
				}
				mode := opts.Config.Modes[name]
				if _, err := fmt.Fprintf(w, "%s %s (%d rules)\n", marker, name, len(mode.Rules)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newModesShowCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show the flags and rules of a mode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := opts.Config.CurrentMode
			if len(args) == 1 {
				name = args[0]
			}
			mode, err := opts.Config.Mode(name)
			if err != nil {
				return err
			}
			return renderMode(cmd.OutOrStdout(), name, mode)
		},
	}
}

// renderMode prints a mode header followed by a table of its rules
func renderMode(w io.Writer, name string, mode *config.Mode) error {
	if _, err := fmt.Fprintf(w, "mode: %s\nmatch case: %t\nwhole word: %t\n", name, mode.MatchCase, mode.WholeWord); err != nil {
		return err
	}
	if len(mode.Rules) == 0 {
		_, err := fmt.Fprintln(w, "no rules")
		return err
	}

	data := pterm.TableData{{"#", "find", "replace"}}
	for i, rule := range mode.Rules {
		data = append(data, []string{strconv.Itoa(i), strconv.Quote(rule.Find), strconv.Quote(rule.Replace)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render(); err != nil {
		return errors.Errorf("rendering rules: %w", err)
	}
	return nil
}

func newModesAddCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Create an empty mode and make it current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Config.AddMode(args[0]); err != nil {
				return err
			}
			return opts.SaveConfig(cmd.Context(), fmt.Sprintf("Added mode %q", args[0]))
		},
	}
}

func newModesCopyCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "copy NAME",
		Short: "Copy the current mode under a new name and make it current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from := opts.Config.CurrentMode
			if err := opts.Config.CopyMode(args[0]); err != nil {
				return err
			}
			return opts.SaveConfig(cmd.Context(), fmt.Sprintf("Copied mode %q to %q", from, args[0]))
		},
	}
}

func newModesRenameCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "rename FROM TO",
		Short: "Rename a mode",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Config.RenameMode(args[0], args[1]); err != nil {
				return err
			}
			return opts.SaveConfig(cmd.Context(), fmt.Sprintf("Renamed mode %q to %q", args[0], args[1]))
		},
	}
}

func newModesDeleteCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Config.DeleteMode(args[0]); err != nil {
				return err
			}
			return opts.SaveConfig(cmd.Context(), fmt.Sprintf("Deleted mode %q, current mode is %q", args[0], opts.Config.CurrentMode))
		},
	}
}

func newModesUseCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "use NAME",
		Short: "Make a mode current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Config.Use(args[0]); err != nil {
				return err
			}
			return opts.SaveConfig(cmd.Context(), fmt.Sprintf("Switched to mode %q", args[0]))
		},
	}
}

func newModesSetCmd(opts *opts.RootOpts) *cobra.Command {
	var matchCase, wholeWord bool

	cmd := &cobra.Command{
		Use:   "set [name]",
		Short: "Change the flags of a mode",
		Example: `  proserc modes set --match-case
  proserc modes set novel --whole-word=false`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := opts.Config.CurrentMode
			if len(args) == 1 {
				name = args[0]
			}

			var flags config.ModeFlags
			if cmd.Flags().Changed("match-case") {
				flags.MatchCase = &matchCase
			}
			if cmd.Flags().Changed("whole-word") {
				flags.WholeWord = &wholeWord
			}
			if flags.MatchCase == nil && flags.WholeWord == nil {
				return errors.New("nothing to set: pass --match-case or --whole-word")
			}

			if err := opts.Config.SetFlags(name, flags); err != nil {
				return err
			}
			mode := opts.Config.Modes[name]
			return opts.SaveConfig(cmd.Context(), fmt.Sprintf("Mode %q: match case %t, whole word %t", name, mode.MatchCase, mode.WholeWord))
		},
	}

	cmd.Flags().BoolVar(&matchCase, "match-case", false, "match case exactly")
	cmd.Flags().BoolVar(&wholeWord, "whole-word", false, "only replace whole words")
	return cmd
}

func newModesImportCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace every mode with those from a JSON, YAML, HCL or CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			imported, err := config.Import(ctx, args[0])
			if err != nil {
				return err
			}
			opts.Config.Replace(imported)
			return opts.SaveConfig(ctx, fmt.Sprintf("Imported %d modes from %s", len(imported.Modes), args[0]))
		},
	}
}

func newModesExportCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write every mode to a JSON, YAML or CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Config.Export(cmd.Context(), args[0]); err != nil {
				return err
			}
			opts.UserLogger.LogModeChange(fmt.Sprintf("Exported %d modes to %s", len(opts.Config.Modes), args[0]))
			return nil
		},
	}
}

package opts

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/walteh/proserc/pkg/config"
	"github.com/walteh/proserc/pkg/log"
	"github.com/walteh/proserc/pkg/operation"
	"github.com/walteh/proserc/pkg/status"
)

// RootOpts contains shared options used by all commands. It is filled in by
// the root command before any subcommand runs.
type RootOpts struct {
	Settings   config.Settings
	Config     *config.Config
	Async      bool
	UserLogger *log.UserLogger
	Files      *status.Manager

	Stdin  io.Reader
	Stdout io.Writer
}

// IO returns the streams operations read from and write to
func (o *RootOpts) IO() operation.IO {
	return operation.IO{
		Stdin:  o.Stdin,
		Stdout: operation.NewSyncWriter(o.Stdout),
		Files:  o.Files,
	}
}

// Runner returns a runner that honours --async and reports to the file manager
func (o *RootOpts) Runner(ctx context.Context) *operation.Runner {
	return operation.NewRunner(zerolog.Ctx(ctx), o.Async, operation.WithReporter(o.Files))
}

// ModeName picks the mode to use: an explicit name, then PROSERC_MODE, then
// the saved current mode
func (o *RootOpts) ModeName(explicit string) string {
	switch {
	case explicit != "":
		return explicit
	case o.Settings.Mode != "":
		return o.Settings.Mode
	default:
		return o.Config.CurrentMode
	}
}

// ReportOutputs lists every output file written or removed during the run
func (o *RootOpts) ReportOutputs(ctx context.Context) error {
	files, err := o.Files.ListFiles(ctx)
	if err != nil {
		return err
	}
	for _, f := range files {
		o.UserLogger.LogFileChange(log.FileChange{
			Type:  changeType(f.Status),
			Path:  f.Path,
			Error: f.Error,
		})
	}
	return nil
}

func changeType(s status.FileStatus) log.FileChangeType {
	switch s {
	case status.StatusNew:
		return log.FileAdded
	case status.StatusModified:
		return log.FileUpdated
	case status.StatusUnchanged:
		return log.FileUnchanged
	case status.StatusDeleted:
		return log.FileRemoved
	case status.StatusFailed:
		return log.FileError
	default:
		return log.FileSkipped
	}
}

// SaveConfig writes the settings and reports what changed
func (o *RootOpts) SaveConfig(ctx context.Context, description string) error {
	if err := o.Config.Save(ctx); err != nil {
		return err
	}
	o.UserLogger.LogModeChange(description)
	return nil
}

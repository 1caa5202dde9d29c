/*
Package status writes output files and tracks what happened to each of them.

	            +-------------+
	            |   Manager   |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+------+
	|   Files   |           | Formatter |
	| (atomic)  |           | (UI/UX)   |
	+-----------+           +-----------+

🎯 Purpose:
- Writes rewritten texts and split parts to disk
- Classifies every output as new, modified or unchanged
- Reports progress and a final summary

🔄 Flow:
1. An operation hands rendered content to WriteOutput
2. The content checksum is compared with the file on disk
3. Unchanged files are left alone, others are written atomically
4. The outcome is tracked and logged through the formatter

🤝 Interfaces:
- FileManager: writing and removing outputs
- StatusReporter: tracking, progress and summary
- FileFormatter: presentation (emoji lines or colored table rows)

🔍 Example:

	mgr := status.New(outDir, zerolog.Ctx(ctx))

	mgr.StartOperation(ctx, len(parts))
	for _, part := range parts {
		info, err := mgr.WriteOutput(ctx, part.Name, part.Content)
		...
		mgr.Advance(ctx)
	}
	mgr.FinishOperation(ctx)
*/
package status

/*
Package operation turns command line inputs into units of work and runs them.

	+-----------+      +-----------+      +-----------+
	|  inputs   | ---> | Operation | ---> |  status   |
	| (globs)   |      | (rewrite) |      | (outputs) |
	+-----------+      +-----+-----+      +-----------+
	                         |
	                   +-----+-----+
	                   |  Runner   |
	                   +-----------+

🎯 Purpose:
- Expand file arguments and ignore patterns into input names
- Rewrite inputs with text rules (ReplaceOperation)
- Split chapters into parts (SplitOperation)
- Count words (CountOperation)

🔄 Flow:
1. ExpandInputs resolves arguments, "-" meaning standard input
2. One Operation is built per input
3. Runner executes them in order, or concurrently with --async
4. Outputs go to stdout or through status.FileManager, which skips unchanged files

Operations never touch the filesystem for writing directly. Everything they
produce passes through the file manager so each output is reported as new,
modified, unchanged or deleted.

🔍 Example:

	ops := []operation.Operation{
		&operation.ReplaceOperation{Input: "ch1.txt", Rules: rules, IO: io},
	}
	err := operation.NewRunner(logger, false).Run(ctx, ops...)
*/
package operation

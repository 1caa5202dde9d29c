/*
Package config manages the rule sets ("modes") that drive a replace pass.

	            +-------------+
	            |   Config    |
	            | currentMode |
	            +------+------+
	                   |
	         modes: name -> Mode{pairs, matchCase, wholeWord}
	                   |
	   +--------+------+-----+--------+
	   |        |            |        |
	+--+---+ +--+---+   +----+--+ +---+--+
	| JSON | | YAML |   |  HCL  | | CSV  |
	| r/w  | | r/w  |   | read  | | r/w  |
	+------+ +------+   +-------+ +------+

🎯 Purpose:
- Loads and saves the settings file (.proserc.json by default)
- Keeps the default mode and a valid current mode at all times
- Provides mode operations: add, copy, rename, delete, use, set flags
- Imports and exports rule sets in every registered format
- Reads process defaults from PROSERC_* environment variables

🔄 Flow:
1. The parser registry picks a format by file extension
2. The parsed settings are normalized, then validated
3. Commands mutate the Config through the mode operations
4. Save prunes blank rules and writes the file atomically

📝 Notes:
- A missing settings file is not an error; Load returns Default()
- Replacement text is never trimmed, a single space is a valid replacement
- The JSON layout is {currentMode, modes: {name: {pairs, matchCase, wholeWord}}}

🔍 Example:

	cfg, err := config.Load(ctx, "")
	if err != nil {
		return err
	}

	if err := cfg.AddMode("novel"); err != nil {
		return err
	}
	_ = cfg.AddRule("novel", text.Rule{Find: " ,", Replace: ","})

	return cfg.Save(ctx)
*/
package config

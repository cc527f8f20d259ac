// Package grid loads action matrices from JSON grid definition files.
//
// A grid file is an object with a "rows" array; each row is an array
// of cell objects. A cell binds a key (plus optional modifiers) to an
// application, a file, an inline Lua chunk, or a nested grid:
//
//	{
//	  "rows": [
//	    [
//	      {"key": "t", "mods": ["cmd"], "desc": "Terminal", "app": "kitty"},
//	      {"key": "n", "desc": "Notes", "file": "~/notes.md"},
//	      {"key": "b", "desc": "Backup", "run": "emit('backup')"},
//	      {"key": "g", "desc": "Dev", "grid": {"rows": [[ ... ]]}},
//	      {"desc": "Soon", "empty": true},
//	      {}
//	    ]
//	  ]
//	}
//
// The file as a whole must be valid JSON; individual malformed cells
// degrade to spacers with a logged warning so one bad entry never
// takes the grid down.
package grid

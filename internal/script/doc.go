// Package script runs Lua chunks as custom action handlers.
//
// Each invocation gets a fresh, sandboxed lua.LState: only the base,
// table, string, and math libraries are opened, and execution is
// bounded by a context deadline. Script failures are logged and
// reported, never fatal.
package script

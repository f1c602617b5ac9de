package main

// Exit codes of the papers CLI.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (no repository found, invalid config)
	ExitDataError   = 3 // Data error (unparseable input, corrupt index, bad citekey)
	ExitNotFound    = 4 // No paper with the given citekey or number
)

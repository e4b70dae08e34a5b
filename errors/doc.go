// Package errors provides the structured error type shared by the shell.
//
// Every failure that crosses a package boundary is an *AppError carrying a
// machine-readable code. Process entry points map codes to exit codes; IPC
// bindings hand the same value back to the webview.
package errors

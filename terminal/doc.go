// Package terminal provides direct ANSI output for in-place frame playback.
//
// Features:
//   - True color (24-bit) foreground with 256-color palette fallback
//   - Buffered output with zero-alloc escape sequence writers
//   - Cursor homing, visibility and auto-wrap control
//   - TTY detection and window size queries
//   - Clean terminal restoration on exit/panic
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal

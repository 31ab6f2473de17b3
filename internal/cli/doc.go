// Package cli wires the volt console: it opens the log and the two file
// stores named by the configuration, builds the dialogue engine and the
// reaction timer, and runs the session controller over the process terminal.
//
// The Terminal type adapts stdin/stdout to session.Console. Passwords are read
// without echo when stdin is a terminal and as plain lines otherwise, so the
// console can also be scripted through a pipe.
package cli

// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and defines the abstractions git-tools uses to
// run the git executable in a testable manner. Subprocess invocation is the
// single external-effect boundary of the application.
package execshell

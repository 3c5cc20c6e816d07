package nlrc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
)

// summaryPattern matches the totals line the compiler prints once it
// finishes, eg. `NLRC: 0 error(s), 2 warning(s)`.
var summaryPattern = regexp.MustCompile(`(?P<errors>\d+)\s+error\(s\),\s+(?P<warnings>\d+)\s+warning\(s\)`)

// Result is the outcome of a compiler run.
type Result struct {
	Errors   int
	Warnings int

	// Output is everything the compiler wrote to stdout and stderr.
	Output string
}

// CompileError is returned when the compiler reports errors or exits with a
// non-zero status.
type CompileError struct {
	Result *Result

	// Err is the process error, if any.
	Err error
}

func (ce *CompileError) Error() string {
	if ce.Result.Errors > 0 {
		return fmt.Sprintf("compilation failed with %d error(s), %d warning(s)", ce.Result.Errors, ce.Result.Warnings)
	}

	return fmt.Sprintf("compilation failed: %s", ce.Err)
}

func (ce *CompileError) Unwrap() error {
	return ce.Err
}

// Runner runs compiler commands.
type Runner struct {
	// Output receives the compiler output as it is produced.  It may be nil.
	Output io.Writer
}

// Run executes cmd and waits for it to finish.  A compiler that cannot be
// started is reported as a plain error.  Any other failure is a CompileError
// carrying the parsed result.
func (r *Runner) Run(ctx context.Context, cmd *Command) (*Result, error) {
	proc := exec.CommandContext(ctx, cmd.Path, cmd.Argv()...)

	outBuff := bytes.Buffer{}
	var w io.Writer = &outBuff
	if r.Output != nil {
		w = io.MultiWriter(&outBuff, r.Output)
	}
	proc.Stdout = w
	proc.Stderr = w

	runErr := proc.Run()

	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		return nil, fmt.Errorf("failed to run compiler: %w", runErr)
	}

	result := parseSummary(outBuff.String())
	if result.Errors > 0 || runErr != nil {
		return result, &CompileError{Result: result, Err: runErr}
	}

	return result, nil
}

// parseSummary builds a result from compiler output.  The last summary line
// wins since the compiler prints one per build target.
func parseSummary(output string) *Result {
	result := &Result{Output: output}

	matches := summaryPattern.FindAllStringSubmatch(output, -1)
	if len(matches) == 0 {
		return result
	}

	last := matches[len(matches)-1]
	result.Errors, _ = strconv.Atoi(last[summaryPattern.SubexpIndex("errors")])
	result.Warnings, _ = strconv.Atoi(last[summaryPattern.SubexpIndex("warnings")])

	return result
}

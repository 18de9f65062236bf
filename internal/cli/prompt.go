package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// stdinPrompter asks yes/no questions on a terminal.
type stdinPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newStdinPrompter(in io.Reader, out io.Writer) *stdinPrompter {
	return &stdinPrompter{in: bufio.NewReader(in), out: out}
}

// Confirm prints details, then message, and reads an answer. Anything other
// than y or yes is a no; so is end of input.
func (p *stdinPrompter) Confirm(ctx context.Context, message string, details []string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	for _, d := range details {
		_, _ = fmt.Fprintf(p.out, "  %s\n", d)
	}
	_, _ = fmt.Fprintf(p.out, "%s [y/N]: ", message)

	answer, err := p.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			_, _ = fmt.Fprintln(p.out)
			return false, nil
		}
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// readLine reads one trimmed line. A final line without a newline is
// returned without error.
func (p *stdinPrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter drives the linear stdin/stdout dialogue the tool uses for
// configuration and mode selection.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter constructs a prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Say prints each line to the output stream.
func (p *Prompter) Say(lines ...string) {
	for _, line := range lines {
		fmt.Fprintln(p.out, line)
	}
}

// Ask prints the label and returns the next input line, trimmed. A final
// unterminated line is still returned before EOF is reported.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

package publish

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LinePrompter writes the question to Out and reads one line from In.
type LinePrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewLinePrompter returns a Prompter over in and out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{reader: bufio.NewReader(in), out: out}
}

// Prompt returns the trimmed answer. End of input counts as an empty answer.
func (p *LinePrompter) Prompt(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

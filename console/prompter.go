package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxLine is the longest input line accepted. Longer lines are discarded and reprompted.
const maxLine = 64 * 1024

var errLineTooLong = errors.New("input line too long")

// Prompter reads operator input line by line and writes menus and messages.
// Every line read is trimmed of surrounding whitespace.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

// NewPrompter reads from in, writes menus to out and error messages to errOut.
func NewPrompter(in io.Reader, out, errOut io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, errOut: errOut}
}

// readRawLine returns the next line including its terminator. A last line without a
// newline is still returned; io.EOF only comes once nothing is left.
func (p *Prompter) readRawLine() (string, error) {
	var line []byte
	n := 0
	for {
		chunk, err := p.in.ReadSlice('\n')
		n += len(chunk)
		if n <= maxLine {
			line = append(line, chunk...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && !(errors.Is(err, io.EOF) && n > 0) {
			return "", err
		}
		break
	}
	if n > maxLine {
		return "", errLineTooLong
	}
	return string(line), nil
}

// ReadLine prints prompt and returns the next trimmed line. Overlong lines are rejected
// and the prompt repeated. io.EOF is returned once input is exhausted.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	for {
		fmt.Fprint(p.out, prompt)
		line, err := p.readRawLine()
		if errors.Is(err, errLineTooLong) {
			p.Println("Your input is invalid!")
			continue
		}
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
}

// ReadInt prompts until the operator enters a whole number.
func (p *Prompter) ReadInt(prompt string) (int, error) {
	for {
		line, err := p.ReadLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		p.Println("Your input is invalid!")
	}
}

// ReadChoice reads a menu selection.
func (p *Prompter) ReadChoice() (int, error) {
	return p.ReadInt("Please make your choice: ")
}

// ReadPositiveInt prompts until the operator enters a number greater than zero.
func (p *Prompter) ReadPositiveInt(prompt string) (int, error) {
	for {
		n, err := p.ReadInt(prompt)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return n, nil
		}
		p.Println("Please enter a number greater than zero.")
	}
}

func (p *Prompter) Println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

func (p *Prompter) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format, a...)
}

// Errorf writes to the error stream.
func (p *Prompter) Errorf(format string, a ...interface{}) {
	fmt.Fprintf(p.errOut, format, a...)
}

// Heading prints a title underlined with dashes, preceded by a blank line.
func (p *Prompter) Heading(title string) {
	p.Println("")
	p.Println(title)
	p.Println(strings.Repeat("-", len(title)+2))
}

// Out is where menus and results are written.
func (p *Prompter) Out() io.Writer {
	return p.out
}

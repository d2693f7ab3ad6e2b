package chat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/baalimago/hfchat/internal/utils"
	"github.com/peterh/liner"
	"golang.org/x/term"
)

// LineReader reads one line of user input after showing prompt. It returns
// utils.ErrUserInitiatedExit on ctrl+c and io.EOF when input is exhausted.
type LineReader interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// NewLineReader returns a line-editing reader with in-memory history when in
// is a terminal, and a plain buffered reader otherwise.
func NewLineReader(in *os.File, out io.Writer) LineReader {
	if term.IsTerminal(int(in.Fd())) {
		state := liner.NewLiner()
		state.SetCtrlCAborts(true)
		return &linerReader{state: state}
	}
	return NewBufferedReader(in, out)
}

type linerReader struct {
	state *liner.State
}

func (l *linerReader) Prompt(prompt string) (string, error) {
	input, err := l.state.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", utils.ErrUserInitiatedExit
		}
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		l.state.AppendHistory(input)
	}
	return input, nil
}

func (l *linerReader) Close() error {
	return l.state.Close()
}

type bufferedReader struct {
	r   *bufio.Reader
	out io.Writer
}

func NewBufferedReader(in io.Reader, out io.Writer) LineReader {
	return &bufferedReader{r: bufio.NewReader(in), out: out}
}

func (b *bufferedReader) Prompt(prompt string) (string, error) {
	fmt.Fprint(b.out, prompt)
	line, err := b.r.ReadString('\n')
	if err != nil {
		// Last line without a trailing newline is still input.
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (b *bufferedReader) Close() error {
	return nil
}

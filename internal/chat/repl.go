package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/hfchat/internal/models"
	"github.com/baalimago/hfchat/internal/utils"
	"github.com/baalimago/hfchat/internal/vendors/huggingface"
)

const separatorWidth = 60

const commandsHelp = `Commands:
  /help     - Show this help message
  /clear    - Clear conversation history
  /history  - Show conversation history
  /model    - Change the model
  /quit     - Exit the chatbot
`

// Chatter is what the interactive loop needs from an inference client.
type Chatter interface {
	Send(ctx context.Context, message string) string
	History() []models.Turn
	ClearHistory()
	SetModel(name string)
	Model() string
}

// Loop is the interactive chat session. Failed exchanges are replies like any
// other, and errors within one iteration never end the loop.
type Loop struct {
	client Chatter
	in     LineReader
	out    io.Writer
}

func NewLoop(client Chatter, in LineReader, out io.Writer) *Loop {
	return &Loop{client: client, in: in, out: out}
}

func (l *Loop) isQuit(err error) bool {
	return errors.Is(err, utils.ErrUserInitiatedExit) || errors.Is(err, io.EOF)
}

// Query runs the loop until /quit, ctrl+c, end of input or ctx cancel.
func (l *Loop) Query(ctx context.Context) error {
	defer l.in.Close()
	l.printWelcome()
	for {
		if ctx.Err() != nil {
			l.printGoodbye()
			return nil
		}
		input, err := l.in.Prompt("\nYou: ")
		if err != nil {
			if l.isQuit(err) {
				l.printGoodbye()
				return nil
			}
			return fmt.Errorf("failed to read user input: %w", err)
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		quit, err := l.safeHandle(ctx, input)
		if err != nil {
			if l.isQuit(err) {
				l.printGoodbye()
				return nil
			}
			ancli.PrintErr(fmt.Sprintf("an error occurred: %v\n", err))
			continue
		}
		if quit {
			l.printGoodbye()
			return nil
		}
	}
}

func (l *Loop) safeHandle(ctx context.Context, input string) (quit bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered from panic: %v", r)
		}
	}()
	return l.handle(ctx, input)
}

func (l *Loop) handle(ctx context.Context, input string) (bool, error) {
	switch strings.ToLower(input) {
	case "/quit":
		return true, nil
	case "/help":
		l.printHelp()
	case "/clear":
		l.client.ClearHistory()
		fmt.Fprintln(l.out, "\nConversation history cleared!")
	case "/history":
		l.printHistory()
	case "/model":
		return false, l.changeModel()
	default:
		fmt.Fprintf(l.out, "\n%v: ", ancli.ColoredMessage(ancli.MAGENTA, "Bot"))
		reply := l.client.Send(ctx, input)
		fmt.Fprintln(l.out, reply)
	}
	return false, nil
}

func (l *Loop) printWelcome() {
	sep := strings.Repeat("=", separatorWidth)
	fmt.Fprintln(l.out, sep)
	fmt.Fprintln(l.out, "AI CHATBOT")
	fmt.Fprintln(l.out, sep)
	fmt.Fprintf(l.out, "Model: %v\n\n", l.client.Model())
	fmt.Fprint(l.out, commandsHelp)
	fmt.Fprintln(l.out, "\nType your message and press Enter to chat!")
	fmt.Fprintln(l.out, strings.Repeat("-", separatorWidth))
}

func (l *Loop) printHelp() {
	fmt.Fprintln(l.out, "\nHELP")
	fmt.Fprintln(l.out, strings.Repeat("-", 30))
	fmt.Fprint(l.out, commandsHelp)
	fmt.Fprintln(l.out, "\nJust type your message to chat with the AI!")
}

func (l *Loop) printGoodbye() {
	fmt.Fprintln(l.out, "\nGoodbye! Thanks for chatting!")
}

func (l *Loop) printHistory() {
	history := l.client.History()
	if len(history) == 0 {
		fmt.Fprintln(l.out, "\nNo conversation history yet.")
		return
	}
	fmt.Fprintln(l.out, "\nCONVERSATION HISTORY")
	fmt.Fprintln(l.out, strings.Repeat("-", 40))
	for _, turn := range history {
		fmt.Fprintln(l.out, turn.String())
	}
}

// pickModel maps a menu choice to a model name. Numbers select from
// huggingface.PopularModels, anything else is taken as a model name.
func pickModel(choice string) string {
	if i, err := strconv.Atoi(choice); err == nil && i >= 1 && i <= len(huggingface.PopularModels) {
		return huggingface.PopularModels[i-1]
	}
	return choice
}

func (l *Loop) changeModel() error {
	fmt.Fprintln(l.out, "\nCHANGE MODEL")
	fmt.Fprintln(l.out, strings.Repeat("-", 30))
	fmt.Fprintln(l.out, "Popular models:")
	for i, m := range huggingface.PopularModels {
		suffix := ""
		if m == huggingface.DefaultModelName {
			suffix = " (default)"
		}
		fmt.Fprintf(l.out, "%v. %v%v\n", i+1, m, suffix)
	}
	fmt.Fprintln(l.out, "\nOr enter a custom model name from Hugging Face.")

	choice, err := l.in.Prompt(fmt.Sprintf("\nEnter model name or number (1-%v): ", len(huggingface.PopularModels)))
	if err != nil {
		return err
	}
	choice = strings.TrimSpace(choice)
	if choice == "" {
		fmt.Fprintf(l.out, "Model unchanged: %v\n", l.client.Model())
		return nil
	}
	newModel := pickModel(choice)
	l.client.SetModel(newModel)
	fmt.Fprintf(l.out, "Model changed to: %v (conversation history cleared)\n", newModel)
	return nil
}

package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// OneShot sends a single message and prints the reply.
type OneShot struct {
	client  Chatter
	message string
	out     io.Writer
}

func NewOneShot(client Chatter, prompt []string, out io.Writer) (*OneShot, error) {
	message := strings.TrimSpace(strings.Join(prompt, " "))
	if message == "" {
		return nil, errors.New("no prompt provided")
	}
	return &OneShot{client: client, message: message, out: out}, nil
}

func (o *OneShot) Query(ctx context.Context) error {
	_, err := fmt.Fprintln(o.out, o.client.Send(ctx, o.message))
	return err
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/baalimago/hfchat/internal"
	"github.com/baalimago/hfchat/internal/utils"
)

const usage = `hfchat - chat with Hugging Face hosted models from the terminal

Prerequisites:
  - Set the HUGGINGFACE_API_TOKEN (or HF_API_KEY) environment variable to your Hugging Face API token
    (a .env file in the working directory is read too, the environment takes precedence)
  - (Optional) Set DEBUG or DEBUG_HUGGINGFACE to print requests and responses

Usage: hfchat [flags] [command | model]

Flags:
  -m, -model string            Set the model to use. (default %v)
  -u, -url string              Set the inference base url, the model is appended to it. (default %v)
  -l, -max-length int          Set max_length of generated replies. (default %v)
  -a, -addr string             Set the listen address of 'serve'. (default %v)
  -token string                Set the API token, overrides the environment.

Commands:
  c|chat                       Start an interactive chat. This is the default.
  q|query <text>               Send a single message and print the reply.
  s|serve                      Serve chat sessions over HTTP.
  v|version                    Print the version.
  h|help                       Display this help message.

Any other single argument is taken as the model to chat with.

Chat commands:
  /help, /clear, /history, /model, /quit

Examples:
  - hfchat
  - hfchat microsoft/DialoGPT-large
  - hfchat -l 200 query "What's a good name for a cat?"
  - hfchat -a :8080 serve
  - curl -d '{"message":"hi","session_id":"alice"}' localhost:8080/chat
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ancli.SetupSlog()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	querier, err := internal.Setup(ctx, fmt.Sprintf(usage,
		internal.DefaultConfigurations.Model,
		internal.DefaultConfigurations.URL,
		internal.DefaultConfigurations.MaxLength,
		internal.DefaultConfigurations.Addr), args)
	if err != nil {
		if errors.Is(err, utils.ErrUserInitiatedExit) {
			return 0
		}
		ancli.PrintErr(fmt.Sprintf("failed to setup: %v\n", err))
		if internal.IsMissingToken(err) {
			ancli.PrintErr("please set your Hugging Face API token in the HUGGINGFACE_API_TOKEN environment variable or in a .env file in the working directory, or pass it with -token\n")
		}
		return 1
	}
	go func() { shutdown.Monitor(cancel) }()
	err = querier.Query(ctx)
	if err != nil {
		if errors.Is(err, utils.ErrUserInitiatedExit) {
			ancli.Okf("Seems like you wanted out. Byebye!\n")
			return 0
		}
		ancli.PrintErr(fmt.Sprintf("failed to run: %v\n", err))
		return 1
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK("things seems to have worked out. Bye bye!\n")
	}
	return 0
}

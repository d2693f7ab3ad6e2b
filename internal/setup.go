package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/hfchat/internal/chat"
	"github.com/baalimago/hfchat/internal/models"
	"github.com/baalimago/hfchat/internal/server"
	"github.com/baalimago/hfchat/internal/session"
	"github.com/baalimago/hfchat/internal/utils"
	"github.com/baalimago/hfchat/internal/vendors/huggingface"
)

// dotEnvFile is read from the working directory on startup.
const dotEnvFile = ".env"

type serveQuerier struct {
	addr  string
	table *session.Table
}

func (s serveQuerier) Query(ctx context.Context) error {
	return server.Serve(ctx, s.addr, server.SetupMux(s.table))
}

// clientConfig builds the client configuration. The token falls back to the
// environment here, the client itself only accepts it explicitly.
func clientConfig(conf Configurations) huggingface.Config {
	return huggingface.Config{
		Model:     conf.Model,
		Token:     utils.FirstNonEmpty(conf.Token, huggingface.EnvAPITokenKey, huggingface.EnvAPIKeyKey),
		BaseURL:   conf.URL,
		MaxLength: conf.MaxLength,
	}
}

// Setup parses args and returns the querier of the selected command.
func Setup(ctx context.Context, usage string, args []string) (models.Querier, error) {
	conf, posArgs, err := parseFlags(DefaultConfigurations, args)
	if err != nil {
		return nil, err
	}
	if err := utils.LoadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		redacted := conf
		if redacted.Token != "" {
			redacted.Token = "***"
		}
		ancli.PrintOK(fmt.Sprintf("config: %+v, args: %v\n", redacted, posArgs))
	}

	cmd := ""
	if len(posArgs) > 0 {
		cmd = posArgs[0]
	}
	switch cmd {
	case "h", "help":
		fmt.Print(usage)
		return nil, utils.ErrUserInitiatedExit
	case "v", "version":
		return printVersion()
	case "q", "query":
		client, err := huggingface.New(clientConfig(conf))
		if err != nil {
			return nil, fmt.Errorf("failed to setup client: %w", err)
		}
		q, err := chat.NewOneShot(client, posArgs[1:], os.Stdout)
		if err != nil {
			return nil, err
		}
		return q, nil
	case "s", "serve":
		table, err := session.NewTable(clientConfig(conf))
		if err != nil {
			return nil, err
		}
		return serveQuerier{addr: conf.Addr, table: table}, nil
	case "", "c", "chat":
		if len(posArgs) > 1 {
			return nil, fmt.Errorf("chat takes no arguments, got: '%v'", strings.Join(posArgs[1:], " "))
		}
	default:
		if len(posArgs) > 1 {
			return nil, fmt.Errorf("unknown command: '%v'\n%v", cmd, usage)
		}
		// A lone non-command argument selects the initial model.
		if conf.Model != DefaultConfigurations.Model {
			return nil, fmt.Errorf("model set both by flag ('%v') and argument ('%v')", conf.Model, cmd)
		}
		conf.Model = cmd
	}

	client, err := huggingface.New(clientConfig(conf))
	if err != nil {
		return nil, fmt.Errorf("failed to setup client: %w", err)
	}
	return chat.NewLoop(client, chat.NewLineReader(os.Stdin, os.Stdout), os.Stdout), nil
}

// IsMissingToken reports whether err stems from an absent credential.
func IsMissingToken(err error) bool {
	return errors.Is(err, huggingface.ErrMissingToken)
}

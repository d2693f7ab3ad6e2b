package internal

import (
	"flag"
	"fmt"

	"github.com/baalimago/hfchat/internal/utils"
	"github.com/baalimago/hfchat/internal/vendors/huggingface"
)

type Configurations struct {
	Model     string
	Token     string
	URL       string
	MaxLength int
	Addr      string
}

var DefaultConfigurations = Configurations{
	Model:     huggingface.DefaultModelName,
	URL:       huggingface.DefaultBaseURL,
	MaxLength: huggingface.DefaultMaxLength,
	Addr:      "localhost:8080",
}

// parseFlags parses CLI flags into Configurations, returning the remaining
// positional arguments.
func parseFlags(defaults Configurations, args []string) (Configurations, []string, error) {
	fs := flag.NewFlagSet("hfchat", flag.ContinueOnError)

	mShort := fs.String("m", defaults.Model, "Set the model to use. Mutually exclusive with model flag.")
	mLong := fs.String("model", defaults.Model, "Set the model to use. Mutually exclusive with m flag.")

	uShort := fs.String("u", defaults.URL, "Set the inference base url, the model is appended to it.")
	uLong := fs.String("url", defaults.URL, "Set the inference base url, the model is appended to it.")

	lShort := fs.Int("l", defaults.MaxLength, "Set max_length of generated replies.")
	lLong := fs.Int("max-length", defaults.MaxLength, "Set max_length of generated replies.")

	aShort := fs.String("a", defaults.Addr, "Set the listen address of 'serve'.")
	aLong := fs.String("addr", defaults.Addr, "Set the listen address of 'serve'.")

	token := fs.String("token", defaults.Token, fmt.Sprintf("Set the API token. Defaults to $%v, then $%v.", huggingface.EnvAPITokenKey, huggingface.EnvAPIKeyKey))

	err := fs.Parse(args)
	if err != nil {
		return Configurations{}, nil, fmt.Errorf("failed to parse args: %w", err)
	}

	model, err := utils.ReturnNonDefault(*mShort, *mLong, defaults.Model)
	if err != nil {
		return Configurations{}, nil, flagError(err, "m", "model")
	}
	url, err := utils.ReturnNonDefault(*uShort, *uLong, defaults.URL)
	if err != nil {
		return Configurations{}, nil, flagError(err, "u", "url")
	}
	maxLength, err := utils.ReturnNonDefault(*lShort, *lLong, defaults.MaxLength)
	if err != nil {
		return Configurations{}, nil, flagError(err, "l", "max-length")
	}
	if maxLength <= 0 {
		return Configurations{}, nil, fmt.Errorf("max-length must be positive, got: %v", maxLength)
	}
	addr, err := utils.ReturnNonDefault(*aShort, *aLong, defaults.Addr)
	if err != nil {
		return Configurations{}, nil, flagError(err, "a", "addr")
	}

	return Configurations{
		Model:     model,
		Token:     *token,
		URL:       url,
		MaxLength: maxLength,
		Addr:      addr,
	}, fs.Args(), nil
}

func flagError(err error, shortFlag, longFlag string) error {
	return fmt.Errorf("flags: '%v' and '%v': %w", shortFlag, longFlag, err)
}

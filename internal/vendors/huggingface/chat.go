package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/hfchat/internal/conversation"
	"github.com/baalimago/hfchat/internal/models"
)

var ErrMissingToken = fmt.Errorf("hugging face API token is required, set %v or pass it directly", EnvAPITokenKey)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config is everything needed to construct a Client. Token is mandatory,
// the rest falls back to package defaults.
type Config struct {
	Model      string
	Token      string
	BaseURL    string
	MaxLength  int
	HTTPClient HTTPClient
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModelName
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.MaxLength <= 0 {
		c.MaxLength = DefaultMaxLength
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
	}
	return c
}

// Client turns one user message into one model reply, keeping its own
// conversation as context.
type Client struct {
	// sendMu serialises Send so that turns are appended in call order
	sendMu sync.Mutex
	// mu guards model and endpoint
	mu       sync.RWMutex
	model    string
	endpoint string

	token     string
	baseURL   string
	maxLength int
	client    HTTPClient
	history   *conversation.Store
	debug     bool
}

// New returns a Client for cfg. It fails with ErrMissingToken when no token
// is configured, before any network activity.
func New(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	cfg = cfg.withDefaults()
	c := &Client{
		token:     cfg.Token,
		baseURL:   cfg.BaseURL,
		maxLength: cfg.MaxLength,
		client:    cfg.HTTPClient,
		history:   conversation.New(),
		debug:     misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv(EnvDebugKey)),
	}
	c.model = cfg.Model
	c.endpoint = endpointFor(c.baseURL, c.model)
	return c, nil
}

func endpointFor(baseURL, model string) string {
	return baseURL + model
}

func (c *Client) Model() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

func (c *Client) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoint
}

// SetModel switches model and recomputes the endpoint. The conversation is
// cleared as a side effect since prior context belongs to the old model.
func (c *Client) SetModel(name string) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	c.mu.Lock()
	c.model = name
	c.endpoint = endpointFor(c.baseURL, name)
	c.mu.Unlock()
	c.history.Clear()
}

func (c *Client) History() []models.Turn {
	return c.history.Snapshot()
}

func (c *Client) HistoryLen() int {
	return c.history.Len()
}

// ClearHistory waits for an in-flight Send so that its turns are cleared
// together.
func (c *Client) ClearHistory() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	c.history.Clear()
}

// Send is SendWithMaxLength using the configured max length.
func (c *Client) Send(ctx context.Context, message string) string {
	return c.SendWithMaxLength(ctx, message, c.maxLength)
}

// SendWithMaxLength appends message to the conversation, queries the model
// with the most recent turns as context and appends the reply. Failures are
// never returned as errors, they become the reply text.
func (c *Client) SendWithMaxLength(ctx context.Context, message string, maxLength int) string {
	reply, _ := c.exchange(ctx, message, maxLength)
	return reply
}

// Exchange is Send that also returns the history length as it was right
// after the reply got appended.
func (c *Client) Exchange(ctx context.Context, message string) (reply string, historyLen int) {
	return c.exchange(ctx, message, c.maxLength)
}

func (c *Client) exchange(ctx context.Context, message string, maxLength int) (string, int) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	c.history.Append(models.UserTurn(message))
	prompt := c.history.Context()

	var reply string
	body, err := c.query(ctx, prompt, maxLength)
	if err != nil {
		reply = ErrorReplyPrefix + fmt.Sprintf("API request failed: %v", err)
	} else if apiErr, isErr := extractAPIError(body); isErr {
		reply = ErrorReplyPrefix + apiErr
	} else if generated, ok := extractGenerated(body); ok {
		reply = cleanGenerated(generated, prompt)
	} else {
		reply = EmptyReply
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("huggingface reply: %q\n", reply))
	}

	c.history.Append(models.BotTurn(reply))
	return reply, c.history.Len()
}

// query performs the single round trip and returns the raw 2xx body.
func (c *Client) query(ctx context.Context, prompt string, maxLength int) ([]byte, error) {
	req, err := c.createRequest(ctx, prompt, maxLength)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("huggingface response: %v, body: %v\n", res.Status, string(body)))
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		if msg, ok := extractAPIError(body); ok {
			return nil, fmt.Errorf("unexpected status code: %v, error: %v", res.Status, msg)
		}
		return nil, fmt.Errorf("unexpected status code: %v, body: %v", res.Status, string(body))
	}
	if !json.Valid(body) {
		return nil, errors.New("failed to decode JSON response")
	}
	return body, nil
}

func (c *Client) createRequest(ctx context.Context, prompt string, maxLength int) (*http.Request, error) {
	reqData := req{
		Inputs: prompt,
		Parameters: parameters{
			MaxLength:   maxLength,
			Temperature: Temperature,
			DoSample:    DoSample,
		},
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("huggingface request: %v\n", debug.IndentedJsonFmt(reqData)))
	}
	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %v", c.token))
	return req, nil
}

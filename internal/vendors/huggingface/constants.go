package huggingface

const (
	DefaultBaseURL   = "https://api-inference.huggingface.co/models/"
	EnvAPITokenKey   = "HUGGINGFACE_API_TOKEN"
	EnvAPIKeyKey     = "HF_API_KEY"
	EnvDebugKey      = "DEBUG_HUGGINGFACE"
	DefaultModelName = "microsoft/DialoGPT-medium"
	DefaultMaxLength = 100

	Temperature = 0.7
	DoSample    = true

	ErrorReplyPrefix = "Sorry, I encountered an error: "
	EmptyReply       = "I'm sorry, I couldn't generate a response."
)

// PopularModels is the quick-pick menu offered when switching model. The
// first entry is the default.
var PopularModels = []string{
	"microsoft/DialoGPT-medium",
	"microsoft/DialoGPT-large",
	"facebook/blenderbot-400M-distill",
	"microsoft/DialoGPT-small",
}

package huggingface

import "encoding/json"

type parameters struct {
	MaxLength   int     `json:"max_length"`
	Temperature float64 `json:"temperature"`
	DoSample    bool    `json:"do_sample"`
}

type req struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
}

type generation struct {
	GeneratedText *string `json:"generated_text"`
}

type apiError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}

// extractGenerated finds the first element of the response array which
// carries a generated_text string. Any other shape yields ok == false.
func extractGenerated(body []byte) (string, bool) {
	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return "", false
	}
	for _, e := range elems {
		var g generation
		if err := json.Unmarshal(e, &g); err != nil {
			continue
		}
		if g.GeneratedText != nil {
			return *g.GeneratedText, true
		}
	}
	return "", false
}

// extractAPIError returns the message of an {"error": "..."} body, if any.
func extractAPIError(body []byte) (string, bool) {
	var e apiError
	if err := json.Unmarshal(body, &e); err != nil {
		return "", false
	}
	if e.Error == "" {
		return "", false
	}
	return e.Error, true
}

package huggingface

import "strings"

const botLabel = "Bot:"

// cleanGenerated strips the echoed prompt and a leading "Bot:" label from
// the raw model output.
//
// This is a heuristic and not a contract of the remote model. If the model
// echoes only part of the context, the partial echo stays in the reply, and a
// reply which legitimately repeats the whole context loses that text.
func cleanGenerated(generated, context string) string {
	reply := strings.TrimSpace(generated)
	if context != "" && strings.Contains(reply, context) {
		reply = strings.TrimSpace(strings.ReplaceAll(reply, context, ""))
	}
	if strings.HasPrefix(reply, botLabel) {
		reply = strings.TrimSpace(strings.TrimPrefix(reply, botLabel))
	}
	return reply
}

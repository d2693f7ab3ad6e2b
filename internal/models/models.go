package models

import (
	"context"
	"fmt"
)

type Querier interface {
	Query(ctx context.Context) error
}

type Role string

const (
	User Role = "User"
	Bot  Role = "Bot"
)

// Turn is one utterance in a conversation. Turns are never mutated once
// appended to a conversation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// String renders the turn the way it is sent as model context, "User: hi".
func (t Turn) String() string {
	return fmt.Sprintf("%v: %v", t.Role, t.Text)
}

func UserTurn(text string) Turn {
	return Turn{Role: User, Text: text}
}

func BotTurn(text string) Turn {
	return Turn{Role: Bot, Text: text}
}

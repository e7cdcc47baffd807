package domain

import "fmt"

// OutboundMessage is a single chat post addressed to a bot.
type OutboundMessage struct {
	BotID string
	Text  string
}

func (m OutboundMessage) Validate() error {
	if m.BotID == "" {
		return fmt.Errorf("%w: bot id is required", ErrValidation)
	}
	if m.Text == "" {
		return fmt.Errorf("%w: text is required", ErrValidation)
	}
	return nil
}

package hub

import (
	"fmt"
	"time"
)

// UnknownSender is used when a connection did not announce a name.
const UnknownSender = "unknown"

// Message is a chat message as it travels through the Hub. It is passed by
// value, so every subscriber gets its own copy.
type Message struct {
	Sender  string    `json:"sender"`
	Text    string    `json:"text"`
	Session string    `json:"session,omitempty"` // publishing session, empty for direct mail
	Origin  string    `json:"origin,omitempty"`  // relay instance that accepted it, empty if local
	Time    time.Time `json:"time"`
}

// NewMessage builds a locally accepted message. An empty sender becomes
// UnknownSender.
func NewMessage(sender, text string) Message {
	if sender == "" {
		sender = UnknownSender
	}
	return Message{
		Sender: sender,
		Text:   text,
		Time:   time.Now(),
	}
}

// FromSession returns a copy of m tagged with the publishing session id.
func (m Message) FromSession(id string) Message {
	m.Session = id
	return m
}

// IsLocal reports whether the message was accepted by this relay instance.
func (m Message) IsLocal() bool {
	return m.Origin == ""
}

func (m Message) String() string {
	return fmt.Sprintf("Message{Sender: %s, Session: %s, Origin: %s, Text: %q}",
		m.Sender, m.Session, m.Origin, m.Text)
}

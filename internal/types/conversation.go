package types

// Role identifies the author of a conversation entry.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationEntry is one immutable entry in the session conversation log.
type ConversationEntry struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

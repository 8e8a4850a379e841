package chat

import "time"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a session's conversation. Immutable once appended.
type Turn struct {
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Filters is the structured interpretation of one user message.
// Derived per turn, never persisted.
type Filters struct {
	Category string
	MaxPrice *float64
	Keywords []string
}

// Recommendation is a product the assistant suggested in a reply, matched
// back to the retrieved catalog context.
type Recommendation struct {
	ProductID int64   `json:"product_id"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Category  string  `json:"category"`
	Reason    string  `json:"reason"`
	ImageURL  string  `json:"image_url"`
}

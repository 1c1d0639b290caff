package pkg

import "time"

// Channel identifies the messaging surface a message arrived from.  The
// channel determines the wire format of the reply.
type Channel string

const (
	// ChannelWeb is the JSON web-chat client.
	ChannelWeb Channel = "web"
	// ChannelTelephony is the WhatsApp gateway (Twilio-style form webhook).
	ChannelTelephony Channel = "telephony"
	// ChannelBotPlatform is the Telegram bot webhook.
	ChannelBotPlatform Channel = "bot_platform"
)

// InboundMessage is the normalized form of a channel-specific payload.  It is
// created once per request and discarded when the request completes.
type InboundMessage struct {
	SenderID string
	RawText  string
	Channel  Channel
}

// Category is the triage outcome for a single message.
type Category string

const (
	CategoryEmergency Category = "emergency"
	CategoryGreeting  Category = "greeting"
	CategoryClinical  Category = "clinical"
)

// Classification is derived purely from the raw message text.  It carries the
// keyword that triggered an emergency or greeting match, when there was one.
type Classification struct {
	Category       Category
	MatchedKeyword string
}

// ComposedReply is the outgoing text after composition and post-processing.
type ComposedReply struct {
	BodyText           string
	DisclaimerAppended bool
}

// HistoryRecord is the persisted form of one exchange.  It is write-only:
// nothing in this system reads it back.
type HistoryRecord struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Mensaje   string    `json:"mensaje"`
	Respuesta string    `json:"respuesta"`
	Timestamp time.Time `json:"timestamp"`
}

// WebResponse is the reply body for the web channel.
type WebResponse struct {
	Respuesta string `json:"respuesta"`
}

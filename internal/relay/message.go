// Package relay lets a notification triggered in one context (an SSH
// session) play its sound on a different machine over plain HTTP.
package relay

// Message is the payload the relay client POSTs to the relay server.
// Delivery is acknowledged by HTTP status alone; there is no response body.
type Message struct {
	SoundType string `json:"soundType"`
	Message   string `json:"message"`
	Source    string `json:"source"`
	Timestamp int64  `json:"timestamp"`
}

// PlayPath is the single endpoint the relay server accepts.
const PlayPath = "/play"

// MaxBodyBytes caps relay request bodies. Anything larger is aborted before
// full buffering to bound server memory.
const MaxBodyBytes = 64 << 10

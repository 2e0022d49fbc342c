package live

import (
	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/notify"
)

// Client message types.
const (
	TypeChange = "change"
	TypeSubmit = "submit"
	TypePing   = "ping"
)

// Server message types.
const (
	TypeSession   = "session"
	TypeFields    = "fields"
	TypeField     = "field"
	TypeErrors    = "errors"
	TypeBusy      = "busy"
	TypeToast     = "toast"
	TypeSubmitted = "submitted"
	TypePong      = "pong"
	TypeError     = "error"
)

// ClientMessage is sent by the browser runtime.
type ClientMessage struct {
	Type  string `json:"type"`
	Key   string `json:"key,omitempty"`
	Value any    `json:"value,omitempty"`
}

// ServerMessage is pushed to the browser runtime. Only the fields relevant to
// Type are set.
type ServerMessage struct {
	Type         string               `json:"type"`
	ID           string               `json:"id,omitempty"`
	HTML         string               `json:"html,omitempty"`
	Key          string               `json:"key,omitempty"`
	Error        string               `json:"error,omitempty"`
	Invalid      bool                 `json:"invalid,omitempty"`
	Errors       map[string]string    `json:"errors,omitempty"`
	Submitting   bool                 `json:"submitting,omitempty"`
	Notification *notify.Notification `json:"notification,omitempty"`
	Payload      model.Payload        `json:"payload,omitempty"`
	Message      string               `json:"message,omitempty"`
}

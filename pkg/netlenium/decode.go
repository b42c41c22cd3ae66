package netlenium

import (
	"encoding/json"
	"fmt"

	"github.com/netlenium/netlenium-go/pkg/validation"
)

// sessionsSchema describes the admin/active_sessions response. Driver and
// Scheme are optional because they have fallbacks.
const sessionsSchema = `{
	"type": "object",
	"required": ["Sessions"],
	"properties": {
		"Sessions": {"type": "array", "items": {"$ref": "#/$defs/session"}}
	},
	"$defs": {
		"session": {
			"type": "object",
			"required": ["ID", "Created", "LastActivity", "CurrentWindow", "ProxyConfiguration"],
			"properties": {
				"ID": {"type": "string"},
				"Created": {"type": "integer"},
				"LastActivity": {"type": "integer"},
				"Driver": {"type": ["string", "null"]},
				"CurrentWindow": {"$ref": "#/$defs/window"},
				"ProxyConfiguration": {"$ref": "#/$defs/proxy"}
			}
		},
		"window": {
			"type": "object",
			"required": ["ID", "Title", "Url"],
			"properties": {
				"ID": {"type": ["string", "null"]},
				"Title": {"type": ["string", "null"]},
				"Url": {"type": ["string", "null"]}
			}
		},
		"proxy": {
			"type": "object",
			"required": ["Enabled", "Host", "Port", "AuthenticationRequired", "Username", "Password"],
			"properties": {
				"Enabled": {"type": "boolean"},
				"Scheme": {"type": ["string", "null"]},
				"Host": {"type": ["string", "null"]},
				"Port": {"type": "integer"},
				"AuthenticationRequired": {"type": "boolean"},
				"Username": {"type": ["string", "null"]},
				"Password": {"type": ["string", "null"]}
			}
		}
	}
}`

var sessionsValidator = validation.NewSchema("sessions.json", sessionsSchema)

type sessionsEnvelope struct {
	Sessions []wireSession `json:"Sessions"`
}

type wireSession struct {
	ID                 string     `json:"ID"`
	Created            int64      `json:"Created"`
	LastActivity       int64      `json:"LastActivity"`
	Driver             string     `json:"Driver"`
	CurrentWindow      wireWindow `json:"CurrentWindow"`
	ProxyConfiguration wireProxy  `json:"ProxyConfiguration"`
}

type wireWindow struct {
	ID    string `json:"ID"`
	Title string `json:"Title"`
	URL   string `json:"Url"`
}

type wireProxy struct {
	Enabled                bool   `json:"Enabled"`
	Scheme                 string `json:"Scheme"`
	Host                   string `json:"Host"`
	Port                   int    `json:"Port"`
	AuthenticationRequired bool   `json:"AuthenticationRequired"`
	Username               string `json:"Username"`
	Password               string `json:"Password"`
}

// DecodeSessions decodes an admin/active_sessions response body. Sessions
// keep the server's order. An empty list decodes to an empty, non-nil slice.
// Malformed bodies return the validation or JSON error; they are never
// mapped to a failure Kind.
func DecodeSessions(text string) ([]Session, error) {
	data := []byte(text)
	if err := sessionsValidator.ValidateJSON(data); err != nil {
		return nil, fmt.Errorf("failed to parse sessions response: %w", err)
	}

	var envelope sessionsEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse sessions response: %w", err)
	}

	sessions := make([]Session, 0, len(envelope.Sessions))
	for _, ws := range envelope.Sessions {
		sessions = append(sessions, ws.toSession())
	}
	return sessions, nil
}

func (ws wireSession) toSession() Session {
	return Session{
		ID:           ws.ID,
		Created:      ws.Created,
		LastActivity: ws.LastActivity,
		Driver:       ParseDriver(ws.Driver),
		CurrentWindow: Window{
			ID:    ws.CurrentWindow.ID,
			Title: ws.CurrentWindow.Title,
			URL:   ws.CurrentWindow.URL,
		},
		Proxy: ProxyConfiguration{
			Enabled:                ws.ProxyConfiguration.Enabled,
			Scheme:                 ParseProxyScheme(ws.ProxyConfiguration.Scheme),
			Host:                   ws.ProxyConfiguration.Host,
			Port:                   ws.ProxyConfiguration.Port,
			AuthenticationRequired: ws.ProxyConfiguration.AuthenticationRequired,
			Username:               ws.ProxyConfiguration.Username,
			Password:               ws.ProxyConfiguration.Password,
		},
	}
}

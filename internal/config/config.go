// Package config loads delivery settings from the environment and .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Protocol selects the mail transport.
type Protocol string

const (
	ProtocolREST Protocol = "rest"
	ProtocolSMTP Protocol = "smtp"
	ProtocolMbox Protocol = "mbox"
)

// Environment variable names.
const (
	EnvAPIKey       = "SENDGRID_API_KEY"
	EnvProtocol     = "SENDGRID_PROTOCOL"
	EnvFromAddress  = "EMAIL_FROM_ADDRESS"
	EnvAPIURL       = "SENDGRID_API_URL"
	EnvSMTPServer   = "SMTP_SERVER"
	EnvSMTPPort     = "SMTP_PORT"
	EnvSMTPUsername = "SMTP_USERNAME"
	EnvSMTPPassword = "SMTP_PASSWORD"
	EnvMboxPath     = "PPAP_MBOX_PATH"
)

// SMTP relay defaults, matching SendGrid's SMTP endpoint.
const (
	DefaultSMTPServer   = "smtp.sendgrid.net"
	DefaultSMTPPort     = 587
	DefaultSMTPUsername = "apikey"
)

// DefaultEnvFile is read when Load is called without explicit files.
const DefaultEnvFile = ".env"

// Error describes an invalid or missing setting.
type Error struct {
	Key     string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Message)
}

// SMTP holds relay settings.
type SMTP struct {
	Server   string
	Port     int
	Username string
	Password string
}

// Config is a validated set of delivery settings.
type Config struct {
	APIKey      string
	Protocol    Protocol
	FromAddress string
	APIURL      string
	SMTP        SMTP
	MboxPath    string
}

// Redacted returns a copy of c with secrets masked, suitable for logging.
func (c Config) Redacted() Config {
	c.APIKey = mask(c.APIKey)
	c.SMTP.Password = mask(c.SMTP.Password)
	return c
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "****"
}

// Load reads the given env files (or DefaultEnvFile if none) into the
// process environment without overriding variables already set, then
// builds a Config from the environment. A missing default file is ignored;
// a missing explicit file is an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Key: "env-file", Message: err.Error()}
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, &Error{Key: "env-file", Message: err.Error()}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from a variable lookup function.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := &Config{
		APIKey:      get(EnvAPIKey),
		Protocol:    ParseProtocol(get(EnvProtocol)),
		FromAddress: get(EnvFromAddress),
		APIURL:      get(EnvAPIURL),
		MboxPath:    get(EnvMboxPath),
		SMTP: SMTP{
			Server:   get(EnvSMTPServer),
			Username: get(EnvSMTPUsername),
			Password: get(EnvSMTPPassword),
			Port:     DefaultSMTPPort,
		},
	}

	if cfg.FromAddress == "" {
		return nil, &Error{Key: EnvFromAddress, Message: "is not set"}
	}

	switch cfg.Protocol {
	case ProtocolREST:
		if err := requireAPIKey(lookup, cfg.APIKey); err != nil {
			return nil, err
		}
	case ProtocolSMTP:
		if cfg.SMTP.Server == "" {
			cfg.SMTP.Server = DefaultSMTPServer
		}
		if cfg.SMTP.Username == "" {
			cfg.SMTP.Username = DefaultSMTPUsername
		}
		if raw := get(EnvSMTPPort); raw != "" {
			port, err := strconv.Atoi(raw)
			if err != nil || port < 1 || port > 65535 {
				return nil, &Error{Key: EnvSMTPPort, Message: fmt.Sprintf("invalid port %q", raw)}
			}
			cfg.SMTP.Port = port
		}
		if cfg.SMTP.Password == "" {
			if err := requireAPIKey(lookup, cfg.APIKey); err != nil {
				return nil, err
			}
			cfg.SMTP.Password = cfg.APIKey
		}
	case ProtocolMbox:
		if cfg.MboxPath == "" {
			return nil, &Error{Key: EnvMboxPath, Message: "is not set"}
		}
	}

	return cfg, nil
}

func requireAPIKey(lookup func(string) (string, bool), key string) error {
	if _, ok := lookup(EnvAPIKey); !ok {
		return &Error{Key: EnvAPIKey, Message: "is not set"}
	}
	if key == "" {
		return &Error{Key: EnvAPIKey, Message: "cannot be empty"}
	}
	return nil
}

// ParseProtocol maps a protocol name to a Protocol. Matching is
// case-insensitive; empty or unknown names select ProtocolREST.
func ParseProtocol(s string) Protocol {
	switch Protocol(strings.ToLower(strings.TrimSpace(s))) {
	case ProtocolSMTP:
		return ProtocolSMTP
	case ProtocolMbox:
		return ProtocolMbox
	default:
		return ProtocolREST
	}
}

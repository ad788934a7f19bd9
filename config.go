package ppap

import (
	"github.com/Rindrics/ppap-cli/internal/config"
)

// Protocol selects the mail transport built by NewTransport.
type Protocol = config.Protocol

// Supported protocols.
const (
	ProtocolREST = config.ProtocolREST
	ProtocolSMTP = config.ProtocolSMTP
	ProtocolMbox = config.ProtocolMbox
)

// Config is a validated set of delivery settings.
type Config = config.Config

// LoadConfig reads envFiles (or .env when none are given) and the process
// environment. Variables already set in the process take precedence.
func LoadConfig(envFiles ...string) (*Config, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, wrapError(err)
	}
	return cfg, nil
}

// ConfigFromLookup builds a Config from an arbitrary variable source.
func ConfigFromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg, err := config.FromLookup(lookup)
	if err != nil {
		return nil, wrapError(err)
	}
	return cfg, nil
}

// NewTransport builds the transport selected by cfg.Protocol.
func NewTransport(cfg *Config) (Transport, error) {
	var (
		t   Transport
		err error
	)
	switch cfg.Protocol {
	case ProtocolSMTP:
		t, err = NewSMTPTransport(SMTPConfig{
			Host:     cfg.SMTP.Server,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.FromAddress,
		})
	case ProtocolMbox:
		t, err = NewMboxTransport(cfg.MboxPath, cfg.FromAddress)
	default:
		var opts []RESTOption
		if cfg.APIURL != "" {
			opts = append(opts, WithBaseURL(cfg.APIURL))
		}
		t, err = NewRESTTransport(cfg.APIKey, cfg.FromAddress, opts...)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

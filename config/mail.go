package config

import (
	"os"
	"strconv"
)

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func GetMailConfig() *MailConfig {
	port := 587
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			port = parsed
		}
	}

	return &MailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// Enabled reports whether outbound mail is configured at all. With no
// SMTP host the notification fan-out is skipped entirely.
func (m *MailConfig) Enabled() bool {
	return m.Host != "" && m.From != ""
}

package config

import "sync"

type MailConfig struct {
	Enabled   bool
	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	From      string
	GmailUser string
	GmailPass string
}

var (
	mailConfig *MailConfig
	mailOnce   sync.Once
)

func LoadMailConfig() *MailConfig {
	mailOnce.Do(func() {
		mailConfig = &MailConfig{
			Enabled:   getBool("MAIL_ENABLED", true),
			SMTPHost:  getEnv("SMTP_HOST", ""),
			SMTPPort:  getInt("SMTP_PORT", 587),
			SMTPUser:  getEnv("SMTP_USER", ""),
			SMTPPass:  getEnv("SMTP_PASS", ""),
			From:      getEnv("SMTP_FROM", getEnv("EMAIL_USER", "")),
			GmailUser: getEnv("EMAIL_USER", ""),
			GmailPass: getEnv("EMAIL_PASS", ""),
		}
	})
	return mailConfig
}

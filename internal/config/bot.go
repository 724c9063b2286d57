package config

type Bot struct {
	Token  string `env:"BOT_TOKEN"   json:"-"`
	ChatID int64  `env:"BOT_CHAT_ID"`
}

// Enabled reports whether the Telegram surface should run.
func (b Bot) Enabled() bool {
	return b.Token != ""
}

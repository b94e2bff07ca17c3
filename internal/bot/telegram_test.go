package bot

import (
	"testing"
)

func TestStartTelegramBotSkipsWithoutToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	if dispatcher := StartTelegramBot(nil, nil); dispatcher != nil {
		t.Fatal("expected nil dispatcher without a token")
	}
}

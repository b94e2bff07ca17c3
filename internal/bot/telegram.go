package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"frauddetect/internal/domain"
)

type Advisor interface {
	Ask(ctx context.Context, chatID int64, message string) (string, error)
	Reset(ctx context.Context, chatID int64) error
}

type StatsQuerier interface {
	ByType(ctx context.Context) ([]domain.TypeStat, error)
}

func StartTelegramBot(statsService StatsQuerier, advisorService Advisor) *AlertDispatcher {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}
	alerts := NewAlertDispatcher(b)

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/stats", func(c tele.Context) error {
		if statsService == nil {
			return c.Send("Stats service unavailable")
		}
		rows, err := statsService.ByType(context.Background())
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching stats: %v", err))
		}
		lines := make([]string, 0, len(rows)+1)
		lines = append(lines, "Fraud by transaction type:")
		for _, row := range rows {
			lines = append(lines, fmt.Sprintf("%s: %d fraud / %d legitimate", row.Type, row.Fraud, row.Legitimate))
		}
		return c.Send(strings.Join(lines, "\n"))
	})

	b.Handle("/alerts", func(c tele.Context) error {
		chat := c.Chat()
		if chat == nil {
			return c.Send("Unable to detect chat")
		}

		mode, err := parseAlertMode(c.Args())
		if err != nil {
			return c.Send("Usage: /alerts on | /alerts off | /alerts status")
		}

		switch mode {
		case "on":
			if alerts.Subscribe(chat.ID) {
				return c.Send("High-risk alerts enabled for this chat.")
			}
			return c.Send("High-risk alerts are already enabled for this chat.")
		case "off":
			if alerts.Unsubscribe(chat.ID) {
				return c.Send("High-risk alerts disabled for this chat.")
			}
			return c.Send("High-risk alerts are already disabled for this chat.")
		default:
			if alerts.IsSubscribed(chat.ID) {
				return c.Send("Alerts status: ON")
			}
			return c.Send("Alerts status: OFF")
		}
	})

	b.Handle("/ask", func(c tele.Context) error {
		if advisorService == nil {
			return c.Send("Advisor not configured. Set OPENAI_API_KEY to enable.")
		}
		question := strings.TrimSpace(c.Message().Payload)
		if question == "" {
			return c.Send("Usage: /ask <question>\nExample: /ask Почему этот перевод подозрительный?")
		}
		return handleAdvisorQuery(c, advisorService, question)
	})

	b.Handle("/reset", func(c tele.Context) error {
		if advisorService == nil {
			return c.Send("Advisor not configured. Set OPENAI_API_KEY to enable.")
		}
		if err := advisorService.Reset(context.Background(), c.Chat().ID); err != nil {
			log.Printf("advisor reset error for chat %d: %v", c.Chat().ID, err)
			return c.Send("Failed to reset the conversation. Try again later.")
		}
		return c.Send("Conversation history cleared.")
	})

	b.Handle(tele.OnText, func(c tele.Context) error {
		if advisorService == nil {
			return nil
		}
		text := strings.TrimSpace(c.Text())
		if text == "" {
			return nil
		}
		return handleAdvisorQuery(c, advisorService, text)
	})

	log.Println("Telegram bot started")
	go b.Start()
	return alerts
}

func handleAdvisorQuery(c tele.Context, adv Advisor, question string) error {
	_ = c.Notify(tele.Typing)

	reply, err := adv.Ask(context.Background(), c.Chat().ID, question)
	if err != nil {
		log.Printf("advisor error for chat %d: %v", c.Chat().ID, err)
		return c.Send("Sorry, I'm having trouble right now. Try /stats for raw dataset numbers.")
	}

	if len(reply) > 4000 {
		reply = reply[:4000] + "\n\n[truncated]"
	}

	return c.Send(reply)
}

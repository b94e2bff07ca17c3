package bot

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tele "gopkg.in/telebot.v3"

	"frauddetect/internal/domain"
)

func TestParseAlertMode(t *testing.T) {
	mode, err := parseAlertMode(nil)
	if err != nil || mode != "status" {
		t.Fatalf("expected default status mode, got mode=%q err=%v", mode, err)
	}

	mode, err = parseAlertMode([]string{"on"})
	if err != nil || mode != "on" {
		t.Fatalf("expected on mode, got mode=%q err=%v", mode, err)
	}

	mode, err = parseAlertMode([]string{"OFF"})
	if err != nil || mode != "off" {
		t.Fatalf("expected off mode, got mode=%q err=%v", mode, err)
	}

	if _, err := parseAlertMode([]string{"nope"}); err == nil {
		t.Fatal("expected invalid mode error")
	}
}

func highRiskAssessment() domain.RiskAssessment {
	return domain.RiskAssessment{
		Verdict:           "Вероятно мошенничество",
		RiskScore:         0.92,
		RiskLevel:         domain.RiskHigh,
		RecommendedAction: "Временно заблокировать операцию",
		Transaction: domain.Transaction{
			Step:     1,
			Type:     domain.TypeTransfer,
			Amount:   181.0,
			NameOrig: "C1305486145",
			NameDest: "C553264065",
		},
	}
}

func TestAlertDispatcherNotifyAssessment(t *testing.T) {
	sender := &fakeSender{}
	dispatcher := NewAlertDispatcher(sender)

	if !dispatcher.Subscribe(10) {
		t.Fatal("expected initial subscribe to return true")
	}
	if !dispatcher.Subscribe(20) {
		t.Fatal("expected initial subscribe to return true")
	}
	if dispatcher.Subscribe(10) {
		t.Fatal("expected duplicate subscribe to return false")
	}

	if err := dispatcher.NotifyAssessment(context.Background(), highRiskAssessment()); err != nil {
		t.Fatalf("unexpected notify error: %v", err)
	}
	if len(sender.messages[10]) != 1 || len(sender.messages[20]) != 1 {
		t.Fatalf("expected one message per subscriber, got %+v", sender.messages)
	}
	body := sender.messages[10][0]
	if !strings.Contains(body, "TRANSFER") || !strings.Contains(body, "Вероятно мошенничество") {
		t.Fatalf("unexpected alert body: %s", body)
	}
	if !strings.Contains(body, "Временно заблокировать операцию") {
		t.Fatalf("alert must carry the recommended action: %s", body)
	}
}

func TestAlertDispatcherDropsLowRisk(t *testing.T) {
	sender := &fakeSender{}
	dispatcher := NewAlertDispatcher(sender)
	dispatcher.Subscribe(10)

	a := highRiskAssessment()
	a.RiskLevel = domain.RiskLow
	if err := dispatcher.NotifyAssessment(context.Background(), a); err != nil {
		t.Fatalf("unexpected notify error: %v", err)
	}
	if len(sender.messages) != 0 {
		t.Fatalf("expected zero outgoing messages, got %+v", sender.messages)
	}
}

func TestAlertDispatcherUnsubscribe(t *testing.T) {
	sender := &fakeSender{}
	dispatcher := NewAlertDispatcher(sender)

	dispatcher.Subscribe(10)
	if !dispatcher.Unsubscribe(10) {
		t.Fatal("expected unsubscribe to return true")
	}
	if dispatcher.Unsubscribe(10) {
		t.Fatal("expected second unsubscribe to return false")
	}

	if err := dispatcher.NotifyAssessment(context.Background(), highRiskAssessment()); err != nil {
		t.Fatalf("unexpected notify error: %v", err)
	}
	if len(sender.messages) != 0 {
		t.Fatalf("expected zero outgoing messages, got %+v", sender.messages)
	}
}

func TestAlertDispatcherNilIsNoop(t *testing.T) {
	var dispatcher *AlertDispatcher
	if err := dispatcher.NotifyAssessment(context.Background(), highRiskAssessment()); err != nil {
		t.Fatalf("nil dispatcher must be a no-op: %v", err)
	}
}

type fakeSender struct {
	messages map[int64][]string
}

func (f *fakeSender) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	if f.messages == nil {
		f.messages = make(map[int64][]string)
	}

	chat, ok := to.(*tele.Chat)
	if !ok {
		return nil, fmt.Errorf("unexpected recipient type %T", to)
	}
	f.messages[chat.ID] = append(f.messages[chat.ID], fmt.Sprint(what))
	return &tele.Message{}, nil
}

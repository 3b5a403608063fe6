package notification

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"tanuki/report"
	"tanuki/utils/log"
)

type TelegramNotifier struct {
	BotToken string
	ChatID   string
}

func NewTelegramNotifier(botToken, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		BotToken: botToken,
		ChatID:   chatID,
	}
}

func (t *TelegramNotifier) SendNotification(message string) error {
	apiURL := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.BotToken)
	data := url.Values{}
	data.Set("chat_id", t.ChatID)
	data.Set("text", message)

	resp, err := http.PostForm(apiURL, data)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, err = io.ReadAll(resp.Body)
	return err
}

// SweepNotifier 는 스윕 완료 시 최적 조합과 요약을 알림 메시지로 전송합니다.
func (t *TelegramNotifier) SweepNotifier(bestKey string, summary report.Summary, total, completed int) {
	message := fmt.Sprintf("스윕 완료:\n전략: %s\n조합: %d개 중 %d개 완료\n최적: %s\n수익률: %.4f (승률 %.2f)",
		summary.Strategy, total, completed, bestKey, summary.TotalReturn, summary.WinRate)
	if sendErr := t.SendNotification(message); sendErr != nil {
		log.Warnf("텔레그램 알림 전송 실패: %v", sendErr)
	}
}

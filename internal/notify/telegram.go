// Package notify pushes marketplace events (new matching jobs, interview
// messages, status changes) to a Telegram chat. Optional: a nil *Telegram is
// a no-op so the watch loop never branches on configuration.
package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-hireloop-client/internal/models"
)

type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

// SendJob posts a job card with its match score.
func (t *Telegram) SendJob(job models.JobPosting, score int) error {
	if t == nil {
		return nil
	}

	company := "Unknown Company"
	if job.Company != nil && job.Company.Name != "" {
		company = job.Company.Name
	}

	msgText := fmt.Sprintf("💼 *%s*\n", escapeMarkdown(job.Title))
	msgText += fmt.Sprintf("🏢 %s\n", escapeMarkdown(company))
	if job.Location != "" {
		msgText += fmt.Sprintf("📍 %s\n", escapeMarkdown(job.Location))
	}
	if job.Salary != nil {
		msgText += fmt.Sprintf("💰 %s\n", escapeMarkdown(formatSalary(job.Salary)))
	}
	if len(job.RequiredSkills) > 0 {
		msgText += fmt.Sprintf("🛠 %s\n", escapeMarkdown(strings.Join(job.RequiredSkills, ", ")))
	}
	msgText += fmt.Sprintf("🤖 Match Score: %d/100", score)

	msg := tgbotapi.NewMessage(t.chatID, msgText)
	msg.ParseMode = "MarkdownV2"
	_, err := t.api.Send(msg)
	return err
}

// SendMessageAlert announces a new thread message.
func (t *Telegram) SendMessageAlert(jobTitle string, m models.Message) error {
	if t == nil {
		return nil
	}
	who := string(m.Sender)
	if m.Sender == models.SenderSystem {
		who = "AI interviewer"
	}
	text := fmt.Sprintf("💬 New message on *%s* from %s:\n%s",
		escapeMarkdown(jobTitle), escapeMarkdown(who), escapeMarkdown(m.Content))
	return t.send(text)
}

// SendStatusChange announces an application status transition.
func (t *Telegram) SendStatusChange(jobTitle string, status models.ApplicationStatus) error {
	if t == nil {
		return nil
	}
	icon := "📌"
	switch status {
	case models.StatusShortlisted:
		icon = "⭐"
	case models.StatusHired:
		icon = "🎉"
	case models.StatusRejected:
		icon = "❌"
	}
	text := fmt.Sprintf("%s Application for *%s* is now %s", icon,
		escapeMarkdown(jobTitle), escapeMarkdown(string(status)))
	return t.send(text)
}

func (t *Telegram) SendStatus(message string) error {
	if t == nil {
		return nil
	}
	return t.send("ℹ️ " + escapeMarkdown(message))
}

func (t *Telegram) send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "MarkdownV2"
	_, err := t.api.Send(msg)
	return err
}

func formatSalary(s *models.Salary) string {
	if s.Min == 0 && s.Max == 0 {
		return "Negotiable"
	}
	return fmt.Sprintf("%d-%d %s", s.Min, s.Max, s.Currency)
}

package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"dine-easy/internal/notify"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var ErrNoWebhookURL = errors.New("webhook url is empty")

// Client talks to the Telegram Bot API. It implements notify.Sender.
type Client struct {
	bot *tgbotapi.BotAPI
}

type BotInfo struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

// NewClient authenticates the token with getMe. apiEndpoint overrides the
// public endpoint and must contain two %s verbs (token, method).
func NewClient(token, apiEndpoint string, timeout time.Duration) (*Client, error) {
	if apiEndpoint == "" {
		apiEndpoint = tgbotapi.APIEndpoint
	}
	bot, err := tgbotapi.NewBotAPIWithClient(token, apiEndpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to authorize bot: %w", err)
	}
	return &Client{bot: bot}, nil
}

func (c *Client) Send(_ context.Context, msg notify.Message) error {
	cfg := tgbotapi.NewMessage(msg.ChatID, msg.Text)
	cfg.ParseMode = msg.ParseMode
	if len(msg.Keyboard) > 0 {
		cfg.ReplyMarkup = inlineKeyboard(msg.Keyboard)
	}

	if _, err := c.bot.Send(cfg); err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	return nil
}

// AnswerCallback shows text to the user who pressed a button.
func (c *Client) AnswerCallback(_ context.Context, callbackID, text string) error {
	if _, err := c.bot.Request(tgbotapi.NewCallbackWithAlert(callbackID, text)); err != nil {
		return fmt.Errorf("telegram answerCallbackQuery: %w", err)
	}
	return nil
}

// EditKeyboard replaces the inline keyboard of an existing message.
func (c *Client) EditKeyboard(_ context.Context, chatID int64, messageID int, keyboard [][]notify.InlineButton) error {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, inlineKeyboard(keyboard))
	if _, err := c.bot.Request(edit); err != nil {
		return fmt.Errorf("telegram editMessageReplyMarkup: %w", err)
	}
	return nil
}

func (c *Client) Status(_ context.Context) (BotInfo, error) {
	me, err := c.bot.GetMe()
	if err != nil {
		return BotInfo{}, fmt.Errorf("telegram getMe: %w", err)
	}
	return BotInfo{ID: me.ID, Username: me.UserName, FirstName: me.FirstName}, nil
}

// SetWebhook subscribes url to callback queries only.
func (c *Client) SetWebhook(_ context.Context, url string) error {
	if url == "" {
		return ErrNoWebhookURL
	}
	webhook, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}
	webhook.AllowedUpdates = []string{"callback_query"}

	if _, err := c.bot.Request(webhook); err != nil {
		return fmt.Errorf("telegram setWebhook: %w", err)
	}
	return nil
}

func (c *Client) DeleteWebhook(_ context.Context) error {
	if _, err := c.bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("telegram deleteWebhook: %w", err)
	}
	return nil
}

func inlineKeyboard(rows [][]notify.InlineButton) tgbotapi.InlineKeyboardMarkup {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, button := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

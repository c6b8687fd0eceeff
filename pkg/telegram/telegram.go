package telegram

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const defaultAPIBase = "https://api.telegram.org"

type apiResponse struct {
	Ok          bool   `json:"ok"`
	Description string `json:"description"`
}

// Client отправляет сообщения в один фиксированный чат через Bot API.
type Client struct {
	token  string
	chatID string
	client *resty.Client
}

func NewClient(apiBase, token, chatID string) *Client {
	if apiBase == "" {
		apiBase = defaultAPIBase
	}

	client := resty.New().
		SetBaseURL(apiBase).
		SetTimeout(10 * time.Second)

	return &Client{
		token:  token,
		chatID: chatID,
		client: client,
	}
}

// SendMessage отправляет один текст с разметкой HTML.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	var result apiResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetBody(map[string]interface{}{
			"chat_id":    c.chatID,
			"text":       text,
			"parse_mode": "HTML",
		}).
		SetResult(&result).
		SetError(&result).
		Post("/bot" + c.token + "/sendMessage")

	if err != nil {
		return errors.Wrap(err, "запрос к Bot API не выполнен")
	}

	if resp.IsError() || !result.Ok {
		return errors.Errorf("Bot API отклонил сообщение: статус %s, описание %q", resp.Status(), result.Description)
	}

	return nil
}

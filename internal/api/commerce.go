package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nurak20/smart-pos-web/internal/domain"
)

// FetchProducts loads the sellable catalog.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.CatalogItem, error) {
	data, err := c.Get(ctx, EndpointProducts, nil)
	if err != nil {
		return nil, err
	}

	var items []domain.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode products failed: %w", err)
	}
	return items, nil
}

// SubmitInvoice posts the order submission and returns the persisted order
// as echoed back by the API.
func (c *Client) SubmitInvoice(ctx context.Context, sub domain.OrderSubmission) (*domain.InvoiceResult, error) {
	data, err := c.Post(ctx, EndpointInvoice, sub)
	if err != nil {
		return nil, err
	}

	var result domain.InvoiceResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode invoice response failed: %w", err)
	}
	return &result, nil
}

// TelegramMessage is the fire-and-forget notification payload.
type TelegramMessage struct {
	ChatID    string `json:"chatId"`
	Message   string `json:"message"`
	ParseMode string `json:"parseMode"`
}

// SendTelegram dispatches a notification. The response body is ignored by
// callers; only transport-level failure is reported.
func (c *Client) SendTelegram(ctx context.Context, msg TelegramMessage) error {
	_, err := c.Post(ctx, EndpointTelegramSend, msg)
	return err
}

// LoginResult carries the credential and profile returned by auth/login.
type LoginResult struct {
	Token string
	User  json.RawMessage
}

// Login exchanges credentials for a bearer token. The token travels in the
// response meta, the user profile in data.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	resp, err := c.do(ctx, "POST", EndpointLogin, map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var meta struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Meta, &meta); err != nil || meta.Token == "" {
		return nil, fmt.Errorf("login response missing token")
	}

	var data struct {
		User json.RawMessage `json:"user"`
	}
	_ = json.Unmarshal(resp.Data, &data)

	return &LoginResult{Token: meta.Token, User: data.User}, nil
}

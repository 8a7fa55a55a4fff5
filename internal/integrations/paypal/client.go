package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CredentialsProvider резолвит креденшелы процессора в момент вызова
// Отсутствие креденшелов - обрабатываемое состояние, а не ошибка старта
type CredentialsProvider interface {
	Credentials(ctx context.Context) Credentials
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с PayPal Checkout API
// Выполняет обмен client credentials на access token и создание ордера
type Client struct {
	provider   CredentialsProvider
	httpClient *http.Client
	returnBase string // базовый URL сайта для return/cancel ссылок
	brandName  string
	log        Logger

	// baseURLOverride переопределяет адрес API (для тестов)
	baseURLOverride string
}

// NewClient создает новый экземпляр клиента PayPal
func NewClient(provider CredentialsProvider, timeout time.Duration, returnBase, brandName string, log Logger) *Client {
	return &Client{
		provider: provider,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		returnBase: strings.TrimRight(returnBase, "/"),
		brandName:  brandName,
		log:        log,
	}
}

// CreateOrder создает платежный ордер на точную сумму бронирования
// Ордер тегируется ID бронирования (reference_id) для последующей сверки.
// Возвращает ErrNotConfigured без единого сетевого вызова, если креденшелы
// не заданы; ErrUnavailable/ErrInvalidResponse - при проблемах процессора
func (c *Client) CreateOrder(ctx context.Context, req *OrderRequest) (*OrderResult, error) {
	creds := c.provider.Credentials(ctx)
	if !creds.IsConfigured() {
		return nil, ErrNotConfigured
	}

	baseURL := creds.BaseURL()
	if c.baseURLOverride != "" {
		baseURL = c.baseURLOverride
	}

	token, err := c.fetchAccessToken(ctx, baseURL, creds)
	if err != nil {
		return nil, err
	}

	return c.createOrder(ctx, baseURL, token, req)
}

// ReturnURL возвращает адрес успешного возврата с ID бронирования
func (c *Client) ReturnURL(bookingID string) string {
	return fmt.Sprintf("%s/?booking_success=%s", c.returnBase, url.QueryEscape(bookingID))
}

// CancelURL возвращает адрес возврата при отмене с ID бронирования
func (c *Client) CancelURL(bookingID string) string {
	return fmt.Sprintf("%s/?booking_cancelled=%s", c.returnBase, url.QueryEscape(bookingID))
}

// fetchAccessToken обменивает client credentials на access token
func (c *Client) fetchAccessToken(ctx context.Context, baseURL string, creds Credentials) (string, error) {
	body := strings.NewReader("grant_type=client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/oauth2/token", body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create token request: %v", ErrInternal, err)
	}

	req.SetBasicAuth(creds.ClientID, creds.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token request failed: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: token endpoint returned %d: %s", ErrUnavailable, resp.StatusCode, string(respBody))
	}

	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("%w: failed to decode token response: %v", ErrInvalidResponse, err)
	}

	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrInvalidResponse)
	}

	return tokenResp.AccessToken, nil
}

// createOrder создает ордер v2/checkout/orders и извлекает approval-ссылку
func (c *Client) createOrder(ctx context.Context, baseURL, token string, req *OrderRequest) (*OrderResult, error) {
	payload := orderPayload{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{
			{
				ReferenceID: req.BookingID,
				Description: req.Description,
				Amount: orderAmount{
					CurrencyCode: req.Currency,
					Value:        req.Amount,
				},
			},
		},
		PaymentSource: paymentSource{
			PayPal: paypalSource{
				ExperienceContext: experienceContext{
					ReturnURL:  c.ReturnURL(req.BookingID),
					CancelURL:  c.CancelURL(req.BookingID),
					BrandName:  c.brandName,
					UserAction: "PAY_NOW",
				},
			},
		},
	}

	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal order payload: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v2/checkout/orders", bytes.NewReader(rawPayload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create order request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: order request failed: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: order endpoint returned %d: %s", ErrUnavailable, resp.StatusCode, string(respBody))
	}

	var orderResp orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode order response: %v", ErrInvalidResponse, err)
	}

	result := &OrderResult{OrderID: orderResp.ID}

	// Actionable-ссылка приходит как payer-action (v2 payment_source flow)
	// или approve (классический flow)
	for _, link := range orderResp.Links {
		if link.Rel == "payer-action" || link.Rel == "approve" {
			result.ApprovalURL = link.Href
			break
		}
	}

	c.log.Info("PayPal order created: order_id=%s, booking_id=%s, has_approval_url=%t",
		result.OrderID, req.BookingID, result.ApprovalURL != "")

	return result, nil
}

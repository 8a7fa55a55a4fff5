package paypal

// Credentials креденшелы приложения PayPal
// Резолвятся в момент вызова, а не на старте сервиса
type Credentials struct {
	ClientID string
	Secret   string
	Mode     string // "sandbox" | "live"
}

// IsConfigured проверяет, что креденшелы заданы
func (c Credentials) IsConfigured() bool {
	return c.ClientID != "" && c.Secret != ""
}

// BaseURL возвращает базовый URL API в зависимости от режима
func (c Credentials) BaseURL() string {
	if c.Mode == "live" {
		return "https://api-m.paypal.com"
	}
	return "https://api-m.sandbox.paypal.com"
}

// OrderRequest запрос на создание платежного ордера
type OrderRequest struct {
	BookingID     string // ID бронирования, используется как reference_id ордера
	Amount        string // сумма строкой, например "110.00"
	Currency      string // код валюты, например "AUD"
	Description   string
	CustomerEmail string
	CustomerName  string
}

// OrderResult результат создания ордера
// Пустой ApprovalURL означает, что процессор не вернул actionable-ссылку
type OrderResult struct {
	OrderID     string
	ApprovalURL string
}

// tokenResponse ответ token-эндпоинта
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// orderPayload тело запроса v2/checkout/orders
type orderPayload struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []purchaseUnit `json:"purchase_units"`
	PaymentSource paymentSource  `json:"payment_source"`
}

type purchaseUnit struct {
	ReferenceID string      `json:"reference_id"`
	Description string      `json:"description"`
	Amount      orderAmount `json:"amount"`
}

type orderAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type paymentSource struct {
	PayPal paypalSource `json:"paypal"`
}

type paypalSource struct {
	ExperienceContext experienceContext `json:"experience_context"`
}

type experienceContext struct {
	ReturnURL  string `json:"return_url"`
	CancelURL  string `json:"cancel_url"`
	BrandName  string `json:"brand_name"`
	UserAction string `json:"user_action"`
}

// orderResponse ответ эндпоинта создания ордера
type orderResponse struct {
	ID    string      `json:"id"`
	Links []orderLink `json:"links"`
}

type orderLink struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bar-comandas/web/internal/models"
	"github.com/shopspring/decimal"
)

// Client talks to the table-management REST API.
// Every method is a single request; no retries are attempted.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse api base url %q: %w", baseURL, err)
	}
	return &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// BaseURL returns the API root, used to proxy non-JSON resources.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// Auth

func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Catalog

type productPayload struct {
	Name        string          `json:"nome"`
	Description string          `json:"descricao"`
	Price       json.Number     `json:"preco"`
	Category    models.Category `json:"categoria"`
	Available   bool            `json:"disponivel"`
}

func newProductPayload(in models.ProductInput) productPayload {
	return productPayload{
		Name:        in.Name,
		Description: in.Description,
		Price:       number(in.Price),
		Category:    in.Category,
		Available:   in.Available,
	}
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.do(ctx, http.MethodGet, "/admin/produtos", nil, nil, &products)
	return products, err
}

func (c *Client) CreateProduct(ctx context.Context, in models.ProductInput) error {
	return c.do(ctx, http.MethodPost, "/admin/produtos", nil, newProductPayload(in), nil)
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in models.ProductInput) error {
	return c.do(ctx, http.MethodPut, "/admin/produtos/"+itoa(id), nil, newProductPayload(in), nil)
}

// Menu returns the public catalog shown to staff and diners.
func (c *Client) Menu(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.do(ctx, http.MethodGet, "/cardapio", nil, nil, &products)
	return products, err
}

// Tables

func (c *Client) ListTables(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	err := c.do(ctx, http.MethodGet, "/comandas/mesas", nil, nil, &tables)
	return tables, err
}

func (c *Client) CreateTable(ctx context.Context, number int) error {
	body := map[string]int{"numero": number}
	return c.do(ctx, http.MethodPost, "/admin/mesas", nil, body, nil)
}

// DeleteTable removes a table. The API answers 409 while the table is occupied.
func (c *Client) DeleteTable(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/admin/mesas/"+itoa(id), nil, nil, nil)
}

// Tabs

func (c *Client) OpenTab(ctx context.Context, tableNumber, people int) error {
	body := map[string]int{
		"numeroMesa": tableNumber,
		"qtdPessoas": people,
	}
	return c.do(ctx, http.MethodPost, "/comandas/abrir", nil, body, nil)
}

func (c *Client) TabSummary(ctx context.Context, id int64) (*models.Tab, error) {
	var tab models.Tab
	if err := c.do(ctx, http.MethodGet, "/comandas/"+itoa(id)+"/resumo", nil, nil, &tab); err != nil {
		return nil, err
	}
	return &tab, nil
}

func (c *Client) AddItem(ctx context.Context, tabID, productID int64, quantity int) error {
	body := map[string]int64{
		"produtoId":  productID,
		"quantidade": int64(quantity),
	}
	return c.do(ctx, http.MethodPost, "/comandas/"+itoa(tabID)+"/itens", nil, body, nil)
}

func (c *Client) CancelItem(ctx context.Context, tabID, itemID int64, reason string) error {
	body := map[string]string{"motivo": reason}
	path := fmt.Sprintf("/comandas/%d/itens/%d", tabID, itemID)
	return c.do(ctx, http.MethodDelete, path, nil, body, nil)
}

func (c *Client) SetCoverCharge(ctx context.Context, tabID int64, enabled bool) error {
	q := url.Values{"habilitado": {strconv.FormatBool(enabled)}}
	return c.do(ctx, http.MethodPatch, "/comandas/"+itoa(tabID)+"/couvert", q, nil, nil)
}

func (c *Client) Pay(ctx context.Context, tabID int64, amount decimal.Decimal, method models.PaymentMethod) error {
	body := struct {
		Amount json.Number          `json:"valor"`
		Method models.PaymentMethod `json:"formaPagamento"`
	}{number(amount), method}
	return c.do(ctx, http.MethodPost, "/comandas/"+itoa(tabID)+"/pagar", nil, body, nil)
}

func (c *Client) CloseTab(ctx context.Context, tabID int64) error {
	return c.do(ctx, http.MethodPost, "/comandas/"+itoa(tabID)+"/fechar", nil, nil, nil)
}

// Configuration

func (c *Client) Settings(ctx context.Context) (*models.Settings, error) {
	var s models.Settings
	if err := c.do(ctx, http.MethodGet, "/admin/configuracoes", nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateSettings(ctx context.Context, s models.Settings) error {
	body := struct {
		CoverCharge     json.Number `json:"valorCouvert"`
		FoodTipPercent  json.Number `json:"percentualGorjetaComida"`
		DrinkTipPercent json.Number `json:"percentualGorjetaBebida"`
	}{number(s.CoverCharge), number(s.FoodTipPercent), number(s.DrinkTipPercent)}
	return c.do(ctx, http.MethodPut, "/admin/configuracoes", nil, body, nil)
}

// Reports

// Revenue returns the revenue between from and to, both formatted as YYYY-MM-DD.
func (c *Client) Revenue(ctx context.Context, from, to string) (*models.RevenueReport, error) {
	var r models.RevenueReport
	q := url.Values{"inicio": {from}, "fim": {to}}
	if err := c.do(ctx, http.MethodGet, "/admin/relatorios/faturamento", q, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) TopSelling(ctx context.Context) ([]models.ProductRanking, error) {
	var rows []models.ProductRanking
	err := c.do(ctx, http.MethodGet, "/admin/relatorios/itens-mais-vendidos", nil, nil, &rows)
	return rows, err
}

func (c *Client) TopRevenue(ctx context.Context) ([]models.ProductRanking, error) {
	var rows []models.ProductRanking
	err := c.do(ctx, http.MethodGet, "/admin/relatorios/itens-maior-faturamento", nil, nil, &rows)
	return rows, err
}

// QRCodePath is the API path of the customer QR image for a tab.
func QRCodePath(tabID int64) string {
	return "/qrcode/mesa/" + itoa(tabID)
}

// Ping checks that the API answers at all. Any response below 500 counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/cardapio", nil), nil)
	if err != nil {
		return fmt.Errorf("failed to create ping request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach api: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return &APIError{StatusCode: resp.StatusCode}
	}
	return nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do performs one JSON request and decodes the response into out when non-nil
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return fmt.Errorf("failed to create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeError builds an APIError, keeping the backend's message when one is sent.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, &payload); err == nil {
		apiErr.Message = payload.Message
	}
	return apiErr
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

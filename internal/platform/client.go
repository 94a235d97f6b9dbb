// Package platform implements the host platform's data-access API client.
package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/herald-hq/herald/internal/common"
	"github.com/herald-hq/herald/internal/handler"
	"github.com/herald-hq/herald/internal/model"
)

// Client fetches documents, companies and exports from the host platform API.
// It implements handler.DataFetcher.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// API wire types. Timestamps are RFC 3339 strings; amounts are plain numbers.
type documentPayload struct {
	ID            string   `json:"id"`
	SpaceID       string   `json:"spaceId"`
	VendorName    string   `json:"vendorName"`
	InvoiceNumber string   `json:"invoiceNumber"`
	Total         float64  `json:"total"`
	Currency      string   `json:"currency"`
	NetAmount     *float64 `json:"netAmount"`
	VATAmount     *float64 `json:"vatAmount"`
	CategoryID    string   `json:"categoryId"`
	CategoryName  string   `json:"categoryName"`
	CompanyID     string   `json:"companyId"`
	Status        string   `json:"status"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
	DueDate       string   `json:"dueDate"`
}

type documentList struct {
	Documents []documentPayload `json:"documents"`
}

type companyPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type companyList struct {
	Companies []companyPayload `json:"companies"`
}

type exportPayload struct {
	ID            string `json:"id"`
	Format        string `json:"format"`
	Status        string `json:"status"`
	DocumentCount int    `json:"documentCount"`
	DownloadURL   string `json:"downloadUrl"`
	CreatedAt     string `json:"createdAt"`
	CompletedAt   string `json:"completedAt"`
}

// NewClient creates a platform API client.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: platform base URL is required", common.ErrMissingConfig)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: platform API key is required", common.ErrMissingConfig)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// GetDocument fetches one document by id.
func (c *Client) GetDocument(ctx context.Context, spaceID, documentID string) (*model.Document, error) {
	var payload documentPayload
	path := fmt.Sprintf("/v1/spaces/%s/documents/%s", url.PathEscape(spaceID), url.PathEscape(documentID))
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return nil, err
	}

	doc := toDocument(payload)
	return &doc, nil
}

// ListDocuments fetches documents within a date range.
func (c *Client) ListDocuments(ctx context.Context, spaceID string, query handler.DocumentQuery) ([]model.Document, error) {
	params := url.Values{}
	if !query.Since.IsZero() {
		params.Set("since", query.Since.Format(time.RFC3339))
	}
	if !query.Until.IsZero() {
		params.Set("until", query.Until.Format(time.RFC3339))
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}

	var payload documentList
	path := fmt.Sprintf("/v1/spaces/%s/documents", url.PathEscape(spaceID))
	if err := c.get(ctx, path, params, &payload); err != nil {
		return nil, err
	}

	docs := make([]model.Document, 0, len(payload.Documents))
	for _, p := range payload.Documents {
		docs = append(docs, toDocument(p))
	}
	return docs, nil
}

// ListCompanies fetches companies by id.
func (c *Client) ListCompanies(ctx context.Context, spaceID string, ids []string) ([]model.Company, error) {
	params := url.Values{}
	if len(ids) > 0 {
		params.Set("ids", strings.Join(ids, ","))
	}

	var payload companyList
	path := fmt.Sprintf("/v1/spaces/%s/companies", url.PathEscape(spaceID))
	if err := c.get(ctx, path, params, &payload); err != nil {
		return nil, err
	}

	companies := make([]model.Company, 0, len(payload.Companies))
	for _, p := range payload.Companies {
		companies = append(companies, model.Company{ID: p.ID, Name: p.Name})
	}
	return companies, nil
}

// GetExport fetches one export by id.
func (c *Client) GetExport(ctx context.Context, spaceID, exportID string) (*model.Export, error) {
	var payload exportPayload
	path := fmt.Sprintf("/v1/spaces/%s/exports/%s", url.PathEscape(spaceID), url.PathEscape(exportID))
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return nil, err
	}

	export := model.Export{
		ID:            payload.ID,
		Format:        payload.Format,
		Status:        payload.Status,
		DocumentCount: payload.DocumentCount,
		DownloadURL:   payload.DownloadURL,
		CreatedAt:     parseTime(payload.CreatedAt),
	}
	if t := parseTime(payload.CompletedAt); !t.IsZero() {
		export.CompletedAt = &t
	}
	return &export, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch data: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", common.ErrNotFound, path)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("platform API error: %d - %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func toDocument(p documentPayload) model.Document {
	doc := model.Document{
		ID:            p.ID,
		SpaceID:       p.SpaceID,
		VendorName:    p.VendorName,
		InvoiceNumber: p.InvoiceNumber,
		Total:         p.Total,
		Currency:      p.Currency,
		NetAmount:     p.NetAmount,
		VATAmount:     p.VATAmount,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		CompanyID:     p.CompanyID,
		Status:        model.DocumentStatus(p.Status),
		CreatedAt:     parseTime(p.CreatedAt),
		UpdatedAt:     parseTime(p.UpdatedAt),
	}
	if t := parseTime(p.DueDate); !t.IsZero() {
		doc.DueDate = &t
	}
	return doc
}

// parseTime tolerates missing or malformed timestamps; absence is normal for
// optional fields.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

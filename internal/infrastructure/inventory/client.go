package inventory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"vend_kiosk/internal/domain"
	"vend_kiosk/internal/domain/entity"
	"vend_kiosk/pkg/contextx"
	"vend_kiosk/pkg/errcodes"
	"vend_kiosk/pkg/httpx"
	"vend_kiosk/pkg/logx"
	"vend_kiosk/pkg/lox"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary          //nolint:gochecknoglobals
	validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals
	logger   = contextx.LoggerFromContextOrDefault                   //nolint:gochecknoglobals
)

// errorBodyMaxLen bounds how much of an upstream error body ends up in errors.
const errorBodyMaxLen = 256

type Config struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	LogFieldMaxLen int
}

// Client talks to the inventory REST service.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}

	var transport http.RoundTripper = httpx.NewLoggingRoundTripper(
		http.DefaultTransport,
		httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		httpx.WithLogFieldMaxLen(cfg.LogFieldMaxLen),
	)

	if cfg.Token != "" {
		transport = httpx.NewAuthBearerRoundTripper(transport, httpx.NewStaticToken(cfg.Token))
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}, nil
}

// FetchAll returns every item in the order the service lists them.
func (c *Client) FetchAll(ctx context.Context) ([]entity.Item, error) {
	var dtos []itemDTO

	if err := c.do(ctx, http.MethodGet, c.endpoint("items"), nil, &dtos); err != nil {
		return nil, domain.WrapError(err, errcodes.CatalogLoadError, "fetch catalog")
	}

	items, err := lox.MapErr(dtos, itemDTO.toEntity)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.CatalogLoadError, "invalid catalog item")
	}

	logger(ctx).Debug("inventory items fetched", slog.Int(logx.FieldItemsCount, len(items)))

	return items, nil
}

// ReplaceItem overwrites the stored item with item as a whole.
func (c *Client) ReplaceItem(ctx context.Context, item entity.Item) error {
	dto := newItemDTO(item)

	if err := validate.Struct(dto); err != nil {
		return domain.WrapError(err, errcodes.InvalidItem, "invalid item")
	}

	endpoint := c.endpoint("items", strconv.FormatInt(item.ID, 10))

	if err := c.do(ctx, http.MethodPut, endpoint, dto, nil); err != nil {
		return domain.WrapError(err, errcodes.PersistenceError, "replace item")
	}

	return nil
}

func (c *Client) endpoint(elem ...string) string {
	return c.baseURL.JoinPath(elem...).String()
}

func (c *Client) do(ctx context.Context, method, endpoint string, request, dest any) error {
	body := io.Reader(http.NoBody)

	if request != nil {
		b, err := json.Marshal(request)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}

		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if request != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyMaxLen)) //nolint:errcheck
		return &StatusError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	if dest == nil {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("json.Decode: %w", err)
	}

	return nil
}

// StatusError is a non-2xx answer from the inventory service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

package tests

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httputil"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// APIClient is a JSON client for exercising the kiosk REST API in tests.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(
	baseURL string,
	httpClient *http.Client,
) APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return APIClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (a APIClient) Get(
	ctx context.Context,
	endpoint string,
	dest any,
	errDest any,
) (*http.Response, error) {
	return a.httpRequest(ctx, http.MethodGet, endpoint, http.NoBody, dest, errDest)
}

func (a APIClient) Post(
	ctx context.Context,
	endpoint string,
	request any,
	dest any,
	errDest any,
) (*http.Response, error) {
	body, err := encode(request)
	if err != nil {
		return nil, err
	}

	return a.httpRequest(ctx, http.MethodPost, endpoint, body, dest, errDest)
}

// PostJSON sends requestJSON as is, for malformed payload cases.
func (a APIClient) PostJSON(
	ctx context.Context,
	endpoint string,
	requestJSON string,
	dest any,
	errDest any,
) (*http.Response, error) {
	return a.httpRequest(ctx, http.MethodPost, endpoint, bytes.NewReader([]byte(requestJSON)), dest, errDest)
}

func (a APIClient) Put(
	ctx context.Context,
	endpoint string,
	request any,
	dest any,
	errDest any,
) (*http.Response, error) {
	body, err := encode(request)
	if err != nil {
		return nil, err
	}

	return a.httpRequest(ctx, http.MethodPut, endpoint, body, dest, errDest)
}

func encode(request any) (io.Reader, error) {
	if request == nil {
		return http.NoBody, nil
	}

	b, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return bytes.NewReader(b), nil
}

func (a APIClient) httpRequest(
	ctx context.Context,
	httpMethod string,
	endpoint string,
	payload io.Reader,
	dest any,
	errDest any,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, httpMethod, a.baseURL+endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	if payload != http.NoBody {
		req.Header.Set("Content-Type", "application/json")
	}

	slog.DebugContext(ctx, "test request", slog.String("method", req.Method), slog.String("url", req.URL.String()))

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	logResponse(ctx, resp)

	if err = parseResponse(resp, dest, errDest); err != nil {
		return nil, fmt.Errorf("parseResponse: %w", err)
	}

	return resp, nil
}

func parseResponse(r *http.Response, dest, errDest any) error {
	if r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices && dest != nil {
		if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
			return fmt.Errorf("json.Decode(success destination): %w", err)
		}
	} else if errDest != nil {
		if err := json.NewDecoder(r.Body).Decode(errDest); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("json.Decode(err destination): %w", err)
		}
	}

	return nil
}

func logResponse(ctx context.Context, r *http.Response) {
	rawResponse, err := httputil.DumpResponse(r, true)
	if err == nil {
		slog.DebugContext(ctx, "test response", slog.String("dump", string(rawResponse)))
	}
}

package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eshaffer321/goalplan-go/internal/types"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

const (
	authHeaderKey = "Authorization"
	contentType   = "application/json"

	defaultBaseURL = "http://localhost:8080/api/v1"
	defaultTimeout = 30 * time.Second
	userAgent      = "goalplan-go/1.0.0"
)

// RESTTransport handles communication with the record API
type RESTTransport struct {
	baseURL     string
	httpClient  *http.Client
	retryClient *retryablehttp.Client
	headers     map[string]string
	credentials *types.Credentials
	logger      types.Logger
	hooks       *types.Hooks
}

// APIError is one error entry in a response envelope
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Response is the envelope every record API response is wrapped in
type Response struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []*APIError     `json:"errors,omitempty"`
}

// NewRESTTransport creates a new record API transport
func NewRESTTransport(opts *Options) *RESTTransport {
	if opts == nil {
		opts = &Options{}
	}

	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: defaultTimeout,
		}
	}

	var retryClient *retryablehttp.Client
	if opts.RetryConfig != nil {
		retryClient = retryablehttp.NewClient()
		retryClient.HTTPClient = opts.HTTPClient
		retryClient.RetryMax = opts.RetryConfig.MaxRetries
		retryClient.RetryWaitMin = opts.RetryConfig.RetryWait
		retryClient.RetryWaitMax = opts.RetryConfig.MaxWait
		retryClient.ErrorHandler = lastResponse

		if opts.Logger != nil {
			retryClient.Logger = &retryLogger{logger: opts.Logger}
		} else {
			retryClient.Logger = nil
		}
	}

	headers := map[string]string{
		"Accept":     contentType,
		"User-Agent": userAgent,
	}
	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &RESTTransport{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		httpClient:  opts.HTTPClient,
		retryClient: retryClient,
		headers:     headers,
		logger:      opts.Logger,
		hooks:       opts.Hooks,
	}
}

// Get fetches path and decodes the envelope's data into result
func (t *RESTTransport) Get(ctx context.Context, path string, query url.Values, result interface{}) error {
	if t.credentials == nil || t.credentials.Token == "" {
		return types.ErrNotAuthenticated
	}

	endpoint := t.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	for k, v := range t.headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set(authHeaderKey, fmt.Sprintf("Bearer %s", t.credentials.Token))

	if t.hooks != nil && t.hooks.OnRequest != nil {
		t.hooks.OnRequest(ctx, httpReq)
	}

	if t.logger != nil {
		t.logger.Debug("Record API request", "path", path, "query", query.Encode())
	}

	start := time.Now()
	resp, err := t.doRequest(httpReq)
	duration := time.Since(start)

	if err != nil {
		if t.hooks != nil && t.hooks.OnError != nil {
			t.hooks.OnError(ctx, err)
		}
		if ctx.Err() != nil {
			return errors.Wrap(types.ErrTimeout, ctx.Err().Error())
		}
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if t.hooks != nil && t.hooks.OnResponse != nil {
		t.hooks.OnResponse(ctx, resp, duration)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	if t.logger != nil {
		t.logger.Debug("Record API response", "status", resp.StatusCode, "duration", duration, "size", len(respBody))
	}

	if resp.StatusCode != http.StatusOK {
		return t.handleHTTPError(resp.StatusCode, respBody)
	}

	var envelope Response
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return errors.Wrap(err, "failed to parse response")
	}

	if len(envelope.Errors) > 0 {
		return &types.Error{
			Code:       envelope.Errors[0].Code,
			Message:    envelope.Errors[0].Message,
			StatusCode: resp.StatusCode,
		}
	}

	if result != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, result); err != nil {
			return errors.Wrap(err, "failed to unmarshal result")
		}
	}

	return nil
}

// SetAuth sets the authentication token
func (t *RESTTransport) SetAuth(token string) {
	if t.credentials == nil {
		t.credentials = &types.Credentials{}
	}
	t.credentials.Token = token
}

// SetCredentials sets the credentials
func (t *RESTTransport) SetCredentials(creds *types.Credentials) {
	t.credentials = creds
}

// doRequest executes the HTTP request with retry if configured
func (t *RESTTransport) doRequest(req *http.Request) (*http.Response, error) {
	if t.retryClient != nil {
		retryReq, err := retryablehttp.FromRequest(req)
		if err != nil {
			return nil, err
		}
		return t.retryClient.Do(retryReq)
	}
	return t.httpClient.Do(req)
}

// lastResponse hands the final response to handleHTTPError once retries are exhausted
func lastResponse(resp *http.Response, err error, _ int) (*http.Response, error) {
	if resp != nil {
		return resp, nil
	}
	return nil, err
}

// handleHTTPError handles HTTP errors
func (t *RESTTransport) handleHTTPError(statusCode int, body []byte) error {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    string `json:"error_code"`
	}

	_ = json.Unmarshal(body, &errResp)

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return types.ErrNotAuthenticated
	case http.StatusNotFound:
		return types.ErrNotFound
	case http.StatusTooManyRequests:
		return types.ErrRateLimited
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return types.ErrTimeout
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		msg := errResp.Message
		if msg == "" {
			msg = errResp.Error
		}
		return &types.Error{
			Code:       "BAD_REQUEST",
			Message:    msg,
			StatusCode: statusCode,
		}
	default:
		if statusCode >= 500 {
			msg := errResp.Message
			if msg == "" {
				msg = errResp.Error
			}

			baseMsg := fmt.Sprintf("server error: %d", statusCode)
			if desc := http.StatusText(statusCode); desc != "" {
				baseMsg = fmt.Sprintf("server error: %d (%s)", statusCode, desc)
			}
			if msg != "" {
				baseMsg = fmt.Sprintf("%s: %s", baseMsg, msg)
			}

			return &types.Error{
				Code:       "SERVER_ERROR",
				Message:    baseMsg,
				StatusCode: statusCode,
				Err:        types.ErrServerError,
			}
		}
		return &types.Error{
			Code:       "HTTP_ERROR",
			Message:    fmt.Sprintf("HTTP error: %d", statusCode),
			StatusCode: statusCode,
		}
	}
}

// Options for the REST transport
type Options struct {
	BaseURL     string
	HTTPClient  *http.Client
	Headers     map[string]string
	RetryConfig *types.RetryConfig
	Logger      types.Logger
	Hooks       *types.Hooks
}

// retryLogger adapts our logger to retryablehttp
type retryLogger struct {
	logger types.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}

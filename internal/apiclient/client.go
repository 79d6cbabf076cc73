// internal/apiclient/client.go
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go_4_vocab_trainer/internal/middleware"
	"go_4_vocab_trainer/internal/model"
	"go_4_vocab_trainer/internal/trainer"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Config は API クライアントの設定
type Config struct {
	BaseURL string
	OwnerID uuid.UUID // 認証なしのサーバー向け (X-Owner-ID)
	Token   string    // 設定されていれば Bearer で送る
	Timeout time.Duration
	// MaxRetries は冪等なリクエストの再試行回数
	MaxRetries int
	Backoff    time.Duration
}

// Client は HTTP API を trainer.Store として使うためのクライアント。
// 所有者は生成時に固定される。
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

var _ trainer.Store = (*Client)(nil)

// HTTPError は 2xx 以外の応答
type HTTPError struct {
	StatusCode int
	Detail     model.ErrorDetail
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Detail.Code != "" {
		return fmt.Sprintf("apiclient: http %d: %s: %s", e.StatusCode, e.Detail.Code, e.Detail.Message)
	}
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = "<empty body>"
	}
	return fmt.Sprintf("apiclient: http %d: %s", e.StatusCode, msg)
}

func (e *HTTPError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, errors.New("apiclient: base url required")
	}
	if cfg.Token == "" && cfg.OwnerID == uuid.Nil {
		return nil, errors.New("apiclient: owner id or token required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 200 * time.Millisecond
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger.With("client", "TrainerAPIClient"),
	}, nil
}

func (c *Client) FetchDueCards(ctx context.Context, cardType string) ([]trainer.Card, error) {
	return c.fetchCards(ctx, "/api/v1/reviews", cardType)
}

func (c *Client) FetchAllCards(ctx context.Context, cardType string) ([]trainer.Card, error) {
	return c.fetchCards(ctx, "/api/v1/reviews/all", cardType)
}

func (c *Client) FetchLastMissed(ctx context.Context, cardType string) ([]trainer.Card, error) {
	return c.fetchCards(ctx, "/api/v1/last-missed", cardType)
}

// fetchCards はキー名の揺れを trainer.NormalizeAll で吸収して返します
func (c *Client) fetchCards(ctx context.Context, path, cardType string) ([]trainer.Card, error) {
	if cardType != "" {
		path += "?" + url.Values{"card_type": {cardType}}.Encode()
	}
	raw, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var raws []trainer.RawCard
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&raws); err != nil {
		return nil, fmt.Errorf("apiclient: decode cards: %w", err)
	}
	cards, skipped := trainer.NormalizeAll(raws)
	if skipped > 0 {
		c.logger.Warn("Skipped cards without id", "path", path, "skipped", skipped)
	}
	return cards, nil
}

type gradeRequest struct {
	IsCorrect    bool `json:"is_correct"`
	CurrentLevel int  `json:"current_level"`
}

// UpsertGrade は current_level を付けて送るので再送しても結果は変わらない
func (c *Client) UpsertGrade(ctx context.Context, in trainer.GradeInput) error {
	path := "/api/v1/reviews/" + url.PathEscape(in.CardID) + "/result"
	_, err := c.do(ctx, http.MethodPut, path, gradeRequest{IsCorrect: in.Correct, CurrentLevel: in.CurrentLevel})
	return err
}

func (c *Client) AddLastMissed(ctx context.Context, cardID string) error {
	_, err := c.do(ctx, http.MethodPut, "/api/v1/last-missed/"+url.PathEscape(cardID), nil)
	return err
}

func (c *Client) RemoveLastMissed(ctx context.Context, cardID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/v1/last-missed/"+url.PathEscape(cardID), nil)
	return err
}

func (c *Client) AppendSessionSummary(ctx context.Context, summary trainer.Summary) error {
	if summary.WrongCardIDs == nil {
		summary.WrongCardIDs = []string{}
	}
	_, err := c.do(ctx, http.MethodPost, "/api/v1/sessions", summary)
	return err
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	attempts := 1
	if idempotent(method) {
		attempts += c.cfg.MaxRetries
	}
	backoff := c.cfg.Backoff

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := c.doOnce(ctx, method, path, body)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		var he *HTTPError
		if errors.As(err, &he) && !he.retryable() {
			return nil, err
		}
		if attempt == attempts-1 {
			break
		}

		c.logger.Warn("Request retrying",
			"method", method,
			"path", path,
			"attempt", attempt+1,
			"sleep", backoff.String(),
			"error", err.Error(),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	} else {
		req.Header.Set(middleware.OwnerHeader, c.cfg.OwnerID.String())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		he := &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
		var er model.APIErrorResponse
		if json.Unmarshal(raw, &er) == nil {
			he.Detail = er.Error
		}
		return nil, he
	}
	return raw, nil
}

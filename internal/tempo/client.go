package tempo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/smallretail/legacy-api/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("tempo",
	fx.Provide(New),
)

const defaultLookback = time.Hour

// Client queries a Grafana Tempo instance over its HTTP search API.
// Read-only; the assistant uses it to answer questions about traces.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.TempoBaseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log.Named("tempo.client"),
	}
}

type TraceMeta struct {
	TraceID           string `json:"traceID"`
	RootServiceName   string `json:"rootServiceName"`
	RootTraceName     string `json:"rootTraceName"`
	StartTimeUnixNano string `json:"startTimeUnixNano"`
	DurationMs        int64  `json:"durationMs"`
}

type SearchResult struct {
	Traces []TraceMeta `json:"traces"`
}

// Search runs a TraceQL query. Zero start/end default to the last hour.
func (c *Client) Search(ctx context.Context, query string, limit int, start, end int64) (*SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	now := time.Now().Unix()
	if end <= 0 {
		end = now
	}
	if start <= 0 {
		start = end - int64(defaultLookback.Seconds())
	}

	q := url.Values{}
	q.Set("q", NormalizeQuery(query))
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("start", fmt.Sprintf("%d", start))
	q.Set("end", fmt.Sprintf("%d", end))

	endpoint := c.baseURL + "/api/search?" + q.Encode()
	c.log.Info("querying tempo", zap.String("url", endpoint))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var result SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode tempo response: %w", err)
	}
	return &result, nil
}

// Count returns the number of traces matching query in the window.
func (c *Client) Count(ctx context.Context, query string, start, end int64) (int, error) {
	result, err := c.Search(ctx, query, 1000, start, end)
	if err != nil {
		return 0, err
	}
	return len(result.Traces), nil
}

// TraceSummary condenses a stored trace to its span count and services.
type TraceSummary struct {
	TraceID   string   `json:"traceId"`
	SpanCount int      `json:"spanCount"`
	Services  []string `json:"services"`
}

func (c *Client) GetTrace(ctx context.Context, traceID string) (*TraceSummary, error) {
	endpoint := c.baseURL + "/api/traces/" + url.PathEscape(strings.TrimSpace(traceID))
	c.log.Info("fetching trace", zap.String("trace_id", traceID))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Batches []struct {
			Resource struct {
				Attributes []struct {
					Key   string `json:"key"`
					Value struct {
						StringValue string `json:"stringValue"`
					} `json:"value"`
				} `json:"attributes"`
			} `json:"resource"`
			ScopeSpans []struct {
				Spans []json.RawMessage `json:"spans"`
			} `json:"scopeSpans"`
		} `json:"batches"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode trace: %w", err)
	}

	summary := &TraceSummary{TraceID: strings.TrimSpace(traceID)}
	seen := map[string]bool{}
	for _, batch := range payload.Batches {
		for _, attr := range batch.Resource.Attributes {
			if attr.Key == "service.name" && attr.Value.StringValue != "" && !seen[attr.Value.StringValue] {
				seen[attr.Value.StringValue] = true
				summary.Services = append(summary.Services, attr.Value.StringValue)
			}
		}
		for _, scope := range batch.ScopeSpans {
			summary.SpanCount += len(scope.Spans)
		}
	}
	return summary, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tempo returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return body, nil
}

var httpMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

var (
	// http.request.method not already span-qualified.
	bareRequestMethodRe = regexp.MustCompile(`(^|[^.\w])http\.request\.method=`)
	// attr=value with an unquoted identifier value.
	unquotedValueRe = regexp.MustCompile(`([\w.]+)\s*=\s*([A-Za-z_]\w*)\b`)
)

// NormalizeQuery turns loose model-produced input into valid TraceQL. Braces
// are re-applied, a bare HTTP verb becomes a method filter, error words become
// a status filter, common attribute aliases are rewritten, and unquoted
// identifier values get quoted. Input with no comparison operator falls back
// to the match-all query.
func NormalizeQuery(query string) string {
	query = strings.TrimSpace(query)
	query = strings.TrimPrefix(query, "{")
	query = strings.TrimSuffix(query, "}")
	query = strings.TrimSpace(query)

	if query == "" {
		return "{}"
	}

	upper := strings.ToUpper(query)
	for _, method := range httpMethods {
		if upper == method {
			return fmt.Sprintf(`{span.http.request.method=%q}`, method)
		}
	}

	switch upper {
	case "ERROR", "ERRORS", "FAILED", "FAILURES":
		return "{status=error}"
	}

	if !strings.ContainsAny(query, "=<>") {
		// No comparison at all; Tempo would reject it, so match everything.
		return "{}"
	}

	query = strings.ReplaceAll(query, "operation=", "name=")
	query = strings.ReplaceAll(query, "http.method=", "span.http.request.method=")
	query = bareRequestMethodRe.ReplaceAllString(query, "${1}span.http.request.method=")

	query = unquotedValueRe.ReplaceAllStringFunc(query, func(match string) string {
		parts := unquotedValueRe.FindStringSubmatch(match)
		attr, value := parts[1], parts[2]
		if attr == "status" && (value == "error" || value == "ok" || value == "unset") {
			return match
		}
		return fmt.Sprintf("%s=%q", attr, value)
	})

	return "{" + query + "}"
}

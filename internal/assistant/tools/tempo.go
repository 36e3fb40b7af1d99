package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/smallretail/legacy-api/internal/tempo"
)

// RegisterTempoTools binds the read-only trace query operations.
func RegisterTempoTools(r *Registry, client *tempo.Client) {
	r.Register(Tool{
		Name: "search_traces",
		Description: "Search for traces using a TraceQL query. Use this to find traces by HTTP method, " +
			"status code, or service name. Examples: 'span.http.request.method=\"DELETE\"' finds all DELETE " +
			"requests, 'status=error' finds error traces.",
		Parameters: objectSchema(map[string]any{
			"query":     stringProp("TraceQL query without braces"),
			"limit":     intProp("Maximum number of traces to return (default: 20)"),
			"startTime": intProp("Start time in Unix epoch seconds (optional, defaults to last hour)"),
			"endTime":   intProp("End time in Unix epoch seconds (optional, defaults to now)"),
		}, "query"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var req struct {
				Query     string `json:"query"`
				Limit     int    `json:"limit"`
				StartTime int64  `json:"startTime"`
				EndTime   int64  `json:"endTime"`
			}
			if err := json.Unmarshal(args, &req); err != nil {
				return "", err
			}

			result, err := client.Search(ctx, req.Query, req.Limit, req.StartTime, req.EndTime)
			if err != nil {
				return "", err
			}
			if len(result.Traces) == 0 {
				return fmt.Sprintf("No traces found matching query: %s", req.Query), nil
			}

			type traceSummary struct {
				TraceID         string `json:"traceId"`
				RootServiceName string `json:"rootServiceName"`
				RootTraceName   string `json:"rootTraceName"`
				StartTime       string `json:"startTime"`
				DurationMs      int64  `json:"durationMs"`
			}
			summaries := make([]traceSummary, 0, len(result.Traces))
			for _, t := range result.Traces {
				summaries = append(summaries, traceSummary{
					TraceID:         t.TraceID,
					RootServiceName: t.RootServiceName,
					RootTraceName:   t.RootTraceName,
					StartTime:       formatUnixNano(t.StartTimeUnixNano),
					DurationMs:      t.DurationMs,
				})
			}
			return marshal(map[string]any{
				"totalTraces": len(result.Traces),
				"query":       req.Query,
				"traces":      summaries,
			})
		},
	})

	r.Register(Tool{
		Name: "count_traces",
		Description: "Count traces matching a TraceQL query. Use this for statistics like " +
			"'how many DELETE operations were performed' or 'how many errors occurred'.",
		Parameters: objectSchema(map[string]any{
			"query":     stringProp("TraceQL query without braces"),
			"startTime": intProp("Start time in Unix epoch seconds (optional, defaults to last hour)"),
			"endTime":   intProp("End time in Unix epoch seconds (optional, defaults to now)"),
		}, "query"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var req struct {
				Query     string `json:"query"`
				StartTime int64  `json:"startTime"`
				EndTime   int64  `json:"endTime"`
			}
			if err := json.Unmarshal(args, &req); err != nil {
				return "", err
			}

			count, err := client.Count(ctx, req.Query, req.StartTime, req.EndTime)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Found %d traces matching '%s'", count, req.Query), nil
		},
	})

	r.Register(Tool{
		Name: "get_traces_summary_by_method",
		Description: "Get a summary of trace activity by HTTP method (GET, POST, PUT, DELETE, etc.) " +
			"for the specified time range.",
		Parameters: objectSchema(map[string]any{
			"startTime": intProp("Start time in Unix epoch seconds (optional, defaults to last hour)"),
			"endTime":   intProp("End time in Unix epoch seconds (optional, defaults to now)"),
		}),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var req struct {
				StartTime int64 `json:"startTime"`
				EndTime   int64 `json:"endTime"`
			}
			if err := json.Unmarshal(args, &req); err != nil {
				return "", err
			}

			methods := []string{"GET", "POST", "PUT", "DELETE", "PATCH"}
			counts := make(map[string]int, len(methods))
			total := 0
			for _, method := range methods {
				count, err := client.Count(ctx, fmt.Sprintf("span.http.request.method=%q", method), req.StartTime, req.EndTime)
				if err != nil {
					return "", err
				}
				counts[method] = count
				total += count
			}

			end := req.EndTime
			if end <= 0 {
				end = time.Now().Unix()
			}
			start := req.StartTime
			if start <= 0 {
				start = end - int64(time.Hour.Seconds())
			}
			timeRange := fmt.Sprintf("%s to %s",
				time.Unix(start, 0).UTC().Format("2006-01-02 15:04"),
				time.Unix(end, 0).UTC().Format("2006-01-02 15:04"))

			return marshal(map[string]any{
				"timeRange":    timeRange,
				"methodCounts": counts,
				"totalTraces":  total,
			})
		},
	})

	r.Register(Tool{
		Name:        "get_trace",
		Description: "Get details of a specific trace by its trace ID.",
		Parameters: objectSchema(map[string]any{
			"traceId": stringProp("The trace ID to retrieve"),
		}, "traceId"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var req struct {
				TraceID string `json:"traceId"`
			}
			if err := json.Unmarshal(args, &req); err != nil {
				return "", err
			}

			summary, err := client.GetTrace(ctx, req.TraceID)
			if err != nil {
				return "", err
			}
			return marshal(summary)
		},
	})
}

func formatUnixNano(value string) string {
	nanos, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return value
	}
	return time.Unix(0, nanos).UTC().Format("2006-01-02 15:04:05")
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"yqt-signal-desk/internal/domain"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerResources(server *mcp.Server, markets MarketReader, desk SignalDesk) {
	server.AddResource(&mcp.Resource{
		URI:         "market://supported-markets",
		Name:        "supported-markets",
		Description: "List of simulated market types",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		_ = ctx
		return jsonResource(req.Params.URI, []domain.MarketType{domain.MarketCrypto, domain.MarketForex})
	})

	server.AddResource(&mcp.Resource{
		URI:         "market://supported-timeframes",
		Name:        "supported-timeframes",
		Description: "List of analysis timeframes accepted by signal requests",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		_ = ctx
		return jsonResource(req.Params.URI, domain.SupportedTimeframes)
	})

	server.AddResource(&mcp.Resource{
		URI:         "prices://latest",
		Name:        "prices-latest",
		Description: "Current price snapshot for both markets",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if markets == nil {
			return nil, fmt.Errorf("market service unavailable")
		}
		return jsonResource(req.Params.URI, marketsListOutput{Markets: markets.GetMarkets(ctx)})
	})

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "history://{market}{?limit}",
		Name:        "history-by-market",
		Description: "Rolling price window for a market; optional limit query param",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if markets == nil {
			return nil, fmt.Errorf("market service unavailable")
		}

		parsed, err := url.Parse(req.Params.URI)
		if err != nil {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		if parsed.Scheme != "history" {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}

		market, err := normalizeMarket(parsed.Host)
		if err != nil {
			return nil, err
		}

		limit := 0
		if rawLimit := strings.TrimSpace(parsed.Query().Get("limit")); rawLimit != "" {
			n, err := strconv.Atoi(rawLimit)
			if err != nil {
				return nil, fmt.Errorf("invalid limit: %s", rawLimit)
			}
			if limit, err = normalizeHistoryLimit(n); err != nil {
				return nil, err
			}
		}

		history, err := markets.GetHistory(ctx, market, limit)
		if err != nil {
			return nil, err
		}
		return jsonResource(req.Params.URI, marketHistoryOutput{Market: market, History: history})
	})

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "signals://log{?limit}",
		Name:        "signals-log",
		Description: "Logged signals, most recent first; optional limit query param",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if desk == nil {
			return nil, fmt.Errorf("signal desk unavailable")
		}

		parsed, err := url.Parse(req.Params.URI)
		if err != nil {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		if parsed.Scheme != "signals" || parsed.Host != "log" {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}

		limit := defaultLogLimit
		if rawLimit := strings.TrimSpace(parsed.Query().Get("limit")); rawLimit != "" {
			n, err := strconv.Atoi(rawLimit)
			if err != nil {
				return nil, fmt.Errorf("invalid limit: %s", rawLimit)
			}
			limit = normalizeLogLimit(n)
		}

		return jsonResource(req.Params.URI, signalLogOutput{Signals: desk.ListLog(ctx, limit)})
	})
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(body),
		}},
	}, nil
}

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *mcp.Server, markets MarketReader, desk SignalDesk) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "markets_list",
		Description: "Get the current price snapshot for both simulated markets",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ marketsListInput) (*mcp.CallToolResult, marketsListOutput, error) {
		if markets == nil {
			return nil, marketsListOutput{}, fmt.Errorf("market service unavailable")
		}
		return nil, marketsListOutput{Markets: markets.GetMarkets(ctx)}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "market_history",
		Description: "Get the rolling price window for a market, oldest first",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in marketHistoryInput) (*mcp.CallToolResult, marketHistoryOutput, error) {
		if markets == nil {
			return nil, marketHistoryOutput{}, fmt.Errorf("market service unavailable")
		}
		market, err := normalizeMarket(in.Market)
		if err != nil {
			return nil, marketHistoryOutput{}, err
		}
		limit, err := normalizeHistoryLimit(in.Limit)
		if err != nil {
			return nil, marketHistoryOutput{}, err
		}
		history, err := markets.GetHistory(ctx, market, limit)
		if err != nil {
			return nil, marketHistoryOutput{}, err
		}
		return nil, marketHistoryOutput{Market: market, History: history}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "signal_request",
		Description: "Request an AI trading signal for a market and timeframe; refused while a request or cooldown is active",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in signalRequestInput) (*mcp.CallToolResult, signalRequestOutput, error) {
		if desk == nil {
			return nil, signalRequestOutput{}, fmt.Errorf("signal desk unavailable")
		}
		market, err := normalizeMarket(in.Market)
		if err != nil {
			return nil, signalRequestOutput{}, err
		}
		timeframe, err := normalizeTimeframe(in.Timeframe)
		if err != nil {
			return nil, signalRequestOutput{}, err
		}

		accepted, err := desk.RequestSignal(ctx, market, timeframe)
		if err != nil {
			return nil, signalRequestOutput{}, err
		}
		state, remaining := desk.Status(ctx)
		return nil, signalRequestOutput{
			Accepted:          accepted,
			State:             state,
			CooldownRemaining: remaining,
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "signal_status",
		Description: "Get the signal request state, remaining cooldown, and the current signal if any",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ signalStatusInput) (*mcp.CallToolResult, signalStatusOutput, error) {
		if desk == nil {
			return nil, signalStatusOutput{}, fmt.Errorf("signal desk unavailable")
		}
		state, remaining := desk.Status(ctx)
		out := signalStatusOutput{State: state, CooldownRemaining: remaining}
		if sig, ok := desk.CurrentSignal(ctx); ok {
			out.Current = &sig
		}
		return nil, out, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "signal_log_list",
		Description: "Get logged signals, most recent first",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in signalLogInput) (*mcp.CallToolResult, signalLogOutput, error) {
		if desk == nil {
			return nil, signalLogOutput{}, fmt.Errorf("signal desk unavailable")
		}
		return nil, signalLogOutput{Signals: desk.ListLog(ctx, normalizeLogLimit(in.Limit))}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "signal_log_export",
		Description: "Export the signal history as plain text with its download filename",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ signalLogExportInput) (*mcp.CallToolResult, signalLogExportOutput, error) {
		if desk == nil {
			return nil, signalLogExportOutput{}, fmt.Errorf("signal desk unavailable")
		}
		filename, content := desk.ExportLog(ctx)
		return nil, signalLogExportOutput{Filename: filename, Content: content}, nil
	})
}

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool name constants.
const (
	ToolNameAnalyze = "sortbench_analyze"
	ToolNameBest    = "sortbench_best"
)

var (
	// ErrInputTooLong indicates the data exceeds the configured length cap.
	ErrInputTooLong = errors.New("input exceeds maximum length")
	// ErrNoAlgorithms indicates the suite produced no result.
	ErrNoAlgorithms = errors.New("No sorting algorithms available") //nolint:staticcheck // user-facing message.
)

// SortInput is the input schema shared by both tools.
type SortInput struct {
	Data []int `json:"data" jsonschema:"integers to sort and benchmark"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

func (s *Server) handleAnalyze(ctx context.Context, _ *mcpsdk.CallToolRequest, in SortInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := s.validate(in.Data); err != nil {
		return errorResult(err)
	}

	return jsonResult(s.analyzer.Analyze(ctx, in.Data))
}

func (s *Server) handleBest(ctx context.Context, _ *mcpsdk.CallToolRequest, in SortInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := s.validate(in.Data); err != nil {
		return errorResult(err)
	}

	best, ok := s.analyzer.GetBest(ctx, in.Data)
	if !ok {
		return errorResult(ErrNoAlgorithms)
	}

	return jsonResult(best)
}

func (s *Server) validate(data []int) error {
	if s.maxLength > 0 && len(data) > s.maxLength {
		return fmt.Errorf("%w: %d values (max %d)", ErrInputTooLong, len(data), s.maxLength)
	}

	return nil
}

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

package api

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/termvariant/pkg/kit"
	"github.com/hazyhaar/termvariant/pkg/tokenizer"
)

// RegisterMCPTools registers the rule inspection tools on the server.
func RegisterMCPTools(srv *server.MCPServer, l *tokenizer.Loader, logger *slog.Logger) {
	eps := newEndpoints(l, logger)
	registerListAnalyzers(srv, eps)
	registerShowVariants(srv, eps)
	registerExpandRule(srv, eps)
	registerSearchRules(srv, eps)
}

func registerListAnalyzers(srv *server.MCPServer, eps endpoints) {
	tool := mcp.NewTool("list_analyzers",
		mcp.WithDescription("List the token analyzers compiled from the current tokenizer configuration, with their variant counts."),
	)

	kit.RegisterMCPTool(srv, tool, eps.listAnalyzers, func(_ mcp.CallToolRequest) (any, error) {
		return nil, nil
	})
}

func registerShowVariants(srv *server.MCPServer, eps endpoints) {
	tool := mcp.NewTool("show_variants",
		mcp.WithDescription("Show the compiled search-term variants of one analyzer (e.g. 'st' => 'saint' expansions with their boundary markers)."),
		mcp.WithString("analyzer", mcp.Description("Analyzer id ('default' for the unnamed analyzer)")),
		mcp.WithString("term", mcp.Description("Only show variants whose source or replacement contains this text")),
	)

	kit.RegisterMCPTool(srv, tool, eps.showVariants, func(req mcp.CallToolRequest) (any, error) {
		args := req.GetArguments()
		analyzer, _ := args["analyzer"].(string)
		if analyzer == "" {
			analyzer = defaultAnalyzerName
		}
		term, _ := args["term"].(string)
		return &variantsReq{Analyzer: analyzer, Term: term}, nil
	})
}

func registerExpandRule(srv *server.MCPServer, eps endpoints) {
	tool := mcp.NewTool("expand_rule",
		mcp.WithDescription("Expand a single variant rule line (e.g. '~straße -> str') against the loaded normalization rules and return the resulting pattern pairs."),
		mcp.WithString("rule", mcp.Required(), mcp.Description("The variant rule line to expand")),
	)

	kit.RegisterMCPTool(srv, tool, eps.expandRule, func(req mcp.CallToolRequest) (any, error) {
		args := req.GetArguments()
		rule, _ := args["rule"].(string)
		return &expandReq{Rule: rule}, nil
	})
}

func registerSearchRules(srv *server.MCPServer, eps endpoints) {
	tool := mcp.NewTool("search_rules",
		mcp.WithDescription("Return the normalization, transliteration and combined search rule strings."),
	)

	kit.RegisterMCPTool(srv, tool, eps.searchRules, func(_ mcp.CallToolRequest) (any, error) {
		return nil, nil
	})
}

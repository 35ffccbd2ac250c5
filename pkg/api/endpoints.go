package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hazyhaar/termvariant/pkg/kit"
	"github.com/hazyhaar/termvariant/pkg/tokenizer"
	"github.com/hazyhaar/termvariant/pkg/variant"
)

// Shared request/response types used by both HTTP and MCP transports.

// defaultAnalyzerName addresses the analyzer without an id on both
// transports, since an empty path segment cannot.
const defaultAnalyzerName = "default"

type analyzerInfo struct {
	ID       string `json:"id"`
	Default  bool   `json:"default,omitempty"`
	Variants int    `json:"variants"`
}

type analyzersResponse struct {
	Analyzers []analyzerInfo `json:"analyzers"`
}

type variantEntry struct {
	Source      string `json:"source"`
	Replacement string `json:"replacement"`
	Lang        string `json:"lang,omitempty"`
}

type variantsResponse struct {
	Analyzer string         `json:"analyzer"`
	Variants []variantEntry `json:"variants"`
}

type rulesResponse struct {
	Normalization   string `json:"normalization"`
	Transliteration string `json:"transliteration"`
	Search          string `json:"search"`
}

type variantsReq struct {
	Analyzer string
	Term     string
}

type expandReq struct {
	Rule string
}

type expandResponse struct {
	Rule     string         `json:"rule"`
	Variants []variantEntry `json:"variants"`
}

// endpoints bundles the kit.Endpoints backed by one loaded rule bundle,
// wrapped in the shared middleware chain.
type endpoints struct {
	listAnalyzers kit.Endpoint
	showVariants  kit.Endpoint
	expandRule    kit.Endpoint
	searchRules   kit.Endpoint
}

func newEndpoints(l *tokenizer.Loader, logger *slog.Logger) endpoints {
	if logger == nil {
		logger = slog.Default()
	}
	chain := kit.Chain(kit.RequestID(), kit.Audit(logger))
	return endpoints{
		listAnalyzers: chain(listAnalyzersEndpoint(l)),
		showVariants:  chain(showVariantsEndpoint(l)),
		expandRule:    chain(expandRuleEndpoint(l)),
		searchRules:   chain(searchRulesEndpoint(l)),
	}
}

func resolveAnalyzerID(name string) string {
	if name == defaultAnalyzerName {
		return ""
	}
	return name
}

func analyzerName(id string) string {
	if id == "" {
		return defaultAnalyzerName
	}
	return id
}

func toEntries(vs []variant.Variant) []variantEntry {
	entries := make([]variantEntry, 0, len(vs))
	for _, v := range vs {
		e := variantEntry{Source: v.Source, Replacement: v.Replacement}
		if v.Props != nil {
			e.Lang = v.Props.Lang
		}
		entries = append(entries, e)
	}
	return entries
}

func listAnalyzersEndpoint(l *tokenizer.Loader) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		infos := make([]analyzerInfo, 0)
		for _, id := range l.Analyzers() {
			a, _ := l.Analyzer(id)
			infos = append(infos, analyzerInfo{
				ID:       analyzerName(id),
				Default:  id == "",
				Variants: a.VariantCount(),
			})
		}
		return analyzersResponse{Analyzers: infos}, nil
	}
}

func showVariantsEndpoint(l *tokenizer.Loader) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*variantsReq)
		a, ok := l.Analyzer(resolveAnalyzerID(req.Analyzer))
		if !ok {
			return nil, fmt.Errorf("unknown analyzer %q", req.Analyzer)
		}
		entries := toEntries(a.Variants())
		if req.Term != "" {
			filtered := entries[:0]
			for _, e := range entries {
				if strings.Contains(e.Source, req.Term) || strings.Contains(e.Replacement, req.Term) {
					filtered = append(filtered, e)
				}
			}
			entries = filtered
		}
		return variantsResponse{Analyzer: analyzerName(a.ID()), Variants: entries}, nil
	}
}

func expandRuleEndpoint(l *tokenizer.Loader) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*expandReq)
		if strings.TrimSpace(req.Rule) == "" {
			return nil, fmt.Errorf("rule is empty")
		}
		vs, err := l.CompileRule(req.Rule)
		if err != nil {
			return nil, err
		}
		return expandResponse{Rule: req.Rule, Variants: toEntries(vs)}, nil
	}
}

func searchRulesEndpoint(l *tokenizer.Loader) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return rulesResponse{
			Normalization:   l.NormalizationRules(),
			Transliteration: l.TransliterationRules(),
			Search:          l.SearchRules(),
		}, nil
	}
}

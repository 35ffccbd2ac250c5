package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/termvariant/pkg/api"
	"github.com/hazyhaar/termvariant/pkg/props"
	"github.com/hazyhaar/termvariant/pkg/tokenizer"
)

type config struct {
	Addr      string `yaml:"addr"`
	Tokenizer string `yaml:"tokenizer_config"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "compile":
		cmdCompile(os.Args[2:])
	case "import":
		cmdImport(os.Args[2:])
	case "show":
		cmdShow(os.Args[2:])
	case "rules":
		cmdRules(os.Args[2:])
	case "serve":
		cmdServe(os.Args[2:])
	case "mcp":
		cmdMCP(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: termvariant <command>

Commands:
  compile  Compile a tokenizer configuration and report analyzer stats
  import   Compile a configuration and save its rules to a property store
  show     Restore rules from a property store and print them
  rules    Print the combined search rules for a configuration
  serve    Start the HTTP inspection server
  mcp      Serve the inspection tools over stdio
`)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// loadTokenizer compiles the configuration file or exits.
func loadTokenizer(path string, logger *slog.Logger) *tokenizer.Loader {
	doc, err := tokenizer.LoadDocument(path)
	if err != nil {
		logger.Error("failed to read tokenizer config", "path", path, "error", err)
		os.Exit(1)
	}
	l, err := tokenizer.New(doc)
	if err != nil {
		logger.Error("failed to compile tokenizer config", "path", path, "error", err)
		os.Exit(1)
	}
	return l
}

func cmdCompile(args []string) {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	cfgPath := fs.String("config", "tokenizer.yaml", "path to tokenizer configuration")
	fs.Parse(args)

	l := loadTokenizer(*cfgPath, newLogger())

	for _, id := range l.Analyzers() {
		a, _ := l.Analyzer(id)
		name := id
		if name == "" {
			name = "default"
		}
		fmt.Printf("%-20s %d variants\n", name, a.VariantCount())
	}
}

func cmdShow(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	storePath := fs.String("store", "termvariant.db", "path to the property store")
	showVariants := fs.Bool("variants", false, "also print every compiled variant")
	fs.Parse(args)

	logger := newLogger()
	store, err := props.Open(*storePath)
	if err != nil {
		logger.Error("failed to open property store", "path", *storePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	l, err := tokenizer.NewFromStore(store)
	if err != nil {
		logger.Error("failed to restore rules from store", "path", *storePath, "error", err)
		os.Exit(1)
	}

	fmt.Printf("normalization:    %s\n", l.NormalizationRules())
	fmt.Printf("transliteration:  %s\n", l.TransliterationRules())
	for _, id := range l.Analyzers() {
		a, _ := l.Analyzer(id)
		name := id
		if name == "" {
			name = "default"
		}
		fmt.Printf("analyzer %-12s %d variants\n", name, a.VariantCount())
		if *showVariants {
			for _, v := range a.Variants() {
				fmt.Printf("  %q -> %q\n", v.Source, v.Replacement)
			}
		}
	}
}

func cmdRules(args []string) {
	fs := flag.NewFlagSet("rules", flag.ExitOnError)
	cfgPath := fs.String("config", "tokenizer.yaml", "path to tokenizer configuration")
	fs.Parse(args)

	l := loadTokenizer(*cfgPath, newLogger())
	fmt.Print(l.SearchRules())
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := newLogger()
	cfg := loadConfig(*cfgPath, logger)

	l := loadTokenizer(cfg.Tokenizer, logger)
	logger.Info("tokenizer config compiled", "analyzers", len(l.Analyzers()))

	// The router is rebuilt on reload, so serve through a swappable handler.
	rh := &reloadableHandler{h: api.NewRouter(l, logger)}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: rh,
	}

	// SIGHUP: recompile the tokenizer configuration.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, recompiling tokenizer config")
			doc, err := tokenizer.LoadDocument(cfg.Tokenizer)
			if err != nil {
				logger.Error("reload failed", "error", err)
				continue
			}
			nl, err := tokenizer.New(doc)
			if err != nil {
				logger.Error("reload failed", "error", err)
				continue
			}
			rh.swap(api.NewRouter(nl, logger))
			logger.Info("tokenizer config recompiled", "analyzers", len(nl.Analyzers()))
		}
	}()

	// Start server.
	go func() {
		logger.Info("termvariant listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
}

func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "tokenizer.yaml", "path to tokenizer configuration")
	fs.Parse(args)

	logger := newLogger()
	l := loadTokenizer(*cfgPath, logger)

	srv := server.NewMCPServer(
		"termvariant",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	api.RegisterMCPTools(srv, l, logger)

	if err := server.ServeStdio(srv); err != nil {
		logger.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

// reloadableHandler swaps its inner handler atomically on config reload.
type reloadableHandler struct {
	mu sync.RWMutex
	h  http.Handler
}

func (r *reloadableHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.RLock()
	h := r.h
	r.mu.RUnlock()
	h.ServeHTTP(w, req)
}

func (r *reloadableHandler) swap(h http.Handler) {
	r.mu.Lock()
	r.h = h
	r.mu.Unlock()
}

func loadConfig(path string, logger *slog.Logger) config {
	cfg := config{
		Addr:      ":8430",
		Tokenizer: "tokenizer.yaml",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}

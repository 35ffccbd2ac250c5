package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hazyhaar/termvariant/pkg/props"
	"github.com/hazyhaar/termvariant/pkg/tokenizer"
)

func cmdImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	cfgPath := fs.String("config", "tokenizer.yaml", "path to tokenizer configuration")
	storePath := fs.String("store", "termvariant.db", "path to the property store")
	fs.Parse(args)

	fmt.Printf("[%s] Compilation en cours...\n", *cfgPath)
	doc, err := tokenizer.LoadDocument(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erreur lecture configuration: %v\n", err)
		os.Exit(1)
	}
	l, err := tokenizer.New(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erreur compilation: %v\n", err)
		os.Exit(1)
	}

	variants := 0
	for _, id := range l.Analyzers() {
		a, _ := l.Analyzer(id)
		variants += a.VariantCount()
	}
	fmt.Printf("[%s] %d analyseurs, %d variantes\n", *cfgPath, len(l.Analyzers()), variants)

	store, err := props.Open(*storePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erreur ouverture %s: %v\n", *storePath, err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Printf("[%s] Sauvegarde en cours...\n", *storePath)
	if err := l.SaveToStore(store); err != nil {
		fmt.Fprintf(os.Stderr, "Erreur sauvegarde: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("[%s] OK\n", *storePath)
}

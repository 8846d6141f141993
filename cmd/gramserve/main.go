// Copyright 2025 The Gramserve Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the gramserve corpus indexing and query [DBG] application.

Gramserve reads a corpus, stores it in an enhanced suffix array and answers
n-gram and skip-gram occurrence queries in time proportional to the query.
It can operate as a msgpack IPC server for integration with other tooling,
or as a line-oriented CLI for testing and scripting.

The index supports exact patterns, single-element wildcards and skip-grams
with bounded gaps. Built indexes can be saved to disk and reloaded against
the same corpus, skipping the suffix sort on later runs.

# Usage

Count queries interactively over a text corpus:

	gramserve -f corpus.txt

Each stdin line is tokenized with the corpus rules and its occurrence count
is printed on stdout. EOF ends the session.

Treat the corpus as whitespace-separated integers:

	gramserve -f tokens.txt -ints

Save the index tables after building, and reuse them later:

	gramserve -f corpus.txt -save corpus.idx
	gramserve -f corpus.txt -index corpus.idx

Run the msgpack IPC server instead of the query loop:

	gramserve -f corpus.txt -serve

# Configuration

Runtime configuration is managed through a TOML file that supports server
parameters, corpus preparation and CLI defaults:

	[server]
	max_query_len = 1024
	enable_cache = true
	cache_entries = 4096

	[index]
	case_sensitive = true
	normalize = false

	[cli]
	wildcard = ""
	max_query_len = 1024

The config file is automatically created with defaults if it doesn't exist.

# Command Line Flags

The following flags control application behavior:

	-f, -file string
	    Filename of the corpus to be read (required)
	-d  Enable debug mode with detailed logging
	-ints
	    Parse the corpus as whitespace-separated decimal integers
	-serve
	    Run the msgpack IPC server instead of the query loop
	-save string
	    Save the index tables to this path after building
	-index string
	    Load previously saved index tables instead of rebuilding
	-wild string
	    Token treated as the single-element wildcard in queries
	-config string
	    Custom config file path
	-version
	    Show current version
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/constraints"

	"github.com/bastiangx/gramserve/internal/cli"
	"github.com/bastiangx/gramserve/internal/logger"
	"github.com/bastiangx/gramserve/pkg/config"
	"github.com/bastiangx/gramserve/pkg/esa"
	"github.com/bastiangx/gramserve/pkg/sequence"
	"github.com/bastiangx/gramserve/pkg/server"
)

const (
	Version = "0.9.0-beta"
	AppName = "gramserve"
	gh      = "https://github.com/bastiangx/gramserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to build the index and start the server or the
// CLI loop. main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	var corpusPath string
	flag.StringVar(&corpusPath, "f", "", "Filename of the corpus to be read")
	flag.StringVar(&corpusPath, "file", "", "Filename of the corpus to be read")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	intMode := flag.Bool("ints", false, "Parse the corpus as whitespace-separated decimal integers")
	serveMode := flag.Bool("serve", false, "Run the msgpack IPC server instead of the query loop")
	savePath := flag.String("save", "", "Save the index tables to this path after building")
	indexPath := flag.String("index", "", "Load previously saved index tables instead of rebuilding")
	wildToken := flag.String("wild", "", "Token treated as the single-element wildcard in queries")
	configPath := flag.String("config", "", "Custom config file path")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, cfgPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Warnf("Config unavailable, using builtin defaults: %v", err)
		cfg = config.DefaultConfig()
	}
	log.Debugf("Using config from: %s", cfgPath)

	if *wildToken == "" {
		*wildToken = cfg.CLI.Wildcard
	}

	if corpusPath == "" {
		log.Fatal("No corpus file given, use -f PATH")
	}
	f, err := os.Open(corpusPath)
	if err != nil {
		log.Fatalf("cannot open input file %s: %v", corpusPath, err)
	}

	if *intMode {
		runInts(f, cfg, *serveMode, *savePath, *indexPath, *wildToken)
	} else {
		runWords(f, cfg, *serveMode, *savePath, *indexPath, *wildToken)
	}
}

// runWords indexes a word corpus and serves queries with the word tokenizer.
func runWords(f *os.File, cfg *config.Config, serve bool, savePath, indexPath, wildToken string) {
	words, err := sequence.ReadWords(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to read corpus: %v", err)
	}
	log.Debugf("Read %d words", len(words))

	seq := words.Prepare(cfg.Index.CaseSensitive, cfg.Index.Normalize).WithSentinel()
	tokenize := func(line string) []string {
		return sequence.ParseWords(line).Prepare(cfg.Index.CaseSensitive, cfg.Index.Normalize)
	}
	run[string](seq, cfg, serve, savePath, indexPath, tokenize, wildToken)
}

// runInts indexes an integer corpus. The wildcard token is parsed as an
// integer; an unparsable token falls back to the zero default.
func runInts(f *os.File, cfg *config.Config, serve bool, savePath, indexPath, wildToken string) {
	ints, err := sequence.ReadInts(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to read corpus: %v", err)
	}
	log.Debugf("Read %d integers", len(ints))

	wildcard := 0
	if wildToken != "" {
		if wildcard, err = strconv.Atoi(wildToken); err != nil {
			log.Warnf("Wildcard token %q is not an integer, using 0", wildToken)
			wildcard = 0
		}
	}
	tokenize := func(line string) []int {
		return sequence.ParseInts(line)
	}
	run[int](ints.WithSentinel(), cfg, serve, savePath, indexPath, tokenize, wildcard)
}

// run builds or loads the index and hands it to the chosen front end.
func run[E constraints.Ordered](seq sequence.Sequence[E], cfg *config.Config, serve bool, savePath, indexPath string, tokenize func(string) []E, wildcard E) {
	var index *esa.Index[E]
	var err error
	if indexPath != "" {
		index, err = esa.Load(indexPath, seq)
	} else {
		index, err = esa.Build(seq)
	}
	if err != nil {
		log.Fatalf("Failed to prepare index: %v", err)
	}
	if savePath != "" {
		if err := index.Save(savePath); err != nil {
			log.Fatalf("Failed to save index: %v", err)
		}
	}

	if serve {
		srv := server.NewServer(index, tokenize, wildcard, cfg)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server terminated: %v", err)
		}
		return
	}

	var cache *server.CountCache
	if cfg.Server.EnableCache {
		cache = server.NewCountCache(cfg.Server.CacheEntries)
	}
	handler := cli.NewInputHandler(index, tokenize, wildcard, cache, cfg.CLI.MaxQueryLen)
	if err := handler.Start(); err != nil {
		log.Fatalf("Query loop terminated: %v", err)
	}
}

// printVersion renders the styled version banner.
func printVersion() {
	vlog := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()

	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

	vlog.SetStyles(styles)

	vlog.Print("")
	vlog.Print("[ Gramserve ] Counts n-grams and skip-grams, fast!")
	vlog.Print("", "version", Version)
	vlog.Print("")
	vlog.Print("use -h or --help to see available options")
	vlog.Print("Github Repo", "gh", gh)
}

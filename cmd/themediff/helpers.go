package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"themediff/internal/generate"
	"themediff/internal/store"
)

// newRng builds the pseudorandom source for a command.
func newRng(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// resolveAPIKey reads the chat API key: the env var wins, then the key
// file (if present).
func resolveAPIKey(keyFile string) (string, error) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key, nil
	}
	data, err := os.ReadFile(keyFile)
	if err != nil {
		return "", fmt.Errorf("no API key: set OPENAI_API_KEY or provide %s", keyFile)
	}
	return strings.TrimSpace(string(data)), nil
}

// newChatClient wires the OpenAI client from config + key file.
func newChatClient(keyFile string) (generate.ChatClient, error) {
	key, err := resolveAPIKey(keyFile)
	if err != nil {
		return nil, err
	}
	return generate.NewOpenAIClient(key, cfg.Model, cfg.BaseURL)
}

// openStore opens the run-history store, honoring the config's StorePath.
// Returns nil (disabled) when the path is "-".
func openStore() (store.Store, error) {
	path := cfg.StorePath
	if path == "-" {
		return nil, nil
	}
	if path == "" {
		path = store.DefaultDBPath
	}
	return store.Open(path)
}

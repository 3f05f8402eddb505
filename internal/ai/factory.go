package ai

import (
	"strings"

	"github.com/fdg312/run-coach/internal/config"
)

const (
	ModeMock   = "mock"
	ModeOllama = "ollama"
	ModeOpenAI = "openai"
)

func NewProvider(cfg *config.Config) Provider {
	mode := strings.ToLower(strings.TrimSpace(cfg.AIMode))
	if mode == "" {
		mode = ModeMock
	}

	switch mode {
	case ModeOllama:
		return NewOllamaProvider(cfg)
	case ModeOpenAI:
		return NewOpenAIProvider(cfg)
	default:
		return NewMockProvider()
	}
}

package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TELEGRAM_BOT_TOKEN",
		"DATABASE_URL",
		"REDIS_URL",
		"HTTP_PORT",
		"OPENAI_API_KEY",
		"OPENAI_MODEL",
		"LLM_TIMEOUT_SECS",
		"LLM_MAX_TOKENS",
		"ADVISOR_MAX_HISTORY",
		"ASSESSMENT_CACHE_TTL_SECS",
		"MCP_TRANSPORT",
		"MCP_HTTP_ENABLED",
		"MCP_HTTP_BIND",
		"MCP_HTTP_PORT",
		"MCP_AUTH_TOKEN",
		"MCP_REQUEST_TIMEOUT_SECS",
		"MCP_RATE_LIMIT_PER_MIN",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.RedisURL != "localhost:6379" {
		t.Fatalf("expected default redis url, got %s", cfg.RedisURL)
	}
	if cfg.HTTPPort != 8080 {
		t.Fatalf("expected default http port 8080, got %d", cfg.HTTPPort)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("expected default model, got %s", cfg.OpenAIModel)
	}
	if cfg.LLMTimeoutSecs != 60 || cfg.LLMMaxTokens != 2048 {
		t.Fatalf("unexpected llm defaults: %d secs, %d tokens", cfg.LLMTimeoutSecs, cfg.LLMMaxTokens)
	}
	if cfg.AdvisorMaxHistory != 20 {
		t.Fatalf("expected default advisor history 20, got %d", cfg.AdvisorMaxHistory)
	}
	if cfg.AssessmentCacheTTLSecs != 300 {
		t.Fatalf("expected default cache ttl 300, got %d", cfg.AssessmentCacheTTLSecs)
	}
	if cfg.MCPTransport != "stdio" {
		t.Fatalf("expected default MCP transport stdio, got %s", cfg.MCPTransport)
	}
	if cfg.MCPHTTPBind != "127.0.0.1" || cfg.MCPHTTPPort != 8090 {
		t.Fatalf("unexpected MCP http defaults: %s:%d", cfg.MCPHTTPBind, cfg.MCPHTTPPort)
	}
	if cfg.MCPRequestTimeoutSecs != 5 || cfg.MCPRateLimitPerMin != 60 {
		t.Fatalf("unexpected MCP defaults: timeout %d, rate %d", cfg.MCPRequestTimeoutSecs, cfg.MCPRateLimitPerMin)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("LLM_TIMEOUT_SECS", "15")
	t.Setenv("ADVISOR_MAX_HISTORY", "6")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("MCP_TRANSPORT", "HTTP")
	t.Setenv("MCP_HTTP_ENABLED", "true")

	cfg := Load()
	if cfg.OpenAIAPIKey != "sk-test" || cfg.OpenAIModel != "gpt-4o" {
		t.Fatalf("unexpected openai config: %+v", cfg)
	}
	if cfg.LLMTimeoutSecs != 15 || cfg.AdvisorMaxHistory != 6 || cfg.HTTPPort != 9000 {
		t.Fatalf("unexpected numeric overrides: %+v", cfg)
	}
	if cfg.MCPTransport != "http" || !cfg.MCPHTTPEnabled {
		t.Fatalf("unexpected MCP overrides: %+v", cfg)
	}
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_TIMEOUT_SECS", "abc")
	t.Setenv("HTTP_PORT", "-1")
	t.Setenv("MCP_TRANSPORT", "grpc")
	t.Setenv("MCP_HTTP_ENABLED", "maybe")

	cfg := Load()
	if cfg.LLMTimeoutSecs != 60 || cfg.HTTPPort != 8080 {
		t.Fatalf("expected fallbacks for invalid numbers, got %+v", cfg)
	}
	if cfg.MCPTransport != "stdio" || cfg.MCPHTTPEnabled {
		t.Fatalf("expected fallbacks for invalid MCP values, got %+v", cfg)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "config")
	if err := os.Mkdir(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(cfgDir, "test.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	return path
}

const validYAML = `
http:
  port: 8080
vector_store:
  addrs: ["localhost:6379"]
embedding:
  api_key: "test-embed-key"
  model: "text-embedding-3-small"
llm:
  api_key: "test-llm-key"
  model: "llama-3.1-8b-instant"
`

func TestLoad_Valid(t *testing.T) {
	writeConfig(t, validYAML)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("HTTP.Port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.Embedding.APIKey != "test-embed-key" {
		t.Errorf("Embedding.APIKey = %q", cfg.Embedding.APIKey)
	}
}

func TestLoad_Defaults(t *testing.T) {
	writeConfig(t, validYAML)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.RAG.DefaultTopK != 5 {
		t.Errorf("RAG.DefaultTopK = %d, want 5", cfg.RAG.DefaultTopK)
	}
	if cfg.RAG.MaxTopK != 20 {
		t.Errorf("RAG.MaxTopK = %d, want 20", cfg.RAG.MaxTopK)
	}
	if cfg.RAG.MinQueryLen != 3 || cfg.RAG.MaxQueryLen != 500 {
		t.Errorf("query len bounds = %d..%d, want 3..500", cfg.RAG.MinQueryLen, cfg.RAG.MaxQueryLen)
	}
	if cfg.RAG.RetryAttempts != 3 {
		t.Errorf("RAG.RetryAttempts = %d, want 3", cfg.RAG.RetryAttempts)
	}
	if cfg.Chunking.Size != 512 || cfg.Chunking.Overlap != 50 {
		t.Errorf("chunking = %d/%d, want 512/50", cfg.Chunking.Size, cfg.Chunking.Overlap)
	}
	if cfg.LLM.Temperature != 0.1 {
		t.Errorf("LLM.Temperature = %v, want 0.1", cfg.LLM.Temperature)
	}
	if cfg.LLM.MaxTokens != 1024 {
		t.Errorf("LLM.MaxTokens = %d, want 1024", cfg.LLM.MaxTokens)
	}
	if cfg.Index.Name != "properties" {
		t.Errorf("Index.Name = %q, want properties", cfg.Index.Name)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_EMBED_KEY", "from-env")

	writeConfig(t, `
http:
  port: 8080
vector_store:
  addrs: ["${TEST_STORE_ADDR:-localhost:6379}"]
embedding:
  api_key: "${TEST_EMBED_KEY}"
  model: "text-embedding-3-small"
llm:
  api_key: "k"
  model: "m"
`)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Embedding.APIKey != "from-env" {
		t.Errorf("Embedding.APIKey = %q, want from-env", cfg.Embedding.APIKey)
	}
	if cfg.VectorStore.Addrs[0] != "localhost:6379" {
		t.Errorf("VectorStore.Addrs[0] = %q, want default", cfg.VectorStore.Addrs[0])
	}
}

func TestLoad_MissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "no embedding key",
			yaml: `
http:
  port: 8080
vector_store:
  addrs: ["localhost:6379"]
embedding:
  model: "m"
llm:
  api_key: "k"
  model: "m"
`,
		},
		{
			name: "no llm key",
			yaml: `
http:
  port: 8080
vector_store:
  addrs: ["localhost:6379"]
embedding:
  api_key: "k"
  model: "m"
llm:
  model: "m"
`,
		},
		{
			name: "no store addrs",
			yaml: `
http:
  port: 8080
embedding:
  api_key: "k"
  model: "m"
llm:
  api_key: "k"
  model: "m"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeConfig(t, tt.yaml)
			if _, err := Load("test"); err == nil {
				t.Error("Load() expected error, got nil")
			}
		})
	}
}

func TestValidate_TopKBounds(t *testing.T) {
	cfg := Config{
		HTTP:        HTTPConfig{Port: 8080},
		VectorStore: VectorStoreConfig{Addrs: []string{"localhost:6379"}},
		Embedding:   EmbeddingConfig{APIKey: "k", Model: "m"},
		LLM:         LLMConfig{APIKey: "k", Model: "m"},
		RAG:         RAGConfig{DefaultTopK: 25, MaxTopK: 20, MinQueryLen: 3, MaxQueryLen: 500, RetryAttempts: 3, RetryBackoffMS: 500},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for default_top_k > max_top_k")
	}
}

func TestValidateScraper(t *testing.T) {
	cfg := Config{}
	if err := cfg.ValidateScraper(); err == nil {
		t.Error("ValidateScraper() expected error for empty token")
	}
	cfg.Scraper = ScraperConfig{APIToken: "t", ActorID: "a"}
	if err := cfg.ValidateScraper(); err != nil {
		t.Errorf("ValidateScraper() error = %v", err)
	}
}

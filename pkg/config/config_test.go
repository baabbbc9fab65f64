package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func chtmp(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	orig, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(orig) })
	_ = os.Chdir(tmp)
	return tmp
}

func TestLoadFromYAML(t *testing.T) {
	tmp := chtmp(t)

	yaml := `
llm:
  provider: groq
  model: test-model
slides:
  count: 7
  html_style: dark
output:
  dir: ./decks
`
	_ = os.WriteFile(filepath.Join(tmp, "config.yaml"), []byte(yaml), 0644)

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.LLM.Provider != "groq" {
		t.Errorf("LLM.Provider = %q, want groq", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "test-model" {
		t.Errorf("LLM.Model = %q, want test-model", cfg.LLM.Model)
	}
	if cfg.Slides.Count != 7 {
		t.Errorf("Slides.Count = %d, want 7", cfg.Slides.Count)
	}
	if cfg.Slides.HTMLStyle != "dark" {
		t.Errorf("Slides.HTMLStyle = %q, want dark", cfg.Slides.HTMLStyle)
	}
	if cfg.Output.Dir != "./decks" {
		t.Errorf("Output.Dir = %q, want ./decks", cfg.Output.Dir)
	}
}

func TestLoadFromEnv(t *testing.T) {
	chtmp(t)

	t.Setenv("OPENAI_API_KEY", "test-openai")
	t.Setenv("GROQ_API_KEY", "test-groq")
	t.Setenv("PEXELS_API_KEY", "test-pexels")
	t.Setenv("DRIVE_CLIENT_ID", "test-id")
	t.Setenv("DRIVE_CLIENT_SECRET", "test-secret")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "test-project")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.OpenAIAPIKey != "test-openai" {
		t.Errorf("OpenAIAPIKey = %q, want test-openai", cfg.OpenAIAPIKey)
	}
	if cfg.GroqAPIKey != "test-groq" {
		t.Errorf("GroqAPIKey = %q, want test-groq", cfg.GroqAPIKey)
	}
	if cfg.GCPProject != "test-project" {
		t.Errorf("GCPProject = %q, want test-project", cfg.GCPProject)
	}
}

func TestLoadDefaults(t *testing.T) {
	chtmp(t)

	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.LLM.Provider != ProviderOpenAI {
		t.Errorf("LLM.Provider = %q, want %q", cfg.LLM.Provider, ProviderOpenAI)
	}
	if cfg.LLM.Model != defaultOpenAIModel {
		t.Errorf("LLM.Model = %q, want %q", cfg.LLM.Model, defaultOpenAIModel)
	}
	if cfg.LLM.BatchModel != defaultBatchModel {
		t.Errorf("LLM.BatchModel = %q, want %q", cfg.LLM.BatchModel, defaultBatchModel)
	}
	if cfg.Output.Dir != defaultOutputDir {
		t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, defaultOutputDir)
	}
	if cfg.Slides.Count != defaultSlideCount {
		t.Errorf("Slides.Count = %d, want %d", cfg.Slides.Count, defaultSlideCount)
	}
	if cfg.Images.KeepRecent != defaultKeepImages {
		t.Errorf("Images.KeepRecent = %d, want %d", cfg.Images.KeepRecent, defaultKeepImages)
	}
	if cfg.GCS.Prefix != defaultGCSPrefix {
		t.Errorf("GCS.Prefix = %q, want %q", cfg.GCS.Prefix, defaultGCSPrefix)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmp := chtmp(t)

	_ = os.WriteFile(filepath.Join(tmp, "config.yaml"), []byte("llm: [not a map"), 0644)

	if _, err := Load(context.Background()); err == nil {
		t.Error("Load() should fail on unparseable config.yaml")
	}
}

func TestLoadProviderDefaults(t *testing.T) {
	tests := []struct {
		provider  string
		wantModel string
	}{
		{ProviderGroq, defaultGroqModel},
		{ProviderDeepSeek, defaultDeepSeekModel},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			tmp := chtmp(t)

			yaml := "llm:\n  provider: " + tt.provider
			_ = os.WriteFile(filepath.Join(tmp, "config.yaml"), []byte(yaml), 0644)

			cfg, err := Load(context.Background())
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}

			if cfg.LLM.Model != tt.wantModel {
				t.Errorf("LLM.Model = %q, want %q", cfg.LLM.Model, tt.wantModel)
			}
			if cfg.LLM.BatchModel != cfg.LLM.Model {
				t.Errorf("LLM.BatchModel = %q, want same as model", cfg.LLM.BatchModel)
			}
		})
	}
}

func TestLLMKey(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{
			name: "openai key present",
			cfg:  Config{OpenAIAPIKey: "sk-test", LLM: LLMConfig{Provider: ProviderOpenAI}},
			want: "sk-test",
		},
		{
			name:    "openai key missing",
			cfg:     Config{LLM: LLMConfig{Provider: ProviderOpenAI}},
			wantErr: true,
		},
		{
			name: "groq key present",
			cfg:  Config{GroqAPIKey: "gsk-test", LLM: LLMConfig{Provider: ProviderGroq}},
			want: "gsk-test",
		},
		{
			name:    "groq key missing",
			cfg:     Config{OpenAIAPIKey: "sk-test", LLM: LLMConfig{Provider: ProviderGroq}},
			wantErr: true,
		},
		{
			name: "deepseek key present",
			cfg:  Config{DeepSeekAPIKey: "ds-test", LLM: LLMConfig{Provider: ProviderDeepSeek}},
			want: "ds-test",
		},
		{
			name:    "deepseek key missing",
			cfg:     Config{OpenAIAPIKey: "sk-test", LLM: LLMConfig{Provider: ProviderDeepSeek}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.LLMKey()
			if (err != nil) != tt.wantErr {
				t.Fatalf("LLMKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("LLMKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImagesEnabled(t *testing.T) {
	cfg := Config{}
	if cfg.ImagesEnabled() {
		t.Error("ImagesEnabled() = true without an API key")
	}
	cfg.PexelsAPIKey = "px-test"
	if !cfg.ImagesEnabled() {
		t.Error("ImagesEnabled() = false with an API key")
	}
}

package app

import (
	"context"
	"fmt"

	"slidecraft/internal/images"
	"slidecraft/internal/llm"
	"slidecraft/internal/llm/groq"
	"slidecraft/internal/llm/openai"
	"slidecraft/internal/storage"
	"slidecraft/internal/uploader"
	"slidecraft/pkg/config"
	"slidecraft/pkg/prompts"
)

// BuildService assembles a Service from configuration. A usable text
// generation key is required; everything else is optional and wired
// only when configured.
func BuildService(ctx context.Context, cfg *config.Config) (*Service, error) {
	p, err := prompts.Load()
	if err != nil {
		return nil, err
	}

	apiKey, err := cfg.LLMKey()
	if err != nil {
		return nil, err
	}

	var llmClient llm.Client
	switch cfg.LLM.Provider {
	case config.ProviderGroq:
		llmClient, err = groq.NewClient(apiKey, cfg.LLM.Model, p)
		if err != nil {
			return nil, err
		}
	case config.ProviderDeepSeek:
		llmClient = openai.NewClient(apiKey, openai.Options{
			Model:      cfg.LLM.Model,
			BatchModel: cfg.LLM.BatchModel,
			BaseURL:    openai.DeepSeekBaseURL,
		}, p)
	default:
		llmClient = openai.NewClient(apiKey, openai.Options{
			Model:      cfg.LLM.Model,
			BatchModel: cfg.LLM.BatchModel,
		}, p)
	}

	var archive storage.Archive
	if cfg.GCSBucket != "" {
		gcs, err := storage.NewGCSArchive(ctx, cfg.GCSBucket, cfg.GCS.Prefix)
		if err != nil {
			return nil, fmt.Errorf("init deck archive: %w", err)
		}
		archive = gcs
	}

	var driveUploader uploader.Uploader
	if cfg.DriveClientID != "" && cfg.DriveClientSecret != "" {
		auth := uploader.NewDriveAuth(cfg.DriveClientID, cfg.DriveClientSecret, cfg.DriveTokenPath)
		driveUploader = uploader.NewDriveUploader(auth)
	}

	return NewService(ServiceOptions{
		Config:   cfg,
		LLM:      llmClient,
		Fetcher:  buildFetcher(cfg),
		Archive:  archive,
		Uploader: driveUploader,
	}), nil
}

// BuildRenderService assembles the subset of collaborators needed to
// re-render saved deck data: no model client and no distribution.
func BuildRenderService(cfg *config.Config) *Service {
	return NewService(ServiceOptions{Config: cfg, Fetcher: buildFetcher(cfg)})
}

func buildFetcher(cfg *config.Config) *images.Fetcher {
	if !cfg.ImagesEnabled() {
		return nil
	}
	return images.NewFetcher(images.NewPexelsClient(cfg.PexelsAPIKey), cfg.Images.CacheDir)
}

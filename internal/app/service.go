// Package app wires the deck-building collaborators together and drives
// the two build modes: the conversational slide-by-slide loop and the
// one-shot batch pipeline.
package app

import (
	"slidecraft/internal/images"
	"slidecraft/internal/llm"
	"slidecraft/internal/storage"
	"slidecraft/internal/uploader"
	"slidecraft/pkg/config"
)

type Service struct {
	cfg      *config.Config
	llm      llm.Client
	fetcher  *images.Fetcher
	archive  storage.Archive
	uploader uploader.Uploader
}

type ServiceOptions struct {
	Config   *config.Config
	LLM      llm.Client
	Fetcher  *images.Fetcher
	Archive  storage.Archive
	Uploader uploader.Uploader
}

func NewService(opts ServiceOptions) *Service {
	return &Service{
		cfg:      opts.Config,
		llm:      opts.LLM,
		fetcher:  opts.Fetcher,
		archive:  opts.Archive,
		uploader: opts.Uploader,
	}
}

func (s *Service) Config() *config.Config {
	return s.cfg
}

func (s *Service) LLM() llm.Client {
	return s.llm
}

func (s *Service) Fetcher() *images.Fetcher {
	return s.fetcher
}

func (s *Service) Archive() storage.Archive {
	return s.archive
}

func (s *Service) Uploader() uploader.Uploader {
	return s.uploader
}

package service

import (
	"context"
	"time"

	"freefood/internal/cache"
	"freefood/internal/model"
	"freefood/internal/repository"
)

const (
	tagsCacheKey = "tags:all"
	tagsCacheTTL = 5 * time.Minute
)

// TagService exposes the tag directory.
type TagService interface {
	List(ctx context.Context) ([]model.Tag, error)
}

type tagService struct {
	repo  repository.TagRepository
	cache *cache.Client
}

// NewTagService builds a TagService with repository and cache.
func NewTagService(repo repository.TagRepository, cache *cache.Client) TagService {
	return &tagService{repo: repo, cache: cache}
}

// List returns all tags. The directory only changes through seeding, so the
// listing is cached for a few minutes.
func (s *tagService) List(ctx context.Context) ([]model.Tag, error) {
	var cached []model.Tag
	if s.cache.GetJSON(ctx, tagsCacheKey, &cached) {
		return cached, nil
	}

	tags, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, tagsCacheKey, tags, tagsCacheTTL)
	return tags, nil
}

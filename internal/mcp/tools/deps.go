package tools

import (
	"github.com/usestring/typegen-mcp/internal/cache"
	"github.com/usestring/typegen-mcp/internal/config"
	"github.com/usestring/typegen-mcp/internal/query"
	"github.com/usestring/typegen-mcp/pkg/types"
)

// ResultURIPrefix is the resource URI prefix of cached generation results.
const ResultURIPrefix = "typegen://result/"

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config *config.Config
	Cache  *cache.ResultCache[*types.GenerateOutput]
	Query  *query.Engine
}

// NewDeps builds tool dependencies from cfg.
func NewDeps(cfg *config.Config) (*Deps, error) {
	resultCache, err := cache.NewResultCache[*types.GenerateOutput](cfg.ResultCacheMaxItems)
	if err != nil {
		return nil, err
	}
	return &Deps{
		Config: cfg,
		Cache:  resultCache,
		Query:  query.NewEngine(),
	}, nil
}

// ResultURI returns the resource URI of the cached result with the given fingerprint.
func ResultURI(fingerprint string) string {
	return ResultURIPrefix + fingerprint
}

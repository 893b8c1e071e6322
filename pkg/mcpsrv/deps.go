package mcpsrv

import (
	"github.com/usestring/typegen-mcp/internal/cache"
	"github.com/usestring/typegen-mcp/internal/config"
	"github.com/usestring/typegen-mcp/internal/query"
	"github.com/usestring/typegen-mcp/pkg/types"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Config *config.Config
	Cache  *cache.ResultCache[*types.GenerateOutput]
	Query  *query.Engine
}

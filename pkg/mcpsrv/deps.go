package mcpsrv

import (
	"github.com/usestring/schemex/internal/config"
	"github.com/usestring/schemex/internal/query"
	"github.com/usestring/schemex/internal/store"
	"github.com/usestring/schemex/pkg/extract"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Extractor *extract.Extractor
	Store     *store.Store
	Query     *query.Engine
	Config    *config.Config
}

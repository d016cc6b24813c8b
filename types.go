package heatgrid

import "github.com/arloliu/heatgrid/types"

// Re-export types from the types subpackage.
//
// Internal packages depend on the `types` package directly to avoid import
// cycles; aliases here give users the convenient heatgrid.Layout,
// heatgrid.Rank, etc.
type (
	Rank             = types.Rank
	Direction        = types.Direction
	Layout           = types.Layout
	Neighbors        = types.Neighbors
	Tag              = types.Tag
	Handle           = types.Handle
	Endpoint         = types.Endpoint
	Transport        = types.Transport
	Logger           = types.Logger
	MetricsCollector = types.MetricsCollector
)

// Re-export constants from the types subpackage.
const (
	None = types.None

	Up    = types.Up
	Down  = types.Down
	Left  = types.Left
	Right = types.Right

	TagScatter = types.TagScatter
	TagGather  = types.TagGather
)

package graphview

import "github.com/cockroachdb/errors"

// Construction errors. New returns one of these (possibly wrapped with a
// hint) and no renderer.
var (
	ErrNoGraph        = errors.New("graphview: graph is nil")
	ErrNoCamera       = errors.New("graphview: camera is nil")
	ErrNoIndex        = errors.New("graphview: spatial index is nil")
	ErrNoContainer    = errors.New("graphview: container not found")
	ErrInvalidOptions = errors.New("graphview: wrong arguments")
)

// Runtime errors.
var (
	ErrReentrantRender = errors.New("graphview: render already in progress")
	ErrDisposed        = errors.New("graphview: renderer disposed")
	ErrInvalidSize     = errors.New("graphview: invalid dimensions")
)

// Graph and layer bookkeeping errors.
var (
	ErrDuplicateNode  = errors.New("graphview: duplicate node id")
	ErrDuplicateEdge  = errors.New("graphview: duplicate edge id")
	ErrUnknownNode    = errors.New("graphview: unknown node id")
	ErrDuplicateLayer = errors.New("graphview: duplicate layer name")
	ErrUnknownLayer   = errors.New("graphview: unknown layer name")
)

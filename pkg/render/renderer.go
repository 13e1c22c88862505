package render

import "context"

// Renderer converts page data into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, data PageData) ([]byte, error)
}

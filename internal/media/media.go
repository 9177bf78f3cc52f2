// Package media abstracts the external object store that holds video and
// image assets and serves them over a CDN.
package media

import "context"

// Kind selects the asset type for deletions.
type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
)

// Asset is the durable result of an upload. Duration is reported in
// seconds and is zero for images.
type Asset struct {
	URL      string
	PublicID string
	Duration float64
}

// Store uploads and deletes binary assets. Implementations must return
// an error rather than a partial Asset.
type Store interface {
	Upload(ctx context.Context, localPath string) (*Asset, error)
	Delete(ctx context.Context, publicID string, kind Kind) error
}

package ports

import "context"

// ArchiveFetcher turns a project archive reference into a local project directory.
//
//go:generate mockgen -source=archive.go -destination=mocks/mock_archive.go -package=mocks
type ArchiveFetcher interface {
	// Fetch extracts ref into dest and returns the project directory.
	// options holds driver specific settings such as HTTP headers.
	Fetch(ctx context.Context, ref, dest string, options map[string]string) (string, error)
}

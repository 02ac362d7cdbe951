package service

import "context"

// MediaStorage stores user-supplied images (profile and cover pictures) and
// returns publicly addressable URLs. The underlying store is an opaque
// external service; image processing is out of scope.
type MediaStorage interface {
	// Upload decodes a base64 or data-URI payload, stores it under the given
	// kind ("profile", "cover"), and returns the public URL.
	Upload(ctx context.Context, kind, data string) (string, error)

	// Remove deletes a previously uploaded image by its public URL.
	// Removing an unknown URL is not an error.
	Remove(ctx context.Context, url string) error
}

package middleware

import (
	"context"
	"net/http"
)

const (
	ArchiveZip = "zip"
	ArchiveTar = "tar"
)

type archiveTypeKey struct{}

// ArchiveTypeMiddleware reads the archiveType query parameter and stores it in the
// request context. Unknown or missing values fall back to zip.
func ArchiveTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		archiveType := r.URL.Query().Get("archiveType")
		if archiveType != ArchiveTar && archiveType != ArchiveZip {
			archiveType = ArchiveZip
		}

		ctx := context.WithValue(r.Context(), archiveTypeKey{}, archiveType)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ArchiveType returns the archive type chosen by ArchiveTypeMiddleware, or zip.
func ArchiveType(ctx context.Context) string {
	if v, ok := ctx.Value(archiveTypeKey{}).(string); ok {
		return v
	}
	return ArchiveZip
}

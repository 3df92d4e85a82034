package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/playlistx/photoboothbackend/assets"
)

// FrameList reports the packaged frame assets in natural order so the kiosk
// UI can preload them.
func FrameList(resolver *assets.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		frames, err := resolver.ListFrames()
		if err != nil {
			log.Printf("handlers.assets: Failed to list frames: %v", err)
			WriteAPIError(w, http.StatusInternalServerError, "assets_error", "Failed to list frame assets")
			return
		}
		writeJSON(w, http.StatusOK, map[string][]string{"frames": frames})
	}
}

// PhotoServer serves saved photos to the kiosk UI and the operator data
// view. The route prefix must match routePrefix, e.g.
//
//	r.Get("/photos/*", PhotoServer(photoStore.BasePath(), "/photos/"))
func PhotoServer(photosDir, routePrefix string) http.HandlerFunc {
	photosDir = filepath.Clean(photosDir)
	log.Printf("Serving photos for '%s*' from directory: %s", routePrefix, photosDir)

	return func(w http.ResponseWriter, r *http.Request) {
		relativePath := strings.TrimPrefix(r.URL.Path, routePrefix)

		if relativePath == "" || strings.Contains(relativePath, "..") {
			http.Error(w, "Invalid photo path", http.StatusBadRequest)
			return
		}

		requestedPath := filepath.Join(photosDir, relativePath)
		cleanedPath := filepath.Clean(requestedPath)

		if !strings.HasPrefix(cleanedPath, photosDir) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			log.Printf("SECURITY: Attempted photo access outside photos directory: Request='%s', Resolved='%s', Allowed Base='%s'",
				r.URL.Path, cleanedPath, photosDir)
			return
		}

		if _, err := os.Stat(cleanedPath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		} else if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			log.Printf("Error stating photo file %s: %v", cleanedPath, err)
			return
		}

		cacheDuration := 24 * time.Hour
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(cacheDuration.Seconds())))
		w.Header().Set("Expires", time.Now().Add(cacheDuration).Format(http.TimeFormat))

		http.ServeFile(w, r, cleanedPath)
	}
}

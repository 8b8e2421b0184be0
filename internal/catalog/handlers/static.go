package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// StaticFiles serves the front-end assets under dir. Directories resolve to
// their index.html; anything else that does not exist is a JSON 404.
func StaticFiles(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if dir == "" || !exists(dir, r.URL.Path) {
			writeError(w, http.StatusNotFound, codeNotFound, "Not found")
			return
		}
		files.ServeHTTP(w, r)
	})
}

func exists(dir, urlPath string) bool {
	name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+urlPath)))
	info, err := os.Stat(name)
	if err != nil {
		return false
	}
	if info.IsDir() {
		info, err = os.Stat(filepath.Join(name, "index.html"))
		return err == nil && !info.IsDir()
	}
	return true
}

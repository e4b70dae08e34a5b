package localhost

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

const indexFile = "index.html"

// serveAsset serves a file from the bundle. Paths that match nothing and
// carry no extension are client-side routes and get index.html.
func (s *Server) serveAsset(c *gin.Context) {
	name, ok := resolveAsset(s.assets, c.Request.URL.Path)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	http.ServeFileFS(c.Writer, c.Request, s.assets, name)
}

// resolveAsset maps a URL path to a file name inside assets.
func resolveAsset(assets fs.FS, urlPath string) (string, bool) {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		name = indexFile
	}

	info, err := fs.Stat(assets, name)
	if err == nil && info.IsDir() {
		name = path.Join(name, indexFile)
		info, err = fs.Stat(assets, name)
	}
	if err == nil && !info.IsDir() {
		return name, true
	}

	if path.Ext(name) != "" {
		return "", false
	}
	if _, err := fs.Stat(assets, indexFile); err != nil {
		return "", false
	}
	return indexFile, true
}

package middleware

import (
	"net/http"
	"path"
)

// Static serves regular files from dir for GET and HEAD requests and passes
// everything else to next. "/" is served from index.html.
func Static(dir string) func(http.Handler) http.Handler {
	root := http.Dir(dir)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)

				return
			}

			name := path.Clean("/" + r.URL.Path)
			if name == "/" {
				name = "/index.html"
			}

			f, err := root.Open(name)
			if err != nil {
				next.ServeHTTP(w, r)

				return
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil || info.IsDir() {
				next.ServeHTTP(w, r)

				return
			}

			http.ServeContent(w, r, info.Name(), info.ModTime(), f)
		})
	}
}

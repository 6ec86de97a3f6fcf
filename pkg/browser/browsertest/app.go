package browsertest

import (
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
)

const loginForm = `<!DOCTYPE html>
<html><head><title>Sign in</title></head>
<body>
<form action="/session" method="post">
<input name="username" type="text">
<input name="password" type="password">
<button type="submit">Log in</button>
</form>
%s
</body></html>`

// NewLoginApp serves a minimal application with a login screen at /login
// that accepts username/password and redirects to /dashboard.
func NewLoginApp(username, password string) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, loginForm, "")
	})

	mux.HandleFunc("/session", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if r.FormValue("username") == username && r.FormValue("password") == password {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		banner := fmt.Sprintf(`<div class="error-message">Invalid credentials for %s</div>`, html.EscapeString(r.FormValue("username")))
		fmt.Fprintf(w, loginForm, banner)
	})

	mux.HandleFunc("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<!DOCTYPE html><html><head><title>Dashboard</title></head><body><h1>Welcome</h1></body></html>`)
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<!DOCTYPE html><html><head><title>Playwright test app</title></head><body><a href="/login">Sign in</a></body></html>`)
	})

	return httptest.NewServer(mux)
}

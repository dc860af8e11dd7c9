package main

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
)

const (
	hdrReferer = "Referer"
)

func main() {
	log.SetFlags(log.Lmicroseconds)
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	listenAddr := ":" + port

	err := http.ListenAndServe(listenAddr, newMux())
	if err == http.ErrServerClosed {
		log.Printf("server successfully closed")
	} else if err != nil {
		log.Fatal(err)
	}
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", withLogging(redirect))
	mux.HandleFunc("/route", withLogging(routeInfo))
	return mux
}

func withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		log.Printf("request: method=%s path=%s ip=%s referer=%s params=%s", req.Method, req.URL.Path, req.Header.Get("x-forwarded-for"), req.Header.Get(hdrReferer), req.URL.RawQuery)
		ww := &respRecorder{w: w}
		next(ww, req)
		log.Printf("response: status=%d location=%s", ww.status, w.Header().Get("location"))
	}
}

func redirect(w http.ResponseWriter, req *http.Request) {
	if req.Method == http.MethodPost {
		manualRedirect(w, req)
		return
	}
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, "method %s not allowed", req.Method)
		return
	}

	if from := req.URL.Query().Get(paramURL); from != "" {
		r, err := parseReferer(from)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, err.Error())
			return
		}
		doRedirect(w, r.String())
		return
	}

	// visitors from anywhere else get the form
	r, err := parseReferer(req.Header.Get(hdrReferer))
	if err != nil {
		showRedirectForm(w, req)
		return
	}
	doRedirect(w, r.String())
}

func manualRedirect(w http.ResponseWriter, req *http.Request) {
	from := req.FormValue(paramURL)
	r, err := parseReferer(from)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintln(w, err.Error())
		return
	}
	doRedirect(w, r.String())
}

func doRedirect(w http.ResponseWriter, target string) {
	w.Header().Set("location", target)
	w.WriteHeader(http.StatusTemporaryRedirect)
}

// routeInfo responds with the route of the url parameter as JSON.
func routeInfo(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, "method %s not allowed", req.Method)
		return
	}
	w.Header().Set("content-type", "application/json")
	r, err := parseReferer(req.URL.Query().Get(paramURL))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	json.NewEncoder(w).Encode(r)
}

var formTemplate = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html>
	<head>
		<title>goodgit</title>
		<style>
			html {
				font-family: '-apple-system','BlinkMacSystemFont','segoe ui',Roboto,'helvetica neue',Arial, sans-serif, 'apple color emoji', 'segoe ui emoji', 'segoe ui symbol';
			}
			body {
				margin: 0;
			}
			html, input {
				font-size: 120%;
			}
			.container {
				margin: 5em auto;
				max-width: 768px;
			}
		</style>
	</head>
	<body>
		<div class="container">
		<h1>Where to?</h1>
		<p>
			Paste the address of a GitHub or GitLab page. You will be sent to
			the repository or user it belongs to.
		</p>
		<form action="/" method="POST">
			<input type="text" name="url" placeholder="https://github.com/..."
				size="32" value="{{.}}"/>
			<input type="submit" value="Go"/>
		</form>
		</div>
	</body>
</html>`))

func showRedirectForm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("content-type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, r.URL.Query().Get(paramURL)); err != nil {
		log.Printf("failed to render form: %v", err)
	}
}

type respRecorder struct {
	w      http.ResponseWriter
	status int
}

func (rr *respRecorder) Header() http.Header         { return rr.w.Header() }
func (rr *respRecorder) Write(p []byte) (int, error) { return rr.w.Write(p) }
func (rr *respRecorder) WriteHeader(statusCode int) {
	rr.status = statusCode
	rr.w.WriteHeader(statusCode)
}

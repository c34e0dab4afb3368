package handlers

import "net/http"

// isHTMX reports any request issued by htmx, boosted links included.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" || r.Header.Get("HX-Boosted") == "true"
}

// wantsPartial reports whether the response should be the page content only.
// Boosted requests replace the whole body and still need the layout.
func wantsPartial(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" && r.Header.Get("HX-Boosted") != "true"
}

package site

import (
	"net/http"
	"strings"
)

// Client hint headers carrying the visitor's OS preferences.
const (
	HintColorScheme   = "Sec-CH-Prefers-Color-Scheme"
	HintReducedMotion = "Sec-CH-Prefers-Reduced-Motion"
)

// AcceptCH is the Accept-CH value asking browsers for both hints.
var AcceptCH = HintColorScheme + ", " + HintReducedMotion

// Signals are the OS-level preferences known for a session. The zero value
// means light with motion, which is what a static build assumes.
type Signals struct {
	PrefersDark   bool
	ReducedMotion bool
}

// SignalsFromRequest reads the client hints. Browsers that do not send
// them get the zero value.
func SignalsFromRequest(r *http.Request) Signals {
	return Signals{
		PrefersDark:   hint(r, HintColorScheme) == "dark",
		ReducedMotion: hint(r, HintReducedMotion) == "reduce",
	}
}

func hint(r *http.Request, name string) string {
	v := strings.TrimSpace(r.Header.Get(name))
	return strings.ToLower(strings.Trim(v, `"`))
}

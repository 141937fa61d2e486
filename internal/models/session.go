package models

import (
	"net/http"
	"net/http/cookiejar"
)

// Session holds the authenticated HTTP capability and base run
// configuration. Constructed once at startup, read-only afterwards,
// and shared by reference into every component.
type Session struct {
	Client       *http.Client
	Jar          *cookiejar.Jar
	CookieFile   string
	OutputDir    string
	Experimental bool
	Skip         int
}

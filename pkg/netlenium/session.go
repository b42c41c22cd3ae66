package netlenium

import (
	"strconv"
	"time"
)

// Driver is the browser driver backing a session.
type Driver string

// Supported drivers. DriverAuto lets the server choose and is also the
// fallback for unrecognized values.
const (
	DriverChrome  Driver = "chrome"
	DriverFirefox Driver = "firefox"
	DriverOpera   Driver = "opera"
	DriverAuto    Driver = "auto"
)

// ParseDriver maps a server driver name to a Driver. Matching is exact;
// anything else, including "", yields DriverAuto.
func ParseDriver(s string) Driver {
	switch Driver(s) {
	case DriverChrome, DriverFirefox, DriverOpera, DriverAuto:
		return Driver(s)
	default:
		return DriverAuto
	}
}

// ProxyScheme is the protocol spoken to a session's upstream proxy.
type ProxyScheme string

// Supported proxy schemes.
const (
	ProxySchemeHTTP  ProxyScheme = "http"
	ProxySchemeHTTPS ProxyScheme = "https"
)

// ParseProxyScheme maps a server scheme name to a ProxyScheme. Matching is
// exact; anything else yields ProxySchemeHTTP.
func ParseProxyScheme(s string) ProxyScheme {
	if ProxyScheme(s) == ProxySchemeHTTPS {
		return ProxySchemeHTTPS
	}
	return ProxySchemeHTTP
}

// Window is the window a session currently has focused.
type Window struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ProxyConfiguration is the upstream proxy a session routes through.
type ProxyConfiguration struct {
	Enabled                bool        `json:"enabled"`
	Scheme                 ProxyScheme `json:"scheme"`
	Host                   string      `json:"host"`
	Port                   int         `json:"port"`
	AuthenticationRequired bool        `json:"authenticationRequired"`
	Username               string      `json:"username,omitempty"`
	Password               string      `json:"-"`
}

// Address returns scheme://host:port, or "" when the proxy is disabled.
func (p ProxyConfiguration) Address() string {
	if !p.Enabled {
		return ""
	}
	return string(p.Scheme) + "://" + p.Host + ":" + strconv.Itoa(p.Port)
}

// Session is a snapshot of an active automation session as reported by the
// server. Created and LastActivity are Unix timestamps in seconds.
type Session struct {
	ID            string             `json:"id"`
	Created       int64              `json:"created"`
	LastActivity  int64              `json:"lastActivity"`
	Driver        Driver             `json:"driver"`
	CurrentWindow Window             `json:"currentWindow"`
	Proxy         ProxyConfiguration `json:"proxyConfiguration"`
}

// CreatedAt returns Created as a time.Time.
func (s Session) CreatedAt() time.Time {
	return time.Unix(s.Created, 0)
}

// LastActivityAt returns LastActivity as a time.Time.
func (s Session) LastActivityAt() time.Time {
	return time.Unix(s.LastActivity, 0)
}

// Idle returns how long the session has been inactive relative to now.
func (s Session) Idle(now time.Time) time.Duration {
	d := now.Sub(s.LastActivityAt())
	if d < 0 {
		return 0
	}
	return d
}

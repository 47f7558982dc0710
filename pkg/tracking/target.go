package tracking

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strings"
)

// DefaultURLTemplate is the path form of the tracking URL.
const DefaultURLTemplate = "{base}/tracking/{id}"

// LegacyURLTemplate is the query form used by older scanners.
const LegacyURLTemplate = "{base}/?track={id}"

// Detector returns the host address tracking URLs should point at.
type Detector func() (string, error)

// DetectLANAddress returns the address of the interface holding the default
// route. The UDP dial selects a source address without sending packets.
func DetectLANAddress() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", fmt.Errorf("detect lan address: %w", err)
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP == nil || addr.IP.IsUnspecified() {
		return "", fmt.Errorf("detect lan address: no usable local address")
	}
	return addr.IP.String(), nil
}

// ResolveBase returns the base URL for tracking links. An explicit BaseURL
// wins; otherwise scheme://host:port with host detected when not configured.
// A failed detection falls back to localhost.
func ResolveBase(cfg *Config, detect Detector, logger *slog.Logger) string {
	if cfg.BaseURL != "" {
		return strings.TrimRight(cfg.BaseURL, "/")
	}

	host := cfg.Host
	if host == "" && detect != nil {
		detected, err := detect()
		if err != nil {
			logger.Warn("lan address detection failed, using localhost", "error", err)
		}
		host = detected
	}
	if host == "" {
		host = "localhost"
	}

	return fmt.Sprintf("%s://%s", cfg.Scheme, net.JoinHostPort(host, fmt.Sprint(cfg.Port)))
}

// URL expands template for id. The id is query-escaped when it follows a
// '?' and path-escaped otherwise.
func URL(template, base, id string) string {
	escaped := url.PathEscape(id)
	if q := strings.Index(template, "?"); q >= 0 && q < strings.Index(template, "{id}") {
		escaped = url.QueryEscape(id)
	}

	return strings.NewReplacer(
		"{base}", strings.TrimRight(base, "/"),
		"{id}", escaped,
	).Replace(template)
}

// ArtifactKey returns the storage key for id's tracking code. Letters,
// digits, '.' and '-' are kept; every other byte, '_' included, becomes
// '_' plus two hex digits, so distinct ids always get distinct keys.
func ArtifactKey(dir, id string) string {
	var name strings.Builder
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9', c == '.', c == '-':
			name.WriteByte(c)
		default:
			fmt.Fprintf(&name, "_%02X", c)
		}
	}
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return name.String() + ".png"
	}
	return dir + "/" + name.String() + ".png"
}

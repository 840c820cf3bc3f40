package router

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akeren/seam-landing/pkg/utils"
)

const (
	defaultMaxBodyBytes = int64(1 << 20)
	defaultHSTSMaxAge   = int64(31536000)
)

// httpSettings is read from the environment once, when the router is built.
type httpSettings struct {
	ginMode        string
	trustedProxies []string
	maxBodyBytes   int64
	corsOrigins    []string
	hstsEnabled    bool
	hstsValue      string
}

func loadHTTPSettings() httpSettings {
	appEnv := strings.ToLower(utils.GetEnvTrimmed("APP_ENV"))
	production := appEnv == "production" || appEnv == "prod"

	s := httpSettings{
		ginMode:        utils.GetEnvTrimmed("GIN_MODE"),
		trustedProxies: parseTrustedProxiesEnv(utils.GetEnvTrimmed("TRUSTED_PROXIES")),
		maxBodyBytes:   positiveInt64Env("MAX_REQUEST_BODY_BYTES", defaultMaxBodyBytes),
		corsOrigins:    splitList(utils.GetEnvTrimmed("CORS_ALLOWED_ORIGIN")),
		hstsEnabled:    utils.GetEnvBool("HSTS_ENABLED", production),
	}

	s.hstsValue = fmt.Sprintf("max-age=%d", positiveInt64Env("HSTS_MAX_AGE", defaultHSTSMaxAge))
	if utils.GetEnvBool("HSTS_INCLUDE_SUBDOMAINS", true) {
		s.hstsValue += "; includeSubDomains"
	}

	return s
}

// parseTrustedProxiesEnv returns nil (trust nobody) for an empty value and
// every address for "*".
func parseTrustedProxiesEnv(v string) []string {
	s := strings.TrimSpace(v)
	if s == "*" {
		return []string{"0.0.0.0/0", "::/0"}
	}
	return splitList(s)
}

func (s httpSettings) originAllowed(origin string) bool {
	for _, allowed := range s.corsOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func positiveInt64Env(key string, fallback int64) int64 {
	raw := utils.GetEnvTrimmed(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

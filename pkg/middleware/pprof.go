package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"net/http/pprof"

	"github.com/go-chi/chi/v5"
)

// RegisterPprof mounts /debug/pprof behind an IP allowlist. Nothing is
// mounted when allowedCIDRs holds no valid range.
func RegisterPprof(r chi.Router, allowedCIDRs []string, logger *slog.Logger) {
	nets := parseCIDRs(allowedCIDRs, logger)
	if len(nets) == 0 {
		logger.Debug("pprof disabled, no allowed CIDRs")
		return
	}

	r.Group(func(r chi.Router) {
		r.Use(allowNets(nets, logger))
		r.HandleFunc("/debug/pprof/*", pprof.Index)
		r.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		r.HandleFunc("/debug/pprof/profile", pprof.Profile)
		r.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		r.HandleFunc("/debug/pprof/trace", pprof.Trace)
	})
}

// IPAllowlist restricts access to clients inside cidrs. Invalid CIDRs are
// logged and skipped.
func IPAllowlist(cidrs []string, logger *slog.Logger) func(http.Handler) http.Handler {
	return allowNets(parseCIDRs(cidrs, logger), logger)
}

func parseCIDRs(cidrs []string, logger *slog.Logger) []*net.IPNet {
	var nets []*net.IPNet
	for _, cidr := range cidrs {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			logger.Warn("invalid allowlist CIDR, skipping",
				slog.String("cidr", cidr),
				slog.String("error", err.Error()),
			)
			continue
		}
		nets = append(nets, ipNet)
	}
	return nets
}

func allowNets(nets []*net.IPNet, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			if ip := net.ParseIP(host); ip != nil {
				for _, n := range nets {
					if n.Contains(ip) {
						next.ServeHTTP(w, r)
						return
					}
				}
			}

			logger.Warn("access denied by IP allowlist",
				slog.String("ip", host),
				slog.String("path", r.URL.Path),
			)
			writeError(w, http.StatusForbidden, "FORBIDDEN", "access restricted by IP allowlist")
		})
	}
}

package loggen

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// request is one synthetic access-log record before formatting.
type request struct {
	at     time.Time
	source string
	method string
	path   string
	status int
	size   int64
}

// Shared path pool for baseline traffic.
var paths = []string{
	"/", "/index.html", "/about", "/products", "/products/42",
	"/api/v1/items", "/api/v1/users", "/static/app.js", "/static/app.css",
	"/images/logo.png", "/search", "/contact", "/login", "/cart",
}

var probePaths = []string{
	"/admin/config.php", "/wp-admin/setup.php", "/.env",
	"/phpmyadmin/index.php", "/.git/HEAD", "/backup/db.sql",
}

// Generate produces synthetic access-log lines for the configured
// workload. Deterministic for a fixed seed.
func Generate(cfg GenConfig) ([]string, error) {
	f := gofakeit.New(cfg.Seed)

	start := time.Now().Truncate(24 * time.Hour).Add(9 * time.Hour)
	if cfg.Start != "" {
		t, err := time.Parse(time.RFC3339, cfg.Start)
		if err != nil {
			return nil, fmt.Errorf("parse start time: %w", err)
		}
		start = t
	}

	sources := make([]string, cfg.Sources)
	for i := range sources {
		sources[i] = f.IPv4Address()
	}

	var reqs []request

	// Baseline: traffic spread evenly across sources over business hours.
	for i := 0; i < cfg.Lines; i++ {
		reqs = append(reqs, request{
			at:     start.Add(time.Duration(i) * 90 * time.Second),
			source: sources[i%len(sources)],
			method: "GET",
			path:   paths[f.Number(0, len(paths)-1)],
			status: 200,
			size:   int64(f.Number(200, 8000)),
		})
	}

	if cfg.Scenarios.HotSource {
		hot := f.IPv4Address()
		for i := 0; i < 300; i++ {
			reqs = append(reqs, request{
				at:     start.Add(time.Duration(i) * 30 * time.Second),
				source: hot,
				method: "GET",
				path:   paths[f.Number(0, len(paths)-1)],
				status: 200,
				size:   int64(f.Number(200, 8000)),
			})
		}
	}

	if cfg.Scenarios.FailingSource {
		failing := f.IPv4Address()
		for i := 0; i < 15; i++ {
			reqs = append(reqs, request{
				at:     start.Add(time.Duration(i) * time.Minute),
				source: failing,
				method: "POST",
				path:   "/login",
				status: 401,
				size:   512,
			})
		}
	}

	if cfg.Scenarios.OffHours {
		night := start.Truncate(24 * time.Hour).Add(3 * time.Hour)
		for i := 0; i < 120; i++ {
			reqs = append(reqs, request{
				at:     night.Add(time.Duration(i) * 20 * time.Second),
				source: sources[i%len(sources)],
				method: "GET",
				path:   paths[f.Number(0, len(paths)-1)],
				status: 200,
				size:   int64(f.Number(200, 8000)),
			})
		}
	}

	if cfg.Scenarios.Probes {
		prober := f.IPv4Address()
		for i, p := range probePaths {
			reqs = append(reqs, request{
				at:     start.Add(time.Duration(i) * 45 * time.Second),
				source: prober,
				method: "GET",
				path:   p,
				status: 404,
				size:   256,
			})
		}
	}

	if cfg.Scenarios.LargeTransfers {
		reqs = append(reqs, request{
			at:     start.Add(2 * time.Hour),
			source: sources[0],
			method: "GET",
			path:   "/export/full-dump.zip",
			status: 200,
			size:   60_000_000,
		})
	}

	if cfg.Scenarios.Burst {
		burster := f.IPv4Address()
		for i := 0; i < 12; i++ {
			reqs = append(reqs, request{
				at:     start.Add(4*time.Hour + time.Duration(i)*500*time.Millisecond),
				source: burster,
				method: "GET",
				path:   "/api/v1/items",
				status: 200,
				size:   1024,
			})
		}
	}

	sort.SliceStable(reqs, func(i, j int) bool { return reqs[i].at.Before(reqs[j].at) })

	return formatLines(cfg.Format, reqs)
}

func formatLines(format string, reqs []request) ([]string, error) {
	lines := make([]string, 0, len(reqs)+1)

	switch format {
	case "apache":
		for _, r := range reqs {
			lines = append(lines, fmt.Sprintf(`%s - - [%s] "%s %s HTTP/1.1" %d %d`,
				r.source, r.at.Format("02/Jan/2006:15:04:05 -0700"),
				r.method, r.path, r.status, r.size))
		}

	case "json":
		for _, r := range reqs {
			b, err := json.Marshal(map[string]interface{}{
				"ip":        r.source,
				"timestamp": r.at.Format(time.RFC3339),
				"method":    r.method,
				"url":       r.path,
				"status":    r.status,
				"bytes":     r.size,
			})
			if err != nil {
				return nil, fmt.Errorf("marshal json line: %w", err)
			}
			lines = append(lines, string(b))
		}

	case "syslog":
		for _, r := range reqs {
			lines = append(lines, fmt.Sprintf(`%s %s httpd[311]: %s "%s %s HTTP/1.1" %d`,
				r.at.Format("Jan _2 15:04:05"), hostFromIP(r.source),
				r.source, r.method, r.path, r.status))
		}

	case "w3c":
		lines = append(lines, "#Software: Microsoft Internet Information Services 10.0")
		lines = append(lines, "#Fields: date time c-ip cs-method cs-uri-stem sc-status sc-bytes")
		for _, r := range reqs {
			lines = append(lines, fmt.Sprintf("%s %s %s %s %s %d %d",
				r.at.Format("2006-01-02"), r.at.Format("15:04:05"),
				r.source, r.method, r.path, r.status, r.size))
		}

	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	return lines, nil
}

// hostFromIP derives a stable pseudo-hostname so syslog output groups by
// host the way the parsers expect.
func hostFromIP(ip string) string {
	return "web-" + strings.ReplaceAll(ip, ".", "-")
}

// Run executes the generator from a YAML config path.
func Run(configPath *string) {
	cfg, err := ReadGenConfig(*configPath)
	if err != nil {
		log.Fatalf("[FATAL] error loading gen config: %v", err)
	}

	lines, err := Generate(cfg)
	if err != nil {
		log.Fatalf("[FATAL] generate: %v", err)
	}

	out := os.Stdout
	if cfg.Output != "" {
		fh, err := os.Create(cfg.Output)
		if err != nil {
			log.Fatalf("[FATAL] create output: %v", err)
		}
		defer fh.Close()
		out = fh
	}

	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	log.Printf("[INFO] wrote %d lines format=%s output=%s", len(lines), cfg.Format, cfg.Output)
}

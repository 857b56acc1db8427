// Package dashboard renders a Grafana dashboard for exported trajectories.
package dashboard

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"
)

//go:embed templates/trajectories.json.tmpl
var content embed.FS

// DatasourceEnv names the variable holding the Grafana datasource UID of the
// GreptimeDB MySQL endpoint.
const DatasourceEnv = "GREPTIMEDB_DATASOURCE_UID"

// Params fills the dashboard template.
type Params struct {
	Title         string
	Database      string
	Table         string
	DatasourceUID string
	// From and To bound the default time range; they normally span the exported
	// trajectory times mapped onto the export epoch.
	From string
	To   string
}

// ParamsFor builds Params from the export target. The datasource UID comes
// from getenv(DatasourceEnv).
func ParamsFor(title, database, table string, from, to time.Time, getenv func(string) string) (Params, error) {
	uid := getenv(DatasourceEnv)
	if uid == "" {
		return Params{}, fmt.Errorf("environment variable %s not set", DatasourceEnv)
	}
	return Params{
		Title:         title,
		Database:      database,
		Table:         table,
		DatasourceUID: uid,
		From:          from.UTC().Format(time.RFC3339),
		To:            to.UTC().Format(time.RFC3339),
	}, nil
}

// Render writes the dashboard to outDir/<table>-dashboard.json and returns its path.
func Render(outDir string, p Params) (string, error) {
	funcMap := template.FuncMap{
		"json": func(v any) (string, error) {
			b, err := json.Marshal(v)
			return string(b), err
		},
	}
	t, err := template.New("trajectories.json.tmpl").Funcs(funcMap).ParseFS(content, "templates/trajectories.json.tmpl")
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	outPath := filepath.Join(outDir, p.Table+"-dashboard.json")
	f, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	if err := t.Execute(f, p); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return outPath, nil
}

package dashboard

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestParamsForMissingEnv(t *testing.T) {
	_, err := ParamsFor("t", "public", "agent_trajectory", time.Unix(0, 0), time.Unix(60, 0), env(nil))
	if err == nil {
		t.Fatalf("expected error for missing datasource uid")
	}
}

func TestRenderSuccess(t *testing.T) {
	p, err := ParamsFor(`Harbour "east"`, "public", "agent_trajectory", time.Unix(0, 0), time.Unix(90, 0),
		env(map[string]string{DatasourceEnv: "uid1"}))
	if err != nil {
		t.Fatalf("ParamsFor: %v", err)
	}
	path, err := Render(t.TempDir(), p)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.HasSuffix(path, "agent_trajectory-dashboard.json") {
		t.Fatalf("unexpected path %q", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dashboard: %v", err)
	}
	var doc struct {
		Title string `json:"title"`
		Time  struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"time"`
		Panels []json.RawMessage `json:"panels"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("dashboard is not valid JSON: %v\n%s", err, b)
	}
	if doc.Title != `Harbour "east"` || len(doc.Panels) != 3 {
		t.Fatalf("unexpected dashboard %+v", doc)
	}
	if doc.Time.To != "1970-01-01T00:01:30Z" {
		t.Fatalf("unexpected time range %+v", doc.Time)
	}
	if !strings.Contains(string(b), "uid1") || !strings.Contains(string(b), "public.agent_trajectory") {
		t.Fatalf("datasource or table not rendered")
	}
}

package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/plot/vg"

	"trajviz/internal/trajectory"
)

func sampleTrajectories() []trajectory.AgentTrajectory {
	square := trajectory.Footprint{
		Exterior:  []trajectory.Point2D{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}},
		Interiors: [][]trajectory.Point2D{{{X: -0.2, Y: -0.2}, {X: 0.2, Y: -0.2}, {X: 0, Y: 0.2}}},
	}
	return []trajectory.AgentTrajectory{
		{
			Config: trajectory.AgentConfig{Name: "late", Order: 5, Footprint: square, Position: trajectory.Position{X: 4, Y: 4}},
			Segments: []trajectory.MovementSegment{
				{Points: []trajectory.SpacetimePoint{{X: 4, Y: 4, T: 0}, {X: 5, Y: 5, T: 1}}, Kind: trajectory.Evasive},
			},
		},
		{
			Config: trajectory.AgentConfig{Name: "early", Order: 1, Footprint: square},
			Segments: []trajectory.MovementSegment{
				{Points: []trajectory.SpacetimePoint{{X: 0, Y: 0, T: 0}, {X: 1, Y: 0, T: 1}}, Kind: trajectory.Scheduled},
				{Points: []trajectory.SpacetimePoint{}, Kind: trajectory.Idle},
				{Points: []trajectory.SpacetimePoint{{X: 1, Y: 0, T: 1}, {X: 1, Y: 0, T: 4}}, Kind: trajectory.Idle},
			},
		},
		{Config: trajectory.AgentConfig{Name: "parked", Order: 3}},
	}
}

func TestAgents(t *testing.T) {
	agents := Agents(sampleTrajectories())
	if len(agents) != 3 || agents[1].Series.Name != "early" || len(agents[1].Series.Points) != 4 {
		t.Fatalf("unexpected agents %+v", agents)
	}
}

func TestRenderDoesNotReorderInput(t *testing.T) {
	agents := Agents(sampleTrajectories())
	if _, err := Render(agents, DefaultOptions()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if agents[0].Config.Name != "late" {
		t.Fatalf("input slice was reordered")
	}
}

func TestSaveFormats(t *testing.T) {
	dir := t.TempDir()
	agents := Agents(sampleTrajectories())
	for _, name := range []string{"plot.png", "plot.svg"} {
		path := filepath.Join(dir, name)
		if err := Save(path, agents, DefaultOptions()); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", name, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", name)
		}
	}
}

func TestWriteToPNG(t *testing.T) {
	buf := &bytes.Buffer{}
	opts := DefaultOptions()
	opts.Width, opts.Height = 4*vg.Inch, 3*vg.Inch
	if err := WriteTo(buf, "PNG", Agents(sampleTrajectories()), opts); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("expected PNG header")
	}
}

func TestRenderEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := WriteTo(buf, "png", nil, Options{}); err != nil {
		t.Fatalf("WriteTo with no agents: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected an image")
	}
}

func TestWriteToUnknownFormat(t *testing.T) {
	if err := WriteTo(&bytes.Buffer{}, "bmp", Agents(sampleTrajectories()), DefaultOptions()); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/bifurcation/internal/config"
	"github.com/san-kum/bifurcation/internal/dynamo"
	"github.com/san-kum/bifurcation/internal/render"
	"github.com/san-kum/bifurcation/internal/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func smallRun(dir string, extra ...string) []string {
	args := []string{
		"--output", filepath.Join(dir, "bifurcation.png"),
		"--r-points", "30",
		"--skip", "20",
		"-n", "10",
		"--dpi", "10",
		"--n-cpus", "3",
	}
	return append(args, extra...)
}

func TestRoot_WritesImage(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, smallRun(dir)...)
	if err != nil {
		t.Fatalf("execute failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "computed values") {
		t.Errorf("missing confirmation in output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "bifurcation.png")); err != nil {
		t.Errorf("image not written: %v", err)
	}
}

func TestRoot_UnknownMapFailsBeforeSweep(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, smallRun(dir, "--map", "99")...)
	if !errors.Is(err, dynamo.ErrUnknownMap) {
		t.Fatalf("expected ErrUnknownMap, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "bifurcation.png")); !os.IsNotExist(err) {
		t.Error("no image should be written for an unknown map")
	}
}

func TestRoot_OversizedCanvasFailsBeforeSweep(t *testing.T) {
	for _, dpi := range []string{"0", "100000", "4294967296"} {
		dir := t.TempDir()
		data := filepath.Join(dir, "runs")
		out, err := execute(t, smallRun(dir, "--save", "--data", data, "--dpi", dpi)...)
		if !errors.Is(err, render.ErrCanvasSize) {
			t.Fatalf("dpi=%s: expected ErrCanvasSize, got %v", dpi, err)
		}
		if strings.Contains(out, "computed values") {
			t.Errorf("dpi=%s: sweep should not run:\n%s", dpi, out)
		}
		if _, err := os.Stat(filepath.Join(dir, "bifurcation.png")); !os.IsNotExist(err) {
			t.Errorf("dpi=%s: no image should be written", dpi)
		}
		if runs, err := storage.New(data).List(); err != nil || len(runs) != 0 {
			t.Errorf("dpi=%s: expected no saved runs, got %d (%v)", dpi, len(runs), err)
		}
	}
}

func TestRoot_UnknownMarker(t *testing.T) {
	_, err := execute(t, smallRun(t.TempDir(), "--marker", "*")...)
	if !errors.Is(err, render.ErrUnknownMarker) {
		t.Fatalf("expected ErrUnknownMarker, got %v", err)
	}
}

func TestRoot_InvalidCounts(t *testing.T) {
	for _, args := range [][]string{
		{"--skip", "-1"},
		{"--n-cpus", "0"},
		{"--r-points", "-3"},
	} {
		if _, err := execute(t, smallRun(t.TempDir(), args...)...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestRoot_NonNumericFlag(t *testing.T) {
	if _, err := execute(t, "--skip", "many"); err == nil {
		t.Error("expected parse error")
	}
}

func TestRoot_SaveAndRender(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "runs")
	out, err := execute(t, smallRun(dir, "--save", "--data", data)...)
	if err != nil {
		t.Fatalf("execute failed: %v\n%s", err, out)
	}

	runs, err := storage.New(data).List()
	if err != nil || len(runs) != 1 {
		t.Fatalf("expected 1 saved run, got %d (%v)", len(runs), err)
	}
	if runs[0].Points != 30*10 {
		t.Errorf("expected 300 saved points, got %d", runs[0].Points)
	}

	rerendered := filepath.Join(dir, "again.jpg")
	out, err = execute(t, "render", runs[0].ID, "--data", data, "--output", rerendered, "--dpi", "10")
	if err != nil {
		t.Fatalf("render failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(rerendered); err != nil {
		t.Errorf("re-rendered image missing: %v", err)
	}

	out, err = execute(t, "list", "--data", data)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, runs[0].ID) {
		t.Errorf("list output missing run id:\n%s", out)
	}
}

func TestResolveConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sweep.yaml")
	if err := os.WriteFile(path, []byte("r_min: 3.0\nskip: 1000\nn_cpus: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--preset", "window", "--config", path, "--skip", "5"}); err != nil {
		t.Fatal(err)
	}
	opts := &options{flags: config.DefaultConfig()}
	opts.preset, opts.configFile = "window", path
	opts.flags.Skip = 5

	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Skip != 5 {
		t.Errorf("flag should win: skip=%d", cfg.Skip)
	}
	if cfg.RMin != 3.0 || cfg.Workers != 4 {
		t.Errorf("config file should override preset: r-min=%v workers=%d", cfg.RMin, cfg.Workers)
	}
	if cfg.RMax != 3.86 {
		t.Errorf("preset should override defaults: r-max=%v", cfg.RMax)
	}
	if cfg.X0 != config.DefaultX0 {
		t.Errorf("unset values keep defaults: x0=%v", cfg.X0)
	}
}

func TestResolveConfig_UnknownPreset(t *testing.T) {
	_, err := execute(t, smallRun(t.TempDir(), "--preset", "nope")...)
	if err == nil || !strings.Contains(err.Error(), "unknown preset") {
		t.Errorf("expected unknown preset error, got %v", err)
	}
}

func TestOrbit(t *testing.T) {
	out, err := execute(t, "orbit", "3.2", "--skip", "100", "-n", "20")
	if err != nil {
		t.Fatalf("orbit failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "logistic map, r=3.2") {
		t.Errorf("missing caption:\n%s", out)
	}
}

func TestOrbit_Errors(t *testing.T) {
	if _, err := execute(t, "orbit", "abc"); err == nil {
		t.Error("expected error for non-numeric r")
	}
	if _, err := execute(t, "orbit", "3.2", "-n", "0"); err == nil {
		t.Error("expected error when nothing is sampled")
	}
}

func TestListings(t *testing.T) {
	out, err := execute(t, "maps")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"logistic", "sine", "tent"} {
		if !strings.Contains(out, name) {
			t.Errorf("maps output missing %s:\n%s", name, out)
		}
	}

	out, err = execute(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "doubling") {
		t.Errorf("presets output missing doubling:\n%s", out)
	}
}

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SeamusWaldron/touchcube"
	"github.com/SeamusWaldron/touchcube/internal/config"
	"github.com/SeamusWaldron/touchcube/internal/recorder"
	"github.com/SeamusWaldron/touchcube/internal/storage"
)

func resetFlags(t *testing.T) {
	t.Helper()
	configPath = filepath.Join(t.TempDir(), "missing.yaml")
	dbPath = ""
	verbose = false
	scrambleApply = ""
	scramblePlain = false
	replayCheck = false
	replayPlain = false
	exportFormat = "txt"
	exportOutput = ""
	sessionsLimit = 20
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTablesCommand(t *testing.T) {
	resetFlags(t)
	out, err := run(t, "tables")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 7 || !strings.HasPrefix(lines[0], "FACE") || !strings.HasPrefix(lines[1], "U") {
		t.Errorf("output:\n%s", out)
	}
}

func TestScrambleCommand(t *testing.T) {
	resetFlags(t)
	first, err := run(t, "scramble", "8", "--seed", "5", "--plain")
	if err != nil {
		t.Fatal(err)
	}
	second, err := run(t, "scramble", "8", "--seed", "5", "--plain")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("same seed gave different scrambles")
	}
	if !strings.Contains(first, "Seed:  5") || !strings.Contains(first, "Solved: false") {
		t.Errorf("output:\n%s", first)
	}

	resetFlags(t)
	out, err := run(t, "scramble", "--apply", "R U U' R'", "--plain")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Solved: true") {
		t.Errorf("output:\n%s", out)
	}

	resetFlags(t)
	if _, err := run(t, "scramble", "--apply", "R X"); err == nil {
		t.Error("expected a notation error")
	}
}

func TestCalibrationCommands(t *testing.T) {
	resetFlags(t)
	dump, err := run(t, "calibration")
	if err != nil {
		t.Fatal(err)
	}

	cal, err := config.ParseCalibration([]byte(dump))
	if err != nil {
		t.Fatalf("dump does not parse: %v", err)
	}
	if cal != touchcube.DefaultCalibration() {
		t.Error("dump should be the default calibration")
	}

	path := filepath.Join(t.TempDir(), "cal.yaml")
	if err := os.WriteFile(path, []byte(dump), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "calibration", "check", path)
	if err != nil || !strings.Contains(out, "ok") {
		t.Errorf("check: %v\n%s", err, out)
	}

	out, err = run(t, "calibration", "gestures")
	if err != nil {
		t.Fatal(err)
	}
	if n := len(strings.Split(strings.TrimSpace(out), "\n")); n != 15 {
		t.Errorf("got %d gesture lines", n)
	}
}

func TestKeyReader(t *testing.T) {
	k := &keyReader{}
	r := touchcube.ReadingsOf(1, 2)
	k.press(r, 2)

	for i, want := range []touchcube.Readings{r, r, {}} {
		got, err := k.Read(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("read %d = %v", i, got)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := k.Read(ctx); err == nil {
		t.Error("expected a context error")
	}
}

// recordSession records a short keyboard session and returns the paths of
// the config file and database.
func recordSession(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Threshold = 2
	cfg.CyclePeriod = 0
	cfg.Animation.RotationFrame = time.Microsecond
	cfg.Animation.VictoryFrame = time.Microsecond
	cfgPath := filepath.Join(dir, "touchcube.yaml")
	if err := cfg.Save(cfgPath); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "touchcube.db")
	db, err := storage.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	keys := &keyReader{}
	session := recorder.NewSession(db, keys, nil)
	if _, err := session.Start(cfg, "cli test"); err != nil {
		t.Fatal(err)
	}
	game, err := touchcube.NewGame(cfg.Options()...)
	if err != nil {
		t.Fatal(err)
	}
	session.Attach(game)

	step := func(n int) {
		for i := 0; i < n; i++ {
			r, err := session.Read(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			game.Step(r)
		}
	}

	cal := cfg.CalibrationOrDefault()
	step(1)
	keys.press(touchcube.ReadingsOf(cal.GestureSensors(touchcube.RotationAction(touchcube.R))...), 2)
	step(8)
	keys.press(touchcube.ReadingsOf(cal.GestureSensors(touchcube.RotationAction(touchcube.UPrime))...), 2)
	step(8)

	if err := session.End(); err != nil {
		t.Fatal(err)
	}
	if session.ActionCount() != 2 {
		t.Fatalf("recorded %d gestures", session.ActionCount())
	}
	return cfgPath, path
}

func TestRecordedSessionCommands(t *testing.T) {
	cfgPath, db := recordSession(t)

	resetFlags(t)
	out, err := run(t, "sessions", "--config", cfgPath, "--db", db)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "ID") || strings.Count(out, "\n") != 2 {
		t.Errorf("sessions:\n%s", out)
	}

	out, err = run(t, "sessions", "show", "last", "--config", cfgPath, "--db", db)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "playing") || !strings.Contains(out, "cli test") || !strings.Contains(out, "Turns:") {
		t.Errorf("show:\n%s", out)
	}

	out, err = run(t, "export", "gestures", "last", "--config", cfgPath, "--db", db)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "R U'" {
		t.Errorf("export = %q", out)
	}

	out, err = run(t, "export", "summary", "last", "--config", cfgPath, "--db", db)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"turns": 2`) || !strings.Contains(out, `"most_used_face": "U"`) {
		t.Errorf("summary:\n%s", out)
	}

	out, err = run(t, "replay", "last", "--check", "--config", cfgPath, "--db", db)
	if err != nil {
		t.Fatalf("replay: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Replay matches the recording.") {
		t.Errorf("replay:\n%s", out)
	}
}

package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"napcon/internal/consolidate"
	"napcon/internal/testsupport"
)

func TestRunAppendsExportsAndPrintsSummary(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addExport(t, "2023", "Yr3", "North", 3)
	env.addExport(t, "2023", "Yr5", "South", 2)

	stdout, stderr, err := runCLI(t, nil, env.configPath, "")
	if err != nil {
		t.Fatalf("run failed: %v\nstderr: %s", err, stderr)
	}

	requireContains(t, stdout, "2023_StudentOutcomeLevel_Yr3_North.csv")
	requireContains(t, stdout, "2 appended")
	requireContains(t, stdout, "Master CSV saved to: "+env.cfg.Paths.Output)
	requireContains(t, stdout, "Missing IDs saved to: "+env.cfg.Paths.Missing)
	requireContains(t, stderr, "file appended")

	master := testsupport.ReadCSV(t, env.cfg.Paths.Output)
	if len(master) != 1+5 {
		t.Fatalf("expected header plus 5 rows, got %d records", len(master))
	}
}

func TestRunRerunReportsNothingNew(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addExport(t, "2023", "Yr3", "North", 2)

	if _, stderr, err := runCLI(t, nil, env.configPath, ""); err != nil {
		t.Fatalf("first run failed: %v\nstderr: %s", err, stderr)
	}
	stdout, stderr, err := runCLI(t, nil, env.configPath, "")
	if err != nil {
		t.Fatalf("second run failed: %v\nstderr: %s", err, stderr)
	}
	requireContains(t, stdout, "No new files to append.")
	requireContains(t, stdout, "1 seen, 1 already processed, 0 appended")

	if got := len(testsupport.ReadCSV(t, env.cfg.Paths.Output)); got != 3 {
		t.Fatalf("expected master unchanged with 3 records, got %d", got)
	}
}

func TestRunForceRebuildMessage(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addExport(t, "2023", "Yr3", "North", 2)

	if _, _, err := runCLI(t, nil, env.configPath, ""); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	stdout, _, err := runCLI(t, []string{"--force_rebuild"}, env.configPath, "")
	if err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}
	requireContains(t, stdout, "Force rebuild: master file and processed log cleared.")
	if got := len(testsupport.ReadCSV(t, env.cfg.Paths.Output)); got != 3 {
		t.Fatalf("expected rebuilt master with 3 records, got %d", got)
	}
}

func TestRunPromptAnswers(t *testing.T) {
	cases := []struct {
		name     string
		stdin    string
		want     string
		appended bool
	}{
		{"yes", "y\n", "Master CSV saved to:", true},
		{"upper yes", " Y \n", "Master CSV saved to:", true},
		{"no", "n\n", "Please ensure that your files follow the naming convention required.", false},
		{"other", "maybe\n", "Please type 'y' or 'n'.", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := setupCLITestEnv(t)
			env.cfg.Pipeline.AssumeYes = false
			env.writeConfig(t)
			env.addExport(t, "2023", "Yr3", "North", 1)

			stdout, stderr, err := runCLI(t, nil, env.configPath, tc.stdin)
			if err != nil {
				t.Fatalf("run failed: %v\nstderr: %s", err, stderr)
			}
			requireContains(t, stdout, "Files should be named as: [test_year]_StudentOutcomeLevel_Yr[x]_[campus].csv")
			requireContains(t, stdout, "Do your files follow this format (y/n)?")
			requireContains(t, stdout, tc.want)
			if !tc.appended {
				requireNotExists(t, env.cfg.Paths.Output)
			}
		})
	}
}

func TestRunPromptWithoutAnswerFails(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Pipeline.AssumeYes = false
	env.writeConfig(t)
	env.addExport(t, "2023", "Yr3", "North", 1)

	_, _, err := runCLI(t, nil, env.configPath, "")
	if err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Fatalf("expected hint to pass --yes, got %v", err)
	}
	requireNotExists(t, env.cfg.Paths.Output)
}

func TestRunYesFlagSkipsPrompt(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Pipeline.AssumeYes = false
	env.writeConfig(t)
	env.addExport(t, "2023", "Yr3", "North", 1)

	stdout, _, err := runCLI(t, []string{"--yes"}, env.configPath, "")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if strings.Contains(stdout, "Do your files follow this format") {
		t.Fatalf("expected no prompt with --yes, got %q", stdout)
	}
}

func TestRunFlagsOverrideConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Paths.InputDir = ""
	env.cfg.Paths.Output = ""
	env.writeConfig(t)

	input := filepath.Join(env.baseDir, "exports")
	testsupport.WriteOutcomeFile(t, input, "2022", "Yr7", "East", testsupport.OutcomeRows("East", 2, 2))
	output := filepath.Join(env.baseDir, "flags", "master.csv")
	missing := filepath.Join(env.baseDir, "flags", "missing.csv")
	log := filepath.Join(env.baseDir, "flags", "processed.csv")

	stdout, stderr, err := runCLI(t, []string{
		"--input", input,
		"--output", output,
		"--missing", missing,
		"--log", log,
		"--chunk-size", "1",
	}, env.configPath, "")
	if err != nil {
		t.Fatalf("run failed: %v\nstderr: %s", err, stderr)
	}
	requireContains(t, stdout, "Master CSV saved to: "+output)

	if got := len(testsupport.ReadCSV(t, output)); got != 3 {
		t.Fatalf("expected 3 master records, got %d", got)
	}
	if got := len(testsupport.ReadCSV(t, missing)); got != 2 {
		t.Fatalf("expected header plus one missing row, got %d", got)
	}
	logged := testsupport.ReadCSV(t, log)
	if len(logged) != 1 || logged[0][0] != "2022_StudentOutcomeLevel_Yr7_East.csv" {
		t.Fatalf("unexpected processed log: %v", logged)
	}
}

func TestRunRequiresInputFolder(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Paths.InputDir = ""
	env.writeConfig(t)

	_, _, err := runCLI(t, nil, env.configPath, "")
	if err == nil || !strings.Contains(err.Error(), "input folder is required") {
		t.Fatalf("expected missing input error, got %v", err)
	}
}

func TestRunRejectsInvalidNames(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addExport(t, "2023", "Yr3", "North", 1)
	testsupport.WriteCSV(t, filepath.Join(env.cfg.Paths.InputDir, "north results.csv"), testsupport.OutcomeHeader, nil)

	_, _, err := runCLI(t, nil, env.configPath, "")
	if err == nil || !strings.Contains(err.Error(), "north results.csv") {
		t.Fatalf("expected invalid filename error, got %v", err)
	}
	requireNotExists(t, env.cfg.Paths.Output)
}

func TestRunJSONSummary(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addExport(t, "2023", "Yr3", "North", 4)

	stdout, _, err := runCLI(t, []string{"--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	var summary consolidate.Summary
	if err := json.Unmarshal([]byte(stdout), &summary); err != nil {
		t.Fatalf("decode summary: %v\n%s", err, stdout)
	}
	if summary.FilesProcessed != 1 || summary.RowsWritten != 4 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.RunID == "" {
		t.Fatal("expected run id in summary")
	}
	if len(summary.Files) != 1 || summary.Files[0].Campus != "North" {
		t.Fatalf("unexpected file summaries: %+v", summary.Files)
	}
}

func TestRunWritesSessionLog(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithLogDir())
	env.addExport(t, "2023", "Yr3", "North", 1)

	if _, _, err := runCLI(t, nil, env.configPath, ""); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	matches, err := filepath.Glob(filepath.Join(env.cfg.Paths.LogDir, "napcon-*.log"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one session log, got %v", matches)
	}
}

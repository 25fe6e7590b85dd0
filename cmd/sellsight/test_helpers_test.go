package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sellsight/internal/config"
	"sellsight/internal/testsupport"
)

type cliTestEnv struct {
	configPath string
	cfg        *config.Config
}

func setupCLITestEnv(t *testing.T) cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	configPath := filepath.Join(base, "config.toml")

	contents := strings.Join([]string{
		"[paths]",
		`inbox_dir = "` + cfg.Paths.InboxDir + `"`,
		`store_dir = "` + cfg.Paths.StoreDir + `"`,
		`work_dir = "` + cfg.Paths.WorkDir + `"`,
		`final_dir = "` + cfg.Paths.FinalDir + `"`,
		`log_dir = "` + cfg.Paths.LogDir + `"`,
		"",
		"[llm]",
		`api_key = "test"`,
		"",
	}, "\n")
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}

	return cliTestEnv{configPath: configPath, cfg: cfg}
}

func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

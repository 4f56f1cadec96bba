package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func resetFlags() {
	rootInput, rootOutput, rootURL = "", "", ""
	rootConcurrency = 0
	rootRecord, rootJSON = false, false
	historyLimit, historySite, historyJSON = 20, "", false
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("RSSGEN_HOME", t.TempDir())
	return executeInHome(t, args...)
}

func executeInHome(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	if args == nil {
		args = []string{}
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSingleURL(t *testing.T) {
	stdout, _, err := execute(t, "--url", "  https://example.substack.com  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "https://example.substack.com/feed\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestSingleURLJSON(t *testing.T) {
	stdout, _, err := execute(t, "--url", "https://t.me/mychannel", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, `"feed":"https://rsshub.app/telegram/channel/mychannel"`) {
		t.Errorf("unexpected output %q", stdout)
	}
	if !strings.Contains(stdout, `"category":"telegram"`) {
		t.Errorf("expected category in output, got %q", stdout)
	}
}

func TestSingleURLFailure(t *testing.T) {
	stdout, stderr, err := execute(t, "--url", "https://t.me/")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported failure, got %v", err)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	want := "Failed to generate RSS for: https://t.me/ (Invalid URL: https://t.me/)"
	if !strings.Contains(stderr, want) {
		t.Errorf("expected %q in stderr, got %q", want, stderr)
	}
}

func TestNoArgsPrintsUsage(t *testing.T) {
	stdout, _, err := execute(t)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "rssgen --input <input_file>") {
		t.Errorf("expected usage, got %q", stdout)
	}
}

func TestBatchWritesSortedFeeds(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sites.txt")
	output := filepath.Join(dir, "feeds.txt")

	sites := strings.Join([]string{
		"# newsletters",
		"https://zeta.substack.com",
		"",
		"https://t.me/mychannel",
		"https://alpha.substack.com/",
		"https://alpha.substack.com",
		"not_a_url",
		"https://odysee.com/@someone",
	}, "\n")
	if err := os.WriteFile(input, []byte(sites), 0644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	stdout, stderr, err := execute(t, "--input", input, "--output", output)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	want := "https://alpha.substack.com/feed\nhttps://rsshub.app/telegram/channel/mychannel\nhttps://zeta.substack.com/feed\n"
	if string(data) != want {
		t.Errorf("expected %q, got %q", want, string(data))
	}

	if !strings.Contains(stdout, "Wrote 3 feeds") || !strings.Contains(stdout, "2 of 6 sites failed") {
		t.Errorf("unexpected summary %q", stdout)
	}
	if !strings.Contains(stderr, "not_a_url") {
		t.Errorf("expected failing site logged, got %q", stderr)
	}
}

func TestBatchMissingInput(t *testing.T) {
	_, stderr, err := execute(t, "--input", filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported failure, got %v", err)
	}
	if !strings.Contains(stderr, "Failed to read input file: IO error:") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestRecordAndHistory(t *testing.T) {
	t.Setenv("RSSGEN_HOME", t.TempDir())

	if _, _, err := executeInHome(t, "--url", "https://example.substack.com", "--record"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	executeInHome(t, "--url", "https://t.me/", "--record")

	stdout, _, err := executeInHome(t, "history", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, `"feed_url": "https://example.substack.com/feed"`) {
		t.Errorf("expected recorded success, got %q", stdout)
	}
	if !strings.Contains(stdout, `"failure_kind": "invalid_url"`) {
		t.Errorf("expected recorded failure, got %q", stdout)
	}
}

func TestClassifyCommand(t *testing.T) {
	stdout, _, err := execute(t, "classify", "https://www.bitchute.com/channel/x/", "not_a_url")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "bitchute") || !strings.Contains(stdout, "unknown") {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestRecordOnFreshHome(t *testing.T) {
	home := filepath.Join(t.TempDir(), "fresh")
	t.Setenv("RSSGEN_HOME", home)

	stdout, _, err := executeInHome(t, "--url", "https://example.substack.com", "--record")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(stdout) != "https://example.substack.com/feed" {
		t.Errorf("expected feed URL, got %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(home, "history.db")); err != nil {
		t.Errorf("expected history database to be created: %v", err)
	}
}

func TestHistoryOnFreshHome(t *testing.T) {
	t.Setenv("RSSGEN_HOME", filepath.Join(t.TempDir(), "fresh"))

	stdout, _, err := executeInHome(t, "history")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "No resolutions recorded") {
		t.Errorf("expected empty history message, got %q", stdout)
	}
}

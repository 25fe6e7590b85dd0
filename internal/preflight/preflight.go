package preflight

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"golang.org/x/sys/unix"
)

// Result is one readiness check outcome.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// HealthChecker is the probe surface of the LLM client.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

const (
	llmCheckTimeout = 30 * time.Second
	// minFreeBytes is the free-space floor for the content store; staged
	// PDFs plus per-period work artifacts rarely approach it.
	minFreeBytes = 1 << 30
)

// CheckLLM probes LLM reachability once. No retries: a flaky endpoint should
// surface as flaky, not be papered over before a run that will hit it
// hundreds of times.
func CheckLLM(ctx context.Context, hc HealthChecker) Result {
	ctx, cancel := context.WithTimeout(ctx, llmCheckTimeout)
	defer cancel()

	if err := hc.HealthCheck(ctx); err != nil {
		return Result{Name: "llm", Detail: err.Error()}
	}
	return Result{Name: "llm", Passed: true, Detail: "endpoint reachable"}
}

// CheckConverter verifies the document converter binary resolves on PATH.
func CheckConverter(binary string) Result {
	path, err := exec.LookPath(binary)
	if err != nil {
		return Result{Name: "converter", Detail: fmt.Sprintf("%s not found on PATH", binary)}
	}
	return Result{Name: "converter", Passed: true, Detail: path}
}

// CheckDiskSpace verifies the store's filesystem has room to stage a week of
// reports and their work artifacts.
func CheckDiskSpace(dir string) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return Result{Name: "disk", Detail: fmt.Sprintf("statfs %s: %v", dir, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	detail := fmt.Sprintf("%.1f GiB free at %s", float64(free)/float64(1<<30), dir)
	if free < minFreeBytes {
		return Result{Name: "disk", Detail: detail + " (below 1 GiB floor)"}
	}
	return Result{Name: "disk", Passed: true, Detail: detail}
}

// All runs every check and reports the results in a stable order.
func All(ctx context.Context, hc HealthChecker, converterBinary, storeDir string) []Result {
	return []Result{
		CheckLLM(ctx, hc),
		CheckConverter(converterBinary),
		CheckDiskSpace(storeDir),
	}
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, res := range results {
		if !res.Passed {
			return false
		}
	}
	return true
}

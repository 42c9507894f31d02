// Package blast is the boundary to the NCBI BLAST+ binaries: running a
// search and fetching sequences out of a formatted database. Everything
// above this package treats both as injected capabilities.
package blast

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zdk123/sequenceserver/internal/config"
)

// Request describes one alignment run.
type Request struct {
	Method        string
	Query         string
	DatabasePaths []string
	Options       []string
	NumThreads    int
}

// Result carries the run outcome. On Success the HTML report is in
// ReportLines; otherwise Status holds the exit code and Message the trimmed
// stderr of the tool.
type Result struct {
	ReportLines []string
	Success     bool
	Status      int
	Message     string
}

// Runner is the run-alignment capability.
type Runner interface {
	Run(ctx context.Context, req Request) (Result, error)
}

// Fetcher is the sequence-fetch capability: ids against one database,
// FASTA text out (empty when nothing matched).
type Fetcher interface {
	Fetch(ctx context.Context, ids []string, dbPath string) (string, error)
}

// ExecRunner shells out to the BLAST binaries. BinDir may be empty to rely
// on PATH.
type ExecRunner struct {
	BinDir string
}

func (r ExecRunner) Run(ctx context.Context, req Request) (Result, error) {
	if !config.ValidMethod(req.Method) {
		return Result{}, fmt.Errorf("unsupported BLAST method %q", req.Method)
	}
	if len(req.DatabasePaths) == 0 {
		return Result{}, errors.New("no databases selected")
	}

	queryFile, err := writeQueryFile(req.Query)
	if err != nil {
		return Result{}, err
	}
	defer os.Remove(queryFile)

	args := buildArgs(queryFile, req)
	cmd := exec.CommandContext(ctx, r.binPath(req.Method), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Info("blast run started", "method", req.Method, "databases", len(req.DatabasePaths))
	if err := cmd.Run(); err != nil {
		code := exitCode(err)
		if code < 0 {
			return Result{}, fmt.Errorf("run %s: %w", req.Method, err)
		}
		return Result{
			Success: false,
			Status:  code,
			Message: strings.TrimSpace(stderr.String()),
		}, nil
	}

	return Result{ReportLines: splitLines(stdout.String()), Success: true}, nil
}

func (r ExecRunner) binPath(name string) string {
	if strings.TrimSpace(r.BinDir) == "" {
		return name
	}
	return filepath.Join(r.BinDir, name)
}

// buildArgs assembles the tool invocation: -html asks BLAST for the report
// shape the rewriter expects, and multiple databases are space-joined into a
// single -db value as the tools require.
func buildArgs(queryFile string, req Request) []string {
	args := []string{
		"-db", strings.Join(req.DatabasePaths, " "),
		"-query", queryFile,
		"-html",
	}
	if req.NumThreads > 0 {
		args = append(args, "-num_threads", strconv.Itoa(req.NumThreads))
	}
	return append(args, req.Options...)
}

func writeQueryFile(query string) (string, error) {
	f, err := os.CreateTemp("", "sequenceserver-query-*.fa")
	if err != nil {
		return "", fmt.Errorf("create query file: %w", err)
	}
	if _, err := f.WriteString(query); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write query file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close query file: %w", err)
	}
	return f.Name(), nil
}

// ExecFetcher retrieves sequences with blastdbcmd.
type ExecFetcher struct {
	BinDir string
}

func (f ExecFetcher) Fetch(ctx context.Context, ids []string, dbPath string) (string, error) {
	if len(ids) == 0 {
		return "", nil
	}
	bin := "blastdbcmd"
	if strings.TrimSpace(f.BinDir) != "" {
		bin = filepath.Join(f.BinDir, bin)
	}

	cmd := exec.CommandContext(ctx, bin, "-db", dbPath, "-entry", strings.Join(ids, ","))
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		// blastdbcmd exits non-zero when some entries are missing; whatever
		// it did find is still on stdout and the reconciler reports the gap.
		if exitCode(err) >= 0 {
			return stdout.String(), nil
		}
		return "", fmt.Errorf("run blastdbcmd against %q: %w", dbPath, err)
	}
	return stdout.String(), nil
}

func exitCode(err error) int {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

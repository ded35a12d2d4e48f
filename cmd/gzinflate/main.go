// Command gzinflate decodes one or more gzip test cases and compares the
// result against an expected plaintext sibling file.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/coreospkg/gzinflate/gzip"
	"github.com/coreospkg/gzinflate/internal/corelog"
	"github.com/coreospkg/gzinflate/internal/flagutil"
	"github.com/coreospkg/gzinflate/internal/stop"
	"github.com/coreospkg/gzinflate/internal/yamlutil"
)

var plog = corelog.NewPackageLogger("gzinflate", "cmd")

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// caseResult is the outcome of decoding and comparing a single test case.
// Each worker goroutine owns exactly one slot, written once, so no
// synchronization is needed beyond stop.Group waiting for completion.
type caseResult struct {
	name string
	err  error
}

func run(args []string, stderr *os.File) error {
	fs := flag.NewFlagSet("gzinflate", flag.ContinueOnError)
	dir := fs.String("dir", "test_files", "directory containing <name>.gz/<name> pairs")
	manifest := fs.String("manifest", "", "optional YAML manifest pre-seeding flags")
	var level flagutil.LevelFlag
	fs.Var(&level, "log-level", "CRITICAL, ERROR, WARNING, INFO, DEBUG, or VERBOSE")
	var only flagutil.CaseSet
	fs.Var(&only, "only", "comma-separated subset of case names to run")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *manifest != "" {
		raw, err := os.ReadFile(*manifest)
		if err != nil {
			return fmt.Errorf("gzinflate: reading manifest: %w", err)
		}
		if err := yamlutil.SetFlagsFromYaml(fs, raw); err != nil {
			return fmt.Errorf("gzinflate: applying manifest: %w", err)
		}
	}

	corelog.SetFormatter(corelog.NewPrettyFormatter(stderr))
	if repo, err := corelog.RepoLogger("gzinflate"); err == nil {
		repo.SetLogLevel(level.Level())
	}

	names, err := caseNames(*dir, fs.Args(), &only)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("gzinflate: no cases found in %s", *dir)
	}

	results := runCases(*dir, names)

	var failed []string
	for _, r := range results {
		if r.err != nil {
			failed = append(failed, r.name)
			plog.Errorf("%s: %v", r.name, r.err)
		} else {
			plog.Infof("%s: ok", r.name)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("gzinflate: %d of %d cases failed: %s", len(failed), len(results), strings.Join(failed, ", "))
	}
	return nil
}

// caseNames returns the explicit positional names if given (filtered
// through only), or every <name>.gz with a <name> sibling under dir.
func caseNames(dir string, positional []string, only *flagutil.CaseSet) ([]string, error) {
	if len(positional) > 0 {
		names := make([]string, 0, len(positional))
		for _, n := range positional {
			if only.Allows(n) {
				names = append(names, n)
			}
		}
		return names, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("gzinflate: reading %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".gz") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".gz")
		if !only.Allows(name) {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// runCases decodes every named case. With more than one case, each runs
// on its own goroutine coordinated by stop.Group (spec.md section 5's
// one-goroutine-per-file allowance); a single case runs inline.
func runCases(dir string, names []string) []caseResult {
	results := make([]caseResult, len(names))

	if len(names) == 1 {
		results[0] = caseResult{name: names[0], err: runCase(dir, names[0])}
		return results
	}

	g := stop.NewGroup()
	for i, name := range names {
		i, name := i, name
		g.AddFunc(func() <-chan struct{} {
			done := make(chan struct{})
			go func() {
				results[i] = caseResult{name: name, err: runCase(dir, name)}
				close(done)
			}()
			return done
		})
	}
	g.Wait()
	return results
}

func runCase(dir, name string) error {
	gzPath := filepath.Join(dir, name+".gz")
	wantPath := filepath.Join(dir, name)

	compressed, err := os.ReadFile(gzPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", gzPath, err)
	}
	want, err := os.ReadFile(wantPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", wantPath, err)
	}

	got, _, err := gzip.Decode(compressed)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", gzPath, err)
	}
	if !bytes.Equal(got, want) {
		return fmt.Errorf("%s: decoded output does not match %s", gzPath, wantPath)
	}
	return nil
}

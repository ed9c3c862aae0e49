package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
)

type generator struct {
	name   string
	bin    string
	args   []string
	skipFn func() bool
}

func GenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen",
		Short: "Run code generators (templ, tailwind) in parallel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen()
		},
	}
}

func runGen() error {
	// templ is pinned as a go tool; only tailwindcss has to be on PATH
	if _, err := exec.LookPath("tailwindcss"); err != nil {
		fmt.Println("Missing binary: tailwindcss")
		fmt.Println("Install with:")
		fmt.Println("  # tailwindcss: https://tailwindcss.com/blog/standalone-cli")
		return fmt.Errorf("missing required binary: tailwindcss")
	}

	generators := []generator{
		{
			name:   "tailwindcss",
			bin:    "tailwindcss",
			args:   []string{"-i", "assets/css/input.css", "-o", "assets/css/output.css", "--minify"},
			skipFn: skipTailwind,
		},
		{
			name:   "templ",
			bin:    "go",
			args:   []string{"tool", "templ", "generate"},
			skipFn: skipTempl,
		},
	}

	start := time.Now()
	var wg sync.WaitGroup
	errCh := make(chan error, len(generators))

	for _, g := range generators {
		wg.Add(1)
		go func(g generator) {
			defer wg.Done()

			if g.skipFn != nil && g.skipFn() {
				fmt.Printf("[%s] skipped\n", g.name)
				return
			}

			genStart := time.Now()
			cmd := exec.Command(g.bin, g.args...)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			if err := cmd.Run(); err != nil {
				errCh <- fmt.Errorf("%s: %w", g.name, err)
				return
			}

			fmt.Printf("[%s] done (%s)\n", g.name, time.Since(genStart).Round(time.Millisecond))
		}(g)
	}

	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Println("error:", err)
		}
		return fmt.Errorf("generation failed")
	}

	fmt.Printf("done (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// skipTailwind reports whether output.css is newer than every file tailwind scans for classes.
func skipTailwind() bool {
	inputs := []string{"assets/css/input.css"}
	_ = filepath.WalkDir("internal/ui", func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".templ") || strings.HasSuffix(path, ".go") {
			inputs = append(inputs, path)
		}
		return nil
	})
	jsFiles, _ := filepath.Glob("assets/js/*.js")
	inputs = append(inputs, jsFiles...)
	return isUpToDate("assets/css/output.css", inputs)
}

func skipTempl() bool {
	return templUpToDate(".")
}

// templUpToDate reports whether every .templ file under root has a newer _templ.go next to it.
func templUpToDate(root string) bool {
	var templFiles []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if name := d.Name(); path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".templ") {
			templFiles = append(templFiles, path)
		}
		return nil
	})

	for _, templFile := range templFiles {
		outFile := strings.TrimSuffix(templFile, ".templ") + "_templ.go"
		if !isUpToDate(outFile, []string{templFile}) {
			return false
		}
	}
	return true
}

// isUpToDate is false when output is missing or any existing input is newer.
func isUpToDate(output string, inputs []string) bool {
	outInfo, err := os.Stat(output)
	if err != nil {
		return false
	}
	outMod := outInfo.ModTime()

	for _, input := range inputs {
		inInfo, err := os.Stat(input)
		if err != nil {
			continue
		}
		if inInfo.ModTime().After(outMod) {
			return false
		}
	}
	return true
}

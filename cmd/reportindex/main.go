package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/reportindex/internal/config"
	"git.home.luguber.info/inful/reportindex/internal/gitmeta"
	"git.home.luguber.info/inful/reportindex/internal/index"
	"git.home.luguber.info/inful/reportindex/internal/intro"
	"git.home.luguber.info/inful/reportindex/internal/linkcheck"
	"git.home.luguber.info/inful/reportindex/internal/logfields"
	"git.home.luguber.info/inful/reportindex/internal/scan"
	"git.home.luguber.info/inful/reportindex/internal/version"
	"git.home.luguber.info/inful/reportindex/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"reportindex.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Target string `arg:"" optional:"" help:"Directory to scan for report files"`
		Title  string `help:"Page title override"`
		Output string `short:"o" help:"Output file path (default <target>/index.html)"`
	} `cmd:"" default:"withargs" help:"Scan the target directory and write the index page"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Discover struct {
		Target string `arg:"" optional:"" help:"Directory to scan for report files"`
	} `cmd:"" help:"Print the classified report tree without writing"`

	Check struct {
		Target string `arg:"" optional:"" help:"Directory the index page was generated into"`
		Output string `short:"o" help:"Index page path (default <target>/index.html)"`
	} `cmd:"" help:"Verify that every local link on the generated page resolves"`

	Watch struct {
		Target string `arg:"" optional:"" help:"Directory to scan for report files"`
		Every  string `help:"Also rebuild unconditionally at this interval (e.g. 10m); 0 disables"`
	} `cmd:"" help:"Rebuild the index page whenever the target changes"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	switch ctx.Command() {
	case "build", "build <target>":
		if err := runBuild(loadConfig(), CLI.Build.Target, CLI.Build.Title, CLI.Build.Output); err != nil {
			slog.Error("Build failed", logfields.Error(err))
			os.Exit(1)
		}
	case "init":
		if err := runInit(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", logfields.Error(err))
			os.Exit(1)
		}
	case "discover", "discover <target>":
		if err := runDiscover(loadConfig(), CLI.Discover.Target); err != nil {
			slog.Error("Discover failed", logfields.Error(err))
			os.Exit(1)
		}
	case "check", "check <target>":
		if err := runCheck(loadConfig(), CLI.Check.Target, CLI.Check.Output); err != nil {
			slog.Error("Check failed", logfields.Error(err))
			os.Exit(1)
		}
	case "watch", "watch <target>":
		if err := runWatch(loadConfig(), CLI.Watch.Target, CLI.Watch.Every); err != nil {
			slog.Error("Watch failed", logfields.Error(err))
			os.Exit(1)
		}
	case "version":
		fmt.Println(version.String())
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", logfields.Error(err))
		os.Exit(1)
	}
	return cfg
}

// resolveTarget applies flag > config precedence for the scan root.
func resolveTarget(cfg *config.Config, flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.Target
}

// buildIndex performs one full scan-render-write pass and returns what was
// written where. Target and output are resolved to absolute paths up front;
// the scanner records absolute file paths, and hrefs relativize against the
// output's directory.
func buildIndex(cfg *config.Config, target, outputOverride string) (index.Result, string, error) {
	target, err := filepath.Abs(target)
	if err != nil {
		return index.Result{}, "", fmt.Errorf("resolve target: %w", err)
	}
	outputPath, err := filepath.Abs(cfg.OutputPath(target, outputOverride))
	if err != nil {
		return index.Result{}, "", fmt.Errorf("resolve output path: %w", err)
	}

	scanner := scan.NewScanner(target, cfg.Extension, filepath.Base(outputPath))
	tree, err := scanner.Scan()
	if err != nil {
		return index.Result{}, "", err
	}

	in := index.Input{Tree: tree, OutputPath: outputPath}
	if cfg.IntroEnabled() {
		introHTML, err := intro.FromDir(target)
		if err != nil {
			slog.Debug("intro skipped", logfields.Error(err))
		} else {
			in.Intro = introHTML
		}
	}
	if cfg.GitStampEnabled() {
		in.Revision = gitmeta.Revision(target)
	}

	renderer, err := index.NewRenderer(cfg)
	if err != nil {
		return index.Result{}, "", err
	}
	doc, res, err := renderer.Render(in)
	if err != nil {
		return index.Result{}, "", err
	}
	if err := index.WriteDocument(outputPath, doc); err != nil {
		return index.Result{}, "", err
	}

	slog.Info("index written",
		logfields.Output(outputPath),
		logfields.Files(res.Files),
		logfields.Sections(res.Sections))
	return res, outputPath, nil
}

func runBuild(cfg *config.Config, target, titleOverride, outputOverride string) error {
	target = resolveTarget(cfg, target)
	if titleOverride != "" {
		cfg.Title = titleOverride
	}

	slog.Info("building report index", logfields.Target(target))
	res, outputPath, err := buildIndex(cfg, target, outputOverride)
	if err != nil {
		return err
	}

	fmt.Printf("Generated %s with %d files in %d sections.\n", outputPath, res.Files, res.Sections)
	return nil
}

func runInit(configPath string, force bool) error {
	slog.Info("initializing configuration", logfields.Path(configPath), slog.Bool("force", force))
	if err := config.Init(configPath, force); err != nil {
		return err
	}
	fmt.Printf("Wrote %s.\n", configPath)
	return nil
}

func runDiscover(cfg *config.Config, target string) error {
	target = resolveTarget(cfg, target)

	scanner := scan.NewScanner(target, cfg.Extension, filepath.Base(cfg.OutputPath(target, "")))
	tree, err := scanner.Scan()
	if err != nil {
		return err
	}

	for _, section := range tree.SectionKeys() {
		for _, subsection := range tree.SubsectionKeys(section) {
			fmt.Printf("%s/%s:\n", section, subsection)
			for _, rec := range tree[section][subsection] {
				fmt.Printf("  %s (%s KB)\n", rec.Name, index.FormatKiB(rec.Size))
			}
		}
	}
	fmt.Printf("Discovered %d files in %d sections.\n", tree.TotalFiles(), len(tree.SectionKeys()))
	return nil
}

func runCheck(cfg *config.Config, target, outputOverride string) error {
	target = resolveTarget(cfg, target)
	pagePath := cfg.OutputPath(target, outputOverride)

	report, err := linkcheck.Verify(pagePath)
	if err != nil {
		for _, broken := range report.Broken {
			slog.Error("broken link", slog.String("href", broken.Href), logfields.Path(broken.Target))
		}
		return err
	}

	fmt.Printf("Verified %d links in %s.\n", report.Checked, pagePath)
	return nil
}

func runWatch(cfg *config.Config, target, everyFlag string) error {
	target = resolveTarget(cfg, target)

	every := cfg.Watch.IntervalDuration()
	if everyFlag != "" {
		d, err := time.ParseDuration(everyFlag)
		if err != nil {
			return fmt.Errorf("invalid --every interval: %w", err)
		}
		every = d
	}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolve target: %w", err)
	}
	if st, err := os.Stat(absTarget); err != nil || !st.IsDir() {
		return fmt.Errorf("target not found or not a directory: %s", absTarget)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	outputPath := cfg.OutputPath(absTarget, "")
	return watch.Run(ctx, watch.Options{
		Root:     absTarget,
		Output:   filepath.Base(outputPath),
		Debounce: cfg.Watch.DebounceDuration(),
		Every:    every,
	}, func(context.Context) error {
		_, _, err := buildIndex(cfg, absTarget, "")
		return err
	})
}

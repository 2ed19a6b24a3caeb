// Package main provides the CLI entry point for framelens.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/framelens/pkg/adapters/exifreader"
	"github.com/user/framelens/pkg/adapters/filesink"
	"github.com/user/framelens/pkg/adapters/ggrenderer"
	"github.com/user/framelens/pkg/adapters/logger"
	"github.com/user/framelens/pkg/adapters/nullsink"
	"github.com/user/framelens/pkg/adapters/osfilesystem"
	"github.com/user/framelens/pkg/config"
	"github.com/user/framelens/pkg/framelens"
	"github.com/user/framelens/pkg/orchestrator"
	"github.com/user/framelens/pkg/ports"
	"github.com/user/framelens/pkg/stages/caption"
	"github.com/user/framelens/pkg/stages/classify"
	"github.com/user/framelens/pkg/stages/composite"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Frame   FrameCmd   `cmd:"" help:"Frame a photo and export a high-resolution JPEG."`
	Preview PreviewCmd `cmd:"" help:"Render a reduced-resolution preview PNG."`
	Inspect InspectCmd `cmd:"" help:"Print a photo's aspect classification and caption metadata."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// frameFlags are the frame selection flags shared by frame and preview.
// Override flags are pointers so that only explicitly given values replace
// the config file.
type frameFlags struct {
	Config string `help:"YAML config file path."`

	Ratio   *string `short:"r" help:"Frame ratio: 1:1, 5:7, 9:16 (default: 5:7)."`
	Spacing *string `short:"s" help:"Spacing tier: S, M, L (default: M)."`
	Color   *string `short:"c" help:"Frame color: name, accent (snap, prism), auto, or #rrggbb (default: white)."`
	Pattern *int    `help:"Accent color pattern (1 or 2)."`

	CaptionLine1 string `help:"Manual first caption line (replaces EXIF-derived text)."`
	CaptionLine2 string `help:"Manual second caption line."`
	NoCaption    bool   `help:"Disable the caption block."`

	FontRegular string `help:"TTF file for the regular caption face."`
	FontBold    string `help:"TTF file for the bold caption face."`

	Debug    bool   `short:"d" help:"Enable debug output."`
	DebugDir string `default:"./debug" help:"Directory for debug output."`

	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// FrameCmd defines the frame subcommand.
type FrameCmd struct {
	Input  string `arg:"" help:"Input photo path (JPEG or PNG)."`
	Output string `short:"o" required:"" help:"Output JPEG file path."`

	Preset   *string `short:"p" help:"Export preset: print or social (default: print)."`
	LongSide *int    `help:"Export canvas long side in pixels (overrides preset)."`
	Quality  *int    `short:"q" help:"JPEG quality 0-100 (overrides preset)."`

	PreviewOut string `help:"Also write a preview PNG to this path."`

	frameFlags
}

// PreviewCmd defines the preview subcommand.
type PreviewCmd struct {
	Input  string `arg:"" help:"Input photo path (JPEG or PNG)."`
	Output string `short:"o" required:"" help:"Output preview PNG path."`

	Height           int     `default:"672" help:"Preview canvas height in CSS pixels."`
	DevicePixelRatio float64 `default:"2.0" help:"Device pixel ratio applied to the preview canvas."`

	frameFlags
}

// InspectCmd prints classification and metadata without rendering.
type InspectCmd struct {
	Input string `arg:"" help:"Input photo path (JPEG or PNG)."`
	JSON  bool   `help:"Print the result as JSON."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("framelens"),
		kong.Description("Frame photos on colored canvases with EXIF-derived captions."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// buildConfig merges the config file (when given) with the shared flags.
func (f *frameFlags) buildConfig() (config.Config, error) {
	cfg := config.Defaults()
	if f.Config != "" {
		loaded, err := config.LoadFromFile(f.Config)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if f.Ratio != nil {
		cfg.FrameRatio = *f.Ratio
	}
	if f.Spacing != nil {
		cfg.Spacing = *f.Spacing
	}
	if f.Color != nil {
		cfg.Color = *f.Color
	}
	if f.Pattern != nil {
		cfg.Pattern = *f.Pattern
	}
	if f.CaptionLine1 != "" {
		cfg.Caption.Line1 = f.CaptionLine1
	}
	if f.CaptionLine2 != "" {
		cfg.Caption.Line2 = f.CaptionLine2
	}
	if f.NoCaption {
		cfg.Caption.Disabled = true
	}
	if f.FontRegular != "" {
		cfg.FontRegular = f.FontRegular
	}
	if f.FontBold != "" {
		cfg.FontBold = f.FontBold
	}
	cfg.Debug = cfg.Debug || f.Debug
	if f.DebugDir != "" {
		cfg.DebugDir = f.DebugDir
	}
	return cfg, nil
}

// newLogger creates the CLI logger from the shared flags.
func (f *frameFlags) newLogger() ports.Logger {
	if f.Quiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(f.LogLevel))
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Interrupted, shutting down...")
		cancel()
	}()

	return ctx, cancel
}

// buildOrchestrator wires the adapters and stages for a run.
func buildOrchestrator(cfg config.Config, log ports.Logger) (*orchestrator.Orchestrator, error) {
	fs := osfilesystem.New()

	renderer, err := ggrenderer.NewWithFonts(cfg.FontRegular, cfg.FontBold)
	if err != nil {
		return nil, err
	}

	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return nil, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	tables, err := cfg.OffsetTables()
	if err != nil {
		return nil, err
	}

	classifyStage := classify.NewStage()
	captionStage := caption.NewStage(exifreader.New(), log)
	compositeStage := composite.NewStageWithTables(renderer, sink, log, tables)

	return orchestrator.New(
		classifyStage,
		captionStage,
		compositeStage,
		renderer,
		fs,
		sink,
		log,
	), nil
}

// applyExport resolves the export preset, then the explicit size/quality
// overrides.
func (cmd *FrameCmd) applyExport(cfg *config.Config) error {
	if cmd.Preset != nil {
		preset := framelens.ExportPreset(*cmd.Preset)
		if preset != framelens.PresetPrint && preset != framelens.PresetSocial {
			return fmt.Errorf("unknown export preset %q", *cmd.Preset)
		}
		settings := framelens.GetExportSettings(preset)
		cfg.ExportLongSide = settings.LongSide
		cfg.JPEGQuality = settings.JPEGQuality
	}
	if cmd.LongSide != nil {
		cfg.ExportLongSide = *cmd.LongSide
	}
	if cmd.Quality != nil {
		cfg.JPEGQuality = *cmd.Quality
	}
	return nil
}

// Run executes the frame command.
func (cmd *FrameCmd) Run() error {
	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}

	if err := cmd.applyExport(&cfg); err != nil {
		return err
	}

	cfg.InputPath = cmd.Input
	cfg.OutputPath = cmd.Output
	cfg.PreviewPath = cmd.PreviewOut

	log := cmd.newLogger()
	ctx, cancel := signalContext(log)
	defer cancel()

	orch, err := buildOrchestrator(cfg, log)
	if err != nil {
		return err
	}

	orchCfg, err := cfg.ToOrchestratorConfig()
	if err != nil {
		return err
	}
	return orch.Run(ctx, orchCfg)
}

// Run executes the preview command.
func (cmd *PreviewCmd) Run() error {
	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}

	cfg.InputPath = cmd.Input
	cfg.PreviewPath = cmd.Output
	cfg.PreviewHeight = cmd.Height
	cfg.DevicePixelRatio = cmd.DevicePixelRatio

	log := cmd.newLogger()
	ctx, cancel := signalContext(log)
	defer cancel()

	orch, err := buildOrchestrator(cfg, log)
	if err != nil {
		return err
	}

	orchCfg, err := cfg.ToOrchestratorConfig()
	if err != nil {
		return err
	}
	return orch.Preview(ctx, orchCfg)
}

// Run executes the inspect command.
func (cmd *InspectCmd) Run() error {
	log := logger.NewConsole(ports.LevelWarn)

	orch, err := buildOrchestrator(config.Defaults(), log)
	if err != nil {
		return err
	}

	result, err := orch.Inspect(context.Background(), cmd.Input)
	if err != nil {
		return err
	}

	if cmd.JSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%s: %dx%d\n", cmd.Input, result.Width, result.Height)
	fmt.Printf("  class:    %s\n", result.Class)
	fmt.Printf("  accepted: %t\n", result.Accepted)
	if result.Caption.Line1 != "" {
		fmt.Printf("  caption:  %s\n", result.Caption.Line1)
	}
	if result.Caption.Line2 != "" {
		fmt.Printf("            %s\n", result.Caption.Line2)
	}
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("framelens version %s", version))
	return nil
}

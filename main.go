package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/df07/go-mirror-raytracer/internal/config"
	"github.com/df07/go-mirror-raytracer/pkg/output"
	"github.com/df07/go-mirror-raytracer/pkg/renderer"
	"github.com/df07/go-mirror-raytracer/pkg/scene"
	"github.com/df07/go-mirror-raytracer/web/server"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCommand builds the CLI. The root command renders; subcommands list
// scenes and start the web server.
func newRootCommand() *cobra.Command {
	v := config.New()
	var configFile string

	root := &cobra.Command{
		Use:           "raytracer",
		Short:         "Render spheres with mirror reflections",
		Long:          "Renders a scene of reflective spheres, one primary ray per pixel, and writes the image to disk.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile == "" {
				return nil
			}
			return config.ReadFile(v, configFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.OutOrStdout(), cmd.ErrOrStderr(), v)
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "Config file (json, yaml or toml)")
	mustRegister(config.RegisterGlobalFlags(v, root.PersistentFlags()))
	mustRegister(config.RegisterRenderFlags(v, root.PersistentFlags()))
	mustRegister(config.RegisterOutputFlags(v, root.Flags()))

	root.AddCommand(newScenesCommand(), newServeCommand(v))
	return root
}

func newScenesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List available scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenes, err := scene.ListAllScenes()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, info := range scenes {
				fmt.Fprintf(out, "  %-20s %s\n", info.ID, info.Description)
			}
			return nil
		},
	}
}

func newServeCommand(v *viper.Viper) *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve renders over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			renderer.SetLogger(logger)
			return server.NewServer(cfg.Addr, cfg.Render, logger).Start()
		},
	}
	mustRegister(config.RegisterServerFlags(v, serve.Flags()))
	return serve
}

// runRender renders the configured scene and writes it to disk
func runRender(out, logOut io.Writer, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger := newLogger(logOut, cfg.LogLevel).With("renderID", uuid.NewString())
	renderer.SetLogger(logger)

	selectedScene, err := scene.Lookup(cfg.Scene)
	if err != nil {
		return err
	}
	logger.Info("using scene", "scene", selectedScene.Name, "spheres", len(selectedScene.GetSpheres()))

	raytracer := renderer.NewRaytracer(selectedScene, cfg.Render)
	buf, stats := raytracer.Render()

	filename := cfg.Output
	if filename == "" {
		filename = defaultOutputPath(selectedScene.Name, cfg.Format, time.Now())
	}
	if err := output.WriteFile(filename, buf); err != nil {
		return err
	}

	printReport(out, stats, filename)
	return nil
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.<format>
func defaultOutputPath(sceneName string, format output.Format, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", filepath.Base(sceneName), fmt.Sprintf("render_%s.%s", timestamp, format))
}

func printReport(out io.Writer, stats renderer.RenderStats, filename string) {
	p := message.NewPrinter(language.English)
	p.Fprintf(out, "Rendering complete. Time taken: %.3f seconds.\n", stats.Elapsed.Seconds())
	p.Fprintf(out, "Pixels: %d, rays: %d (%.2f per pixel, range %d - %d), workers: %d\n",
		stats.TotalPixels, stats.TotalRays, stats.AverageRays, stats.MinRays, stats.MaxRays, stats.Workers)
	p.Fprintf(out, "Render saved as %s\n", filename)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func mustRegister(err error) {
	if err != nil {
		panic(err)
	}
}

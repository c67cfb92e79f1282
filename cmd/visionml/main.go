package main

import (
	"fmt"
	"os"

	"github.com/bagtoad/visionml/internal/bootstrap"
	"github.com/bagtoad/visionml/internal/config"
	"github.com/bagtoad/visionml/internal/host"
	"github.com/bagtoad/visionml/internal/onnxlib"
	"github.com/bagtoad/visionml/internal/report"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	libDir     string
	entryPoint string
	verbose    bool
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "visionml",
		Short: "Load and check the VisionML native plugin",
		Long: `visionml loads the VisionML native library from the lib/ directory
next to the installation and calls its plugin entry point.

Dependencies of the library are expected as sibling files in the same
directory. When loading fails, every sibling library is loaded on its own
and the ones that fail are reported.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file (default: visionml.yaml next to the executable)")
	rootCmd.PersistentFlags().StringVar(&opts.libDir, "lib-dir", "", "Directory containing the native library and its dependencies")
	rootCmd.PersistentFlags().StringVar(&opts.entryPoint, "entry-point", "", "Exported function to call after loading")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "load",
			Short: "Load the native plugin and call its entry point",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runLoad(opts)
			},
		},
		&cobra.Command{
			Use:   "doctor",
			Short: "Check that every library in the library directory loads",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runDoctor(opts)
			},
		},
		&cobra.Command{
			Use:   "platform",
			Short: "Print the detected platform and library file name",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runPlatform(opts)
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the config, configures logging and builds the bootstrapper.
func setup(opts options) (*bootstrap.Bootstrapper, *config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load(config.DefaultPath())
	}
	if err != nil {
		return nil, nil, err
	}
	if opts.entryPoint != "" {
		cfg.EntryPoint = opts.entryPoint
	}

	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(cfg.Level())
	if opts.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	libDir := cfg.ResolveLibDir(opts.libDir)
	b := bootstrap.New(cfg.Options(libDir)...)
	return b, cfg, nil
}

func runLoad(opts options) error {
	b, _, err := setup(opts)
	if err != nil {
		return err
	}

	reg := host.NewRegistry(logrus.StandardLogger())
	defer reg.Close()

	fmt.Printf("Loading VisionML from %s...\n", b.LibDir())
	if _, err := host.Register(reg, b); err != nil {
		return err
	}
	reg.Activate(nil)
	fmt.Println("VisionML plugin loaded")
	return nil
}

func runDoctor(opts options) error {
	b, _, err := setup(opts)
	if err != nil {
		return err
	}
	p, err := b.Platform()
	if err != nil {
		return err
	}

	fmt.Printf("Checking libraries in %s...\n", b.LibDir())
	results, err := b.Probe()
	if err != nil {
		return fmt.Errorf("cannot check library directory: %w", err)
	}

	check := &report.Check{
		Platform: p.String(),
		LibDir:   b.LibDir(),
		Library:  b.LibraryPath(p),
		Results:  results,
	}
	if ortPath, err := onnxlib.Find(b.LibDir(), p); err == nil {
		check.ORTPath = ortPath
		check.ORTVersion, check.ORTErr = onnxlib.Probe(ortPath)
	}

	report.Print(os.Stdout, check)

	if n := check.Failed(); n > 0 {
		return fmt.Errorf("%d of %d libraries failed to load", n, len(results))
	}
	return check.ORTErr
}

func runPlatform(opts options) error {
	b, cfg, err := setup(opts)
	if err != nil {
		return err
	}
	p, err := b.Platform()
	if err != nil {
		return err
	}

	fmt.Printf("Platform:   %s\n", p)
	fmt.Printf("Extension:  %s\n", p.Extension())
	fmt.Printf("Library:    %s\n", p.LibraryFile(cfg.Library))
	fmt.Printf("Path:       %s\n", b.LibraryPath(p))
	return nil
}

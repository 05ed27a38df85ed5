package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonathanhle/rego2hcl/internal/config"
	"github.com/jonathanhle/rego2hcl/internal/converter"
	"github.com/jonathanhle/rego2hcl/internal/providers"
	"github.com/jonathanhle/rego2hcl/internal/validate"
)

var (
	configPath   = flag.String("config", "rego2hcl.yaml", "path to configuration file")
	providerName = flag.String("provider", "", "completion provider (overrides config)")
	modelName    = flag.String("model", "", "model identifier (overrides config)")
	dryRun       = flag.Bool("dry-run", false, "print converted rule to stdout instead of saving")
	validateOut  = flag.Bool("validate", false, "check the converted rule against the Planguard rule schema before writing")
	showHelp     = flag.Bool("help", false, "show help message")
	showVer      = flag.Bool("version", false, "show version")
	showConfig   = flag.Bool("show-config", false, "print full configuration")
	runInitFlag  = flag.Bool("init", false, "create a starter configuration file")

	outputPath string
)

func init() {
	const outputUsage = "output HCL file path (auto-generated if not specified)"
	flag.StringVar(&outputPath, "o", "", outputUsage)
	flag.StringVar(&outputPath, "output", "", outputUsage)
}

const version = "0.1.0"

func Execute() error {
	flag.Parse()

	if *showHelp {
		showUsage()
		return nil
	}

	if *showVer {
		fmt.Printf("rego2hcl version %s\n", version)
		return nil
	}

	if *runInitFlag {
		return runInit()
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return err
	}

	if *providerName != "" && *providerName != cfg.Provider {
		cfg.Provider = *providerName
		// The configured model belongs to the configured provider;
		// switching providers falls back to that provider's default.
		cfg.Model = ""
	}
	if *modelName != "" {
		cfg.Model = *modelName
	}

	if *showConfig {
		return cfg.PrintAsYAML()
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one Rego policy file, got %d\n", len(args))
		showUsage()
		return fmt.Errorf("expected exactly one input file")
	}

	return run(cfg, createClient, runOptions{
		input:      args[0],
		outputPath: outputPath,
		dryRun:     *dryRun,
		validate:   *validateOut,
	})
}

// clientFactory builds the completion client once the credential is
// resolved. Tests substitute a factory returning a stub client.
type clientFactory func(*config.Config) (providers.Client, error)

type runOptions struct {
	input      string
	outputPath string
	dryRun     bool
	validate   bool
}

func run(cfg *config.Config, newClient clientFactory, opts runOptions) error {
	// Resolve the credential before touching the input file or the
	// network. A missing key fails the run here with remediation.
	if err := cfg.Resolve(); err != nil {
		fmt.Println(err)
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating completion client: %v\n", err)
		return err
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	conv := converter.New(client, converter.Options{
		MaxTokens: cfg.MaxTokens,
		Timeout:   timeout,
	})

	fmt.Printf("📖 Reading Rego policy: %s\n", opts.input)
	fmt.Printf("🤖 Converting policy with %s...\n", cfg.Model)

	result, err := conv.ConvertFile(context.Background(), opts.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conversion failed: %v\n", err)
		return err
	}

	if opts.validate {
		rule, err := validate.Check(result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			return err
		}
		log.Debug("Validated converted rule", "id", rule.ID, "severity", rule.Severity)
	}

	if opts.dryRun {
		printDryRun(result)
		return nil
	}

	resolved := opts.outputPath
	if resolved == "" {
		resolved = converter.OutputPath(opts.input)
	}

	if err := converter.WriteRule(resolved, result); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}

	printSaved(resolved)
	printPreview(result)

	return nil
}

// loadConfig reads the config file when one exists. The default config
// file is optional; a path given with -config must exist.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(*configPath); err != nil {
		if os.IsNotExist(err) && !flagWasSet("config") {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("cannot read config file %s: %w", *configPath, err)
	}

	return config.Load(*configPath)
}

func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func createClient(cfg *config.Config) (providers.Client, error) {
	provider, err := providers.ToProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}

	return providers.CreateClient(&providers.Config{
		Provider:    provider,
		Model:       cfg.Model,
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		Temperature: *cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	})
}

func showUsage() {
	fmt.Printf("Usage: %s [options] <rego-file>\n\n", os.Args[0])
	fmt.Printf("rego2hcl converts Terrascan OPA/Rego policies to Planguard HCL rules using an AI completion provider.\n\n")
	fmt.Println("Arguments:")
	fmt.Println("  <rego-file> - Path to the Terrascan Rego policy file to convert.")
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  ANTHROPIC_API_KEY    API key for the default anthropic provider.")
	fmt.Println("                       Other providers read their own variable, e.g. OPENAI_API_KEY.")
}

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/DrSkyle/coactor/pkg/config"
	"github.com/DrSkyle/coactor/pkg/telemetry"
	"github.com/DrSkyle/coactor/pkg/version"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "coactor",
	Short: "Co-actor graph builder",
	Long: `coactor - Co-actor Graph Builder

Crawl TMDb credits outward from a seed person and export the graph.`,
	Version:       version.Current,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run:           nil,
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default $HOME/.coactor.yaml)")
	pf.String("api-key", "", "TMDb API key")
	pf.String("otlp-endpoint", "", "OTLP/HTTP trace endpoint")
	pf.Bool("json-logs", false, "Emit JSON logs")
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.Bool("mock", false, "Use built-in fixtures instead of TMDb")
	pf.MarkHidden("mock")

	bindFlags(pf, map[string]string{
		"api_key":       "api-key",
		"otlp_endpoint": "otlp-endpoint",
		"json_logs":     "json-logs",
		"verbose":       "verbose",
		"mock":          "mock",
	})

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		renderHelp(cmd)
	})

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logger := telemetry.NewLogger(os.Stderr, viper.GetBool("json_logs"), viper.GetBool("verbose"))
		slog.SetDefault(logger)
	}

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, fs.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}
}

func initConfig() {
	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		path := filepath.Join(home, ".coactor.yaml")
		if _, err := os.Stat(path); err != nil {
			return
		}
		viper.SetConfigFile(path)
		viper.SetConfigType("yaml")
	}
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Failed to read config %s: %v\n", viper.ConfigFileUsed(), err)
	}
}

func renderHelp(cmd *cobra.Command) {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00FF99")).
		MarginBottom(1)

	flagStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA"))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("COACTOR %s", version.Current)))
	fmt.Fprintln(out, "Co-actor graph builder for TMDb.")

	fmt.Fprintln(out, titleStyle.Render("USAGE"))
	fmt.Fprintf(out, "  %s\n\n", cmd.UseLine())

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(out, titleStyle.Render("COMMANDS"))
		for _, c := range cmd.Commands() {
			if c.IsAvailableCommand() {
				fmt.Fprintf(out, "  %-12s %s\n", c.Name(), c.Short)
			}
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, titleStyle.Render("EXAMPLES"))
	fmt.Fprintln(out, "  coactor build --seed-id 2975 --seed-name \"Laurence Fishburne\"")
	fmt.Fprintln(out, "  coactor build --rounds 1 --output s3://bucket/runs/2975 --tui")
	fmt.Fprintln(out, "  coactor stats ./out")
	fmt.Fprintln(out)

	fmt.Fprintln(out, titleStyle.Render("FLAGS"))
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		line := fmt.Sprintf("  --%-15s %s", f.Name, f.Usage)
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" {
			line += fmt.Sprintf(" (default %s)", f.DefValue)
		}
		fmt.Fprintln(out, flagStyle.Render(line))
	})
	fmt.Fprintln(out)
}

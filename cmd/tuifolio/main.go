// Package main provides the CLI entrypoint for tuifolio.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload" // Loads .env from the working directory.
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuifolio/internal/config"
	"github.com/verte-zerg/tuifolio/internal/contact"
	"github.com/verte-zerg/tuifolio/internal/content"
	"github.com/verte-zerg/tuifolio/internal/model"
	"github.com/verte-zerg/tuifolio/internal/store"
	"github.com/verte-zerg/tuifolio/internal/theme"
	"github.com/verte-zerg/tuifolio/internal/tui"
	"github.com/verte-zerg/tuifolio/internal/typewriter"
)

const (
	defaultTypeSpeedMs   = 100
	defaultDeleteSpeedMs = 50
	defaultPauseMs       = 2000
	defaultThemeFallback = "system"
)

var defaultPhrases = []string{
	"Software & Cloud Engineer",
	"Problem Solver",
	"Full-Stack Developer",
	"AWS Enthusiast",
	"Lifelong Learner",
}

var (
	pageContent       string
	pagePhrasesFile   string
	pagePhrases       []string
	pageTypeSpeed     int
	pageDeleteSpeed   int
	pagePause         int
	pageLoop          bool
	pageEndpoint      string
	pageTimeout       int
	pageThemeFallback string

	typeOnce bool

	submissionsLast int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuifolio",
		Short:         "Terminal portfolio page",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPageCmd,
	}

	addTypewriterFlags(rootCmd)
	rootCmd.Flags().StringVar(&pageContent, "content", "", "path to the content JSON document")
	rootCmd.Flags().StringVar(&pageEndpoint, "endpoint", contact.DefaultEndpoint, "contact form endpoint")
	rootCmd.Flags().IntVar(&pageTimeout, "timeout", int(contact.DefaultTimeout.Milliseconds()), "contact request timeout in milliseconds")
	rootCmd.Flags().StringVar(&pageThemeFallback, "theme-fallback", defaultThemeFallback, "theme when none is stored: system, dark or light")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTypeCmd())
	rootCmd.AddCommand(newThemeCmd())
	rootCmd.AddCommand(newSubmissionsCmd())
	rootCmd.AddCommand(newContentCmd())

	return rootCmd
}

func addTypewriterFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&pagePhrases, "phrase", nil, "typewriter phrase (repeatable)")
	cmd.Flags().StringVar(&pagePhrasesFile, "phrases-file", "", "file with one typewriter phrase per line")
	cmd.Flags().IntVar(&pageTypeSpeed, "type-speed", defaultTypeSpeedMs, "milliseconds per typed character")
	cmd.Flags().IntVar(&pageDeleteSpeed, "delete-speed", defaultDeleteSpeedMs, "milliseconds per deleted character")
	cmd.Flags().IntVar(&pagePause, "pause", defaultPauseMs, "milliseconds to hold a fully typed phrase")
	cmd.Flags().BoolVar(&pageLoop, "loop", true, "cycle phrases forever")
}

func loadAppConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if len(fileCfg.Typewriter.Phrases) > 0 && !cmd.Flags().Changed("phrase") {
		pagePhrases = fileCfg.Typewriter.Phrases
	}
	applyIntConfig(cmd, "type-speed", &pageTypeSpeed, fileCfg.Typewriter.TypeSpeedMs)
	applyIntConfig(cmd, "delete-speed", &pageDeleteSpeed, fileCfg.Typewriter.DeleteSpeedMs)
	applyIntConfig(cmd, "pause", &pagePause, fileCfg.Typewriter.PauseMs)
	applyBoolConfig(cmd, "loop", &pageLoop, fileCfg.Typewriter.Loop)
	applyStringConfig(cmd, "content", &pageContent, fileCfg.Content.Path)
	applyStringConfig(cmd, "endpoint", &pageEndpoint, fileCfg.Contact.Endpoint)
	applyIntConfig(cmd, "timeout", &pageTimeout, fileCfg.Contact.TimeoutMs)
	applyStringConfig(cmd, "theme-fallback", &pageThemeFallback, fileCfg.Theme.Fallback)
	envCfg, err := config.LoadEnv()
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load environment: %w", err)
	}
	if envCfg.ContactEndpoint != "" && !flagChanged(cmd, "endpoint") {
		pageEndpoint = envCfg.ContactEndpoint
	}

	phrases := pagePhrases
	if flagChanged(cmd, "phrases-file") {
		loaded, err := content.LoadPhrases(pagePhrasesFile)
		if err != nil {
			return model.Config{}, fmt.Errorf("failed to load phrases: %w", err)
		}
		phrases = loaded
	}
	if len(phrases) == 0 {
		phrases = defaultPhrases
	}

	cfg := model.Config{
		ContentPath:   pageContent,
		Endpoint:      pageEndpoint,
		TimeoutMs:     pageTimeout,
		ThemeFallback: pageThemeFallback,
		Phrases:       phrases,
		TypeSpeedMs:   pageTypeSpeed,
		DeleteSpeedMs: pageDeleteSpeed,
		PauseMs:       pagePause,
		Loop:          pageLoop,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func runPageCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig(cmd)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	themes, err := theme.NewManager(context.Background(), st, themeDetector(cfg.ThemeFallback))
	if err != nil {
		logErrf("%v\n", err)
	}

	doc, err := content.Load(resolveContentPath(cfg.ContentPath))
	if err != nil {
		logErrf("failed to load content: %v\n", err)
		doc = model.Document{}
	}

	opts := typewriterOptions(cfg)
	m, err := tui.NewModel(tui.Options{
		Doc:        doc,
		Typewriter: &opts,
		Themes:     themes,
		Submitter:  contact.NewSubmitter(cfg.Endpoint, time.Duration(cfg.TimeoutMs)*time.Millisecond, st),
	})
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newTypeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "type [phrase...]",
		Short: "Run the typewriter effect on the terminal line",
		RunE:  runTypeCmd,
	}
	addTypewriterFlags(cmd)
	cmd.Flags().BoolVar(&typeOnce, "once", false, "type every phrase once and exit")
	return cmd
}

func runTypeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadAppConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Phrases = args
	}
	if typeOnce {
		cfg.Loop = false
	}

	out := os.Stdout
	inPlace := term.IsTerminal(int(out.Fd()))
	opts := typewriterOptions(cfg)
	if inPlace {
		opts.Phrases = fitPhrases(opts.Phrases, terminalWidth(out))
	}
	target := typewriter.NewLineTarget(out, inPlace, "▌")
	engine, err := typewriter.New(target, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	runErr := engine.Run(ctx)
	if inPlace {
		if _, err := fmt.Fprintln(out); err != nil {
			logErrf("failed to write output: %v\n", err)
		}
	}
	if err := target.Err(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

func typewriterOptions(cfg model.Config) typewriter.Options {
	opts := typewriter.DefaultOptions(cfg.Phrases...)
	opts.TypeSpeed = time.Duration(cfg.TypeSpeedMs) * time.Millisecond
	opts.DeleteSpeed = time.Duration(cfg.DeleteSpeedMs) * time.Millisecond
	opts.DelayBetweenTexts = time.Duration(cfg.PauseMs) * time.Millisecond
	opts.Loop = cfg.Loop
	return opts
}

// fitPhrases truncates phrases so a frame never wraps, which would break
// rewriting the line in place.
func fitPhrases(phrases []string, width int) []string {
	if width <= 2 {
		return phrases
	}
	out := make([]string, len(phrases))
	for i, p := range phrases {
		out[i] = runewidth.Truncate(p, width-2, "…")
	}
	return out
}

func terminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|system]",
		Short:     "Show or set the stored theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "system"},
		RunE:      runThemeCmd,
	}
}

func runThemeCmd(cmd *cobra.Command, args []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	themes, err := theme.NewManager(ctx, st, theme.SystemDetector())
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if strings.EqualFold(args[0], "system") {
			err = themes.Clear(ctx)
		} else {
			var name theme.Name
			name, err = theme.ParseName(args[0])
			if err == nil {
				err = themes.Set(ctx, name)
			}
		}
		if err != nil {
			return err
		}
	}
	source := "system"
	if themes.Stored() {
		source = "stored"
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", themes.Current(), source); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newSubmissionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submissions",
		Short: "List recorded contact form submissions",
		Args:  cobra.NoArgs,
		RunE:  runSubmissionsCmd,
	}
	cmd.Flags().IntVar(&submissionsLast, "last", 0, "limit to last N submissions")
	return cmd
}

func runSubmissionsCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	subs, err := st.ListSubmissions(context.Background(), submissionsLast)
	if err != nil {
		return fmt.Errorf("failed to list submissions: %w", err)
	}
	if len(subs) == 0 {
		logErrln("No submissions recorded.")
		return nil
	}
	for _, line := range formatSubmissions(subs) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func formatSubmissions(subs []model.Submission) []string {
	rows := [][]string{{"TIME", "STATUS", "NAME", "EMAIL", "RATING", "SUBJECT"}}
	for _, s := range subs {
		status := s.Status
		if s.Error != "" {
			status += ": " + s.Error
		}
		rows = append(rows, []string{
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			status,
			s.Form.Name,
			s.Form.Email,
			s.Form.Rating,
			s.Form.Subject,
		})
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells[i] = cell
				continue
			}
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		lines = append(lines, strings.Join(cells, "  "))
	}
	return lines
}

func newContentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "content [path]",
		Short: "Validate a content document and print a summary",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runContentCmd,
	}
}

func runContentCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	path := ""
	if fileCfg.Content.Path != nil {
		path = *fileCfg.Content.Path
	}
	if len(args) == 1 {
		path = args[0]
	}
	path = resolveContentPath(path)
	doc, err := content.Load(path)
	if err != nil {
		return err
	}
	source := path
	if source == "" {
		source = "built-in"
	}
	lines := []string{
		fmt.Sprintf("source:       %s", source),
		fmt.Sprintf("skills:       %d", len(doc.Skills)),
		fmt.Sprintf("projects:     %d (filters: %s)", len(doc.Projects), strings.Join(content.Filters(doc.Projects), ", ")),
		fmt.Sprintf("experience:   %d", len(doc.Experience)),
		fmt.Sprintf("education:    %d", len(doc.Education)),
		fmt.Sprintf("achievements: %d", len(doc.Achievements)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// resolveContentPath falls back to the default content file when it exists,
// and to the built-in document (empty path) otherwise.
func resolveContentPath(path string) string {
	if path != "" {
		return path
	}
	def := config.DefaultContentPath()
	if _, err := os.Stat(def); err == nil {
		return def
	}
	return ""
}

func themeDetector(fallback string) func() bool {
	name, err := theme.ParseName(fallback)
	if err != nil {
		return theme.SystemDetector()
	}
	return theme.FixedDetector(name)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	envCfg, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}
	parts := strings.Fields(envCfg.Editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuifolio configuration
# Uncomment a value to enable it. CLI flags override config values.

[typewriter]
# phrases = ["Software & Cloud Engineer", "Problem Solver"]
# type-speed = %d         # Milliseconds per typed character
# delete-speed = %d        # Milliseconds per deleted character
# pause = %d             # Milliseconds to hold a fully typed phrase
# loop = true              # Cycle phrases forever

[content]
# path = "%s"

[contact]
# endpoint = %q
# timeout = %d          # Milliseconds

[theme]
# fallback = %q        # Theme when none is stored: system, dark or light
`,
		defaultTypeSpeedMs,
		defaultDeleteSpeedMs,
		defaultPauseMs,
		config.DefaultContentPath(),
		contact.DefaultEndpoint,
		contact.DefaultTimeout.Milliseconds(),
		defaultThemeFallback,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.TypeSpeedMs <= 0 {
		return fmt.Errorf("--type-speed must be > 0")
	}
	if cfg.DeleteSpeedMs <= 0 {
		return fmt.Errorf("--delete-speed must be > 0")
	}
	if cfg.PauseMs <= 0 {
		return fmt.Errorf("--pause must be > 0")
	}
	for i, p := range cfg.Phrases {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("phrase %d must not be empty", i+1)
		}
	}
	switch cfg.ThemeFallback {
	case "system", "dark", "light":
	default:
		return fmt.Errorf("--theme-fallback must be system, dark or light")
	}
	if cfg.TimeoutMs <= 0 {
		return fmt.Errorf("--timeout must be > 0")
	}
	if cfg.Endpoint == "" {
		return fmt.Errorf("--endpoint must not be empty")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"titlewatch/internal/config"
	"titlewatch/internal/daemon"
	"titlewatch/internal/database"
	"titlewatch/internal/reporter"
	"titlewatch/internal/scanner"
	"titlewatch/internal/tracker"
	"titlewatch/internal/web"
	"titlewatch/internal/widget"
	"titlewatch/pkg/detector"
	"titlewatch/pkg/utils"
	"titlewatch/pkg/window"
	"titlewatch/version"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "start":
		startDaemon(false)
	case "serve":
		startDaemon(true)
	case "stop":
		stopDaemon()
	case "status":
		showStatus()
	case "scan":
		scanOnce()
	case "list":
		listWindows()
	case "report":
		generateReport()
	case "clear":
		clearDatabase()
	case "version":
		showVersion()
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`titlewatch - Window-title notification counter for status bars

Usage:
  titlewatch <command> [options]

Commands:
  start [options]           Run the bar widget, printing each new output line
  serve [options]           Run the bar widget with the web API
  stop                      Stop a detached daemon
  status                    Show daemon status and the current count
  scan [keyword]            Scan windows once and print the match
  list                      List all window titles
  report [period] [--json]  Generate a report (period: day, week, month)
  clear [--before <age>]    Clear recorded observations (all, or older than age)
  version                   Show version information
  help                      Show this help message

Options for start and serve:
  --detach                  Run in the background
  --interval <seconds>      Seconds between window scans
  --port <port>             Web API port (serve only)

Examples:
  titlewatch start
  titlewatch serve --detach
  titlewatch scan Slack
  titlewatch report week --json
  titlewatch clear --before 30d

Environment Variables:
  TITLEWATCH_CONFIG            TOML config file
  TITLEWATCH_ENABLED           Enable the widget (default true)
  TITLEWATCH_FILTER_KEYWORD    Window title substring (default Discord)
  TITLEWATCH_REFRESH_INTERVAL  Seconds between window scans (default 2)
  TITLEWATCH_LABEL_MODE        none, icon, text or icon_and_text
  TITLEWATCH_LABEL             Text label (default DISC)
  TITLEWATCH_MATCH_POLICY      first or last matching window wins
  TITLEWATCH_TICK_INTERVAL     Render tick in milliseconds
  TITLEWATCH_DB_PATH           Database file path
  TITLEWATCH_PID_FILE          PID file path
  TITLEWATCH_LOG_FILE          Log file for detached mode
  TITLEWATCH_TIMEZONE          Time zone for report periods
  TITLEWATCH_WEB_HOST          Web API host
  TITLEWATCH_WEB_PORT          Web API port

Version: %s
`, version.Version)
}

func hasFlag(name string) bool {
	for _, arg := range os.Args[2:] {
		if arg == name {
			return true
		}
	}
	return false
}

// flagValue returns the argument following name, if present
func flagValue(args []string, name string) (string, bool) {
	for i, arg := range args {
		if arg == name && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

// applyRunFlags applies --interval and --port to cfg
func applyRunFlags(cfg *config.Config, args []string) error {
	if value, ok := flagValue(args, "--interval"); ok {
		seconds, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid --interval: %s", value)
		}
		if err := cfg.SetRefreshInterval(time.Duration(seconds) * time.Second); err != nil {
			return err
		}
	}
	if value, ok := flagValue(args, "--port"); ok {
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid --port: %s", value)
		}
		if err := cfg.SetWebPort(port); err != nil {
			return err
		}
	}
	return nil
}

// scanKeyword picks the keyword for a one-shot scan. An empty keyword would
// match every window.
func scanKeyword(args []string, fallback string) (string, error) {
	keyword := fallback
	if len(args) > 0 {
		keyword = args[0]
	}
	if strings.TrimSpace(keyword) == "" {
		return "", fmt.Errorf("keyword cannot be empty")
	}
	return keyword, nil
}

// clearCutoff returns the --before cutoff relative to now. ok is false when
// everything should be cleared.
func clearCutoff(args []string, now time.Time) (time.Time, bool, error) {
	value, ok := flagValue(args, "--before")
	if !ok {
		for _, arg := range args {
			if arg == "--before" {
				return time.Time{}, false, fmt.Errorf("--before requires an age such as 30d")
			}
		}
		return time.Time{}, false, nil
	}
	age, err := utils.ParseAge(value)
	if err != nil {
		return time.Time{}, false, err
	}
	return now.Add(-age), true, nil
}

func loadConfig() *config.Config {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func logPath(cfg *config.Config) string {
	if cfg.Daemon.LogFile != "" {
		return cfg.Daemon.LogFile
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("titlewatch-%d.log", os.Getuid()))
}

func startDaemon(withWeb bool) {
	cfg := loadConfig()
	if err := applyRunFlags(cfg, os.Args[2:]); err != nil {
		log.Fatalf("Invalid option: %v", err)
	}

	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if running {
		log.Fatalf("Daemon is already running (PID: %d)", pid)
	}

	if hasFlag("--detach") && !daemon.IsChild() {
		path := logPath(cfg)
		process, err := daemon.Detach(path)
		if err != nil {
			log.Fatalf("Failed to detach: %v", err)
		}
		fmt.Printf("Daemon started successfully (PID: %d)\n", process.Pid)
		if withWeb {
			fmt.Printf("Web API available at: http://%s:%d\n", cfg.Web.Host, cfg.Web.Port)
		}
		fmt.Printf("Logs: %s\n", path)
		return
	}

	runDaemon(cfg, dm, withWeb)
}

func runDaemon(cfg *config.Config, dm *daemon.Daemon, withWeb bool) {
	// In the foreground the bar lines go to stdout and logs to stderr
	var out io.Writer = os.Stdout
	if daemon.IsChild() {
		out = nil
	}

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	enumerator, err := detector.New()
	if err != nil {
		log.Fatalf("Failed to initialize window enumerator: %v", err)
	}
	defer enumerator.Close()

	log.Printf("Window enumerator initialized: %s", enumerator.GetDisplayServer())

	if err := dm.WritePID(); err != nil {
		log.Fatalf("Failed to write PID file: %v", err)
	}
	defer dm.RemovePID()

	repo := database.NewRepository(db)
	sc := scanner.New(enumerator, cfg.ScanPolicy())
	w := widget.New(cfg.WidgetSettings(), sc)
	barSvc := tracker.NewService(cfg, w, sc, repo, out, enumerator.GetDisplayServer())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var webServer *web.Server
	if withWeb {
		webServer = web.NewServer(cfg, web.NewHandler(cfg, barSvc, repo), 0)
		go func() {
			if err := webServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Web server error: %v", err)
				cancel()
			}
		}()
		log.Printf("Web API available at: http://%s", webServer.GetAddress())
	}

	go func() {
		select {
		case <-sigChan:
			log.Println("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	log.Println("Starting titlewatch...")
	log.Printf("Configuration:\n%s", cfg.String())

	if err := barSvc.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Bar error: %v", err)
	}

	if webServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := webServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down web server: %v", err)
		}
	}

	log.Println("Daemon stopped successfully")
}

func stopDaemon() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if !running {
		fmt.Println("Daemon is not running")
		return
	}

	fmt.Printf("Stopping daemon (PID: %d)...\n", pid)
	if err := dm.Stop(); err != nil {
		log.Fatalf("Failed to stop daemon: %v", err)
	}
	fmt.Println("Daemon stopped successfully")
}

func showStatus() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if !running {
		fmt.Println("Status: Not running")
	} else {
		fmt.Printf("Status: Running (PID: %d)\n", pid)
	}
	fmt.Printf("Keyword: %s\n", cfg.Widget.FilterKeyword)
	fmt.Printf("Refresh Interval: %v\n", cfg.Widget.RefreshInterval)

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		return
	}
	defer db.Close()

	latest, err := database.NewRepository(db).GetLatest()
	if err == nil && latest != nil {
		fmt.Printf("\nLast Change (%s ago):\n", utils.FormatAge(latest.Timestamp))
		fmt.Printf("  Count: %d\n", latest.Count)
		fmt.Printf("  Window: %s\n", latest.Title)
		fmt.Printf("  Display: %s\n", latest.DisplayServer)
	}
}

func scanOnce() {
	cfg := config.New()
	keyword, err := scanKeyword(os.Args[2:], cfg.Widget.FilterKeyword)
	if err != nil {
		log.Fatalf("Invalid scan: %v", err)
	}

	enumerator, err := detector.New()
	if err != nil {
		log.Fatalf("Failed to initialize window enumerator: %v", err)
	}
	defer enumerator.Close()

	title, found, err := scanner.New(enumerator, cfg.ScanPolicy()).Scan(keyword)
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}
	if !found {
		fmt.Printf("No window title contains %q\n", keyword)
		return
	}

	count := widget.ParseCount(title)
	fmt.Printf("Window: %s\n", title)
	fmt.Printf("Count:  %d\n", count)
	mode, _ := widget.ParseLabelMode(cfg.Widget.LabelMode)
	fmt.Printf("Output: %q\n", widget.Format(mode, cfg.Widget.Label, count))
}

func listWindows() {
	enumerator, err := detector.New()
	if err != nil {
		log.Fatalf("Failed to initialize window enumerator: %v", err)
	}
	defer enumerator.Close()

	titles, err := window.Titles(enumerator)
	if err != nil {
		log.Fatalf("Failed to list windows: %v", err)
	}

	fmt.Printf("%d windows (%s)\n", len(titles), enumerator.GetDisplayServer())
	for i, title := range titles {
		fmt.Printf("%3d  %-70s %d\n", i+1, utils.Truncate(title, 70), widget.ParseCount(title))
	}
}

func generateReport() {
	periodType := "day"
	if len(os.Args) > 2 && os.Args[2] != "--json" {
		periodType = os.Args[2]
	}

	cfg := config.New()
	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rep := reporter.New(cfg, database.NewRepository(db))
	report, err := rep.GenerateReport(periodType)
	if err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}

	if hasFlag("--json") {
		jsonStr, err := rep.FormatReportJSON(report)
		if err != nil {
			log.Fatalf("Failed to format JSON: %v", err)
		}
		fmt.Println(jsonStr)
	} else {
		fmt.Println(rep.FormatReportText(report))
	}
}

func clearDatabase() {
	cfg := config.New()
	cutoff, partial, err := clearCutoff(os.Args[2:], time.Now())
	if err != nil {
		log.Fatalf("Invalid option: %v", err)
	}

	if partial {
		fmt.Printf("This will delete observations recorded before %s. Are you sure? (yes/no): ",
			cutoff.Format("2006-01-02 15:04:05"))
	} else {
		fmt.Print("This will delete all recorded observations. Are you sure? (yes/no): ")
	}
	var response string
	fmt.Scanln(&response)
	if response != "yes" && response != "y" {
		fmt.Println("Operation cancelled")
		return
	}

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := database.NewRepository(db)
	if partial {
		deleted, err := repo.DeleteOldObservations(cutoff)
		if err != nil {
			log.Fatalf("Failed to delete old observations: %v", err)
		}
		fmt.Printf("Deleted %d observations\n", deleted)
		return
	}

	if err := repo.Clear(); err != nil {
		log.Fatalf("Failed to clear database: %v", err)
	}
	fmt.Println("Database cleared successfully")
}

func showVersion() {
	fmt.Printf("version: %s\n", version.Version)
	fmt.Printf("commit : %s\n", version.Commit)
	fmt.Printf("built  : %s\n", version.Date)
}

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dontbeproud/accountcluster/internal/analyzer"
	"github.com/dontbeproud/accountcluster/internal/config"
	"github.com/dontbeproud/accountcluster/internal/loader"
	"github.com/dontbeproud/accountcluster/internal/orchestrator"
	"github.com/dontbeproud/accountcluster/internal/reporter"
	"github.com/dontbeproud/accountcluster/internal/store"
	"github.com/dontbeproud/accountcluster/internal/web"
)

type cliConfig struct {
	Input           string
	Mode            string
	Threshold       float64
	MinGroupMembers int
	JSONFile        string
	PDFFile         string
	WeightsFile     string
	Web             bool
	Port            int
	Debug           bool
	SaveConfig      bool
	Version         bool
	Info            bool
}

func main() {
	cfg := parseFlags()

	log.SetFlags(log.Ldate | log.Ltime)

	if _, err := os.Stat(cfg.Input); os.IsNotExist(err) {
		log.Fatalf("❌ Input does not exist: %s", cfg.Input)
	}

	mode, err := parseMode(cfg.Mode)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	log.Printf("🔍 Account Cluster")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Printf("📂 Input: %s", cfg.Input)
	log.Printf("🎯 Similarity threshold: %.3f", cfg.Threshold)
	log.Printf("🔧 Mode: %s", cfg.Mode)
	if cfg.Debug {
		log.Printf("🐛 DEBUG MODE: enabled")
	}
	fmt.Println()

	startTime := time.Now()

	log.Println("📦 Step 1: Loading account names...")
	names, err := loader.LoadNames(cfg.Input)
	if err != nil {
		log.Fatalf("❌ Failed to load names: %v", err)
	}
	log.Printf("✅ Loaded %d names", len(names))

	st, err := store.New()
	if err != nil {
		log.Printf("⚠️  Could not initialize cache: %v", err)
	} else {
		defer st.Close()
	}

	fingerprint := store.Fingerprint(names)

	var rep reporter.Report
	var cacheHit bool
	if st != nil {
		if cached, ok := st.Get(fingerprint, cfg.Mode, cfg.Threshold, cfg.MinGroupMembers); ok {
			log.Println("✅ Cache hit: reusing prior clustering result")
			rep = cached
			cacheHit = true
		}
	}

	if !cacheHit {
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("🚀 Step 2: Clustering account names...")
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

		collection := analyzer.NewCollection(names)

		if cfg.WeightsFile != "" {
			weights, err := loadWeights(cfg.WeightsFile)
			if err != nil {
				log.Fatalf("❌ Failed to load weights: %v", err)
			}
			collection.SetWeights(weights)
		}

		onProgress := func(p float64) {
			if !cfg.Web {
				fmt.Printf("\r⏳ Clustering: [%-20s] %.1f%%", strings.Repeat("=", int(p/5)), p)
			}
		}

		groups := collection.GroupWithProgress(cfg.Threshold, cfg.MinGroupMembers, mode, onProgress)
		if !cfg.Web {
			fmt.Println()
		}

		duration := time.Since(startTime).Seconds()
		rep = reporter.NewReport(
			uuid.NewString(),
			collection.Len(),
			groups,
			cfg.Mode,
			duration,
			time.Now().Format("2006-01-02 15:04:05"),
		)

		if st != nil {
			st.Put(fingerprint, cfg.Mode, cfg.Threshold, cfg.MinGroupMembers, rep)
		}

		log.Printf("✅ Clustering finished. Found %d groups.", rep.GroupCount)
	}

	reporter.PrintSummary(rep)
	printGroups(rep, cfg.Debug)

	if cfg.JSONFile != "" {
		if err := reporter.ExportJSON(rep, cfg.JSONFile); err != nil {
			log.Printf("⚠️  Failed to export JSON: %v", err)
		} else {
			log.Printf("📄 JSON report written to %s", cfg.JSONFile)
		}
	}

	if cfg.PDFFile != "" {
		if err := reporter.ExportPDF(rep, cfg.PDFFile); err != nil {
			log.Printf("⚠️  Failed to export PDF: %v", err)
		} else {
			log.Printf("📄 PDF report written to %s", cfg.PDFFile)
		}
	}

	if cfg.Web {
		srv := web.NewServer(cfg.Port, &rep)
		srv.SetDebug(cfg.Debug)
		go func() {
			if err := srv.Start(); err != nil {
				log.Printf("❌ Web server error: %v", err)
			}
		}()

		go func() {
			time.Sleep(1 * time.Second)
			url := fmt.Sprintf("http://localhost:%d", cfg.Port)
			log.Printf("🌍 Opening dashboard at %s ...", url)
			openBrowser(url)
		}()
	}

	log.Printf("📈 Total processing time: %.2fs", time.Since(startTime).Seconds())

	if cfg.Web {
		log.Println("📡 Dashboard is ACTIVE. Press Ctrl+C to shutdown.")
		select {}
	}
}

func printGroups(rep reporter.Report, verbose bool) {
	for i, g := range rep.Groups {
		if i >= 10 && !verbose {
			if i == 10 {
				fmt.Println("... (use -debug to see all groups)")
			}
			continue
		}
		fmt.Printf("🔍 Group %d (%d members)\n", g.ID, len(g.Members))
		for _, m := range g.Members {
			fmt.Printf("  • %s\n", m)
		}
		fmt.Println()
	}
}

func parseMode(s string) (orchestrator.Mode, error) {
	switch strings.ToLower(s) {
	case "accurate":
		return orchestrator.Accurate, nil
	case "normal":
		return orchestrator.Normal, nil
	case "quick":
		return orchestrator.Quick, nil
	case "rapid":
		return orchestrator.Rapid, nil
	default:
		return 0, fmt.Errorf("mode must be 'accurate', 'normal', 'quick', or 'rapid' (got %q)", s)
	}
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	// Settings persisted by a previous -save-config run seed the flag
	// defaults; explicit flags on this invocation still win.
	saved, _ := config.LoadConfig()

	flag.StringVar(&cfg.Input, "input", saved.Input, "Path to a name-list file or zip/rar/7z archive of name-list files")
	flag.StringVar(&cfg.Mode, "mode", saved.Mode, "Efficiency mode: 'accurate', 'normal', 'quick', or 'rapid'")
	flag.Float64Var(&cfg.Threshold, "threshold", saved.Threshold, "Similarity threshold in [0,1]")
	flag.IntVar(&cfg.MinGroupMembers, "min-members", saved.MinGroupMembers, "Minimum members for a group to be kept")
	flag.StringVar(&cfg.JSONFile, "json", "", "Output JSON report path")
	flag.StringVar(&cfg.PDFFile, "pdf", "", "Output PDF report path")
	flag.StringVar(&cfg.WeightsFile, "weights", "", "Path to a JSON file overriding one or more of the five composite-score weights")
	flag.BoolVar(&cfg.Web, "web", false, "Start web dashboard after clustering")
	flag.IntVar(&cfg.Port, "port", saved.Port, "Web server port")
	flag.BoolVar(&cfg.Debug, "debug", false, "List every group and log dashboard requests")
	flag.BoolVar(&cfg.SaveConfig, "save-config", false, "Persist the resolved input/mode/threshold/min-members/port as defaults")
	flag.BoolVar(&cfg.Version, "version", false, "Show version information and exit")
	flag.BoolVar(&cfg.Info, "info", false, "Show project information and exit")

	flag.Parse()

	if cfg.Version {
		fmt.Println("Account Cluster v1.0.0")
		os.Exit(0)
	}

	if cfg.Info {
		fmt.Println("📦 Account Cluster")
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		fmt.Println("⚙️  Groups structurally and textually similar account names.")
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		os.Exit(0)
	}

	if cfg.Input == "" {
		log.Fatal("❌ -input is required")
	}

	if cfg.Threshold < 0 {
		log.Fatal("❌ Threshold must be >= 0")
	}

	if cfg.MinGroupMembers < 0 {
		log.Fatal("❌ min-members must be >= 0")
	}

	if cfg.SaveConfig {
		toSave := &config.AppConfig{
			Input:           cfg.Input,
			Mode:            cfg.Mode,
			Threshold:       cfg.Threshold,
			MinGroupMembers: cfg.MinGroupMembers,
			Port:            cfg.Port,
		}
		if err := config.SaveConfig(toSave); err != nil {
			log.Printf("⚠️  Could not save config: %v", err)
		} else {
			log.Printf("💾 Settings saved to %s", config.GetConfigPath())
		}
	}

	return cfg
}

// loadWeights reads a JSON file overriding one or more of
// analyzer.DefaultWeights' five fields, leaving the rest at their
// default values.
func loadWeights(path string) (analyzer.WeightTable, error) {
	w := analyzer.DefaultWeights

	data, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return w, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return w, nil
}

// openBrowser opens the specified URL in the default browser of the user.
func openBrowser(url string) {
	var err error

	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = fmt.Errorf("unsupported platform")
	}
	if err != nil {
		log.Printf("⚠️  Could not open browser: %v", err)
	}
}

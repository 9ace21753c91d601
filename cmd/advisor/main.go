package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"github.com/advisor-labs/readiness/internal/models"
	cfgPkg "github.com/advisor-labs/readiness/pkg/config"
	"github.com/advisor-labs/readiness/pkg/index"
	"github.com/advisor-labs/readiness/pkg/llm"
	"github.com/advisor-labs/readiness/pkg/pipeline"
	"github.com/advisor-labs/readiness/pkg/report"
	"github.com/advisor-labs/readiness/server"
)

type Config struct {
	BaseURL     string
	DBUrl       string
	Model       string
	EmbedModel  string
	MaxTokens   int
	Temperature float64
	Timeout     int
	RateLimit   float64
	TableName   string
	VectorDim   int
	BatchSize   int
	ChunkSize   int
	Overlap     int
	TopK        int
	Excerpt     int
	Port        string
	APIKey      string
	ReportsDir  string

	Serve   bool
	OrgName string
	Context string
}

func main() {
	// A .env next to the binary is optional
	_ = godotenv.Load()

	config, files := parseFlags()

	if err := run(config, files); err != nil {
		log.Fatal(err)
	}
}

func parseFlags() (Config, []string) {
	var config Config
	var configPath string

	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&config.BaseURL, "ollama-url", os.Getenv("OLLAMA_BASE_URL"), "Ollama server URL")
	flag.StringVar(&config.DBUrl, "db-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
	flag.StringVar(&config.Model, "model", "", "LLM model to use")
	flag.Float64Var(&config.Temperature, "temperature", 0, "Set the LLM temperature")
	flag.BoolVar(&config.Serve, "serve", false, "Run the HTTP API instead of a one-shot assessment")
	flag.StringVar(&config.Port, "port", "", "HTTP API port")
	flag.StringVar(&config.OrgName, "org", "Enterprise Client", "Organisation name for the report")
	flag.StringVar(&config.Context, "context", "", "Additional business context for the assessment")
	flag.StringVar(&config.ReportsDir, "out", "", "Directory to write reports to")
	flag.Parse()

	cfg, err := cfgPkg.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Command line flags win over the config file. Temperature is tracked by
	// flag.Visit so an explicit 0 survives the merge.
	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	return mergeConfig(config, cfg, setFlags), flag.Args()
}

func mergeConfig(config Config, cfg *cfgPkg.Config, setFlags map[string]bool) Config {
	if config.BaseURL == "" {
		config.BaseURL = cfg.LLM.BaseURL
	}
	if config.DBUrl == "" {
		config.DBUrl = cfg.Database.URL
	}
	if config.Model == "" {
		config.Model = cfg.LLM.Model
	}
	if !setFlags["temperature"] {
		config.Temperature = cfg.LLM.Temperature
	}
	if config.Port == "" {
		config.Port = cfg.Server.Port
	}
	if config.ReportsDir == "" {
		config.ReportsDir = cfg.Server.ReportsDir
	}

	config.EmbedModel = cfg.LLM.EmbedModel
	config.MaxTokens = cfg.LLM.MaxTokens
	config.Timeout = cfg.LLM.TimeoutSeconds
	config.RateLimit = cfg.LLM.RateLimit
	config.TableName = cfg.Database.TableName
	config.VectorDim = cfg.Database.VectorDim
	config.BatchSize = cfg.Database.BatchSize
	config.ChunkSize = cfg.Ingest.ChunkSize
	config.Overlap = cfg.Ingest.ChunkOverlap
	config.TopK = cfg.Retrieval.TopK
	config.Excerpt = cfg.Retrieval.ExcerptLength
	config.APIKey = cfg.Server.APIKey

	return config
}

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func run(config Config, paths []string) error {
	embedder, err := llm.NewEmbedder(llm.EmbedderConfig{
		Model:   config.EmbedModel,
		BaseURL: config.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize embedder: %v", err)
	}

	idx, err := index.New(index.Config{
		ConnString: config.DBUrl,
		TableName:  config.TableName,
		VectorDim:  config.VectorDim,
		BatchSize:  config.BatchSize,
	}, embedder)
	if err != nil {
		return fmt.Errorf("failed to initialize chunk index: %v", err)
	}
	defer idx.Close()

	generator, err := llm.NewGenerator(llm.GeneratorConfig{
		Model:       config.Model,
		Temperature: config.Temperature,
		MaxTokens:   config.MaxTokens,
		BaseURL:     config.BaseURL,
		Timeout:     time.Duration(config.Timeout) * time.Second,
		RateLimit:   config.RateLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize generator: %v", err)
	}

	status := pipeline.NewStatusStore()
	p := pipeline.New(idx, generator, pipeline.Config{
		ChunkSize:     config.ChunkSize,
		ChunkOverlap:  config.Overlap,
		TopK:          config.TopK,
		ExcerptLength: config.Excerpt,
	}, status)

	if config.Serve {
		return server.New(server.Config{
			Port:   config.Port,
			APIKey: config.APIKey,
		}, p, status, idx).ListenAndServe()
	}

	return assess(config, p, status, paths)
}

func assess(config Config, p *pipeline.Pipeline, status *pipeline.StatusStore, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no input documents: pass file paths as arguments or use -serve")
	}

	var files []pipeline.InputFile
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %v", path, err)
		}
		files = append(files, pipeline.InputFile{Name: filepath.Base(path), Data: data})
	}

	color.Cyan("\nAssessing %s (%d documents)\n", config.OrgName, len(files))

	sessionID := pipeline.NewSessionID()
	status.Create(sessionID)

	bar := getProgressBar(100, " Running assessment...")
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if s, ok := status.Get(sessionID); ok {
					bar.Set(s.Progress)
					bar.Describe(color.BlueString(" " + s.Step))
				}
			}
		}
	}()

	result, err := p.Run(context.Background(), sessionID, config.OrgName, config.Context, files)
	close(done)
	bar.Finish()
	fmt.Println()

	if err != nil {
		return fmt.Errorf("assessment failed: %v", err)
	}

	printSummary(result)

	jsonPath := filepath.Join(config.ReportsDir, result.ReportID+".json")
	if err := report.WriteJSON(result, jsonPath); err != nil {
		return fmt.Errorf("failed to write report: %v", err)
	}
	textPath := filepath.Join(config.ReportsDir, result.ReportID+".txt")
	if err := os.WriteFile(textPath, []byte(report.RenderText(result)), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %v", err)
	}

	color.Blue("\nReport written to %s and %s\n", jsonPath, textPath)
	return nil
}

func printSummary(r *models.AssessmentReport) {
	heading := color.New(color.FgCyan, color.Bold).PrintfFunc()

	heading("\n%s  AI Readiness %.1f/10 (%s)\n\n", r.OrganisationName, r.OverallScore, r.OverallMaturity)
	for _, ds := range r.DimensionScores {
		maturityColor(ds.MaturityLevel)("  %-28s %4.1f  %s\n", ds.Dimension, ds.Score, ds.MaturityLevel)
	}

	if len(r.CriticalBlockers) > 0 {
		color.Red("\nCritical blockers:")
		for _, b := range r.CriticalBlockers {
			fmt.Printf("  - %s\n", b)
		}
	}
	if len(r.QuickWins) > 0 {
		color.Green("\nQuick wins:")
		for _, w := range r.QuickWins {
			fmt.Printf("  - %s\n", w)
		}
	}
	fmt.Println()
	fmt.Println(wrapText(r.ExecutiveSummary, 80))
}

func maturityColor(level string) func(format string, a ...interface{}) {
	switch level {
	case "Nascent":
		return color.Red
	case "Emerging":
		return color.Yellow
	case "Developing":
		return color.Yellow
	case "Advanced":
		return color.Green
	case "Leading":
		return color.Blue
	default:
		return color.White
	}
}

func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}

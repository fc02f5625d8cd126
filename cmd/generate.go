package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/datphan/lawgen/internal/config"
	"github.com/datphan/lawgen/internal/dataset"
	"github.com/datphan/lawgen/internal/llm"
	"github.com/datphan/lawgen/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a Q/A dataset from a local model",
	Long: "Reads questions from a file (or synthesizes them with --auto/--infinite),\n" +
		"asks the configured model each one, and appends question,answer rows to a\n" +
		"CSV file. Interrupting with Ctrl+C drains in-flight requests and keeps\n" +
		"everything written so far.",
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	// Settings file first, then environment, then flags.
	cfgPath, _ := flags.GetString("config")
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		cfgPath = p
	}
	fileCfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	llmCfg := llm.DefaultConfig()
	applyFileConfig(&llmCfg, fileCfg)
	llmCfg.ApplyEnv()

	if flags.Changed("provider") {
		llmCfg.Provider, _ = flags.GetString("provider")
	}
	if flags.Changed("host") {
		host, _ := flags.GetString("host")
		llmCfg.Ollama.Host = host
		llmCfg.OpenAI.BaseURL = host + "/v1"
	}
	if flags.Changed("model") {
		model, _ := flags.GetString("model")
		llmCfg.Ollama.Model = model
		llmCfg.OpenAI.Model = model
	}

	retries, _ := flags.GetInt("retries")
	if !flags.Changed("retries") && fileCfg.Retries > 0 {
		retries = fileCfg.Retries
	}
	sleep, _ := flags.GetDuration("sleep")
	llmCfg.Retry = llm.RetryConfig{MaxRetries: retries, Sleep: sleep}

	if err := llmCfg.Validate(); err != nil {
		return err
	}

	dsCfg, err := buildDatasetConfig(cmd, fileCfg)
	if err != nil {
		return err
	}
	dsCfg.Sleep = sleep

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open request log: %w", err)
	}
	defer st.Close()

	runID := uuid.NewString()
	provider, err := llm.NewProvider(llmCfg, st.RequestLog(), runID)
	if err != nil {
		return err
	}

	source, total, err := buildSource(cmd, provider, dsCfg)
	if err != nil {
		return err
	}

	outPath, _ := flags.GetString("out")
	if outPath == "" {
		outPath = filepath.Join(fileCfg.OutDir,
			fmt.Sprintf("dataset_%s.csv", time.Now().Format("20060102_1504")))
	}
	writer, err := dataset.OpenWriter(outPath)
	if err != nil {
		return err
	}
	defer writer.Close()

	fmt.Printf("model:     %s\n", provider.ModelID())
	fmt.Printf("questions: %s\n", total)
	fmt.Printf("output:    %s\n", outPath)
	fmt.Printf("run:       %s\n", runID)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := dataset.NewRunner(provider, source, writer, dsCfg)
	stats, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("run aborted: %w", err)
	}

	if ctx.Err() != nil {
		fmt.Println("interrupted: in-flight requests drained, partial output kept")
	}
	fmt.Printf("done: %d rows written, %d skipped -> %s\n", stats.Written, stats.Skipped, outPath)
	return nil
}

// applyFileConfig overlays the settings file onto the provider config.
func applyFileConfig(cfg *llm.Config, f config.File) {
	if f.Provider != "" {
		cfg.Provider = f.Provider
	}
	if f.Host != "" {
		cfg.Ollama.Host = f.Host
		cfg.OpenAI.BaseURL = f.Host + "/v1"
	}
	if f.BaseURL != "" {
		cfg.OpenAI.BaseURL = f.BaseURL
	}
	if f.Model != "" {
		cfg.Ollama.Model = f.Model
		cfg.OpenAI.Model = f.Model
	}
}

// buildDatasetConfig assembles the run config from flags and the settings
// file. Flag defaults are overridden by the file only when the flag was
// not set explicitly.
func buildDatasetConfig(cmd *cobra.Command, fileCfg config.File) (dataset.Config, error) {
	flags := cmd.Flags()
	cfg := dataset.DefaultConfig()

	domainStr, _ := flags.GetString("domain")
	domain, err := dataset.ParseDomain(domainStr)
	if err != nil {
		return cfg, err
	}
	cfg.Domain = domain

	styleStr, _ := flags.GetString("style")
	style, err := dataset.ParseStyle(styleStr)
	if err != nil {
		return cfg, err
	}
	cfg.Style = style

	policyStr, _ := flags.GetString("on-bad-json")
	policy, err := dataset.ParseBadJSONPolicy(policyStr)
	if err != nil {
		return cfg, err
	}
	cfg.OnBadJSON = policy

	cfg.Structured, _ = flags.GetBool("structured")
	cfg.SystemPrompt, _ = flags.GetString("system")

	cfg.Workers, _ = flags.GetInt("workers")
	if !flags.Changed("workers") && fileCfg.Workers > 0 {
		cfg.Workers = fileCfg.Workers
	}

	cfg.Options.NumCtx = intFlagOr(flags.Changed("num-ctx"), flags, "num-ctx", fileCfg.Generation.NumCtx, cfg.Options.NumCtx)
	cfg.Options.Temperature = floatFlagOr(flags.Changed("temperature"), flags, "temperature", fileCfg.Generation.Temperature, cfg.Options.Temperature)
	cfg.Options.TopP = floatFlagOr(flags.Changed("top-p"), flags, "top-p", fileCfg.Generation.TopP, cfg.Options.TopP)
	cfg.Options.RepeatPenalty = floatFlagOr(flags.Changed("repeat-penalty"), flags, "repeat-penalty", fileCfg.Generation.RepeatPenalty, cfg.Options.RepeatPenalty)
	cfg.Options.Seed = intFlagOr(flags.Changed("seed"), flags, "seed", fileCfg.Generation.Seed, cfg.Options.Seed)

	return cfg, nil
}

func intFlagOr(changed bool, flags *pflag.FlagSet, name string, fileVal, def int) int {
	if changed {
		v, _ := flags.GetInt(name)
		return v
	}
	if fileVal != 0 {
		return fileVal
	}
	return def
}

func floatFlagOr(changed bool, flags *pflag.FlagSet, name string, fileVal, def float64) float64 {
	if changed {
		v, _ := flags.GetFloat64(name)
		return v
	}
	if fileVal != 0 {
		return fileVal
	}
	return def
}

// buildSource picks the question source for this run and returns a label
// describing how many questions it will produce.
func buildSource(cmd *cobra.Command, provider llm.Provider, cfg dataset.Config) (dataset.Source, string, error) {
	flags := cmd.Flags()
	infinite, _ := flags.GetBool("infinite")
	auto, _ := flags.GetInt("auto")

	if infinite {
		return dataset.NewSynthSource(provider, cfg.Domain, cfg.Options, 0),
			"unbounded (Ctrl+C to stop)", nil
	}
	if auto > 0 {
		return dataset.NewSynthSource(provider, cfg.Domain, cfg.Options, auto),
			fmt.Sprintf("%d (auto-generated)", auto), nil
	}

	path, _ := flags.GetString("questions")
	questions, err := dataset.ReadQuestionFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w\ncreate %s with one question per line, or use --auto N / --infinite", err, path)
	}
	if len(questions) == 0 {
		return nil, "", fmt.Errorf("no questions found in %s\nadd one question per line, or use --auto N / --infinite", path)
	}
	return dataset.NewListSource(questions), fmt.Sprintf("%d", len(questions)), nil
}

func init() {
	f := generateCmd.Flags()

	f.String("model", "llama3.1:8b", "Model name as pulled into the inference server")
	f.String("provider", "ollama", "Transport: ollama (native API) or openai (compatible endpoint)")
	f.String("host", llm.DefaultOllamaHost, "Inference server address")
	f.String("questions", "questions.txt", "Path to the questions file (one per line)")
	f.String("out", "", "Output CSV path (default: dataset_YYYYMMDD_HHMM.csv)")
	f.String("domain", "traffic", "Content domain: traffic or general")
	f.String("system", "", "System prompt override")
	f.Bool("structured", false, "Force the model to answer in JSON and render it")
	f.String("style", "plain", "Answer rendering: plain, markdown, or strict")
	f.String("on-bad-json", "fallback", "When a structured reply never parses: fallback (keep raw text) or skip")
	f.Int("retries", 1, "Extra attempts per request after the first one")
	f.Int("workers", 1, "Concurrent requests (2-4 recommended, 1 = sequential)")
	f.Int("auto", 0, "Synthesize N questions instead of reading --questions")
	f.Bool("infinite", false, "Keep synthesizing and answering until interrupted")
	f.Duration("sleep", 0, "Pause between dispatches and between retry attempts")

	f.Int("num-ctx", 4096, "Context window in tokens")
	f.Float64("temperature", 0.2, "Sampling temperature (0-1)")
	f.Float64("top-p", 0.9, "Nucleus sampling threshold (0-1)")
	f.Float64("repeat-penalty", 1.1, "Repetition penalty")
	f.Int("seed", 0, "Sampling seed (0 = random)")
}

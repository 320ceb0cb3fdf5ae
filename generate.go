package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"davinci_debate/generator"
	"davinci_debate/store"
)

var genOpts struct {
	inputPath   string
	outputPath  string
	numExamples int
	sleep       secondsDuration
	apiKey      string
	sampleSize  int
	seed        uint64
	noProgress  bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate more debate questions from a file of seed questions",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	genOpts.sleep = secondsDuration(10 * time.Second)

	f := generateCmd.Flags()
	f.StringVar(&genOpts.inputPath, "input-path", "", "path to JSONL file of seed questions")
	f.StringVar(&genOpts.outputPath, "output-path", "", "path to write output JSONL")
	f.IntVar(&genOpts.numExamples, "num-examples", 1000, "number of questions to generate")
	f.Var(&genOpts.sleep, "sleep", "time to sleep between queries (seconds or Go duration)")
	f.StringVar(&genOpts.apiKey, "openai-api-key", "", "OpenAI API key (default $OPENAI_API_KEY)")
	f.IntVar(&genOpts.sampleSize, "sample-size", generator.DefaultSampleSize, "seed questions shown to the model per request")
	f.Uint64Var(&genOpts.seed, "seed", 0, "random seed for sampling (0 picks one)")
	f.BoolVar(&genOpts.noProgress, "no-progress", false, "disable the progress bar")
	_ = generateCmd.MarkFlagRequired("input-path")
	_ = generateCmd.MarkFlagRequired("output-path")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	logger.Info("running", "args", os.Args)

	cfg, err := loadConfig(genOpts.apiKey)
	if err != nil {
		return err
	}
	llm, err := buildLLM(cfg.LLM)
	if err != nil {
		return err
	}

	logger.Info("reading already-generated questions", "path", genOpts.outputPath)
	already, err := store.ReadQuestionsIfExists(genOpts.outputPath)
	if err != nil {
		return err
	}
	accepted := generator.NewQuestionSet(already...)
	logger.Info("read already-generated questions", "count", accepted.Len())

	seedList, err := store.ReadQuestions(genOpts.inputPath)
	if err != nil {
		return err
	}
	seeds := generator.NewQuestionSet(seedList...)
	logger.Info("read seed questions", "path", genOpts.inputPath, "count", seeds.Len())

	var rng *rand.Rand
	if genOpts.seed != 0 {
		rng = rand.New(rand.NewPCG(genOpts.seed, genOpts.seed))
	}
	agent, err := generator.NewQuestionAgent(llm, genOpts.sampleSize, rng)
	if err != nil {
		return err
	}

	out, err := store.OpenAppender(genOpts.outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	params := generator.RunParams{
		Seeds:    seeds,
		Accepted: accepted,
		Target:   genOpts.numExamples,
		Producer: agent,
		Sink:     out,
		Delay:    time.Duration(genOpts.sleep),
		Logger:   logger,
	}
	if remaining := genOpts.numExamples - accepted.Len(); remaining > 0 && !genOpts.noProgress {
		bar := progressbar.Default(int64(remaining), "generating")
		defer bar.Finish()
		params.OnAccept = func(string) { _ = bar.Add(1) }
	}

	n, err := generator.Run(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("generation stopped after %d new questions: %w", n, err)
	}
	logger.Info("finished", "generated", n, "total", accepted.Len())
	return nil
}

// secondsDuration is a flag value accepting either a bare number of seconds or a Go duration.
type secondsDuration time.Duration

func (d *secondsDuration) String() string { return time.Duration(*d).String() }

func (d *secondsDuration) Type() string { return "duration" }

func (d *secondsDuration) Set(s string) error {
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		if secs < 0 {
			return fmt.Errorf("negative sleep %q", s)
		}
		*d = secondsDuration(secs * float64(time.Second))
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid sleep %q: want seconds or a duration like 500ms", s)
	}
	if v < 0 {
		return fmt.Errorf("negative sleep %q", s)
	}
	*d = secondsDuration(v)
	return nil
}

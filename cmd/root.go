package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spigell/ats-screener/internal/extraction"
	"github.com/spigell/ats-screener/internal/input"
	"github.com/spigell/ats-screener/internal/logger"
	"github.com/spigell/ats-screener/internal/ontology"
	"github.com/spigell/ats-screener/internal/requirements"
	"github.com/spigell/ats-screener/internal/scoring"
	"github.com/spigell/ats-screener/internal/screening"
	"github.com/spigell/ats-screener/internal/sections"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app       = "ats-screener"
	envPrefix = "ATS"
)

type Config struct {
	Scoring      scoring.Config               `mapstructure:"scoring"`
	SoftSkills   []string                     `mapstructure:"soft-skills"`
	Ontology     OntologyConfig               `mapstructure:"ontology"`
	Sections     sections.Config              `mapstructure:"sections"`
	Matching     extraction.Config            `mapstructure:"matching"`
	Batch        screening.Config             `mapstructure:"batch"`
	Requirements requirements.JobRequirements `mapstructure:"requirements"`
	Input        input.Limits                 `mapstructure:"input"`
	Debug        bool                         `mapstructure:"debug"`
	JSON         bool                         `mapstructure:"json"`
}

type OntologyConfig struct {
	// Extra entries are added to the built-in table. An entry with a known id replaces it.
	Extra []map[string]any `mapstructure:"extra"`
}

var (
	// Used for flags.
	cfgFile string

	validate = validator.New()

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ats-screener extracts skills from resumes and scores them against job requirements",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ats-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// .env is optional. Values from the real environment win.
	_ = godotenv.Load()

	setDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// Every setting has a default, so only an explicit or broken file is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

// setDefaults registers scalar defaults. Lists are filled after decoding so
// a configured list replaces the default one instead of merging into it.
func setDefaults() {
	scoringCfg := scoring.DefaultConfig()
	viper.SetDefault("scoring.weights.experience", scoringCfg.Weights.Experience)
	viper.SetDefault("scoring.weights.skills", scoringCfg.Weights.Skills)
	viper.SetDefault("scoring.weights.specific", scoringCfg.Weights.Specific)
	viper.SetDefault("scoring.weights.required", scoringCfg.Weights.Required)
	viper.SetDefault("scoring.weights.preferred", scoringCfg.Weights.Preferred)
	viper.SetDefault("scoring.required-target", scoringCfg.RequiredTarget)
	viper.SetDefault("scoring.comprehensive-skills", scoringCfg.ComprehensiveSkills)

	matching := extraction.DefaultConfig()
	viper.SetDefault("matching.word-threshold", matching.WordThreshold)
	viper.SetDefault("matching.phrase-threshold", matching.PhraseThreshold)
	viper.SetDefault("matching.min-word-length", matching.MinWordLength)
	viper.SetDefault("matching.candidate-limit", matching.CandidateLimit)
	viper.SetDefault("matching.short-variation", matching.ShortVariation)

	batch := screening.DefaultConfig()
	viper.SetDefault("batch.workers", batch.Workers)
	viper.SetDefault("batch.timeout", batch.Timeout)
	viper.SetDefault("batch.minimum-score", batch.MinimumScore)

	viper.SetDefault("requirements.experience-years", requirements.Defaults().ExperienceYears)

	limits := input.DefaultLimits()
	viper.SetDefault("input.min-length", limits.MinLength)
	viper.SetDefault("input.max-length", limits.MaxLength)
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	applyListDefaults(config)

	if err := validate.Struct(config); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func applyListDefaults(config *Config) {
	if len(config.Scoring.Rules) == 0 {
		config.Scoring.Rules = scoring.DefaultRules()
	}
	if len(config.Scoring.Highlights) == 0 {
		config.Scoring.Highlights = scoring.DefaultHighlights()
	}
	if len(config.SoftSkills) == 0 {
		config.SoftSkills = ontology.DefaultSoftSkills()
	}
	if len(config.Sections.Headers) == 0 {
		config.Sections.Headers = sections.DefaultHeaders()
	}

	defaults := requirements.Defaults()
	if len(config.Requirements.RequiredSkills) == 0 {
		config.Requirements.RequiredSkills = defaults.RequiredSkills
	}
	if len(config.Requirements.PreferredSkills) == 0 {
		config.Requirements.PreferredSkills = defaults.PreferredSkills
	}
}

// engine holds the components built from one config.
type engine struct {
	ontology     *ontology.Ontology
	extractor    *extraction.Extractor
	analyzer     *sections.Analyzer
	scorer       *scoring.Scorer
	screener     *screening.Screener
	loader       *input.Loader
	requirements requirements.JobRequirements
}

func newEngine(config *Config, log *zap.Logger) (*engine, error) {
	extra, err := ontology.DecodeEntries(config.Ontology.Extra)
	if err != nil {
		return nil, fmt.Errorf("decoding ontology.extra: %w", err)
	}

	o, err := ontology.New(ontology.Merge(ontology.DefaultEntries(), extra), config.SoftSkills)
	if err != nil {
		return nil, fmt.Errorf("building ontology: %w", err)
	}

	extractor := extraction.New(o, config.Matching, log.Named("extraction"))
	analyzer := sections.New(config.Sections, log.Named("sections"))

	scorer, err := scoring.New(config.Scoring, log.Named("scoring"))
	if err != nil {
		return nil, fmt.Errorf("building scorer: %w", err)
	}

	if unknown := scorer.Rules().Unknown(o); len(unknown) > 0 {
		log.Warn("checklist references skills missing from the ontology", zap.Strings("skills", unknown))
	}

	screener, err := screening.New(analyzer, extractor, scorer, config.Batch, log.Named("screening"))
	if err != nil {
		return nil, fmt.Errorf("building screener: %w", err)
	}

	reqs := config.Requirements.Normalized()
	if err := reqs.Validate(); err != nil {
		return nil, fmt.Errorf("default requirements: %w", err)
	}

	return &engine{
		ontology:     o,
		extractor:    extractor,
		analyzer:     analyzer,
		scorer:       scorer,
		screener:     screener,
		loader:       input.NewLoader(config.Input, log.Named("input")),
		requirements: reqs,
	}, nil
}

// setup builds the logger, config and engine shared by the commands.
func setup() (*zap.Logger, *Config, *engine) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	e, err := newEngine(config, logger)
	if err != nil {
		logger.Fatal("building the engine", zap.Error(err))
	}

	logger.Debug("engine ready",
		zap.String("version", version),
		zap.Int("skills", e.ontology.Len()),
		zap.Int("rules", e.scorer.Rules().Len()),
	)

	return logger, config, e
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	sc "spellcheck/internal/corrector"
	"spellcheck/internal/customdict"
	"spellcheck/pkg/options"
)

type fileConfig struct {
	WindowSize       int     `yaml:"window_size"`
	FallbackFactor   float64 `yaml:"fallback_factor"`
	PenaltyHigh      float64 `yaml:"penalty_high"`
	TargetBrokenRate float64 `yaml:"target_broken_rate"`
	HoldoutFraction  float64 `yaml:"holdout_fraction"`
	HoldoutCap       int     `yaml:"holdout_cap"`
}

func loadOptions(configPath string, logger *zap.Logger) ([]options.Options, error) {
	opts := []options.Options{options.WithLogger(logger)}
	if configPath == "" {
		return opts, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", configPath, err)
	}
	if fc.WindowSize > 0 {
		opts = append(opts, options.WithWindowSize(fc.WindowSize))
	}
	if fc.FallbackFactor > 0 {
		opts = append(opts, options.WithFallbackFactor(fc.FallbackFactor))
	}
	if fc.PenaltyHigh > 0 {
		opts = append(opts, options.WithPenaltyBounds(0, fc.PenaltyHigh))
	}
	if fc.TargetBrokenRate > 0 {
		opts = append(opts, options.WithTargetBrokenRate(fc.TargetBrokenRate))
	}
	if fc.HoldoutFraction > 0 {
		limit := fc.HoldoutCap
		if limit == 0 {
			limit = options.DefaultOptions.HoldoutCap
		}
		opts = append(opts, options.WithHoldout(fc.HoldoutFraction, limit))
	}
	return opts, nil
}

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	var configPath string
	var modelPath string

	root := &cobra.Command{
		Use:           "spellcheck",
		Short:         "Statistical context-aware spell corrector",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file with corrector settings")

	var corpusPath, alphabetPath string
	train := &cobra.Command{
		Use:   "train",
		Short: "Train a language model and tune the penalty",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(configPath, logger)
			if err != nil {
				return err
			}
			corrector := sc.New(nil, opts...)
			if err := corrector.TrainLangModel(corpusPath, alphabetPath); err != nil {
				return err
			}
			return corrector.SaveLangModel(modelPath)
		},
	}
	train.Flags().StringVarP(&corpusPath, "input", "i", "", "UTF-8 training corpus")
	train.Flags().StringVarP(&alphabetPath, "alphabet", "a", "", "alphabet file")
	train.Flags().StringVarP(&modelPath, "output", "o", "model.bin", "output model file")
	train.MarkFlagRequired("input")
	train.MarkFlagRequired("alphabet")

	var normalized bool
	correct := &cobra.Command{
		Use:   "correct [text...]",
		Short: "Correct text from arguments or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(configPath, logger)
			if err != nil {
				return err
			}
			corrector := sc.New(nil, opts...)
			if err := corrector.LoadLangModel(modelPath); err != nil {
				return err
			}
			text := strings.Join(args, " ")
			if text == "" {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return err
				}
				text = string(data)
			}
			if normalized {
				fmt.Println(corrector.FixFragmentNormalized(text))
			} else {
				fmt.Println(corrector.FixFragment(text))
			}
			return nil
		},
	}
	correct.Flags().StringVarP(&modelPath, "model", "m", "model.bin", "model file")
	correct.Flags().BoolVar(&normalized, "normalized", false, "emit normalized space-joined output")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the correction API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(configPath, modelPath, logger)
		},
	}
	serve.Flags().StringVarP(&modelPath, "model", "m", "model.bin", "model file")

	root.AddCommand(train, correct, serve)
	if err := root.Execute(); err != nil {
		logger.Sugar().Fatalf("%v", err)
	}
}

func runServer(configPath, modelPath string, logger *zap.Logger) error {
	godotenv.Load()
	log := logger.Sugar()

	client := redis.NewClient(&redis.Options{
		Addr:     getenv("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getEnvInt("REDIS_DB", 0),
	})
	dict := customdict.New(client, os.Getenv("CUSTOM_DICT_KEY"))

	opts, err := loadOptions(configPath, logger)
	if err != nil {
		return err
	}
	corrector := sc.New(dict, opts...)
	if err := corrector.LoadLangModel(modelPath); err != nil {
		return err
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/correct", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid request"})
			return
		}
		res := corrector.Correct(req.Text)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(res)
	})

	mux.HandleFunc("/api/v1/custom-word", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Word string `json:"word"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Word) == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid request"})
			return
		}
		if err := corrector.AddCustomWord(req.Word); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/api/v1/custom-word/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.NotFound(w, r)
			return
		}
		word := strings.TrimPrefix(r.URL.Path, "/api/v1/custom-word/")
		if word == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "word is required"})
			return
		}
		if err := corrector.RemoveCustomWord(word); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	addr := getenv("HTTP_ADDR", ":8080")
	log.Infof("listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tanakalajayanth/sairam-quotation/internal/config"
	"github.com/tanakalajayanth/sairam-quotation/internal/document"
	"github.com/tanakalajayanth/sairam-quotation/internal/logger"
)

// env is what every document command needs: config and a logger.
type env struct {
	cfg     *config.Config
	cfgDir  string
	log     *zap.Logger
	profile document.Profile
}

func loadEnv(opts *rootOptions) (*env, error) {
	cfg, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("checking config: %w", err)
	}

	lc := logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}
	if opts.logLevel != "" {
		lc.Level = opts.logLevel
	}
	log, err := logger.New(lc)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	return &env{
		cfg:     cfg,
		cfgDir:  filepath.Dir(opts.configPath),
		log:     log,
		profile: profileFrom(cfg),
	}, nil
}

// outputDir resolves the export directory: the flag if set, else the
// configured one relative to the config file.
func (e *env) outputDir(flag string) string {
	if flag != "" {
		return flag
	}
	dir := e.cfg.Export.OutputDir
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(e.cfgDir, dir)
}

func (e *env) close() {
	_ = e.log.Sync()
}

func profileFrom(cfg *config.Config) document.Profile {
	return document.Profile{
		Business: document.Business{
			Name:    cfg.Business.Name,
			Tagline: cfg.Business.Tagline,
			Address: cfg.Business.Address,
			Phone:   cfg.Business.Phone,
			Email:   cfg.Business.Email,
		},
		Title:          cfg.Document.Title,
		EstimatePrefix: cfg.Document.EstimatePrefix,
		EstimateSeq:    cfg.Document.EstimateSeq,
		Notes:          cfg.Document.Notes,
		PageWidthMM:    cfg.Export.PageWidthMM,
		PageHeightMM:   cfg.Export.PageHeightMM,
	}
}

// withEnv wraps a RunE that needs the loaded environment.
func withEnv(opts *rootOptions, fn func(cmd *cobra.Command, args []string, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(opts)
		if err != nil {
			return err
		}
		defer e.close()
		return fn(cmd, args, e)
	}
}

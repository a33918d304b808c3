package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/algebrix/algebrix/internal/config"
	"github.com/algebrix/algebrix/internal/equation"
	"github.com/algebrix/algebrix/internal/llm"
	"github.com/algebrix/algebrix/internal/logger"
	"github.com/algebrix/algebrix/internal/store"
	"github.com/algebrix/algebrix/internal/tutor"
)

// deps holds everything a tutor front end needs.
type deps struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
	tutor  *tutor.Service
	close  func()
}

// loadCatalog returns the configured catalog, or the embedded one.
func loadCatalog(cfg *config.Config) (*equation.Catalog, error) {
	if cfg.Catalog.Path != "" {
		return equation.LoadFile(cfg.Catalog.Path)
	}
	return equation.Default()
}

// buildDeps wires config, logging, storage, the optional LLM provider and
// the tutor service. console controls whether logs also go to stderr.
func buildDeps(cmd *cobra.Command, console bool, observer tutor.Observer) (*deps, error) {
	ctx := cmd.Context()

	cfg, st, err := openStore(cmd)
	if err != nil {
		return nil, err
	}

	log, closeLog, err := logger.New(logger.Options{
		Level:   cfg.Log.Level,
		Dir:     cfg.Log.Dir,
		Console: console,
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cleanup := func() {
		st.Close()
		closeLog()
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	log.Info("catalog loaded",
		zap.String("version", catalog.Version()),
		zap.Int("linear", catalog.Len(equation.KindLinear)),
		zap.Int("quadratic", catalog.Len(equation.KindQuadratic)))
	if cfg.File != "" {
		log.Info("config loaded", zap.String("file", cfg.File))
	}

	opts := tutor.Options{
		HintThreshold: cfg.Tutor.HintThreshold,
		RootTolerance: &cfg.Tutor.RootTolerance,
		Resume:        cfg.Tutor.Resume,
		Events:        st.EventRepo(),
		Snapshots:     st.SnapshotRepo(),
		Observer:      observer,
		Logger:        log,
	}

	// Explanations are optional; the tutor works without a provider.
	if cfg.LLMEnabled() {
		provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), log)
		if err != nil {
			log.Warn("LLM provider unavailable, explanations disabled", zap.Error(err))
		} else {
			log.Info("LLM provider ready",
				zap.String("provider", provider.Name()),
				zap.String("model", provider.ModelID()))
			opts.Provider = provider
		}
	}

	return &deps{
		cfg:    cfg,
		logger: log,
		store:  st,
		tutor:  tutor.New(catalog, opts),
		close:  cleanup,
	}, nil
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/vkotov/fundlens/internal/cache"
	"github.com/vkotov/fundlens/internal/classify"
	"github.com/vkotov/fundlens/internal/llm"
	"github.com/vkotov/fundlens/internal/model"
	"github.com/vkotov/fundlens/internal/provider"
	"github.com/vkotov/fundlens/internal/reconcile"
	"github.com/vkotov/fundlens/internal/research"
	"github.com/vkotov/fundlens/internal/store"
)

// app wires the full dependency graph for a single command invocation.
// Everything is constructed here and passed down; no package-level state.
type app struct {
	cfg        *model.Config
	store      *store.Store
	classifier *classify.Classifier
	reconciler *reconcile.Reconciler
	llm        llm.Provider
	provider   provider.DataProvider
}

// newApp builds the application from config, loading persisted state
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	st := store.NewStore(store.NewFilePersister(cfg.Storage.DataDir))
	if err := st.Load(); err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}

	classifier := classify.NewClassifier(&cfg.Classify, &cfg.Trust)
	reconciler := reconcile.NewReconciler(classifier, &cfg.Reconcile)

	a := &app{
		cfg:        cfg,
		store:      st,
		classifier: classifier,
		reconciler: reconciler,
	}

	if demo {
		a.provider = provider.NewFixtureProvider(classifier)
		return a, nil
	}

	llmProvider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("init LLM provider: %w", err)
	}
	a.llm = llmProvider

	if llmProvider != nil {
		a.provider = provider.NewLLMProvider(llmProvider, classifier, a.newFetcher())
	}
	return a, nil
}

// newFetcher builds the polite page fetcher, with caching when enabled
func (a *app) newFetcher() *provider.PageFetcher {
	var pageCache cache.Cache
	if a.cfg.Cache.Enabled {
		dir := a.cfg.Cache.Dir
		if dir == "" {
			dir = filepath.Join(a.cfg.Storage.DataDir, "cache")
		}
		pageCache = cache.NewLayered(
			cache.NewMemory(a.cfg.Cache.TTL),
			cache.NewDisk(dir, a.cfg.Cache.TTL),
		)
	}
	return provider.NewPageFetcher(a.cfg.HTTP, a.cfg.Concurrency, pageCache)
}

// newValidator builds the validation orchestrator, or errors when no data
// provider is available (no LLM configured and not in demo mode)
func (a *app) newValidator() (*research.Validator, error) {
	if a.provider == nil {
		return nil, fmt.Errorf("no data provider available: set llm.provider in config or use --demo")
	}
	return research.NewValidator(a.provider, a.reconciler, a.store, 2*time.Minute, a.cfg.Output.Verbose || verbose), nil
}

// loadConfig merges defaults, config file, and environment
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return cfg, nil
}

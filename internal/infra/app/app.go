package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arklim/steam-friend-adder/internal/core/domain"
	"github.com/arklim/steam-friend-adder/internal/core/port"
	"github.com/arklim/steam-friend-adder/internal/infra/config"
	"github.com/arklim/steam-friend-adder/internal/infra/logger"
	redisinfra "github.com/arklim/steam-friend-adder/internal/infra/redis"
	memoryrepo "github.com/arklim/steam-friend-adder/internal/repository/memory"
	redisrepo "github.com/arklim/steam-friend-adder/internal/repository/redis"
	"github.com/arklim/steam-friend-adder/internal/repository/steamapi"
	"github.com/arklim/steam-friend-adder/internal/repository/textfile"
	"github.com/arklim/steam-friend-adder/internal/transport/cli"
	"github.com/arklim/steam-friend-adder/internal/usecase"
)

type Application struct {
	cfg      *config.AppConfig
	logger   *zap.Logger
	redis    *redisinfra.Client
	prompter *cli.Prompter

	validator *usecase.IdentityValidator
	selector  *usecase.CandidateSelector
	batch     *usecase.BatchProcessor
	selfID    domain.SteamID
}

// New resolves credentials (environment first, interactive prompt second) and
// wires the rate limiter, API client and usecases.
func New(_ context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log = log.With(zap.String("run_id", uuid.NewString()))

	prompter := cli.NewPrompter(os.Stdin, os.Stdout)

	apiKey, selfID, err := resolveCredentials(cfg, prompter)
	if err != nil {
		return nil, err
	}

	log.Info("configured",
		zap.String("api_key", logger.MaskString(apiKey)),
		zap.String("steam_id", selfID.String()),
	)

	var store port.RateLimitStore
	var redisClient *redisinfra.Client
	if cfg.RateLimit.Store == "redis" {
		redisClient, err = redisinfra.NewClient(cfg.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("init redis: %w", err)
		}
		store = redisrepo.NewRateWindow(redisClient.Client(), redisrepo.WindowConfig{
			KeyPrefix: cfg.RateLimit.KeyPrefix,
			TTL:       cfg.RateLimit.TTL,
		})
	} else {
		store = memoryrepo.NewRateWindow()
	}

	limiter := usecase.NewSlidingWindowLimiter(store, cfg.RateLimit.WindowDuration, cfg.RateLimit.MaxRequests, log)

	client := steamapi.NewClient(steamapi.Config{
		BaseURL: cfg.Steam.APIBase,
		APIKey:  apiKey,
		Timeout: cfg.Steam.RequestTimeout,
	}, limiter, log)

	validator := usecase.NewIdentityValidator(client, log)
	selector := usecase.NewCandidateSelector(client, log)
	sender := steamapi.NewStubFriendRequestSender(log)
	batch := usecase.NewBatchProcessor(validator, sender, cfg.Batch.ItemDelay, cfg.Batch.CommentPrefix, log)

	return &Application{
		cfg:       cfg,
		logger:    log,
		redis:     redisClient,
		prompter:  prompter,
		validator: validator,
		selector:  selector,
		batch:     batch,
		selfID:    selfID,
	}, nil
}

func resolveCredentials(cfg *config.AppConfig, prompter *cli.Prompter) (string, domain.SteamID, error) {
	apiKey := strings.TrimSpace(cfg.Steam.APIKey)
	if apiKey == "" {
		prompter.Say(
			"",
			"You need a Steam Web API key to use this tool.",
			"Get your API key from: https://steamcommunity.com/dev/apikey",
			"",
		)
		key, err := prompter.Ask("Enter your Steam Web API key: ")
		if err != nil {
			return "", "", err
		}
		apiKey = key
	}

	rawID := strings.TrimSpace(cfg.Steam.SteamID)
	if rawID == "" {
		prompter.Say(
			"",
			"Enter your Steam ID (the account that will send friend requests).",
			"Find your Steam ID at: https://steamid.io/",
			"",
		)
		id, err := prompter.Ask("Enter your Steam ID: ")
		if err != nil {
			return "", "", err
		}
		rawID = id
	}

	if apiKey == "" || rawID == "" {
		return "", "", errors.New("api key and steam id are required")
	}

	return apiKey, domain.SteamID(rawID), nil
}

// Run executes one interactive processing run and returns its terminal error,
// if any.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()

	a.prompter.Say(
		"",
		"Choose operation mode:",
		"1. Add friends from a file",
		"2. Add all friends of a specific user",
		"",
	)
	mode, err := a.prompter.Ask("Enter your choice (1 or 2): ")
	if err != nil {
		return err
	}

	var result domain.BatchResult
	if mode == "2" {
		result, err = a.runTargetMode(ctx)
	} else {
		result, err = a.runFileMode(ctx)
	}
	if err != nil {
		return err
	}
	if result.Err != nil {
		return fmt.Errorf("batch aborted: %w", result.Err)
	}

	a.prompter.Say("", "Processing complete.")

	return nil
}

func (a *Application) runFileMode(ctx context.Context) (domain.BatchResult, error) {
	path, err := a.prompter.Ask(fmt.Sprintf("Enter Steam IDs file path (press Enter for %s): ", a.cfg.Batch.InputFile))
	if err != nil {
		return domain.BatchResult{}, err
	}
	if path == "" {
		path = a.cfg.Batch.InputFile
	}
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return domain.BatchResult{}, fmt.Errorf("resolve working directory: %w", err)
		}
		path = filepath.Join(wd, path)
	}

	source, err := textfile.Open(path)
	if err != nil {
		a.logger.Error("input file not usable", zap.String("path", path), zap.Error(err))
		return domain.BatchResult{}, err
	}
	defer source.Close()

	a.logger.Info("processing steam ids from file", zap.String("path", path))

	return a.batch.Run(ctx, source), nil
}

func (a *Application) runTargetMode(ctx context.Context) (domain.BatchResult, error) {
	target, err := a.prompter.Ask("Enter the Steam ID of the user whose friends you want to add: ")
	if err != nil {
		return domain.BatchResult{}, err
	}
	if target == "" {
		return domain.BatchResult{}, errors.New("steam id is required")
	}

	outcome := a.validator.Validate(ctx, target)
	if !outcome.Valid() {
		return domain.BatchResult{}, fmt.Errorf("invalid target steam id: %s", outcome.Reason)
	}

	a.logger.Info("adding friends of user", zap.String("steam_id", target))

	candidates, err := a.selector.Select(ctx, a.selfID, domain.SteamID(target))
	if err != nil {
		return domain.BatchResult{}, err
	}
	if len(candidates) == 0 {
		a.logger.Info("no new friends to add; all of the target's friends are already yours")
		return domain.BatchResult{}, nil
	}

	return a.batch.Run(ctx, usecase.NewSteamIDSource(candidates)), nil
}

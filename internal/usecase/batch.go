package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/arklim/steam-friend-adder/internal/core/domain"
	"github.com/arklim/steam-friend-adder/internal/core/port"
)

// BatchProcessor drives one sequential friend-request run over a line source.
// Items are never processed concurrently; between items it paces at a fixed
// interval independent of the API rate limiter, guarding the downstream
// friend-request action.
type BatchProcessor struct {
	validator     *IdentityValidator
	sender        port.FriendRequestSender
	pacer         *rate.Limiter
	commentPrefix string
	logger        *zap.Logger
}

// NewBatchProcessor constructs a processor pacing one item per itemDelay.
func NewBatchProcessor(validator *IdentityValidator, sender port.FriendRequestSender, itemDelay time.Duration, commentPrefix string, logger *zap.Logger) *BatchProcessor {
	if itemDelay <= 0 {
		itemDelay = time.Second
	}
	if commentPrefix == "" {
		commentPrefix = "#"
	}

	pacer := rate.NewLimiter(rate.Every(itemDelay), 1)
	// Start drained so the pause applies after the first item too.
	pacer.Allow()

	return &BatchProcessor{
		validator:     validator,
		sender:        sender,
		pacer:         pacer,
		commentPrefix: commentPrefix,
		logger:        logger,
	}
}

// Run consumes the source to exhaustion, classifying every item into the
// result counters. Per-item failures never abort the run; only a fatal source
// read error or cancellation does, and even then the counters accumulated so
// far are returned with Err set.
func (p *BatchProcessor) Run(ctx context.Context, source port.LineSource) domain.BatchResult {
	var result domain.BatchResult
	defer func() { p.logSummary(result) }()

	for {
		if err := ctx.Err(); err != nil {
			result.Err = err
			return result
		}

		line, err := source.Next()
		if errors.Is(err, io.EOF) {
			return result
		}
		if err != nil {
			p.logger.Error("reading input failed", zap.Error(err))
			result.Err = err
			return result
		}

		raw := strings.TrimSpace(line)
		if raw == "" || strings.HasPrefix(raw, p.commentPrefix) {
			result.Skipped++
			continue
		}

		result.Total++
		p.logger.Info("processing steam id",
			zap.Int("item", result.Total),
			zap.String("steam_id", raw),
		)
		p.processItem(ctx, raw, &result)

		if err := p.pacer.Wait(ctx); err != nil {
			result.Err = err
			return result
		}
	}
}

func (p *BatchProcessor) processItem(ctx context.Context, raw string, result *domain.BatchResult) {
	outcome := p.validator.Validate(ctx, raw)
	switch {
	case outcome.Valid():
		if err := p.sender.SendFriendRequest(ctx, domain.SteamID(raw)); err != nil {
			result.Failed++
			p.logger.Error("✗ FAILED", zap.String("steam_id", raw), zap.Error(err))
			return
		}
		result.Success++
		p.logger.Info("✓ SUCCESS", zap.String("steam_id", raw))
	case outcome.Invalid():
		result.Invalid++
		p.logger.Error("✗ INVALID", zap.String("steam_id", raw), zap.String("reason", outcome.Reason))
	default:
		result.Failed++
		p.logger.Error("✗ FAILED", zap.String("steam_id", raw), zap.String("reason", outcome.Reason))
	}
}

func (p *BatchProcessor) logSummary(result domain.BatchResult) {
	p.logger.Info("batch summary",
		zap.Int("total", result.Total),
		zap.Int("success", result.Success),
		zap.Int("failed", result.Failed),
		zap.Int("invalid", result.Invalid),
		zap.Int("skipped", result.Skipped),
	)
}

// SteamIDSource adapts an already-selected candidate list to the line source
// port. Candidate ids are never blank, so nothing from it is ever skipped.
type SteamIDSource struct {
	ids []domain.SteamID
	pos int
}

// NewSteamIDSource wraps the given ids.
func NewSteamIDSource(ids []domain.SteamID) *SteamIDSource {
	return &SteamIDSource{ids: ids}
}

// Next returns the next id, or io.EOF when exhausted.
func (s *SteamIDSource) Next() (string, error) {
	if s.pos >= len(s.ids) {
		return "", io.EOF
	}
	id := s.ids[s.pos]
	s.pos++
	return id.String(), nil
}

var _ port.LineSource = (*SteamIDSource)(nil)

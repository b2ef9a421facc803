// Package pipeline coordinates the incremental batch runs.
// Flow per process: watermark → paginated fetch → transform → upsert → advance
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"tradebot-pipeline/internal/domain"
	"tradebot-pipeline/internal/observability"
	"tradebot-pipeline/internal/retry"
	"tradebot-pipeline/internal/storage"
	"tradebot-pipeline/internal/transform"
)

// MetadataResolver resolves token symbol/name for mint addresses.
// Implemented by helius.Client.
type MetadataResolver interface {
	Resolve(ctx context.Context, mints []string) []domain.TokenMetadata
}

// Runner executes the named pipeline processes.
type Runner struct {
	tracker  storage.TrackerStore
	raw      storage.RawStore
	cleanOpp storage.CleanOpportunityStore
	cleanCI  storage.CleanCoinInfoStore
	arbs     storage.ProcessedArbStore
	bts      storage.ProcessedBTSStore
	metadata MetadataResolver

	retry     retry.Policy
	batchSize int
	log       *logrus.Logger
}

// Options for creating a Runner.
type Options struct {
	// Required stores
	TrackerStore          storage.TrackerStore
	RawStore              storage.RawStore
	CleanOpportunityStore storage.CleanOpportunityStore
	CleanCoinInfoStore    storage.CleanCoinInfoStore
	ProcessedArbStore     storage.ProcessedArbStore
	ProcessedBTSStore     storage.ProcessedBTSStore

	// Metadata is only needed by process_bts.
	Metadata MetadataResolver

	Retry     retry.Policy
	BatchSize int
	Log       *logrus.Logger
}

// New creates a new Runner.
func New(opts Options) *Runner {
	if opts.BatchSize < 1 {
		opts.BatchSize = 1000
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{
		tracker:   opts.TrackerStore,
		raw:       opts.RawStore,
		cleanOpp:  opts.CleanOpportunityStore,
		cleanCI:   opts.CleanCoinInfoStore,
		arbs:      opts.ProcessedArbStore,
		bts:       opts.ProcessedBTSStore,
		metadata:  opts.Metadata,
		retry:     opts.Retry,
		batchSize: opts.BatchSize,
		log:       log,
	}
}

// Summary reports what one process run did.
type Summary struct {
	Process  string
	Batches  int
	Fetched  int64
	Written  int64
	Skipped  int64
	LastID   int64
	Duration time.Duration
}

// Run executes one named process to exhaustion of its source table.
func (r *Runner) Run(ctx context.Context, process string) (*Summary, error) {
	switch process {
	case CleanCoinInfo:
		return r.runLoop(ctx, process, tableCoinInfo, r.cleanCoinInfoBatch)
	case CleanOpportunity:
		return r.runLoop(ctx, process, tableOpportunity, r.cleanOpportunityBatch)
	case ProcessBTS:
		return r.runLoop(ctx, process, tableBTS, r.processBTSBatch)
	case ProcessArb:
		return r.runLoop(ctx, process, tableArb, r.processArbBatch)
	default:
		return nil, fmt.Errorf("unknown process %q", process)
	}
}

// RunAll executes every process in Order. A failed process is reported
// and the run moves on to the next one; the combined error is returned
// alongside the summaries of all processes that ran.
func (r *Runner) RunAll(ctx context.Context) ([]*Summary, error) {
	var summaries []*Summary
	var errs []error

	for _, process := range Order {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		sum, err := r.Run(ctx, process)
		if sum != nil {
			summaries = append(summaries, sum)
		}
		if err != nil {
			r.log.WithError(err).WithField("process", process).Error("process failed, continuing")
			errs = append(errs, fmt.Errorf("%s: %w", process, err))
		}
	}

	return summaries, errors.Join(errs...)
}

// batchFn processes one page above afterID. maxID is the highest
// source id seen in the page, 0 when the page was empty.
type batchFn func(ctx context.Context, afterID int64) (fetched int, written, skipped, maxID int64, err error)

func (r *Runner) runLoop(ctx context.Context, process, table string, step batchFn) (*Summary, error) {
	start := time.Now()
	sum := &Summary{Process: process}
	plog := r.log.WithField("process", process)

	watermark := r.watermark(ctx, table)
	sum.LastID = watermark
	plog.WithField("watermark", watermark).Info("starting process")

	for {
		fetched, written, skipped, maxID, err := step(ctx, watermark)
		if err != nil {
			sum.Duration = time.Since(start)
			observability.RecordRun(process, "failure", sum.Duration.Seconds())
			return sum, err
		}
		if fetched == 0 {
			break
		}

		sum.Batches++
		sum.Fetched += int64(fetched)
		sum.Written += written
		sum.Skipped += skipped
		observability.RecordBatch(process, fetched)
		observability.RecordWritten(process, written)

		if maxID < watermark {
			plog.WithFields(logrus.Fields{
				"watermark": watermark,
				"batch_max": maxID,
			}).Warn("batch max id behind watermark, not advancing")
		} else if maxID > watermark {
			advErr := r.retry.Do(ctx, "advance "+table, func() error {
				return r.tracker.Advance(ctx, table, maxID)
			})
			if advErr != nil {
				sum.Duration = time.Since(start)
				observability.RecordRun(process, "failure", sum.Duration.Seconds())
				return sum, fmt.Errorf("advance %s watermark: %w", table, advErr)
			}
			watermark = maxID
			sum.LastID = watermark
			observability.UpdateWatermark(table, watermark)
		}

		if fetched < r.batchSize {
			break
		}
	}

	sum.Duration = time.Since(start)
	observability.RecordRun(process, "success", sum.Duration.Seconds())
	observability.DefaultMetrics.LastSuccessfulRun.WithLabelValues(process).SetToCurrentTime()
	plog.WithFields(logrus.Fields{
		"batches":  sum.Batches,
		"fetched":  sum.Fetched,
		"written":  sum.Written,
		"skipped":  sum.Skipped,
		"last_id":  sum.LastID,
		"duration": sum.Duration.String(),
	}).Info("process finished")
	return sum, nil
}

// watermark reads the tracker fail-soft: an unreadable tracker means a
// resume from 0, which the row_hash conflict arbiter makes safe.
func (r *Runner) watermark(ctx context.Context, table string) int64 {
	id, err := r.tracker.Watermark(ctx, table)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.WithError(err).WithField("table", table).
				Warn("tracker read failed, resuming from 0")
		}
		return 0
	}
	return id
}

func (r *Runner) cleanOpportunityBatch(ctx context.Context, afterID int64) (int, int64, int64, int64, error) {
	var raw []*domain.Opportunity
	err := r.retry.Do(ctx, "fetch arbopportunity", func() error {
		var ferr error
		raw, ferr = r.raw.FetchOpportunities(ctx, afterID, r.batchSize)
		return ferr
	})
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("fetch arbopportunity: %w", err)
	}
	if len(raw) == 0 {
		return 0, 0, 0, 0, nil
	}

	rows := make([]*domain.CleanOpportunity, 0, len(raw))
	for _, op := range raw {
		rows = append(rows, transform.CleanOpportunity(op))
	}

	written, err := r.upsert(ctx, "insert clean_arb_opportunity", func() (int64, error) {
		return r.cleanOpp.UpsertBatch(ctx, rows)
	})
	if err != nil {
		return 0, 0, 0, 0, err
	}

	skipped := int64(len(rows)) - written
	observability.RecordSkipped(CleanOpportunity, "duplicate", skipped)
	return len(raw), written, skipped, raw[len(raw)-1].ID, nil
}

func (r *Runner) cleanCoinInfoBatch(ctx context.Context, afterID int64) (int, int64, int64, int64, error) {
	var raw []*domain.CoinInfo
	err := r.retry.Do(ctx, "fetch btscoininfo", func() error {
		var ferr error
		raw, ferr = r.raw.FetchCoinInfo(ctx, afterID, r.batchSize)
		return ferr
	})
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("fetch btscoininfo: %w", err)
	}
	if len(raw) == 0 {
		return 0, 0, 0, 0, nil
	}

	rows := make([]*domain.CleanCoinInfo, 0, len(raw))
	for _, ci := range raw {
		rows = append(rows, transform.CleanCoinInfo(ci))
	}

	written, err := r.upsert(ctx, "insert clean_bts_coin_info", func() (int64, error) {
		return r.cleanCI.UpsertBatch(ctx, rows)
	})
	if err != nil {
		return 0, 0, 0, 0, err
	}

	skipped := int64(len(rows)) - written
	observability.RecordSkipped(CleanCoinInfo, "duplicate", skipped)
	return len(raw), written, skipped, raw[len(raw)-1].ID, nil
}

func (r *Runner) processArbBatch(ctx context.Context, afterID int64) (int, int64, int64, int64, error) {
	var raw []*domain.ArbTransaction
	err := r.retry.Do(ctx, "fetch arbtransaction", func() error {
		var ferr error
		raw, ferr = r.raw.FetchArbTransactions(ctx, afterID, r.batchSize)
		return ferr
	})
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("fetch arbtransaction: %w", err)
	}
	if len(raw) == 0 {
		return 0, 0, 0, 0, nil
	}

	rows := make([]*domain.ProcessedArb, 0, len(raw))
	for _, tx := range raw {
		rows = append(rows, transform.ProcessArb(tx))
	}

	written, err := r.upsert(ctx, "insert processed_arb", func() (int64, error) {
		return r.arbs.UpsertBatch(ctx, rows)
	})
	if err != nil {
		return 0, 0, 0, 0, err
	}

	skipped := int64(len(rows)) - written
	observability.RecordSkipped(ProcessArb, "duplicate", skipped)
	return len(raw), written, skipped, raw[len(raw)-1].ID, nil
}

func (r *Runner) processBTSBatch(ctx context.Context, afterID int64) (int, int64, int64, int64, error) {
	var raw []*domain.BTSTransaction
	err := r.retry.Do(ctx, "fetch btstransaction", func() error {
		var ferr error
		raw, ferr = r.raw.FetchBTSTransactions(ctx, afterID, r.batchSize)
		return ferr
	})
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("fetch btstransaction: %w", err)
	}
	if len(raw) == 0 {
		return 0, 0, 0, 0, nil
	}

	res := transform.PairBTS(raw)
	var skipped int64

	// Events that never formed a trade (unpaired, missing token
	// address, trailing partial sells) are skipped, not retried; the
	// watermark still covers them.
	pairedEvents := 0
	for _, t := range res.Trades {
		pairedEvents += 2
		if t.PartialSellAmount != nil {
			pairedEvents++
		}
	}
	if unpaired := int64(len(raw) - pairedEvents); unpaired > 0 {
		observability.RecordSkipped(ProcessBTS, "unpaired", unpaired)
		skipped += unpaired
	}

	trades := r.enrichTrades(ctx, res.Trades, &skipped)

	var written int64
	if len(trades) > 0 {
		var err error
		written, err = r.upsert(ctx, "insert processed_bts", func() (int64, error) {
			return r.bts.UpsertBatch(ctx, trades)
		})
		if err != nil {
			return 0, 0, 0, 0, err
		}
		if dup := int64(len(trades)) - written; dup > 0 {
			observability.RecordSkipped(ProcessBTS, "duplicate", dup)
			skipped += dup
		}
	}

	return len(raw), written, skipped, res.MaxSourceID, nil
}

// enrichTrades looks up token metadata and drops trades whose token
// could not be resolved. A dropped trade is logged and counted, never
// retried: its events are already behind the watermark.
func (r *Runner) enrichTrades(ctx context.Context, trades []*domain.PairedTrade, skipped *int64) []*domain.PairedTrade {
	if len(trades) == 0 {
		return nil
	}

	mints := make([]string, len(trades))
	for i, t := range trades {
		mints[i] = t.TokenAddress
	}
	metas := r.metadata.Resolve(ctx, mints)

	kept := make([]*domain.PairedTrade, 0, len(trades))
	for i, t := range trades {
		meta := metas[i]
		if !meta.Resolved() {
			r.log.WithField("token", t.TokenAddress).
				Warn("dropping trade with unresolved token metadata")
			observability.RecordMetadataLookup(false, 1)
			observability.RecordSkipped(ProcessBTS, "unresolved_metadata", 1)
			*skipped++
			continue
		}
		observability.RecordMetadataLookup(true, 1)
		t.Symbol = meta.Symbol
		t.Name = meta.Name
		t.RowHash = transform.FingerprintTrade(t)
		kept = append(kept, t)
	}
	return kept
}

func (r *Runner) upsert(ctx context.Context, op string, fn func() (int64, error)) (int64, error) {
	var written int64
	err := r.retry.Do(ctx, op, func() error {
		var uerr error
		written, uerr = fn()
		return uerr
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return written, nil
}

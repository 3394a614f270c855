package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bioscan/internal/model"
)

// Status labels of scan events.
type Status string

const (
	StatusProgress Status = "progress"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
	StatusEmpty    Status = "empty"
)

// Event is one notification of a running scan. Progress events carry a
// percentage and stage label; terminal events carry either a summary or a
// message. The sequence is finite and ends with a terminal event.
type Event struct {
	Status  Status             `json:"status"`
	Percent int                `json:"percent,omitempty"`
	Stage   string             `json:"stage,omitempty"`
	Message string             `json:"message,omitempty"`
	Data    *model.ScanSummary `json:"data,omitempty"`
}

// PaperFetcher is the retrieval collaborator. Fewer results than limit and
// an empty result are both valid.
type PaperFetcher interface {
	Fetch(ctx context.Context, keyword string, limit int) ([]model.Paper, error)
}

// BatchAnalyzer turns a batch of papers into per-paper findings.
type BatchAnalyzer interface {
	AnalyzeBatch(ctx context.Context, papers []model.Paper) ([]model.PaperFindings, error)
}

// InteractionRecorder persists one validated finding, best-effort.
type InteractionRecorder interface {
	RecordInteraction(ctx context.Context, drug, virus, paperTitle, evidence, pmid string)
}

// Orchestrator sequences one scan: retrieval, batched analysis, persistence.
// The stages run strictly in order; persistence failures never abort a scan,
// while retrieval and inference failures end it with a terminal event.
type Orchestrator struct {
	Fetcher  PaperFetcher
	Analyzer BatchAnalyzer
	Store    InteractionRecorder
	Logger   *zap.Logger
}

func NewOrchestrator(fetcher PaperFetcher, analyzer BatchAnalyzer, store InteractionRecorder, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		Fetcher:  fetcher,
		Analyzer: analyzer,
		Store:    store,
		Logger:   logger,
	}
}

// Run starts a scan for one target and returns its event stream. The channel
// is closed after the terminal event. The producer stops between events when
// ctx is cancelled; each persistence call is independently atomic, so a
// cancelled consumer never leaves the store inconsistent.
func (o *Orchestrator) Run(ctx context.Context, target string, limit int) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)

		scanID := uuid.New().String()
		log := o.Logger.With(zap.String("scan_id", scanID), zap.String("target", target))
		start := time.Now()
		scansStarted.Inc()

		emit := func(e Event) bool {
			select {
			case events <- e:
				return true
			case <-ctx.Done():
				return false
			}
		}

		defer func() {
			if r := recover(); r != nil {
				log.Error("Scan panicked", zap.Any("panic", r))
				emit(Event{Status: StatusError, Message: fmt.Sprintf("An unexpected error occurred: %v", r)})
			}
		}()

		if !emit(Event{Status: StatusProgress, Percent: 10, Stage: "Connecting to PubMed..."}) {
			return
		}
		if !emit(Event{Status: StatusProgress, Percent: 30, Stage: fmt.Sprintf("Fetching %d papers...", limit)}) {
			return
		}

		papers, err := o.Fetcher.Fetch(ctx, target, limit)
		if err != nil {
			log.Error("Retrieval failed", zap.Error(err))
			emit(Event{Status: StatusError, Message: fmt.Sprintf("Paper retrieval failed: %v", err)})
			return
		}
		if len(papers) == 0 {
			log.Warn("No papers found")
			emit(Event{Status: StatusEmpty, Message: "No papers found on PubMed."})
			return
		}
		papersScanned.Add(float64(len(papers)))

		if !emit(Event{Status: StatusProgress, Percent: 50, Stage: "Analyzing medical text for interactions..."}) {
			return
		}

		findings, err := o.Analyzer.AnalyzeBatch(ctx, papers)
		if err != nil {
			log.Error("Analysis failed", zap.Error(err))
			emit(Event{Status: StatusError, Message: fmt.Sprintf("An unexpected error occurred: %v", err)})
			return
		}

		if !emit(Event{Status: StatusProgress, Percent: 80, Stage: "Constructing Knowledge Graph..."}) {
			return
		}

		for _, paper := range findings {
			for _, match := range paper.Matches {
				o.Store.RecordInteraction(ctx, match.Drug, target, paper.Title, match.Context, paper.PMID)
				interactionsRecorded.Inc()
			}
		}

		if findings == nil {
			findings = []model.PaperFindings{}
		}

		summary := &model.ScanSummary{
			Target:           target,
			ScannedCount:     len(papers),
			RelevantFindings: len(findings),
			ExecutionTime:    fmt.Sprintf("%.2fs", time.Since(start).Seconds()),
			Data:             findings,
		}

		log.Info("Scan complete",
			zap.Int("papers", len(papers)),
			zap.Int("findings", len(findings)),
			zap.Duration("duration", time.Since(start)))
		scansCompleted.Inc()

		emit(Event{Status: StatusComplete, Data: summary})
	}()

	return events
}

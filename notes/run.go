package notes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/minutes/core"
	"github.com/poiesic/minutes/extract"
	"github.com/poiesic/minutes/metrics"
	"github.com/poiesic/minutes/summary"
)

// Stage names used in artifact reports.
const (
	StageImportantNotes = "important_notes"
	StageDecisions      = "decisions"
	StageActionItems    = "action_items"
	StageThemes         = "themes"
	StageSummary        = summary.StageName
)

func (p *Pipeline) run(ctx context.Context, meetingID string) (*core.Artifact, error) {
	start := time.Now()
	logger := p.logger.With("meeting", meetingID)

	p.metrics.RunsInFlight.Inc()
	defer p.metrics.RunsInFlight.Dec()

	segments, err := p.segments.ListSegments(ctx, meetingID)
	if err != nil {
		logger.Error("failed to read transcript", "err", err)
		p.metrics.RecordRun(metrics.ResultFailed, time.Since(start))
		return nil, fmt.Errorf("reading transcript for %s: %w", meetingID, err)
	}
	if len(segments) == 0 {
		logger.Info("no transcripts found, skipping")
		p.metrics.RecordRun(metrics.ResultNoTranscripts, time.Since(start))
		return nil, ErrNoTranscripts
	}
	p.metrics.SegmentsProcessed.Add(float64(len(segments)))

	runID := uuid.NewString()
	logger = logger.With("run", runID)
	logger.Debug("processing meeting", "segments", len(segments))

	artifact := p.analyze(ctx, meetingID, segments)
	artifact.RunID = runID
	artifact.ProcessedAt = p.now()
	artifact.TranscriptCount = len(segments)

	if err := p.artifacts.SaveArtifact(ctx, artifact, p.artifactTTL); err != nil {
		logger.Error("failed to store artifact", "err", err)
		p.metrics.RecordRun(metrics.ResultFailed, time.Since(start))
		return nil, fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}

	p.metrics.RecordStages(artifact.Stages)
	p.metrics.RecordRun(metrics.ResultSuccess, time.Since(start))
	logger.Info("meeting notes ready",
		"themes", len(artifact.Themes),
		"notes", len(artifact.ImportantNotes),
		"decisions", len(artifact.Decisions),
		"actions", len(artifact.ActionItems),
		"elapsed", time.Since(start))
	return artifact, nil
}

// analyze runs every stage concurrently and assembles their output.
// Stages fail soft, so analyze itself cannot fail.
func (p *Pipeline) analyze(ctx context.Context, meetingID string, segments []*core.Segment) *core.Artifact {
	var (
		wg            sync.WaitGroup
		notes         extract.Result[core.ImportantNote]
		decisions     extract.Result[core.Decision]
		actions       extract.Result[core.ActionItem]
		clusters      extract.Result[core.Theme]
		summaryText   string
		summaryReport core.StageReport
	)

	title := p.title(meetingID)

	wg.Add(5)
	go func() {
		defer wg.Done()
		notes = extract.ExtractImportantNotes(segments)
	}()
	go func() {
		defer wg.Done()
		decisions = extract.ExtractDecisions(segments)
	}()
	go func() {
		defer wg.Done()
		actions = extract.ExtractActionItems(segments)
	}()
	go func() {
		defer wg.Done()
		clusters = p.extractThemes(ctx, segments)
	}()
	go func() {
		defer wg.Done()
		summaryText, summaryReport = p.summarizer.Summarize(ctx, title, segments)
	}()
	wg.Wait()

	stages := []core.StageReport{
		summaryReport,
		clusters.Report(StageThemes),
		notes.Report(StageImportantNotes),
		decisions.Report(StageDecisions),
		actions.Report(StageActionItems),
	}
	for _, stage := range stages {
		if stage.Outcome == core.StageFailed || stage.Outcome == core.StageFallback {
			p.logger.Warn("stage degraded", "meeting", meetingID,
				"stage", stage.Stage, "outcome", stage.Outcome, "reason", stage.Reason)
		}
	}

	return &core.Artifact{
		MeetingID:      meetingID,
		Summary:        summaryText,
		Themes:         clusters.Items,
		ImportantNotes: notes.Items,
		Decisions:      decisions.Items,
		ActionItems:    actions.Items,
		Stages:         stages,
	}
}

func (p *Pipeline) extractThemes(ctx context.Context, segments []*core.Segment) (res extract.Result[core.Theme]) {
	defer func() {
		if r := recover(); r != nil {
			res = extract.FailedWith[core.Theme](fmt.Errorf("%w: %v", extract.ErrStagePanicked, r))
		}
	}()
	return p.clusterer.ExtractThemes(ctx, segments)
}

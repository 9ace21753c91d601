package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/advisor-labs/readiness/internal/models"
	"github.com/advisor-labs/readiness/internal/types"
	"github.com/advisor-labs/readiness/pkg/assess"
	"github.com/advisor-labs/readiness/pkg/chunker"
	"github.com/advisor-labs/readiness/pkg/extract"
	"github.com/advisor-labs/readiness/pkg/index"
)

// ErrNoDocuments is returned when not a single uploaded document could be
// extracted; the assessment has no evidence to work with and is aborted.
var ErrNoDocuments = errors.New("no documents could be extracted")

// Progress checkpoints. Exact values are a soft contract consumers poll;
// they only ever move forward.
const (
	progressIngestSpan = 40
	progressIngested   = 45
	progressScoreSpan  = 35
	progressUseCases   = 82
	progressSynthesis  = 88
	progressRoadmap    = 93
	progressFinalising = 98
)

// InputFile is one uploaded document blob.
type InputFile struct {
	Name string
	Data []byte
}

// Config carries the sizing knobs for ingestion and retrieval.
type Config struct {
	ChunkSize     int
	ChunkOverlap  int
	TopK          int
	ExcerptLength int
}

// Pipeline sequences extraction, indexing, and the four generation stages
// for one session at a time per call. Concurrent sessions are isolated by
// session id.
type Pipeline struct {
	index      types.Index
	chunks     chunker.Chunker
	scorer     *assess.Scorer
	identifier *assess.UseCaseIdentifier
	synth      *assess.Synthesizer
	roadmap    *assess.RoadmapBuilder
	status     *StatusStore
}

func New(idx types.Index, generator types.Generator, cfg Config, status *StatusStore) *Pipeline {
	evidence := assess.NewEvidenceRetriever(idx, cfg.TopK, cfg.ExcerptLength)

	return &Pipeline{
		index:      idx,
		chunks:     chunker.New(cfg.ChunkSize, cfg.ChunkOverlap),
		scorer:     assess.NewScorer(generator, evidence),
		identifier: assess.NewUseCaseIdentifier(generator, evidence),
		synth:      assess.NewSynthesizer(generator),
		roadmap:    assess.NewRoadmapBuilder(generator),
		status:     status,
	}
}

// NewSessionID mints the isolation id for one assessment run.
func NewSessionID() string {
	return uuid.NewString()
}

// Run executes the full assessment for one session and records progress in
// the status store. Any unrecoverable stage failure moves the session to the
// terminal error state; Run also returns that error.
func (p *Pipeline) Run(ctx context.Context, sessionID, orgName, additionalContext string, files []InputFile) (*models.AssessmentReport, error) {
	report, err := p.run(ctx, sessionID, orgName, additionalContext, files)
	if err != nil {
		log.Printf("session %s failed: %v", sessionID, err)
		p.status.Fail(sessionID, err.Error())
		return nil, err
	}
	p.status.Complete(sessionID, report)
	return report, nil
}

func (p *Pipeline) run(ctx context.Context, sessionID, orgName, additionalContext string, files []InputFile) (*models.AssessmentReport, error) {
	// Stage 1: ingest
	p.status.Update(sessionID, StateIngesting, 0, "Extracting documents...")

	docs, err := p.ingest(ctx, sessionID, files)
	if err != nil {
		return nil, err
	}
	p.status.Update(sessionID, StateIngesting, progressIngested, "Documents indexed in vector store.")

	// Stage 2: score all six dimensions concurrently. The state does not
	// advance until all six have finished, whatever the completion order.
	p.status.Update(sessionID, StateScoring, progressIngested, "Scoring readiness dimensions...")

	scores, err := p.scoreDimensions(ctx, sessionID, additionalContext)
	if err != nil {
		return nil, err
	}

	overallScore := assess.RoundScore(meanScore(scores))
	overallMaturity := models.Maturity(overallScore)

	// Stage 3: use cases
	p.status.Update(sessionID, StateUseCases, progressUseCases, "Identifying AI use case candidates...")

	useCases, err := p.identifier.Identify(ctx, sessionID, scores, additionalContext)
	if err != nil {
		return nil, err
	}

	// Stage 4: synthesis
	p.status.Update(sessionID, StateSynthesising, progressSynthesis, "Synthesising executive summary...")

	synthesis, err := p.synth.Synthesise(ctx, orgName, overallScore, overallMaturity.Label, scores)
	if err != nil {
		return nil, err
	}

	// Stage 5: roadmap, after synthesis since it consumes the blockers
	p.status.Update(sessionID, StateRoadmap, progressRoadmap, "Building adoption roadmap...")

	phases, err := p.roadmap.Build(ctx, orgName, overallScore, overallMaturity.Label,
		scores, useCases, synthesis.CriticalBlockers)
	if err != nil {
		return nil, err
	}

	p.status.Update(sessionID, StateRoadmap, progressFinalising, "Finalising report...")

	filenames := make([]string, 0, len(docs))
	totalPages := 0
	for _, doc := range docs {
		filenames = append(filenames, doc.Filename)
		totalPages += doc.PageCount
	}

	return &models.AssessmentReport{
		ReportID:             newReportID(),
		OrganisationName:     orgName,
		GeneratedAt:          time.Now().UTC(),
		DocumentsAnalysed:    filenames,
		TotalPagesAnalysed:   totalPages,
		OverallScore:         overallScore,
		OverallMaturity:      overallMaturity.Label,
		OverallMaturityColor: overallMaturity.Color,
		ExecutiveSummary:     synthesis.ExecutiveSummary,
		DimensionScores:      scores,
		UseCaseCandidates:    useCases,
		RoadmapPhases:        phases,
		CriticalBlockers:     synthesis.CriticalBlockers,
		QuickWins:            synthesis.QuickWins,
	}, nil
}

// ingest extracts, chunks, and indexes every uploaded file. Per-document
// failures are logged and skipped; only a fully empty result is fatal.
func (p *Pipeline) ingest(ctx context.Context, sessionID string, files []InputFile) ([]models.ExtractedDocument, error) {
	var docs []models.ExtractedDocument

	for i, file := range files {
		pct := i * progressIngestSpan / len(files)
		p.status.Update(sessionID, StateIngesting, pct, fmt.Sprintf("Extracting %s...", file.Name))

		doc, err := extract.Extract(file.Name, file.Data)
		if err != nil {
			log.Printf("skipping %s: %v", file.Name, err)
			continue
		}
		docs = append(docs, doc)
		log.Printf("extracted %s: %d chars, %d pages", doc.Filename, len(doc.Content), doc.PageCount)

		pieces := p.chunks.Split(doc.Content)
		if len(pieces) == 0 {
			continue
		}

		chunks := make([]models.Chunk, 0, len(pieces))
		for j, piece := range pieces {
			chunks = append(chunks, models.Chunk{
				ID:         index.ChunkID(sessionID, doc.Filename, j),
				Content:    piece,
				Source:     doc.Filename,
				FileType:   doc.FileType,
				ChunkIndex: j,
				SessionID:  sessionID,
			})
		}

		if err := p.index.Upsert(ctx, chunks); err != nil {
			return nil, fmt.Errorf("failed to index %s: %w", doc.Filename, err)
		}
	}

	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	return docs, nil
}

// scoreDimensions fans out the six independent scoring calls and collects
// them back in canonical dimension order. Aggregation waits for all six
// before reporting the first failure.
func (p *Pipeline) scoreDimensions(ctx context.Context, sessionID, additionalContext string) ([]models.DimensionScore, error) {
	scores := make([]models.DimensionScore, len(models.Dimensions))
	errs := make([]error, len(models.Dimensions))

	var wg sync.WaitGroup
	var mu sync.Mutex
	completed := 0

	for i, dim := range models.Dimensions {
		wg.Add(1)
		go func(i int, dim models.Dimension) {
			defer wg.Done()
			scores[i], errs[i] = p.scorer.ScoreDimension(ctx, sessionID, dim, additionalContext)

			mu.Lock()
			completed++
			pct := progressIngested + completed*progressScoreSpan/len(models.Dimensions)
			mu.Unlock()
			p.status.Update(sessionID, StateScoring, pct, fmt.Sprintf("Analysed: %s", dim))
		}(i, dim)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return scores, nil
}

func meanScore(scores []models.DimensionScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range scores {
		total += s.Score
	}
	return total / float64(len(scores))
}

func newReportID() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "RPT-" + raw[:8]
}

// Package pipeline turns a product CSV into the record store: it resolves
// columns, trains the status classifier, hashes each record, carries mutable
// fields forward from the previous store, and writes model, ledger and
// records atomically.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/products"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/classifier"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/digest"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/features"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/jsonstore"
)

// Report summarizes one pipeline run.
type Report struct {
	RunID          uuid.UUID     `json:"run_id"`
	Rows           int           `json:"rows"`
	Authentic      int           `json:"authentic"`
	Suspect        int           `json:"suspect"`
	Fallbacks      int           `json:"fallbacks"`
	PriceDefaults  int           `json:"price_defaults"`
	CarriedForward int           `json:"carried_forward"`
	Dropped        int           `json:"dropped"`
	Years          YearSources   `json:"years"`
	Duration       time.Duration `json:"duration"`
}

// YearSources counts where each record's year came from.
type YearSources struct {
	Input  int `json:"input"`
	Prior  int `json:"prior"`
	Config int `json:"config"`
	Clock  int `json:"clock"`
}

// Pipeline runs full regenerations of the record store.
type Pipeline struct {
	cfg     *Config
	records *jsonstore.Store[products.Product]
	ledger  *jsonstore.Store[LedgerEntry]
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a pipeline writing to the given stores.
func New(
	cfg *Config,
	records *jsonstore.Store[products.Product],
	ledger *jsonstore.Store[LedgerEntry],
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		records: records,
		ledger:  ledger,
		logger:  logger.With("system", "pipeline"),
		now:     time.Now,
	}
}

// WithClock replaces the clock used for the fallback ingestion year.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Run reads the configured input file and regenerates the store.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	rows, err := ReadFile(p.cfg.InputPath, p.cfg.SampleLimit)
	if err != nil {
		return nil, err
	}
	return p.RunRows(ctx, rows)
}

// RunRows regenerates the store from rows. Nothing is written unless
// training and assembly succeed.
func (p *Pipeline) RunRows(ctx context.Context, rows []Row) (*Report, error) {
	start := p.now()
	report := &Report{RunID: uuid.New(), Rows: len(rows)}
	logger := p.logger.With("run_id", report.RunID)

	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	prior, err := p.records.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPriorStore, err)
	}
	priorByID := make(map[string]*products.Product, len(prior))
	for i := range prior {
		priorByID[prior[i].ID] = &prior[i]
	}

	years := make([]int, len(rows))
	for i, row := range rows {
		years[i] = p.resolveYear(row, priorByID[row.ID], start.Year(), &report.Years)
	}

	colors := make([]string, len(rows))
	prices := make([]float64, len(rows))
	for i, row := range rows {
		colors[i] = row.Color
		prices[i] = row.Price
		if row.PriceErr != nil {
			report.PriceDefaults++
			logger.Warn("price defaulted to 0", "id", row.ID, "error", row.PriceErr)
		}
	}

	vocab := features.Fit(colors)
	x := make([][]float64, len(rows))
	for i, row := range rows {
		triple, err := vocab.EncodeTriple(row.Color, row.Price, years[i])
		if err != nil {
			return nil, fmt.Errorf("encode row %s: %w", row.ID, err)
		}
		x[i] = triple.Vector()
	}

	logger.Info("training classifier", "rows", len(rows), "colors", vocab.Len(), "trees", p.cfg.NEstimators)
	model, err := classifier.Train(x, Labels(prices), p.cfg.Options())
	if err != nil {
		return nil, fmt.Errorf("train classifier: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]products.Product, len(rows))
	for i, row := range rows {
		pred := model.Predict(x[i])
		if pred.IsFallback() {
			report.Fallbacks++
			logger.Warn("prediction fell back", "id", row.ID, "reason", pred.Reason)
		}

		previous := priorByID[row.ID]
		if previous != nil {
			report.CarriedForward++
		}

		records[i] = assemble(row, years[i], pred, previous)
		if records[i].PredictedStatus == classifier.StatusAuthentic {
			report.Authentic++
		} else {
			report.Suspect++
		}
	}

	inInput := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		inInput[row.ID] = struct{}{}
	}
	for id := range priorByID {
		if _, ok := inInput[id]; !ok {
			report.Dropped++
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := p.persist(newModelArtifact(vocab, model, p.cfg.RandomSeed), records); err != nil {
		return nil, err
	}

	report.Duration = p.now().Sub(start)
	logger.Info("pipeline complete",
		"rows", report.Rows,
		"authentic", report.Authentic,
		"suspect", report.Suspect,
		"fallbacks", report.Fallbacks,
		"price_defaults", report.PriceDefaults,
		"carried_forward", report.CarriedForward,
		"dropped", report.Dropped,
		"duration", report.Duration,
	)

	return report, nil
}

// persist stages the model, ledger and records before replacing any of them,
// then commits in that order. A staging failure leaves every file untouched.
func (p *Pipeline) persist(artifact *ModelArtifact, records []products.Product) error {
	var staged []*jsonstore.Staged
	defer func() {
		for _, s := range staged {
			s.Discard()
		}
	}()

	model, err := jsonstore.StageJSON(p.cfg.ModelFile, artifact)
	if err != nil {
		return fmt.Errorf("stage model: %w", err)
	}
	staged = append(staged, model)

	ledger, err := p.ledger.Stage(BuildLedger(records))
	if err != nil {
		return fmt.Errorf("stage ledger: %w", err)
	}
	staged = append(staged, ledger)

	recs, err := p.records.Stage(records)
	if err != nil {
		return fmt.Errorf("stage records: %w", err)
	}
	staged = append(staged, recs)

	for _, s := range staged {
		if err := s.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", s.Path(), err)
		}
	}
	return nil
}

// resolveYear picks the ingestion year: input column, then the prior record,
// then configuration, then the run's calendar year.
func (p *Pipeline) resolveYear(row Row, prior *products.Product, runYear int, sources *YearSources) int {
	switch {
	case row.Year != nil:
		sources.Input++
		return *row.Year
	case prior != nil && prior.Year > 0:
		sources.Prior++
		return prior.Year
	case p.cfg.IngestYear > 0:
		sources.Config++
		return p.cfg.IngestYear
	default:
		sources.Clock++
		return runYear
	}
}

// Labels marks prices strictly above the median as the positive class.
// The median of an even count is the mean of the two middle values.
func Labels(prices []float64) []int {
	labels := make([]int, len(prices))
	if len(prices) == 0 {
		return labels
	}

	sorted := slices.Clone(prices)
	slices.Sort(sorted)

	n := len(sorted)
	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	for i, price := range prices {
		if price > median {
			labels[i] = 1
		}
	}
	return labels
}

func assemble(row Row, year int, pred classifier.Prediction, prior *products.Product) products.Product {
	p := products.Product{
		ID:              row.ID,
		Name:            row.Name,
		Color:           row.Color,
		Price:           row.Price,
		Year:            year,
		PredictedStatus: pred.Status(),
		PredProba:       pred.Proba,
		ImageFile:       row.ImageFile,
	}

	d := digest.Compute(p.Fields())
	p.MetaHash = d.MetaHash
	p.PIDHash = d.PIDHash
	p.ShortHash = d.ShortHash

	if prior != nil {
		p.TrackingHistory = prior.TrackingHistory
		p.QRFile = prior.QRFile
		p.TrackingURL = prior.TrackingURL
		if p.ImageFile == nil {
			p.ImageFile = prior.ImageFile
		}
	}

	p.Normalize()
	return p
}

package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/pipeline"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/products"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/classifier"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/digest"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/jsonstore"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/storage"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/tracking"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

const garments = `ProductId,ProductName,BaseColour,Price (INR),Year
1001,Linen Shirt,Blue,"₹1,299.00",2023
1002,Denim Jacket,Black,₹2499,2023
1003,Cotton Tee,White,₹399,
1004,Silk Scarf,Red,₹899,2024
1005,Wool Coat,Black,₹4999,
1006,Polo Shirt,Blue,₹799,2022
1007,Chinos,Beige,₹1499,
1008,Hoodie,Grey,₹1199,2023
1009,Kurta,White,₹649,
1010,Blazer,Navy,₹3999,2024
`

type fixture struct {
	dir     string
	cfg     *pipeline.Config
	records *jsonstore.Store[products.Product]
	ledger  *jsonstore.Store[products.LedgerEntry]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	cfg := &pipeline.Config{
		NEstimators: 25,
		ModelFile:   filepath.Join(dir, "model.json"),
	}
	require.NoError(t, cfg.Finalize(nil))

	records, err := jsonstore.New[products.Product](filepath.Join(dir, "records.json"))
	require.NoError(t, err)
	ledger, err := jsonstore.New[products.LedgerEntry](filepath.Join(dir, "ledger.json"))
	require.NoError(t, err)

	return &fixture{
		dir:     dir,
		cfg:     cfg,
		records: records,
		ledger:  ledger,
	}
}

func (f *fixture) pipeline() *pipeline.Pipeline {
	clock := func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	return pipeline.New(f.cfg, f.records, f.ledger, discard).WithClock(clock)
}

func (f *fixture) run(t *testing.T, csv string) *pipeline.Report {
	t.Helper()
	rows, err := pipeline.ReadRows(strings.NewReader(csv), 0)
	require.NoError(t, err)
	report, err := f.pipeline().RunRows(context.Background(), rows)
	require.NoError(t, err)
	return report
}

func (f *fixture) load(t *testing.T) map[string]products.Product {
	t.Helper()
	records, err := f.records.Load()
	require.NoError(t, err)
	byID := make(map[string]products.Product, len(records))
	for _, p := range records {
		byID[p.ID] = p
	}
	return byID
}

func TestResolveColumn(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		aliases []string
		want    int
	}{
		{"exact", []string{"id", "name"}, pipeline.IDAliases, 0},
		{"case and space", []string{" Name ", " ProductID "}, pipeline.IDAliases, 1},
		{"bom", []string{"\ufeffProductId", "name"}, pipeline.IDAliases, 0},
		{"alias priority", []string{"color", "baseColour"}, pipeline.ColorAliases, 1},
		{"price with unit", []string{"id", "Price (INR)"}, pipeline.PriceAliases, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pipeline.ResolveColumn(tt.headers, tt.aliases)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := pipeline.ResolveColumn([]string{"sku"}, pipeline.IDAliases)
	assert.ErrorIs(t, err, pipeline.ErrColumnNotFound)
}

func TestParsePrice(t *testing.T) {
	tests := map[string]float64{
		"₹1,299.00":     1299,
		"$45":           45,
		"  799 ":        799,
		"":              0,
		"n/a":           0,
		"1.2.3":         0,
		"1e13":          113,
		"1000000000000": 1e12,
		"1000000000001": 0,
	}
	for raw, want := range tests {
		assert.Equal(t, want, pipeline.ParsePrice(raw), raw)
	}

	huge := pipeline.ParsePrice("₹" + strings.Repeat("9", 400))
	assert.False(t, math.IsInf(huge, 0))
	assert.Zero(t, huge)
}

func TestRunDefaultsOversizedPrice(t *testing.T) {
	f := newFixture(t)
	csv := garments + "1011,Gold Saree,Gold,₹" + strings.Repeat("9", 400) + ",2024\n"

	report := f.run(t, csv)
	assert.Equal(t, 11, report.Rows)
	assert.Equal(t, 1, report.PriceDefaults)

	records := f.load(t)
	require.Contains(t, records, "1011")
	assert.Equal(t, 0.0, records["1011"].Price)
	assert.False(t, math.IsNaN(records["1011"].PredProba))
}

func TestReadRows(t *testing.T) {
	rows, err := pipeline.ReadRows(strings.NewReader(garments), 0)
	require.NoError(t, err)
	require.Len(t, rows, 10)

	first := rows[0]
	assert.Equal(t, "1001", first.ID)
	assert.Equal(t, "Linen Shirt", first.Name)
	assert.Equal(t, "Blue", first.Color)
	assert.Equal(t, 1299.0, first.Price)
	require.NotNil(t, first.Year)
	assert.Equal(t, 2023, *first.Year)
	assert.Nil(t, first.ImageFile)
	assert.Nil(t, rows[2].Year)

	limited, err := pipeline.ReadRows(strings.NewReader(garments), 3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)
}

func TestReadRowsRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", pipeline.ErrEmptyInput},
		{"header only", "id,name\n", pipeline.ErrEmptyInput},
		{"missing id column", "sku,name\n1,a\n", pipeline.ErrColumnNotFound},
		{"missing name column", "id,colour\n1,red\n", pipeline.ErrColumnNotFound},
		{"empty id", "id,name\n1,a\n ,b\n", pipeline.ErrEmptyID},
		{"duplicate id", "id,name\n1,a\n2,b\n1,c\n", pipeline.ErrDuplicateID},
		{"bad year", "id,name,year\n1,a,soon\n", pipeline.ErrMalformedInput},
		{"ragged", "id,name\n1,a,extra\n", pipeline.ErrMalformedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pipeline.ReadRows(strings.NewReader(tt.input), 0)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLabels(t *testing.T) {
	assert.Equal(t, []int{0, 0, 1, 1}, pipeline.Labels([]float64{1, 2, 3, 4}))
	assert.Equal(t, []int{0, 0, 1}, pipeline.Labels([]float64{1, 2, 3}))
	assert.Equal(t, []int{0, 0, 0}, pipeline.Labels([]float64{5, 5, 5}))
	assert.Empty(t, pipeline.Labels(nil))
}

func TestRunProducesConsistentRecords(t *testing.T) {
	f := newFixture(t)
	report := f.run(t, garments)

	assert.Equal(t, 10, report.Rows)
	assert.Equal(t, 10, report.Authentic+report.Suspect)
	assert.Equal(t, pipeline.YearSources{Input: 6, Clock: 4}, report.Years)

	records := f.load(t)
	require.Len(t, records, 10)

	ledger, err := f.ledger.Load()
	require.NoError(t, err)
	require.Len(t, ledger, 10)

	for _, entry := range ledger {
		p, ok := records[entry.ProductID]
		require.True(t, ok)

		assert.Equal(t, p.MetaHash, entry.ProductHash)
		assert.True(t, digest.Verify(p.Fields(), p.MetaHash))
		assert.Equal(t, digest.Keccak256Hex([]byte(p.ID)), p.PIDHash)
		assert.Equal(t, digest.Short(p.PIDHash), p.ShortHash)
		assert.NotNil(t, p.TrackingHistory)
		assert.GreaterOrEqual(t, p.PredProba, 0.0)
		assert.LessOrEqual(t, p.PredProba, 1.0)
	}

	assert.Equal(t, 2025, records["1003"].Year)
	assert.Equal(t, 2024, records["1004"].Year)
}

func TestRunIsDeterministic(t *testing.T) {
	a, b := newFixture(t), newFixture(t)
	a.run(t, garments)
	b.run(t, garments)

	for _, name := range []string{"records.json", "ledger.json", "model.json"} {
		left, err := os.ReadFile(filepath.Join(a.dir, name))
		require.NoError(t, err)
		right, err := os.ReadFile(filepath.Join(b.dir, name))
		require.NoError(t, err)
		assert.Equal(t, string(left), string(right), name)
	}
}

func TestRunHashChangesOnlyForEditedRecord(t *testing.T) {
	f := newFixture(t)
	f.run(t, garments)
	before := f.load(t)

	f.run(t, strings.Replace(garments, "₹399", "₹400", 1))
	after := f.load(t)

	for id, p := range after {
		if id == "1003" {
			assert.NotEqual(t, before[id].MetaHash, p.MetaHash)
			continue
		}
		assert.Equal(t, before[id].MetaHash, p.MetaHash, id)
	}
}

func TestRunCarriesForwardMutableFields(t *testing.T) {
	f := newFixture(t)

	qr := "qr/1001.png"
	url := "http://10.0.0.5:5173/tracking/1001"
	img := "images/1001.jpg"
	history := []products.TrackingEvent{
		products.NewTrackingEvent("Dispatched", "Pune", "2024-05-01T10:00:00Z"),
		products.TrackingEvent(`{"step":"Received","scanned_by":"gate-3","seq":2}`),
	}
	prior := []products.Product{
		{ID: "1001", Year: 2020, QRFile: &qr, TrackingURL: &url, ImageFile: &img, TrackingHistory: history},
		{ID: "1003", Year: 2019},
		{ID: "9999", Year: 2019},
	}
	require.NoError(t, f.records.Replace(prior))

	report := f.run(t, garments)
	assert.Equal(t, 2, report.CarriedForward)
	assert.Equal(t, 1, report.Dropped)
	assert.Equal(t, 1, report.Years.Prior)

	records := f.load(t)
	assert.NotContains(t, records, "9999")

	p := records["1001"]
	assert.Equal(t, history, p.TrackingHistory)
	assert.Equal(t, &qr, p.QRFile)
	assert.Equal(t, &url, p.TrackingURL)
	assert.Equal(t, &img, p.ImageFile)
	assert.Equal(t, 2023, p.Year, "input year wins over the stored one")

	assert.Equal(t, 2019, records["1003"].Year, "stored year wins over the clock")
	assert.Empty(t, records["1002"].TrackingHistory)
}

func TestRunFatalInputWritesNothing(t *testing.T) {
	f := newFixture(t)
	rows, err := pipeline.ReadRows(strings.NewReader("id,name,price\n1,a,10\n2,b,10\n"), 0)
	require.NoError(t, err)

	_, err = f.pipeline().RunRows(context.Background(), rows)
	require.ErrorIs(t, err, classifier.ErrDegenerateLabels)

	for _, name := range []string{"records.json", "ledger.json", "model.json"} {
		_, err := os.Stat(filepath.Join(f.dir, name))
		assert.True(t, errors.Is(err, os.ErrNotExist), name)
	}
}

func TestRunStagesEveryFileBeforeReplacing(t *testing.T) {
	f := newFixture(t)
	prior := []products.Product{{ID: "1001", Name: "old", Year: 2020}}
	require.NoError(t, f.records.Replace(prior))

	blocked := filepath.Join(f.dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, nil, 0o644))
	ledger, err := jsonstore.New[products.LedgerEntry](filepath.Join(blocked, "ledger.json"))
	require.NoError(t, err)
	f.ledger = ledger

	rows, err := pipeline.ReadRows(strings.NewReader(garments), 0)
	require.NoError(t, err)

	_, err = f.pipeline().RunRows(context.Background(), rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage ledger")

	_, err = os.Stat(f.cfg.ModelFile)
	assert.True(t, errors.Is(err, os.ErrNotExist), "model must not be replaced")

	stored, err := f.records.Load()
	require.NoError(t, err)
	assert.Equal(t, prior, stored)

	entries, err := os.ReadDir(f.dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"blocked", "records.json"}, names)
}

func TestRunRejectsUnreadablePriorStore(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "records.json"), []byte("{broken"), 0o644))

	rows, err := pipeline.ReadRows(strings.NewReader(garments), 0)
	require.NoError(t, err)

	_, err = f.pipeline().RunRows(context.Background(), rows)
	assert.ErrorIs(t, err, pipeline.ErrPriorStore)
}

func TestModelRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.run(t, garments)

	model, err := pipeline.LoadModel(f.cfg.ModelFile)
	require.NoError(t, err)

	for _, p := range f.load(t) {
		pred := model.Predict(p.Color, p.Price, p.Year)
		assert.False(t, pred.IsFallback())
		assert.InDelta(t, p.PredProba, pred.Proba, 1e-12, p.ID)
		assert.Equal(t, p.PredictedStatus, pred.Status())
	}

	unknown := model.Predict("Chartreuse", 100, 2024)
	assert.True(t, unknown.IsFallback())
	assert.Equal(t, classifier.StatusSuspect, unknown.Status())
}

func TestGenerateArtifacts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	scfg := &storage.Config{Root: filepath.Join(f.dir, "artifacts")}
	require.NoError(t, scfg.Finalize(nil))
	store, err := storage.New(scfg, discard)
	require.NoError(t, err)

	tcfg := &tracking.Config{}
	require.NoError(t, tcfg.Finalize(nil))
	gen, err := tracking.NewGenerator(tcfg, "http://10.0.0.5:5173", store, discard)
	require.NoError(t, err)

	_, err = pipeline.GenerateArtifacts(ctx, f.records, gen, nil, discard)
	assert.ErrorIs(t, err, pipeline.ErrNoRecords)

	f.run(t, garments)

	calls := 0
	report, err := pipeline.GenerateArtifacts(ctx, f.records, gen, func(tracking.Result) { calls++ }, discard)
	require.NoError(t, err)
	assert.Equal(t, 10, calls)
	assert.Equal(t, 10, report.Rendered)
	assert.Zero(t, report.Failed)

	for id, p := range f.load(t) {
		require.NotNil(t, p.TrackingURL, id)
		require.NotNil(t, p.QRFile, id)
		assert.Equal(t, fmt.Sprintf("http://10.0.0.5:5173/tracking/%s", id), *p.TrackingURL)

		exists, err := store.Exists(ctx, *p.QRFile)
		require.NoError(t, err)
		assert.True(t, exists)
	}

	again, err := pipeline.GenerateArtifacts(ctx, f.records, gen, nil, discard)
	require.NoError(t, err)
	assert.Equal(t, 10, again.Skipped)

	f.run(t, garments)
	for id, p := range f.load(t) {
		assert.NotNil(t, p.QRFile, "retraining keeps artifacts for %s", id)
	}
}

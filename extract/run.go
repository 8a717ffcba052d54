package extract

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"go.nownabe.dev/fleetloader/workbook"
)

// ErrIndexSheetMissing is returned when a plan needs an index sheet the
// workbook does not have.
var ErrIndexSheetMissing = xerrors.New("index sheet missing")

// Skip reasons.
const (
	ReasonNoHeaders = "headers not found"
	ReasonNoEntity  = "entity mapping not found"
)

// Plan is everything Run needs to know about one workbook layout.
type Plan struct {
	// Index locates the sheet-to-entity index. When nil, each sheet's own
	// name is used as its entity.
	Index *EntityIndex

	// Excluded sheets are never scanned. The index sheet is always excluded.
	Excluded []string

	HeaderRow  int
	MaxColumns int
	Threshold  float64
	Targets    []Target
	Rows       RowSpec

	// Concurrency bounds how many sheets are extracted at once.
	Concurrency int
}

// SheetSkip records a sheet that contributed no records.
type SheetSkip struct {
	Sheet  string
	Reason string
}

// Extraction is the outcome of Run.
type Extraction struct {
	Records []Record
	Skips   []SheetSkip

	// Sheets counts the sheets that were extracted.
	Sheets int
}

type sheetResult struct {
	name    string
	records []Record
	skip    string
}

// Run applies a plan to every data sheet of a workbook. Records come out in
// sheet order whatever the concurrency. Sheets without headers or without
// an entity are skipped and reported, not treated as errors.
func Run(ctx context.Context, wb workbook.Workbook, plan Plan) (*Extraction, error) {
	l := log.Ctx(ctx)

	var entities EntityMap
	excluded := map[string]bool{}
	for _, n := range plan.Excluded {
		excluded[n] = true
	}

	if plan.Index != nil {
		excluded[plan.Index.Sheet] = true

		s, err := wb.Sheet(plan.Index.Sheet)
		if err != nil {
			return nil, xerrors.Errorf("%s (%v): %w", plan.Index.Sheet, err, ErrIndexSheetMissing)
		}
		entities = BuildEntityMap(s, *plan.Index)
		l.Debug().Msgf("entity map has %d entries", len(entities))
	}

	var names []string
	for _, n := range wb.SheetNames() {
		if !excluded[n] {
			names = append(names, n)
		}
	}

	results := make([]sheetResult, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, plan.Concurrency))
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			s, err := wb.Sheet(name)
			if err != nil {
				return xerrors.Errorf("failed to read sheet %q: %w", name, err)
			}

			r := runSheet(s, entities, plan)
			if r.skip != "" {
				l.Warn().Str("sheet", r.name).Str("reason", r.skip).Msg("sheet skipped")
			} else {
				l.Info().Str("sheet", r.name).Int("records", len(r.records)).Msg("sheet processed")
			}
			results[i] = r

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ex := &Extraction{}
	for _, r := range results {
		if r.skip != "" {
			ex.Skips = append(ex.Skips, SheetSkip{Sheet: r.name, Reason: r.skip})
			continue
		}

		ex.Records = append(ex.Records, r.records...)
		ex.Sheets++
	}

	return ex, nil
}

func runSheet(s workbook.Sheet, entities EntityMap, plan Plan) sheetResult {
	res := sheetResult{name: s.Name()}

	maxCols := plan.MaxColumns
	if maxCols <= 0 || maxCols > MaxHeaderColumns {
		maxCols = MaxHeaderColumns
	}

	threshold := plan.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	hm := ResolveHeaders(HeaderCells(s, plan.HeaderRow, maxCols), plan.Targets, threshold)
	if len(hm) == 0 {
		res.skip = ReasonNoHeaders
		return res
	}

	entity := s.Name()
	if entities != nil {
		name, ok := entities.Lookup(s.Name())
		if !ok {
			res.skip = ReasonNoEntity
			return res
		}
		entity = name
	}

	res.records = ExtractRows(s, hm, entity, plan.Rows)

	return res
}

// internal/generator/batch.go
package generator

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"inboxgen/internal/common/logger"
	"inboxgen/internal/common/metrics"
)

// Engine-internal rates. These are part of the fixture's shape, not the
// config surface.
const (
	merchantDriftRate = 0.08 // merchants mutated per day
	resurfaceRate     = 0.25 // chance of re-delivering one prior app/payment
	defaultProxyRate  = 0.03 // payments with a [30,60] days_from_due
)

// Config carries the parameters the generation core consumes. Degenerate
// values (zero counts, negative rates) produce empty or trivial output; the
// core never validates.
type Config struct {
	StartDate        time.Time
	NumDays          int
	NumMerchants     int
	AppsPerDay       int
	DisbRate         float64
	PaysPerDisb      int
	HeaderOmitPeriod int
	DuplicateRate    float64
	InvalidRate      float64
	BrokenRefRate    float64
	LateArrivalRate  float64
	Seed             int64
}

// Batch is one fully materialized per-day per-entity row-set, handed to the
// sink after generation and noise injection.
type Batch struct {
	Entity        string
	Date          time.Time
	Headers       []string
	Rows          [][]string
	IncludeHeader bool
}

// Sink is the external persistence collaborator. The engine never touches
// files itself.
type Sink interface {
	WriteBatch(Batch) error
}

// Generator owns the merchant pool and the two carry states for the whole
// run. Everything is single-threaded: the four stages of a day run strictly
// in order, and with a fixed seed every random draw happens in the same
// sequence, which is what makes two runs byte-identical.
type Generator struct {
	cfg   Config
	rng   *Rand
	noise NoisePolicy
	sink  Sink
	log   logger.Logger
	run   *metrics.Run

	pool      []Merchant
	carryApps *Carry[Application]
	carryPays *Carry[Payment]
}

func New(cfg Config, sink Sink, log logger.Logger, run *metrics.Run) *Generator {
	return &Generator{
		cfg: cfg,
		rng: NewRand(cfg.Seed),
		noise: NoisePolicy{
			DuplicateRate: cfg.DuplicateRate,
			InvalidRate:   cfg.InvalidRate,
			BrokenRefRate: cfg.BrokenRefRate,
		},
		sink:      sink,
		log:       log,
		run:       run,
		carryApps: NewCarry[Application](),
		carryPays: NewCarry[Payment](),
	}
}

// Run builds the pool once, then generates and persists the four row-sets
// for each day in sequence.
func (g *Generator) Run() error {
	g.pool = BuildMerchantPool(g.cfg.NumMerchants, g.cfg.StartDate, g.rng)
	g.log.Info("merchant pool built", map[string]interface{}{
		"merchants": len(g.pool),
		"startDate": g.cfg.StartDate.Format(dateLayout),
		"days":      g.cfg.NumDays,
		"seed":      g.cfg.Seed,
	})

	for day := 0; day < g.cfg.NumDays; day++ {
		batchDate := g.cfg.StartDate.AddDate(0, 0, day)
		if err := g.generateDay(day, batchDate); err != nil {
			return err
		}
		g.log.Debug("day generated", map[string]interface{}{
			"day":       day,
			"batchDate": batchDate.Format(dateLayout),
		})
	}
	return nil
}

func (g *Generator) generateDay(day int, batchDate time.Time) error {
	merchRows := g.merchantStage()
	if err := g.emit(EntityMerchants, batchDate, MerchantHeaders, merchRows, g.includeHeader(day, 1)); err != nil {
		return err
	}

	apps := g.applicationStage(batchDate)
	if err := g.emit(EntityApplications, batchDate, ApplicationHeaders, records(apps), true); err != nil {
		return err
	}

	disbs := g.disbursementStage(batchDate, apps)
	if err := g.emit(EntityDisbursements, batchDate, DisbursementHeaders, records(disbs), g.includeHeader(day, 2)); err != nil {
		return err
	}

	pays := g.paymentStage(batchDate, disbs)
	return g.emit(EntityPayments, batchDate, PaymentHeaders, records(pays), true)
}

// merchantStage emits a full point-in-time snapshot of the pool, drifting a
// fraction of merchants first. Mutations persist in the pool, so later days
// see the drifted values.
func (g *Generator) merchantStage() [][]string {
	rows := make([][]string, 0, len(g.pool))
	for i := range g.pool {
		if g.rng.Chance(merchantDriftRate) {
			g.pool[i] = Mutate(g.pool[i], g.rng)
		}
		rows = append(rows, g.pool[i].Record())
	}
	return rows
}

// applicationStage optionally resurfaces one prior application (appended
// first), then generates the day's fresh applications. Every emitted row,
// resurfaced included, lands in the carry state.
func (g *Generator) applicationStage(batchDate time.Time) []Application {
	apps := make([]Application, 0, g.cfg.AppsPerDay+1)

	if g.carryApps.Len() > 0 && g.rng.Chance(resurfaceRate) {
		id, prior := g.carryApps.Random(g.rng)
		updated := prior
		if updated.Status == StatusPending {
			updated.Status = StatusApproved
		}
		updated.ProcessingTime = processingInstant(batchDate, 2, g.rng)
		apps = append(apps, updated)
		g.carryApps.Put(id, updated)
	}

	if len(g.pool) == 0 {
		return apps
	}

	for i := 0; i < g.cfg.AppsPerDay; i++ {
		back := 0
		if g.rng.Chance(g.cfg.LateArrivalRate) {
			back = g.rng.Int(0, 10)
		} else {
			back = g.rng.Int(0, 2)
		}

		app := Application{
			ID:              g.rng.UUID(),
			MerchantID:      Pick(g.rng, g.pool).ID,
			ApplicationDate: batchDate.AddDate(0, 0, -back),
			RequestedAmount: decimal.NewFromFloat(g.rng.Float(5_000, 250_000)).Round(2),
			LoanPurpose:     Pick(g.rng, loanPurposes),
			Status:          WeightedChoice(g.rng, statusWeights),
			CreditScore:     g.rng.Int(300, 850),
			ProcessingTime:  processingInstant(batchDate, 2, g.rng),
		}
		apps = append(apps, app)
		g.carryApps.Put(app.ID, app)
	}
	return apps
}

// disbursementStage funds a configured fraction of the day's own APPROVED
// application rows. Only this file's rows count; carry state is not
// consulted.
func (g *Generator) disbursementStage(batchDate time.Time, apps []Application) []Disbursement {
	approved := make([]Application, 0, len(apps))
	for _, a := range apps {
		if a.Status == StatusApproved {
			approved = append(approved, a)
		}
	}
	g.rng.Shuffle(len(approved), func(i, j int) {
		approved[i], approved[j] = approved[j], approved[i]
	})

	n := int(float64(len(approved)) * g.cfg.DisbRate)
	if n > len(approved) {
		n = len(approved)
	}
	if n < 0 {
		n = 0
	}

	disbs := make([]Disbursement, 0, n)
	for i := 0; i < n; i++ {
		a := approved[i]

		back := 0
		if g.rng.Chance(g.cfg.LateArrivalRate) {
			back = g.rng.Int(1, 20)
		} else {
			back = g.rng.Int(0, 2)
		}

		appID, broken := g.noise.MaybeBreakRef(a.ID, g.rng)
		if broken {
			g.run.AddDefect(DefectBrokenRef)
		}

		d := Disbursement{
			ID:                g.rng.UUID(),
			ApplicationID:     appID,
			MerchantID:        a.MerchantID,
			DisbursedAmount:   a.RequestedAmount.Mul(decimal.NewFromFloat(g.rng.Float(0.85, 1.0))).Round(2),
			DisbursementDate:  batchDate.AddDate(0, 0, -back),
			InterestRate:      g.rng.Float(0.08, 0.25),
			TermMonths:        Pick(g.rng, termMonths),
			RepaymentSchedule: Pick(g.rng, schedules),
		}
		disbs = append(disbs, d)
	}
	return disbs
}

// paymentStage optionally resurfaces one prior payment with an adjusted
// amount, then spawns the weekly schedule for every disbursement emitted
// this day.
func (g *Generator) paymentStage(batchDate time.Time, disbs []Disbursement) []Payment {
	pays := make([]Payment, 0, len(disbs)*g.cfg.PaysPerDisb+1)

	if g.carryPays.Len() > 0 && g.rng.Chance(resurfaceRate) {
		id, prior := g.carryPays.Random(g.rng)
		updated := prior
		amount := prior.PaymentAmount.Mul(decimal.NewFromFloat(g.rng.Float(0.95, 1.05))).Round(2)
		if amount.LessThan(decimalOne) {
			amount = decimalOne
		}
		updated.PaymentAmount = amount
		updated.ProcessingTimestamp = processingInstant(batchDate, 10, g.rng)
		pays = append(pays, updated)
		g.carryPays.Put(id, updated)
	}

	for _, d := range disbs {
		for k := 1; k <= g.cfg.PaysPerDisb; k++ {
			share := d.DisbursedAmount.Div(decimal.NewFromInt(int64(g.cfg.PaysPerDisb)))
			amount := share.Mul(decimal.NewFromFloat(g.rng.Float(0.9, 1.1))).Round(2)
			if amount.LessThan(decimalOne) {
				amount = decimalOne
			}

			daysFromDue := 0
			if g.rng.Chance(defaultProxyRate) {
				daysFromDue = g.rng.Int(30, 60)
			} else {
				daysFromDue = WeightedChoice(g.rng, daysFromDueWeights)
			}

			disbID, broken := g.noise.MaybeBreakRef(d.ID, g.rng)
			if broken {
				g.run.AddDefect(DefectBrokenRef)
			}

			p := Payment{
				ID:                  g.rng.UUID(),
				DisbursementID:      disbID,
				MerchantID:          d.MerchantID,
				PaymentDate:         d.DisbursementDate.AddDate(0, 0, 7*k),
				PaymentAmount:       amount,
				PaymentMethod:       Pick(g.rng, payMethods),
				IsScheduled:         g.rng.Chance(0.5),
				DaysFromDue:         daysFromDue,
				ProcessingTimestamp: processingInstant(batchDate, 9, g.rng),
			}
			pays = append(pays, p)
			g.carryPays.Put(p.ID, p)
		}
	}
	return pays
}

// emit runs the per-file noise pass and hands the finished batch to the
// sink. Row metrics count generated rows, before injection.
func (g *Generator) emit(entity string, batchDate time.Time, headers []string, rows [][]string, includeHeader bool) error {
	g.run.AddRows(entity, len(rows))

	rows, injected := g.noise.ApplyFileNoise(entity, rows, g.rng)
	for _, kind := range injected {
		g.run.AddDefect(kind)
	}

	batch := Batch{
		Entity:        entity,
		Date:          batchDate,
		Headers:       headers,
		Rows:          rows,
		IncludeHeader: includeHeader,
	}
	if err := g.sink.WriteBatch(batch); err != nil {
		return fmt.Errorf("write %s batch for %s: %w", entity, batchDate.Format(dateLayout), err)
	}
	g.run.AddFile()
	return nil
}

// includeHeader implements the periodic header-omission schedule; each
// affected entity is offset so the gaps do not line up.
func (g *Generator) includeHeader(day, offset int) bool {
	n := g.cfg.HeaderOmitPeriod
	return !(n > 0 && day%n == offset)
}

func processingInstant(batchDate time.Time, hour int, rng *Rand) time.Time {
	return batchDate.Add(time.Duration(hour)*time.Hour + time.Duration(rng.Int(0, 59))*time.Minute)
}

func records[T interface{ Record() []string }](items []T) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, it.Record())
	}
	return rows
}

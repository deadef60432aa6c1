package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driving"
	"github.com/custodia-labs/crc-harvest/internal/logger"
)

// Ensure HarvestOrchestrator implements the interface.
var _ driving.HarvestOrchestrator = (*HarvestOrchestrator)(nil)

// HarvestOrchestrator drives one collection at a time through
// fetch, reconcile, map, enrich and submit.
//
// Records are processed strictly one after another. Resumption needs no
// saved state: every run rebuilds the reconciliation set from the catalog,
// so records stored by an interrupted run are skipped by the next one.
type HarvestOrchestrator struct {
	settings  domain.HarvestSettings
	fetcher   driven.SourceFetcher
	mappers   driven.MapperRegistry
	enrichers *EnrichmentPipeline
	index     *ReconciliationIndex
	submitter driven.CatalogSubmitter
	runStore  driven.RunStore

	now func() time.Time

	// Status tracking
	mu       sync.RWMutex
	active   map[domain.CollectionType]*driving.HarvestStatus
	finished map[domain.CollectionType]*driving.HarvestStatus
}

// NewHarvestOrchestrator creates a new harvest orchestrator.
// runStore is optional; when nil, run reports are only returned and logged.
func NewHarvestOrchestrator(
	settings domain.HarvestSettings,
	fetcher driven.SourceFetcher,
	mappers driven.MapperRegistry,
	enrichers *EnrichmentPipeline,
	index *ReconciliationIndex,
	submitter driven.CatalogSubmitter,
	runStore driven.RunStore,
) *HarvestOrchestrator {
	return &HarvestOrchestrator{
		settings:  settings,
		fetcher:   fetcher,
		mappers:   mappers,
		enrichers: enrichers,
		index:     index,
		submitter: submitter,
		runStore:  runStore,
		now:       time.Now,
		active:    make(map[domain.CollectionType]*driving.HarvestStatus),
		finished:  make(map[domain.CollectionType]*driving.HarvestStatus),
	}
}

// run holds the state of one harvest run.
type run struct {
	report *domain.RunReport
	status *driving.HarvestStatus
	coll   domain.Collection
}

// Run harvests one collection.
func (o *HarvestOrchestrator) Run(ctx context.Context, ct domain.CollectionType) (*domain.RunReport, error) {
	coll, err := o.settings.Collection(ct)
	if err != nil {
		return nil, err
	}

	r, err := o.begin(coll)
	if err != nil {
		return nil, err
	}
	defer o.end(r)

	logger.Section("harvest " + string(ct))
	logger.Info("harvest %s: run %s into %s", ct, r.report.ID, coll.ParentID)

	// Fetching
	o.transition(ctx, r, domain.RunFetching)
	raws, err := o.fetcher.FetchAll(ctx, coll, o.settings.FeatureService.PageSize)
	if err != nil {
		return o.abort(ctx, r, err)
	}
	r.report.Fetched = len(raws)

	// Reconciling
	o.transition(ctx, r, domain.RunReconciling)
	existing, err := o.index.Build(ctx, coll.ParentID)
	if err != nil {
		return o.abort(ctx, r, err)
	}
	r.report.Indexed = existing.Len()

	eligible, duplicates := selectEligible(raws, existing)
	r.report.Eligible = len(eligible)
	r.report.Duplicates = duplicates
	o.updateStatus(r, func(s *driving.HarvestStatus) { s.Eligible = len(eligible) })
	if duplicates > 0 {
		logger.Warn("harvest %s: %d duplicate primary ids in fetch, submitting each once", ct, duplicates)
	}
	logger.Info("harvest %s: fetched %d, already in catalog %d, eligible %d",
		ct, r.report.Fetched, r.report.Indexed, r.report.Eligible)

	if len(eligible) == 0 {
		o.transition(ctx, r, domain.RunDone)
		return r.report, nil
	}

	// Processing
	o.transition(ctx, r, domain.RunProcessing)
	for _, raw := range eligible {
		if err := ctx.Err(); err != nil {
			return o.abort(ctx, r, err)
		}
		o.process(ctx, r, raw)
	}

	o.transition(ctx, r, domain.RunDone)
	logger.Info("harvest %s: submitted %d, rejected %d, failed %d, unknown %d, enrichment failures %d",
		ct, r.report.Submitted, r.report.Rejected, r.report.Failed, r.report.Unknown, r.report.EnrichmentFails)
	return r.report, nil
}

// process maps, enriches and submits one record. Failures are recorded on
// the run and never returned.
func (o *HarvestOrchestrator) process(ctx context.Context, r *run, raw domain.RawRecord) {
	ct := r.coll.Type
	defer o.updateStatus(r, func(s *driving.HarvestStatus) {
		s.Processed++
		s.ErrorCount = r.report.Rejected + r.report.Failed + r.report.Unknown + r.report.EnrichmentFails
	})

	rawID, _ := raw.PrimaryID()

	mapper, err := o.mappers.Get(ct)
	if err == nil {
		var rec *domain.Record
		rec, err = mapper.Map(raw)
		if err == nil {
			o.enrichAndSubmit(ctx, r, rec)
			return
		}
	}

	r.report.Rejected++
	o.recordFailure(ctx, r, &domain.StageError{Stage: domain.StageMap, Collection: ct, RecordID: rawID, Err: err},
		domain.OutcomeRejected)
}

func (o *HarvestOrchestrator) enrichAndSubmit(ctx context.Context, r *run, rec *domain.Record) {
	for _, failure := range o.enrichers.Enrich(ctx, rec) {
		r.report.EnrichmentFails++
		o.recordFailure(ctx, r, failure, domain.OutcomeDegraded)
	}

	result := o.submitter.Submit(ctx, r.coll.ParentID, rec)
	switch result.Status {
	case domain.SubmissionCreated:
		r.report.Submitted++
		logger.Debug("harvest %s: record %s stored as %s", r.coll.Type, rec.ID, result.URL)
		o.recordOutcome(ctx, r, domain.RecordOutcome{
			RecordID: rec.ID,
			Stage:    domain.StageSubmit,
			Status:   domain.OutcomeSubmitted,
			ItemURL:  result.URL,
		})
	case domain.SubmissionUnknown:
		r.report.Unknown++
		o.recordFailure(ctx, r, submitError(r.coll.Type, rec.ID, result.Err), domain.OutcomeUnknown)
	default:
		r.report.Failed++
		o.recordFailure(ctx, r, submitError(r.coll.Type, rec.ID, result.Err), domain.OutcomeFailed)
	}
}

func submitError(ct domain.CollectionType, id string, err error) *domain.StageError {
	if err == nil {
		err = domain.ErrSubmissionFailed
	}
	return &domain.StageError{Stage: domain.StageSubmit, Collection: ct, RecordID: id, Source: "catalog", Err: err}
}

// recordFailure logs a record-level failure and appends it to the run log.
func (o *HarvestOrchestrator) recordFailure(ctx context.Context, r *run, err error, status domain.OutcomeStatus) {
	outcome := domain.RecordOutcome{Status: status, Error: err.Error()}
	var se *domain.StageError
	if errors.As(err, &se) {
		outcome.Stage = se.Stage
		outcome.RecordID = se.RecordID
		outcome.Source = se.Source
		logger.RecordFailure(string(se.Stage), string(r.coll.Type), se.RecordID, se.Source, se.Err)
	} else {
		logger.RecordFailure("unknown", string(r.coll.Type), "", "", err)
	}
	o.recordOutcome(ctx, r, outcome)
}

func (o *HarvestOrchestrator) recordOutcome(ctx context.Context, r *run, outcome domain.RecordOutcome) {
	outcome.RunID = r.report.ID
	outcome.Collection = r.coll.Type
	outcome.At = o.now()
	r.report.Outcomes = append(r.report.Outcomes, outcome)

	if o.runStore == nil {
		return
	}
	if err := o.runStore.RecordOutcome(context.WithoutCancel(ctx), outcome); err != nil {
		logger.Warn("run log: record outcome of %s: %v", outcome.RecordID, err)
	}
}

// selectEligible returns the records not yet in the catalog, in fetch
// order, keeping the first of any repeated primary id. Records without a
// primary id are kept so mapping rejects and reports them.
func selectEligible(raws []domain.RawRecord, existing *domain.ReconciliationSet) ([]domain.RawRecord, int) {
	var eligible []domain.RawRecord
	seen := make(map[string]bool, len(raws))
	duplicates := 0

	for _, raw := range raws {
		id, ok := raw.PrimaryID()
		if !ok {
			eligible = append(eligible, raw)
			continue
		}
		if existing.Contains(id) {
			continue
		}
		if seen[id] {
			duplicates++
			continue
		}
		seen[id] = true
		eligible = append(eligible, raw)
	}
	return eligible, duplicates
}

// RunAll harvests every configured collection in order. A failed
// collection does not stop the next unless ctx is done.
func (o *HarvestOrchestrator) RunAll(ctx context.Context) ([]*domain.RunReport, error) {
	var reports []*domain.RunReport
	var errs []error

	for _, ct := range domain.AllCollections() {
		if _, ok := o.settings.Collections[ct]; !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		report, err := o.Run(ctx, ct)
		if report != nil {
			reports = append(reports, report)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("harvest %s: %w", ct, err))
		}
	}

	if len(errs) > 0 {
		return reports, errors.Join(errs...)
	}
	return reports, nil
}

// Plan fetches and reconciles a collection without submitting anything.
func (o *HarvestOrchestrator) Plan(ctx context.Context, ct domain.CollectionType) (*driving.Plan, error) {
	coll, err := o.settings.Collection(ct)
	if err != nil {
		return nil, err
	}

	raws, err := o.fetcher.FetchAll(ctx, coll, o.settings.FeatureService.PageSize)
	if err != nil {
		return nil, err
	}
	existing, err := o.index.Build(ctx, coll.ParentID)
	if err != nil {
		return nil, err
	}

	eligible, duplicates := selectEligible(raws, existing)
	plan := &driving.Plan{
		Collection: ct,
		ParentID:   coll.ParentID,
		Fetched:    len(raws),
		Indexed:    existing.Len(),
		Duplicates: duplicates,
		Enrichers:  o.enrichers.Names(),
		Eligible:   make([]string, 0, len(eligible)),
	}
	for _, raw := range eligible {
		id, _ := raw.PrimaryID()
		plan.Eligible = append(plan.Eligible, id)
	}
	return plan, nil
}

// Status returns the active run's status, else the last finished run's,
// else the most recent persisted run's.
func (o *HarvestOrchestrator) Status(ctx context.Context, ct domain.CollectionType) (*driving.HarvestStatus, error) {
	if !ct.IsValid() {
		return nil, fmt.Errorf("%w: collection %q", domain.ErrUnsupportedType, ct)
	}

	o.mu.RLock()
	s, ok := o.active[ct]
	if !ok {
		s, ok = o.finished[ct]
	}
	if ok {
		cp := *s
		o.mu.RUnlock()
		return &cp, nil
	}
	o.mu.RUnlock()

	if o.runStore != nil {
		runs, err := o.runStore.ListRuns(ctx, ct, 1)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		if len(runs) > 0 {
			last := runs[0]
			return &driving.HarvestStatus{
				Collection: ct,
				State:      last.State,
				RunID:      last.ID,
				Processed:  last.Attempted() + last.Rejected,
				Eligible:   last.Eligible,
				ErrorCount: last.Rejected + last.Failed + last.Unknown + last.EnrichmentFails,
			}, nil
		}
	}

	return &driving.HarvestStatus{Collection: ct, State: domain.RunIdle}, nil
}

// begin registers a new run, refusing a second concurrent run of a collection.
func (o *HarvestOrchestrator) begin(coll domain.Collection) (*run, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, busy := o.active[coll.Type]; busy {
		return nil, fmt.Errorf("%w: %s", domain.ErrRunInProgress, coll.Type)
	}

	report := &domain.RunReport{
		ID:         uuid.NewString(),
		Collection: coll.Type,
		ParentID:   coll.ParentID,
		State:      domain.RunIdle,
		StartedAt:  o.now(),
	}
	status := &driving.HarvestStatus{Collection: coll.Type, State: domain.RunIdle, RunID: report.ID}
	o.active[coll.Type] = status

	return &run{report: report, status: status, coll: coll}, nil
}

// end moves the run's final status out of the active set.
func (o *HarvestOrchestrator) end(r *run) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.active, r.coll.Type)
	cp := *r.status
	o.finished[r.coll.Type] = &cp
}

// transition moves the run to next and persists the summary.
func (o *HarvestOrchestrator) transition(ctx context.Context, r *run, next domain.RunState) {
	if !r.report.State.CanTransition(next) {
		logger.Warn("harvest %s: invalid transition %s -> %s", r.coll.Type, r.report.State, next)
		return
	}
	logger.Debug("harvest %s: %s -> %s", r.coll.Type, r.report.State, next)
	r.report.State = next
	if next.IsTerminal() {
		r.report.EndedAt = o.now()
	}
	o.updateStatus(r, func(s *driving.HarvestStatus) { s.State = next })
	o.saveRun(ctx, r)
}

// abort ends the run in the aborted state and returns err.
func (o *HarvestOrchestrator) abort(ctx context.Context, r *run, err error) (*domain.RunReport, error) {
	r.report.Error = err.Error()
	o.transition(ctx, r, domain.RunAborted)
	logger.Error(err, "harvest %s: run %s aborted", r.coll.Type, r.report.ID)
	return r.report, err
}

func (o *HarvestOrchestrator) updateStatus(r *run, update func(*driving.HarvestStatus)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	update(r.status)
}

func (o *HarvestOrchestrator) saveRun(ctx context.Context, r *run) {
	if o.runStore == nil {
		return
	}
	if err := o.runStore.SaveRun(context.WithoutCancel(ctx), r.report); err != nil {
		logger.Warn("run log: save run %s: %v", r.report.ID, err)
	}
}

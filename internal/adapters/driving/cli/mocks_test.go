package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driving"
)

// mockHarvest implements driving.HarvestOrchestrator for testing.
type mockHarvest struct {
	reports map[domain.CollectionType]*domain.RunReport
	errs    map[domain.CollectionType]error
	ran     []domain.CollectionType
	plan    *driving.Plan
	status  map[domain.CollectionType]*driving.HarvestStatus
}

func (m *mockHarvest) Run(_ context.Context, ct domain.CollectionType) (*domain.RunReport, error) {
	m.ran = append(m.ran, ct)
	return m.reports[ct], m.errs[ct]
}

func (m *mockHarvest) RunAll(ctx context.Context) ([]*domain.RunReport, error) {
	var reports []*domain.RunReport
	for _, ct := range domain.AllCollections() {
		r, _ := m.Run(ctx, ct)
		if r != nil {
			reports = append(reports, r)
		}
	}
	return reports, nil
}

func (m *mockHarvest) Plan(_ context.Context, _ domain.CollectionType) (*driving.Plan, error) {
	return m.plan, nil
}

func (m *mockHarvest) Status(_ context.Context, ct domain.CollectionType) (*driving.HarvestStatus, error) {
	if s, ok := m.status[ct]; ok {
		return s, nil
	}
	return &driving.HarvestStatus{Collection: ct, State: domain.RunIdle}, nil
}

// mockHistory implements driving.RunHistory for testing.
type mockHistory struct {
	runs      []domain.RunReport
	outcomes  []domain.RecordOutcome
	lastLimit int
	lastColl  domain.CollectionType
}

func (m *mockHistory) Recent(_ context.Context, ct domain.CollectionType, limit int) ([]domain.RunReport, error) {
	m.lastColl = ct
	m.lastLimit = limit
	return m.runs, nil
}

func (m *mockHistory) Outcomes(_ context.Context, runID string) ([]domain.RecordOutcome, error) {
	if runID == "missing" {
		return nil, domain.ErrNotFound
	}
	return m.outcomes, nil
}

// mockCache implements driving.FetchCache for testing.
type mockCache struct {
	held    map[domain.CollectionType]int
	cleared []domain.CollectionType
	err     error
}

func (m *mockCache) Clear(_ context.Context, ct domain.CollectionType) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.cleared = append(m.cleared, ct)
	return m.held[ct], nil
}

// mockSettings implements driving.SettingsService for testing.
type mockSettings struct {
	settings *domain.HarvestSettings
	getErr   error
	set      map[string]any
	setErr   error
}

func (m *mockSettings) Get() (*domain.HarvestSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.settings, nil
}

func (m *mockSettings) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.set == nil {
		m.set = map[string]any{}
	}
	m.set[key] = value
	return nil
}

func (m *mockSettings) Keys() []string { return []string{"arcgis.page_size", "catalog.token"} }

func (m *mockSettings) GetDefaults() domain.HarvestSettings { return domain.DefaultHarvestSettings() }

func (m *mockSettings) Path() string { return "/tmp/crc-harvest/config.toml" }

// setupServices installs services and resets command flags afterwards.
func setupServices(t *testing.T, s Services) {
	t.Helper()
	oldHarvest, oldHistory, oldSettings, oldCache, oldErr := harvestOrchestrator, runHistory, settingsService, fetchCache, setupErr
	SetServices(s)
	t.Cleanup(func() {
		harvestOrchestrator, runHistory, settingsService, fetchCache, setupErr = oldHarvest, oldHistory, oldSettings, oldCache, oldErr
		planList = false
		runsLimit = 10
		runsShowStatus = ""
	})
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

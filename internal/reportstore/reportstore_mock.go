package reportstore

import (
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tmorling/headcount/internal/contract"
	"github.com/tmorling/headcount/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetReportStore implements the StoreManager interface.
func (m *MockStoreManager) GetReportStore() contract.ReportStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ReportStore)
	return store
}

// MockReportStore is a mock implementation of ReportStore for testing.
type MockReportStore struct {
	mock.Mock
}

var _ contract.ReportStore = &MockReportStore{} // Compile-time check

// BeginReportRun implements the ReportStore interface.
func (m *MockReportStore) BeginReportRun(startTime time.Time, referenceDate time.Time, weeks int, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, referenceDate, weeks, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndReportRun implements the ReportStore interface.
func (m *MockReportStore) EndReportRun(runID int64, endTime time.Time, seriesCount int, finalTotal *int64, status schema.RunStatus) error {
	args := m.Called(runID, endTime, seriesCount, finalTotal, status)
	return args.Error(0)
}

// InsertReportCells implements the ReportStore interface.
func (m *MockReportStore) InsertReportCells(cells []schema.ReportCellRecord) error {
	args := m.Called(cells)
	return args.Error(0)
}

// GetReportRuns implements the ReportStore interface.
func (m *MockReportStore) GetReportRuns(limit int) ([]schema.ReportRunRecord, error) {
	args := m.Called(limit)
	runs, _ := args.Get(0).([]schema.ReportRunRecord)
	return runs, args.Error(1)
}

// GetReportCells implements the ReportStore interface.
func (m *MockReportStore) GetReportCells(runID int64) ([]schema.ReportCellRecord, error) {
	args := m.Called(runID)
	cells, _ := args.Get(0).([]schema.ReportCellRecord)
	return cells, args.Error(1)
}

// GetLatestRunID implements the ReportStore interface.
func (m *MockReportStore) GetLatestRunID() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// GetStatus implements the ReportStore interface.
func (m *MockReportStore) GetStatus() (schema.ArchiveStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.ArchiveStatus), args.Error(1)
}

// Close implements the ReportStore interface.
func (m *MockReportStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

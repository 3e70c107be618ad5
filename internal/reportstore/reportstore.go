// Package reportstore archives report runs and their cells in SQL backends.
package reportstore

import (
	"sync"

	"github.com/tmorling/headcount/internal/contract"
)

// ReportStoreManager manages the archive ReportStore instance.
type ReportStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	report       contract.ReportStore
}

var _ contract.StoreManager = &ReportStoreManager{} // Compile-time check

// GetReportStore returns the archive ReportStore.
func (mgr *ReportStoreManager) GetReportStore() contract.ReportStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.report
}

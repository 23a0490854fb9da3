package domain

import "time"

// Snapshot is a point-in-time copy of the ledger handed to the report
// engine. The engine never reads the store directly; every report is a pure
// function of one snapshot and its as-of date.
type Snapshot struct {
	Transactions []*Transaction
	Categories   []*Category
	Budgets      []*Budget
	AsOf         time.Time
}

package currentfineprojection

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

// FineProjection is the fine of a loan as of AsOf. Final is true once the loan was returned.
type FineProjection struct {
	LoanID   core.LoanIDString
	PatronID core.PatronIDString
	State    core.LoanState
	DueDate  time.Time
	AsOf     time.Time
	Fine     decimal.Decimal
	Final    bool
}

package currentfineprojection

import (
	"time"

	"github.com/google/uuid"
)

const (
	queryType = "CurrentFineProjection"
)

type Query struct {
	LoanID uuid.UUID
	AsOf   time.Time
}

func BuildQuery(loanID uuid.UUID, asOf time.Time) Query {
	return Query{
		LoanID: loanID,
		AsOf:   asOf,
	}
}

func (q Query) QueryType() string {
	return queryType
}

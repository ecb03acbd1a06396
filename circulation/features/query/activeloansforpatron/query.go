package activeloansforpatron

import (
	"time"

	"github.com/google/uuid"
)

const (
	queryType = "ActiveLoansForPatron"
)

type Query struct {
	PatronID uuid.UUID
	AsOf     time.Time
}

func BuildQuery(patronID uuid.UUID, asOf time.Time) Query {
	return Query{
		PatronID: patronID,
		AsOf:     asOf,
	}
}

func (q Query) QueryType() string {
	return queryType
}

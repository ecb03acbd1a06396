package overdueloans

import (
	"time"
)

const (
	queryType = "OverdueLoans"
)

type Query struct {
	AsOf time.Time
}

func BuildQuery(asOf time.Time) Query {
	return Query{AsOf: asOf}
}

func (q Query) QueryType() string {
	return queryType
}

package itemavailability

import (
	"github.com/google/uuid"
)

const (
	queryType = "ItemAvailability"
)

type Query struct {
	ItemID uuid.UUID
}

func BuildQuery(itemID uuid.UUID) Query {
	return Query{ItemID: itemID}
}

func (q Query) QueryType() string {
	return queryType
}

package reservationsforitem

import (
	"github.com/google/uuid"
)

const (
	queryType = "ReservationsForItem"
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

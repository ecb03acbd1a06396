package eventstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

func Test_FilterBuilder_SanitizesEventTypesAndPredicates(t *testing.T) {
	// arrange + act
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("LoanReturned", "LoanIssued", "", "LoanIssued").
		AndAnyPredicateOf(
			eventstore.P("PatronID", "p-1"),
			eventstore.P("ItemID", "i-2"),
			eventstore.P("ItemID", "i-1"),
			eventstore.P("ItemID", ""),
			eventstore.P("ItemID", "i-1")).
		Finalize()

	// assert
	assert.Len(t, filter.Items(), 1)
	item := filter.Items()[0]
	assert.Equal(t, []string{"LoanIssued", "LoanReturned"}, item.EventTypes())
	assert.Equal(
		t,
		[]eventstore.FilterPredicate{
			eventstore.P("ItemID", "i-1"),
			eventstore.P("ItemID", "i-2"),
			eventstore.P("PatronID", "p-1"),
		},
		item.Predicates(),
	)
	assert.False(t, item.AllPredicatesMustMatch())
}

func Test_FilterBuilder_OrMatchingCreatesMultipleItems(t *testing.T) {
	// arrange + act
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("ItemRegistered").
		AndAnyPredicateOf(eventstore.P("ItemID", "i-1")).
		OrMatching().
		AllPredicatesOf(eventstore.P("ItemID", "i-1"), eventstore.P("PatronID", "p-1")).
		AndAnyEventTypeOf("ItemReserved").
		Finalize()

	// assert
	assert.Len(t, filter.Items(), 2)
	assert.False(t, filter.Items()[0].AllPredicatesMustMatch())
	assert.True(t, filter.Items()[1].AllPredicatesMustMatch())
	assert.Equal(t, []string{"ItemReserved"}, filter.Items()[1].EventTypes())
}

func Test_FilterBuilder_MatchingAnyEventIsEmpty(t *testing.T) {
	filter := eventstore.BuildEventFilter().MatchingAnyEvent()

	assert.Empty(t, filter.Items())
	assert.True(t, filter.Matches("Whatever", nil))
}

func Test_Filter_Matches(t *testing.T) {
	anyPredicateFilter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("LoanIssued", "LoanReturned").
		AndAnyPredicateOf(eventstore.P("ItemID", "i-1"), eventstore.P("PatronID", "p-1")).
		Finalize()

	allPredicatesFilter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("ItemReserved").
		AndAllPredicatesOf(eventstore.P("ItemID", "i-1"), eventstore.P("PatronID", "p-1")).
		Finalize()

	tests := []struct {
		name      string
		filter    eventstore.Filter
		eventType string
		payload   map[string]string
		expected  bool
	}{
		{
			name:      "type and first predicate match",
			filter:    anyPredicateFilter,
			eventType: "LoanIssued",
			payload:   map[string]string{"ItemID": "i-1", "PatronID": "p-9"},
			expected:  true,
		},
		{
			name:      "type and second predicate match",
			filter:    anyPredicateFilter,
			eventType: "LoanReturned",
			payload:   map[string]string{"ItemID": "i-9", "PatronID": "p-1"},
			expected:  true,
		},
		{
			name:      "type does not match",
			filter:    anyPredicateFilter,
			eventType: "ItemRegistered",
			payload:   map[string]string{"ItemID": "i-1"},
			expected:  false,
		},
		{
			name:      "no predicate matches",
			filter:    anyPredicateFilter,
			eventType: "LoanIssued",
			payload:   map[string]string{"ItemID": "i-2", "PatronID": "p-2"},
			expected:  false,
		},
		{
			name:      "all predicates match",
			filter:    allPredicatesFilter,
			eventType: "ItemReserved",
			payload:   map[string]string{"ItemID": "i-1", "PatronID": "p-1"},
			expected:  true,
		},
		{
			name:      "only one of all predicates matches",
			filter:    allPredicatesFilter,
			eventType: "ItemReserved",
			payload:   map[string]string{"ItemID": "i-1", "PatronID": "p-2"},
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Matches(tt.eventType, tt.payload))
		})
	}
}

func Test_FilterBuilder_DoesNotShareStateBetweenBranches(t *testing.T) {
	// arrange
	base := eventstore.BuildEventFilter().Matching().AnyEventTypeOf("LoanIssued")

	// act
	first := base.AndAnyPredicateOf(eventstore.P("ItemID", "i-1")).Finalize()
	second := base.AndAnyPredicateOf(eventstore.P("ItemID", "i-2")).Finalize()

	// assert
	assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("ItemID", "i-1")}, first.Items()[0].Predicates())
	assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("ItemID", "i-2")}, second.Items()[0].Predicates())
}

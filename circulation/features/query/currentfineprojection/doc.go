// Package currentfineprojection computes the fine of one loan at a point in time. Open loans
// accrue a fine day by day; a returned loan reports the fine fixed at return or collection.
package currentfineprojection

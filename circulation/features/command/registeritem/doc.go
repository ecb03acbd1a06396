// Package registeritem seeds an item and its copy count into the availability ledger.
//
// Catalog metadata lives with the catalog collaborator; circulation only keeps the title for
// display and the number of copies. Registering an already registered item is a no-op.
package registeritem

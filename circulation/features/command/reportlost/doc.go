// Package reportlost opens a LOST record for one copy of an item and takes that copy out of
// the lending pool until the record is resolved.
package reportlost

// Package reportdamaged opens a DAMAGED record for one copy of an item. Only severe or
// irreparable damage takes the copy out of the lending pool; lighter damage keeps it circulating.
package reportdamaged

// Package helper contains test doubles and arrange helpers shared by the test suites.
package helper

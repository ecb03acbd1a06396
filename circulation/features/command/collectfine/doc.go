// Package collectfine records the fine amount actually collected for a loan. The amount replaces
// the fine assessed on return; the loan state does not change.
package collectfine

// Package updatelostdamagedstatus moves a LOST or DAMAGED record along its state machine and
// applies the resulting change to the item's copy counts.
package updatelostdamagedstatus

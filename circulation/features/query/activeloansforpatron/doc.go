// Package activeloansforpatron lists the open loans of one patron, oldest first, flagging the
// ones that are overdue at the query time.
package activeloansforpatron

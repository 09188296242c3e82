/*
Package notification contains the Notification entity. A notification is
created in the same transaction as the order mutation that triggered it
and doubles as an outbox row: the dispatch job picks up unsent rows and
delivers them out of band, so a failed delivery can never roll back the
originating transaction.
*/
package notification

/*
Package presence contains the DriverPresence aggregate: a driver's
availability status, last reported location and the order currently held,
if any.

A driver may hold at most one order at a time. Holding an order forces the
busy status, and going offline drops the held order so the dispatcher can
hand it to someone else. Availability for dispatch means status online and
no held order.
*/
package presence

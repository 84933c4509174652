// Package tracking holds the DeliveryTracking aggregate: the per-courier
// record of an assignment cycle, from assignment to delivery, failure or
// rejection, including what was collected at the door.
package tracking

package order

// RouteAfterReview decides where billing releases an order. Cash that is
// collected in person goes straight to logistics; anything that must land in
// a company account first goes through wallet review.
func RouteAfterReview(payment PaymentMethod, delivery DeliveryMethod) Status {
	switch {
	case payment == PaymentCashOnDelivery:
		return StatusInLogistics
	case payment == PaymentCash && (delivery.IsPickup() || delivery.IsLocal()):
		return StatusInLogistics
	default:
		return StatusWalletReview
	}
}

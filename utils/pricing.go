package utils

// ComputeTotalPrice returns max(0, price*quantity - discount). Create and
// update paths must both go through it so the stored value never diverges.
func ComputeTotalPrice(price float64, quantity int, discount float64) float64 {
	total := price*float64(quantity) - discount
	if total < 0 {
		return 0
	}
	return total
}

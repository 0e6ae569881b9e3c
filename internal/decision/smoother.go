package decision

// SmoothedDemand is the moving average of the last window demand values.
// The window is clamped to currentWeek so it never reaches before week 1, and
// to the number of observations supplied.
func SmoothedDemand(demand []int, currentWeek, window int) float64 {
	if len(demand) == 0 {
		return 0
	}
	window = min(window, currentWeek, len(demand))
	if window < 1 {
		window = 1
	}
	sum := 0
	for _, d := range demand[len(demand)-window:] {
		sum += d
	}
	return float64(sum) / float64(window)
}

package project

// EffectiveDuration treats a missing or non-positive duration as DefaultDuration.
func EffectiveDuration(d float64) float64 {
	if d <= 0 {
		return DefaultDuration
	}
	return d
}

// TotalDuration sums the effective duration of every line.
func TotalDuration(lines []ShotLine) float64 {
	var total float64
	for _, line := range lines {
		total += EffectiveDuration(line.Duration)
	}
	return total
}

// ProgressBefore sums the effective durations of the lines before index.
func ProgressBefore(lines []ShotLine, index int) float64 {
	if index > len(lines) {
		index = len(lines)
	}
	var elapsed float64
	for i := 0; i < index; i++ {
		elapsed += EffectiveDuration(lines[i].Duration)
	}
	return elapsed
}

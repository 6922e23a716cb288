package scoring

// Classify is the pure Zone Classifier from spec §4.3. Every bpm >= 0 maps
// to exactly one zone; the threshold value itself always belongs to the
// higher zone (half-open intervals, lower bound inclusive).
func Classify(bpm int, zones TrainingZones) ZoneTag {
	switch {
	case bpm < zones.VTOff:
		return Off
	case bpm < zones.VT0:
		return Rest
	case bpm < zones.VT1:
		return Easy
	case bpm < zones.VT2:
		return Moderate
	default:
		return Hard
	}
}

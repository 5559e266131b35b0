package quiz

// Band is a display tier for a final percentage.
type Band struct {
	Min     float64
	Emoji   string
	Message string
}

// Bands are ordered from the highest lower bound down. The last band
// catches everything below the others.
var Bands = []Band{
	{Min: 100, Emoji: "🏆", Message: "Outstanding! You have mastered this concept. 🎉"},
	{Min: 80, Emoji: "🌟", Message: "Outstanding! You have mastered this concept. 🎉"},
	{Min: 60, Emoji: "👍", Message: "Nice! Watch the visualization again to deepen your understanding."},
	{Min: 40, Emoji: "📚", Message: "Don't give up! Rewatch the visualization and try the quiz again."},
	{Min: 0, Emoji: "💪", Message: "Don't give up! Rewatch the visualization and try the quiz again."},
}

// BandFor returns the band whose lower bound pct reaches.
func BandFor(pct float64) Band {
	for _, b := range Bands[:len(Bands)-1] {
		if pct >= b.Min {
			return b
		}
	}
	return Bands[len(Bands)-1]
}

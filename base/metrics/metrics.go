package metrics

const (
	MetronomeLatenessH = "The delay between the scheduled and the actual wake-up of the most recent tick, in seconds"
	MetronomeLatenessN = "metronome_lateness_seconds"
	MetronomeResetsH   = "The total number of schedule resynchronizations after exceeding the maximum backlog"
	MetronomeResetsN   = "metronome_resets"
	MetronomeTicksH    = "The total number of ticks completed"
	MetronomeTicksN    = "metronome_ticks"
)

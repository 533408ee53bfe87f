package pattern

// KnownFunctions is the vocabulary of recognized Strudel function names.
// It is an ordered allow-list: [CheckHeuristics] compares call-style tokens
// against it case-insensitively. Extend the slice to teach the scanner new
// names; no per-name logic exists anywhere else.
var KnownFunctions = []string{
	// sources
	"s", "sound", "note", "n", "freq", "silence",
	// grouping and sequencing
	"stack", "cat", "seq", "arrange", "polymeter", "timecat",
	// tempo
	"setcpm", "setcps", "cpm",
	// level and space
	"gain", "pan", "room", "orbit", "velocity",
	// time transforms
	"slow", "fast", "hurry", "rev", "iter", "palindrome", "ply",
	"early", "late", "off", "swingBy", "swing", "compress", "zoom",
	"linger", "inside", "outside", "segment", "struct", "euclid",
	"euclidLegato", "chunk", "fastGap",
	// conditionals
	"every", "when", "sometimes", "sometimesBy", "often", "rarely",
	"almostAlways", "almostNever", "someCycles", "degrade", "degradeBy",
	"jux", "juxBy", "mask", "undegradeBy",
	// pitch
	"scale", "transpose", "add", "sub", "mul", "div", "range", "chord",
	"arp", "arpeggiate", "mode", "voicing", "rootNotes",
	// sample manipulation
	"chop", "striate", "slice", "splice", "speed", "loopAt", "fit",
	"begin", "end", "cut", "bank", "clip", "legato", "squiz",
	// filters and effects
	"lpf", "hpf", "bpf", "cutoff", "resonance", "vowel", "crush",
	"coarse", "shape", "distort", "delay", "delaytime", "delayfeedback",
	"phaser", "tremolo",
	// envelope
	"attack", "decay", "sustain", "release", "adsr",
	// signals
	"sine", "saw", "square", "tri", "rand", "irand", "perlin", "choose",
	"chooseWith", "wchoose", "run",
	// misc
	"hush", "color", "pianoroll", "log",
}

// knownSet is the folded lookup built once from KnownFunctions.
var knownSet = buildKnownSet()

func buildKnownSet() map[string]struct{} {
	set := make(map[string]struct{}, len(KnownFunctions))
	for _, name := range KnownFunctions {
		set[foldName(name)] = struct{}{}
	}
	return set
}

// IsKnownFunction reports whether name is in the vocabulary,
// compared case-insensitively.
func IsKnownFunction(name string) bool {
	_, ok := knownSet[foldName(name)]
	return ok
}

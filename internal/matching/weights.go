package matching

// Weights distribute the five criteria into the overall score. They always
// sum to 1.
type Weights struct {
	Budget   float64
	Location float64
	Capacity float64
	Cultural float64
	Style    float64
}

var defaultWeights = Weights{
	Budget:   0.30,
	Location: 0.25,
	Capacity: 0.15,
	Cultural: 0.20,
	Style:    0.10,
}

// highPriorityWeights apply when the couple ranks the category 8 or higher:
// price sensitivity drops, cultural and style affinity gain.
var highPriorityWeights = Weights{
	Budget:   0.20,
	Location: 0.25,
	Capacity: 0.15,
	Cultural: 0.25,
	Style:    0.15,
}

// lowPriorityWeights apply when the couple ranks the category 3 or lower:
// the cheapest acceptable option matters most.
var lowPriorityWeights = Weights{
	Budget:   0.40,
	Location: 0.25,
	Capacity: 0.15,
	Cultural: 0.12,
	Style:    0.08,
}

// weightsFor picks the weight profile from the couple's stated priority for
// the category, falling back to the default profile when none is set.
func weightsFor(priorities map[string]int, category string) Weights {
	priority, ok := priorities[category]
	if !ok {
		return defaultWeights
	}
	switch {
	case priority >= 8:
		return highPriorityWeights
	case priority <= 3:
		return lowPriorityWeights
	default:
		return defaultWeights
	}
}

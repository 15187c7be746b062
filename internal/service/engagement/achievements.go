package engagement

// Counts holds the aggregate numbers the achievement predicates are
// evaluated against. FastMastery is set for the single review event that
// first promoted a word to MASTERED within the fast-mastery window.
type Counts struct {
	Words       int
	Mastered    int
	Streak      int
	Collections int
	FastMastery bool
}

// Achievement pairs a stable identifier with its unlock predicate.
// Predicates only read the counts; unlocking is handled by the sweep.
type Achievement struct {
	ID        string
	Satisfied func(c Counts) bool
}

// achievements is the fixed unlock table. IDs are part of the persisted
// stats format and must never be renamed.
var achievements = []Achievement{
	{ID: "first_memory", Satisfied: func(c Counts) bool { return c.Words >= 1 }},
	{ID: "word_warrior", Satisfied: func(c Counts) bool { return c.Words >= 100 }},
	{ID: "librarian", Satisfied: func(c Counts) bool { return c.Words >= 500 }},
	{ID: "word_hunter", Satisfied: func(c Counts) bool { return c.Words >= 1000 }},
	{ID: "rising_intellect", Satisfied: func(c Counts) bool { return c.Mastered >= 10 }},
	{ID: "prodigy", Satisfied: func(c Counts) bool { return c.Mastered >= 100 }},
	{ID: "bronze_mind", Satisfied: func(c Counts) bool { return c.Streak >= 3 }},
	{ID: "silver_mind", Satisfied: func(c Counts) bool { return c.Streak >= 7 }},
	{ID: "gold_mind", Satisfied: func(c Counts) bool { return c.Streak >= 14 }},
	{ID: "diamond_mind", Satisfied: func(c Counts) bool { return c.Streak >= 30 }},
	{ID: "mythic_mind", Satisfied: func(c Counts) bool { return c.Streak >= 60 }},
	{ID: "collector", Satisfied: func(c Counts) bool { return c.Collections >= 1 }},
	{ID: "polymath", Satisfied: func(c Counts) bool { return c.Collections >= 5 }},
	{ID: "quick_learner", Satisfied: func(c Counts) bool { return c.FastMastery }},
}

// AchievementIDs returns the identifiers of every defined achievement,
// in table order.
func AchievementIDs() []string {
	ids := make([]string, len(achievements))
	for i, a := range achievements {
		ids[i] = a.ID
	}
	return ids
}

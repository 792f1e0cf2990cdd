package report

import "recall/pkg/quizservice"

// Data bundles everything the HTML report renders.
type Data struct {
	Quiz     quizservice.Progress
	Problems []quizservice.Problem
}

// Stats summarizes grading across the quiz slots.
type Stats struct {
	Total    int
	Answered int
	Correct  int
}

// Stats computes the score summary for the report header.
func (d Data) Stats() Stats {
	stats := Stats{Total: len(d.Problems)}
	for _, problem := range d.Problems {
		if !problem.Answered() {
			continue
		}
		stats.Answered++
		if problem.Status == quizservice.StatusCorrect {
			stats.Correct++
		}
	}
	return stats
}

// Accuracy returns the correct fraction of answered slots.
func (s Stats) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

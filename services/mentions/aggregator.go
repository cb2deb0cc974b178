package mentions

import (
	"cashtag-mentions/models/entities"
	"cashtag-mentions/utils/cashtags"
	"iter"
)

func NewAggregator() *Aggregator {
	return &Aggregator{counts: make(entities.TickerCount)}
}

func (agg *Aggregator) Add(post entities.Post) {
	agg.scanned++
	for tag := range cashtags.Extract(post.Text) {
		agg.counts[tag]++
	}
}

// Consume adds posts as they are produced and stops at the first error.
func (agg *Aggregator) Consume(posts iter.Seq2[entities.Post, error]) error {
	for post, err := range posts {
		if err != nil {
			return err
		}
		agg.Add(post)
	}

	return nil
}

func (agg *Aggregator) Merge(other *Aggregator) {
	agg.scanned += other.scanned
	for tag, mentions := range other.counts {
		agg.counts[tag] += mentions
	}
}

func (agg *Aggregator) Counts() entities.TickerCount {
	counts := make(entities.TickerCount, len(agg.counts))
	for tag, mentions := range agg.counts {
		counts[tag] = mentions
	}

	return counts
}

func (agg *Aggregator) Scanned() int {
	return agg.scanned
}

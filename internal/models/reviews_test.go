package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func reviewsWithRatings(ratings ...int) []*Review {
	reviews := make([]*Review, 0, len(ratings))
	for _, r := range ratings {
		reviews = append(reviews, &Review{Rating: r})
	}
	return reviews
}

func TestAggregateRatings(t *testing.T) {
	tests := []struct {
		name        string
		ratings     []int
		wantAverage float64
		wantCount   int
	}{
		{"no reviews", nil, 0, 0},
		{"single review", []int{4}, 4, 1},
		{"five four three", []int{5, 4, 3}, 4, 3},
		{"half step", []int{5, 4}, 4.5, 2},
		{"rounds to one decimal", []int{3, 3, 4}, 3.3, 3},
		{"rounds up", []int{5, 5, 4}, 4.7, 3},
		{"all ones", []int{1, 1, 1, 1}, 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			average, count := AggregateRatings(reviewsWithRatings(tt.ratings...))
			assert.Equal(t, tt.wantAverage, average)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestAggregateRatingsIdempotent(t *testing.T) {
	reviews := reviewsWithRatings(2, 5, 3, 4, 4)

	avg1, count1 := AggregateRatings(reviews)
	avg2, count2 := AggregateRatings(reviews)
	assert.Equal(t, avg1, avg2)
	assert.Equal(t, count1, count2)
}

func TestAggregateRatingsBounds(t *testing.T) {
	average, _ := AggregateRatings(reviewsWithRatings(5, 5, 5))
	assert.Equal(t, 5.0, average)

	average, _ = AggregateRatings(reviewsWithRatings(1))
	assert.Equal(t, 1.0, average)
}

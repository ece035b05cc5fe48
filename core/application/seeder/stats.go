package seeder

import (
	"github.com/hyperterse/seeder/core/domain"
)

// Stats summarises the dependent stage's output.
type Stats struct {
	Customers     int
	TotalOrders   int
	TotalRevenue  float64
	AvgOrderValue float64
	TotalReviews  int
	AvgRating     float64
}

// ComputeStats derives revenue and rating aggregates. Averages over empty
// sets are zero.
func ComputeStats(users []domain.User, reviews []domain.Review, orders []domain.Order) Stats {
	stats := Stats{
		Customers:    len(domain.Customers(users)),
		TotalOrders:  len(orders),
		TotalReviews: len(reviews),
	}
	for _, o := range orders {
		stats.TotalRevenue += o.Total
	}
	if len(orders) > 0 {
		stats.AvgOrderValue = stats.TotalRevenue / float64(len(orders))
	}
	var ratings int
	for _, r := range reviews {
		ratings += r.Rating
	}
	if len(reviews) > 0 {
		stats.AvgRating = float64(ratings) / float64(len(reviews))
	}
	return stats
}

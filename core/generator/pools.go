package generator

import "github.com/hyperterse/seeder/core/domain"

var firstNames = []string{
	"Alice", "Bob", "Charlie", "Diana", "Emma", "Frank", "Grace", "Henry", "Isabella",
	"Jack", "Katherine", "Liam", "Mia", "Noah", "Olivia", "Peter", "Quinn", "Rachel",
	"Samuel", "Tara", "Uma", "Victor", "Wendy", "Xavier", "Yara", "Zachary",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Thompson", "White",
	"Harris", "Clark",
}

type city struct {
	name  string
	state string
	zip   string
}

var cities = []city{
	{"New York", "NY", "10001"},
	{"Los Angeles", "CA", "90001"},
	{"Chicago", "IL", "60601"},
	{"Houston", "TX", "77001"},
	{"Phoenix", "AZ", "85001"},
	{"Philadelphia", "PA", "19019"},
	{"San Antonio", "TX", "78201"},
	{"San Diego", "CA", "92101"},
	{"Dallas", "TX", "75201"},
	{"San Jose", "CA", "95101"},
	{"Austin", "TX", "73301"},
	{"Seattle", "WA", "98101"},
	{"Denver", "CO", "80201"},
	{"Boston", "MA", "02101"},
	{"Portland", "OR", "97201"},
}

var streets = []string{
	"Main St", "Oak Ave", "Pine St", "Maple Dr", "Cedar Ln",
	"Elm St", "Washington Blvd", "Park Ave", "Broadway", "Market St",
}

var emailDomains = []string{"gmail.com", "yahoo.com", "outlook.com", "example.com"}

var paymentMethods = []string{"credit_card", "debit_card", "paypal", "apple_pay"}

var roleWeights = []Weighted[domain.Role]{
	{Value: domain.RoleCustomer, Weight: 80},
	{Value: domain.RoleAdmin, Weight: 20},
}

var orderStatusWeights = []Weighted[domain.OrderStatus]{
	{Value: domain.OrderPending, Weight: 1},
	{Value: domain.OrderProcessing, Weight: 1},
	{Value: domain.OrderShipped, Weight: 1},
	{Value: domain.OrderDelivered, Weight: 3},
	{Value: domain.OrderCancelled, Weight: 1},
}

var reviewTitles = map[domain.Tone]string{
	domain.TonePositive: "Great product!",
	domain.ToneNeutral:  "It's okay",
	domain.ToneNegative: "Not satisfied",
}

var reviewComments = map[domain.Tone][]string{
	domain.TonePositive: {
		"Excellent product! Highly recommend.",
		"Great quality, exactly as described.",
		"Very satisfied with this purchase.",
		"Best purchase I've made in a while!",
		"Amazing product, exceeded expectations.",
		"Perfect! Works great.",
		"Love it! Will buy again.",
		"Outstanding quality and performance.",
		"Exactly what I needed.",
		"Fantastic! No complaints.",
		"Very happy with this product.",
		"Great value for money.",
		"Impressed with the quality.",
		"Works perfectly as advertised.",
		"Couldn't be happier!",
		"Five stars all the way!",
		"Absolutely love it!",
		"Would definitely recommend to others.",
	},
	domain.ToneNeutral: {
		"It's okay, does the job.",
		"Average product, nothing special.",
		"Decent quality for the price.",
		"Works as expected.",
		"Good but not great.",
		"It's fine, meets basic needs.",
		"Acceptable quality.",
		"Not bad, not amazing.",
		"Does what it's supposed to do.",
		"It's alright.",
	},
	domain.ToneNegative: {
		"Not as good as I expected.",
		"Disappointed with the quality.",
		"Had some issues with it.",
		"Could be better.",
		"Not worth the price.",
		"Had to return it.",
		"Doesn't work as advertised.",
		"Quality is lacking.",
		"Regret buying this.",
		"Not recommended.",
	},
}

// ReviewComments returns the comment pool for a tone.
func ReviewComments(tone domain.Tone) []string {
	return reviewComments[tone]
}

// ReviewTitle returns the fixed title for a tone.
func ReviewTitle(tone domain.Tone) string {
	return reviewTitles[tone]
}

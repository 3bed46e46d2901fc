package spam_test

import (
	"regexp"
	"testing"

	"github.com/pwcdb/pwcdb/pkg/spam"
	"github.com/stretchr/testify/assert"
)

func TestClassifyNamedCategories(t *testing.T) {
	c := spam.Default(nil)

	tests := []struct {
		msg      string
		rec      spam.Record
		isSpam   bool
		category string
	}{
		{
			msg: "customer service phrasing",
			rec: spam.Record{
				Name:        "Quick Help",
				Description: "call our customer service line now",
			},
			isSpam:   true,
			category: spam.CategoryCustomerService,
		},
		{
			msg: "hyphenated dataset slug",
			rec: spam.Record{
				Name: "how-do-i-cancel-my-flight-and-get-refund",
			},
			isSpam:   true,
			category: spam.CategoryQuestion,
		},
		{
			msg: "toll free phone number",
			rec: spam.Record{
				Name:        "Helpdesk",
				Description: "dial 1-800-555-0199 anytime",
			},
			isSpam:   true,
			category: spam.CategoryPhoneNumbers,
		},
		{
			msg: "formatted phone number",
			rec: spam.Record{
				Name:        "Contact Info",
				Description: "(555) 123-4567",
			},
			isSpam:   true,
			category: spam.CategoryPhoneNumbers,
		},
		{
			msg: "airline vocabulary",
			rec: spam.Record{
				Name: "british-airways-refund-policy-explained",
			},
			isSpam:   true,
			category: spam.CategoryTravelAirline,
		},
		{
			msg: "social media url",
			rec: spam.Record{
				Name:        "Follow Us",
				Description: "see facebook.com/ourpage",
			},
			isSpam:   true,
			category: spam.CategoryURL,
		},
		{
			msg: "spanish question phrasing",
			rec: spam.Record{
				Name:        "Ayuda",
				Description: "¿cómo hablar con una persona real?",
			},
			isSpam:   true,
			category: spam.CategoryQuestion,
		},
		{
			msg: "legitimate dataset",
			rec: spam.Record{
				Name:        "ImageNet",
				Description: "A large-scale image database",
				Homepage:    "https://image-net.org",
				HasHomepage: true,
			},
		},
		{
			msg: "legitimate method",
			rec: spam.Record{
				Name:        "Dropout",
				Description: "Randomly drops units during training",
			},
		},
		{
			msg: "cancellation in a genuine description",
			rec: spam.Record{
				Name:        "NoiseCancelNet",
				Description: "active noise cancellation with neural nets",
				Homepage:    "https://example.org",
				HasHomepage: true,
			},
		},
		{
			msg: "empty name never classifies",
			rec: spam.Record{Description: "call customer service"},
		},
	}

	for _, tt := range tests {
		res := c.Classify(tt.rec)
		assert.Equal(t, tt.isSpam, res.IsSpam, tt.msg)
		if tt.isSpam {
			assert.Equal(t, tt.category, res.Category, tt.msg)
			assert.NotEmpty(t, res.Pattern, tt.msg)
		}
	}
}

func TestClassifyCombinators(t *testing.T) {
	c := spam.Default(nil)

	// Neither signal names a rule pattern on its own, held jointly
	// they classify.
	res := c.Classify(spam.Record{
		Name:        "what-terminal-is-my-departure",
		Description: "reach us at +44 020 7946 0958",
	})
	assert.True(t, res.IsSpam)
	assert.Equal(t, spam.CategoryQuestionPhone, res.Category)

	res = c.Classify(spam.Record{
		Name:        "when-is-my-flights-seat-assigned",
		Description: "seat maps explained",
	})
	assert.True(t, res.IsSpam)
	assert.Equal(t, spam.CategoryQuestionTravel, res.Category)

	// One weak signal alone stays clean.
	res = c.Classify(spam.Record{
		Name:        "When2Meet Scheduling Corpus",
		Description: "meeting time negotiation dialogues",
		Homepage:    "https://example.org",
		HasHomepage: true,
	})
	assert.False(t, res.IsSpam)
}

func TestClassifyStructural(t *testing.T) {
	c := spam.Default(nil)

	// Empty homepage and no dataset mention.
	res := c.Classify(spam.Record{
		Name:        "Best Essay Writers Online",
		Description: "we write essays for you",
		HasHomepage: true,
	})
	assert.True(t, res.IsSpam)
	assert.Equal(t, spam.CategoryStructural, res.Category)

	// Self-referencing homepage is as good as none.
	res = c.Classify(spam.Record{
		Name:        "Mystery Entry",
		Homepage:    "http://paperswithcode.com/dataset/mystery",
		HasHomepage: true,
	})
	assert.True(t, res.IsSpam)

	// A dataset mention in the description spares the entry.
	res = c.Classify(spam.Record{
		Name:        "Community Corpus",
		Description: "a small dataset of forum posts",
		HasHomepage: true,
	})
	assert.False(t, res.IsSpam)

	// A dataset mention in the name alone does not: slugs carry the
	// word routinely, the description is what counts.
	res = c.Classify(spam.Record{
		Name:        "my-cool-dataset-entry",
		Description: "buy cheap essays now",
		HasHomepage: true,
	})
	assert.True(t, res.IsSpam)
	assert.Equal(t, spam.CategoryStructural, res.Category)

	// Methods never see the structural rule.
	res = c.Classify(spam.Record{
		Name:        "Mystery Method",
		Description: "an obscure trick",
	})
	assert.False(t, res.IsSpam)
}

func TestCategoryFilter(t *testing.T) {
	c := spam.Default([]string{spam.CategoryTravelAirline})

	res := c.Classify(spam.Record{Name: "expedia-discount-codes"})
	assert.True(t, res.IsSpam)
	assert.Equal(t, spam.CategoryTravelAirline, res.Category)

	// Other categories are disabled, including combinators and the
	// structural rule.
	res = c.Classify(spam.Record{
		Name:        "how-do-i-get-a-refund",
		HasHomepage: true,
	})
	assert.False(t, res.IsSpam)
}

func TestCustomRules(t *testing.T) {
	rules := append(spam.DefaultRules(), spam.Rule{
		Category: "crypto_spam",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`free[\s_-]+bitcoin`),
		},
	})
	c := spam.New(rules, nil)

	res := c.Classify(spam.Record{Name: "free-bitcoin-generator"})
	assert.True(t, res.IsSpam)
	assert.Equal(t, "crypto_spam", res.Category)
}

package database

import (
	"context"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog/log"
)

// DemoProjects are the case studies installed by SeedDemoProjects.
func DemoProjects() []models.ProjectInput {
	return []models.ProjectInput{
		{
			Slug:        "komus",
			Title:       "Komus",
			Product:     "E-commerce",
			Platform:    "Web, Mobile",
			Description: "Redesign of an office supplies platform focused on the B2B segment",
			Year:        "2024",
			Challenge:   "An outdated B2B interface led to low conversion and made large orders hard to place. Corporate clients struggled to navigate a catalog of more than 50,000 products.",
			Solution:    "Built a new navigation system with advanced filters and bulk ordering, personalization based on purchase history, and a simplified corporate checkout supporting multiple payment and delivery options.",
			Results: models.StringList{
				"Conversion up 34%",
				"Checkout time down 45%",
				"Repeat purchases up 28%",
				"NPS grew from 42 to 67",
			},
			Tags: models.StringList{"E-commerce", "B2B", "Design System", "UX Research"},
		},
		{
			Slug:        "crypto-wallet",
			Title:       "Crypto Wallet",
			Product:     "Fintech",
			Platform:    "Web, Mobile",
			Description: "Interface design for a cryptocurrency wallet",
			Year:        "2023",
			Challenge:   "Make a wallet approachable for beginners without hiding the advanced tools experienced users rely on, balancing simplicity against security.",
			Solution:    "Designed a two-level interface with simple and advanced modes, clear transaction and portfolio visualizations, contextual hints for critical operations and a confirmation flow with plain-language warnings.",
			Results: models.StringList{
				"95% success rate on first transactions",
				"Support requests down 60%",
				"4.8 stars in the App Store",
				"200K+ active users",
			},
			Tags: models.StringList{"Fintech", "Mobile First", "Security UX", "Onboarding"},
		},
		{
			Slug:        "business-automation",
			Title:       "Business Automation",
			Product:     "SaaS",
			Platform:    "Web",
			Description: "Business process automation for small companies",
			Year:        "2024",
			Challenge:   "Small businesses needed affordable automation that did not require technical knowledge. Existing tools were either too complex or too limited.",
			Solution:    "Created a drag-and-drop no-code process builder with a library of ready-made templates, visual analytics for key business metrics and integrations with popular services.",
			Results: models.StringList{
				"Users save 15 hours per week",
				"87% build their first automation within 10 minutes",
				"82% retention after one month",
				"Average order value up 45%",
			},
			Tags: models.StringList{"SaaS", "No-code", "Business Tools", "Dashboard Design"},
		},
		{
			Slug:        "marketplace",
			Title:       "Marketplace",
			Product:     "E-commerce",
			Platform:    "Web, Mobile",
			Description: "A marketplace for handmade goods",
			Year:        "2023",
			Challenge:   "Help makers sell their work while competing with large marketplaces by highlighting what makes each item and its creator unique.",
			Solution:    "Designed a product presentation centered on visuals and maker stories, a personalized feed, direct buyer-seller messaging and social proof through photo reviews.",
			Results: models.StringList{
				"15K sellers in the first 6 months",
				"Average order of $85",
				"68% of buyers purchase again",
				"4.6 stars in buyer reviews",
			},
			Tags: models.StringList{"Marketplace", "Social Commerce", "Mobile App", "Visual Design"},
		},
	}
}

// SeedDemoProjects creates every demo project whose slug is not taken yet.
// It returns the number of projects created.
func SeedDemoProjects(ctx context.Context, store Store) (int, error) {
	created := 0
	for _, demo := range DemoProjects() {
		_, err := store.GetProjectBySlug(ctx, demo.Slug)
		if err == nil {
			continue
		}
		if !errs.IsNotFound(err) {
			return created, err
		}
		if _, err := store.CreateProject(ctx, demo); err != nil {
			return created, err
		}
		created++
	}
	log.Info().Int("created", created).Msg("Demo data seeded")
	return created, nil
}

package rewards

import (
	"sort"

	"github.com/auroraminds/backend/domain"
)

// Catalog is the static reward list, ordered by the level required to unlock.
type Catalog struct {
	entries []domain.Reward
	byID    map[string]int
}

// NewCatalog builds a catalog from the given entries, sorting them by level.
func NewCatalog(entries []domain.Reward) *Catalog {
	sorted := make([]domain.Reward, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Level < sorted[j].Level
	})

	byID := make(map[string]int, len(sorted))
	for i, entry := range sorted {
		byID[entry.ID] = i
	}
	return &Catalog{entries: sorted, byID: byID}
}

// DefaultCatalog returns the built-in reward set.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultRewards)
}

// Get returns the entry with the given id.
func (c *Catalog) Get(id string) (domain.Reward, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Reward{}, false
	}
	return c.entries[i], true
}

// All returns the entries in unlock order. The returned slice is a copy.
func (c *Catalog) All() []domain.Reward {
	out := make([]domain.Reward, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

var defaultRewards = []domain.Reward{
	{
		ID:          "focus_app_1m",
		Name:        "Focus App Subscription",
		Description: "1-month subscription to a leading focus and meditation app.",
		Level:       5,
		Logo:        "SelfImprovement",
		Category:    "Productivity",
	},
	{
		ID:          "spotify_3m",
		Name:        "Spotify Premium",
		Description: "3-month subscription for ad-free music.",
		Level:       10,
		Logo:        "MusicNote",
		Category:    "Entertainment",
	},
	{
		ID:          "game_gift_card_10",
		Name:        "$10 Game Gift Card",
		Description: "A $10 gift card for Steam or Roblox.",
		Level:       15,
		Logo:        "SportsEsports",
		Category:    "Gaming",
	},
	{
		ID:          "youtube_premium_3m",
		Name:        "YouTube Premium",
		Description: "3-month subscription for ad-free videos and music.",
		Level:       20,
		Logo:        "PlayCircle",
		Category:    "Entertainment",
	},
	{
		ID:          "learning_platform_1m",
		Name:        "Skillshare Subscription",
		Description: "1-month subscription to an online learning platform.",
		Level:       25,
		Logo:        "School",
		Category:    "Education",
	},
	{
		ID:          "food_delivery_25",
		Name:        "$25 Food Delivery",
		Description: "A $25 gift card for Uber Eats or DoorDash.",
		Level:       30,
		Logo:        "Fastfood",
		Category:    "Lifestyle",
	},
	{
		ID:          "digital_planner_pack",
		Name:        "Digital Planner Pack",
		Description: "High-quality digital notebook and planner templates.",
		Level:       40,
		Logo:        "Book",
		Category:    "Productivity",
	},
	{
		ID:          "streaming_service_6m",
		Name:        "Netflix Subscription",
		Description: "6-month subscription to a video streaming service.",
		Level:       50,
		Logo:        "Theaters",
		Category:    "Entertainment",
	},
	{
		ID:          "amazon_gift_card_50",
		Name:        "$50 Amazon Gift Card",
		Description: "A $50 gift card for anything on Amazon.",
		Level:       75,
		Logo:        "CardGiftcard",
		Category:    "Shopping",
	},
	{
		ID:          "noise_cancelling_headphones",
		Name:        "Noise-Cancelling Headphones",
		Description: "A pair of Anker Soundcore noise-cancelling headphones.",
		Level:       100,
		Logo:        "Headphones",
		Category:    "Hardware",
	},
}

package habit

import (
	"sort"
	"strings"
)

// Example is a suggested habit shown on the explore page.
type Example struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Color       string `json:"color"`
}

var catalog = []Example{
	{Name: "Morning Exercise", Icon: "🏃", Description: "Start your day with energy and vitality", Category: "health", Color: "#10b981"},
	{Name: "Meditation", Icon: "🧘", Description: "Take 10 minutes to clear your mind", Category: "mental", Color: "#8b5cf6"},
	{Name: "Read 20 Pages", Icon: "📚", Description: "Expand your knowledge daily", Category: "learning", Color: "#3b82f6"},
	{Name: "Drink Water", Icon: "💧", Description: "Stay hydrated with 8 glasses per day", Category: "health", Color: "#0ea5e9"},
	{Name: "Journal", Icon: "✏️", Description: "Record your thoughts and experiences", Category: "mental", Color: "#f59e0b"},
	{Name: "Stretch", Icon: "🤸", Description: "Improve flexibility and prevent injuries", Category: "health", Color: "#ef4444"},
	{Name: "Learn Language", Icon: "🗣️", Description: "Practice your target language daily", Category: "learning", Color: "#ec4899"},
	{Name: "Gratitude", Icon: "🙏", Description: "Write down three things you're grateful for", Category: "mental", Color: "#f97316"},
	{Name: "Take Vitamins", Icon: "💊", Description: "Remember your daily supplements", Category: "health", Color: "#14b8a6"},
	{Name: "No Social Media", Icon: "📵", Description: "Limit your social media consumption", Category: "productivity", Color: "#6366f1"},
	{Name: "Floss", Icon: "🦷", Description: "Maintain good dental hygiene", Category: "health", Color: "#0891b2"},
	{Name: "Practice Instrument", Icon: "🎸", Description: "Dedicate time to improve your musical skills", Category: "hobby", Color: "#a855f7"},
}

// Explore returns catalog entries whose name, description or category
// contain query, optionally restricted to a single category.
func Explore(query, category string) []Example {
	query = strings.ToLower(strings.TrimSpace(query))
	category = strings.ToLower(strings.TrimSpace(category))

	result := make([]Example, 0, len(catalog))
	for _, ex := range catalog {
		if category != "" && ex.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(ex.Name), query) &&
			!strings.Contains(strings.ToLower(ex.Description), query) &&
			!strings.Contains(ex.Category, query) {
			continue
		}
		result = append(result, ex)
	}
	return result
}

// Categories returns the distinct catalog categories in sorted order.
func Categories() []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, ex := range catalog {
		if _, ok := seen[ex.Category]; ok {
			continue
		}
		seen[ex.Category] = struct{}{}
		categories = append(categories, ex.Category)
	}
	sort.Strings(categories)
	return categories
}

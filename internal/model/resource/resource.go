package resource

// Category groups library entries for filtering.
type Category string

const (
	CategoryBreathing   Category = "Breathing"
	CategoryMindfulness Category = "Mindfulness"
	CategoryCoping      Category = "Coping Strategy"
	CategoryLearn       Category = "Learn"
)

// Resource is one static wellness library entry.
type Resource struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Duration    string   `json:"duration"`
	Content     string   `json:"content"`
}

// Seed provides the default wellness library shipped with the product.
func Seed() []Resource {
	return []Resource{
		{
			ID:          "1",
			Title:       "4-7-8 Breathing Technique",
			Category:    CategoryBreathing,
			Duration:    "5 min",
			Description: "A calming breathing exercise to reduce anxiety and promote relaxation. Inhale for 4, hold for 7, exhale for 8.",
			Content:     "Find a comfortable place to sit or lie down.\n\n1. Place the tip of your tongue against the ridge of tissue just behind your upper front teeth.\n2. Exhale completely through your mouth, making a whoosh sound.\n3. Close your mouth and inhale quietly through your nose to a mental count of four.\n4. Hold your breath for a count of seven.\n5. Exhale completely through your mouth, making a whoosh sound to a count of eight.\n\nRepeat this cycle three more times for a total of four breaths.",
		},
		{
			ID:          "2",
			Title:       "Box Breathing Exercise",
			Category:    CategoryBreathing,
			Duration:    "3 min",
			Description: "A simple technique used by Navy SEALs to stay calm under pressure. Perfect for moments of high stress.",
			Content:     "Visualize a box as you breathe.\n\n1. Inhale slowly through your nose for 4 seconds.\n2. Hold your breath for 4 seconds.\n3. Exhale slowly through your mouth for 4 seconds.\n4. Hold your breath for 4 seconds.\n\nRepeat for at least 3-4 rounds.",
		},
		{
			ID:          "3",
			Title:       "Body Scan Meditation",
			Category:    CategoryMindfulness,
			Duration:    "10 min",
			Description: "A mindfulness practice that brings awareness to different parts of your body, releasing tension.",
			Content:     "Lie down in a comfortable position.\n\nClose your eyes and bring attention to your breath.\n\nSlowly shift your focus to your toes. Notice any sensations. Release any tension.\n\nGradually move your attention up through your feet, ankles, calves, knees, and thighs, continuing all the way to the top of your head.\n\nIf your mind wanders, gently bring it back to the body part you are focusing on.",
		},
		{
			ID:          "4",
			Title:       "5-4-3-2-1 Grounding",
			Category:    CategoryCoping,
			Duration:    "5 min",
			Description: "Use your five senses to ground yourself in the present moment during anxious episodes.",
			Content:     "Look around you and identify:\n\n5 things you can see.\n4 things you can feel.\n3 things you can hear.\n2 things you can smell.\n1 thing you can taste.\n\nThis exercise helps interrupt anxious thought patterns by engaging your senses.",
		},
		{
			ID:          "5",
			Title:       "The Science of Stress",
			Category:    CategoryLearn,
			Duration:    "6 min read",
			Description: "Explore how stress affects your mind and body, and learn evidence-based strategies to manage it.",
			Content:     "Stress is your body's reaction to a challenge or demand. In short bursts, stress can be positive, such as when it helps you avoid danger or meet a deadline. But when stress lasts for a long time, it may harm your health.\n\nChronic stress releases cortisol, which can disrupt sleep, immune function, and mood. Recognizing the signs early is the first step to management.",
		},
	}
}

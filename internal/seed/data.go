package seed

import "github.com/pribylovaa/go-zen-koans/internal/models"

// Идентификаторы фиксированы, чтобы повторный запуск упирался в конфликт,
// а порядок id совпадал с порядком создания.
const (
	koanMu     = "koan-1"
	koanFlag   = "koan-2"
	koanYunmen = "koan-3"
	koanCup    = "koan-4"
	koanWood   = "koan-5"
)

// Koans — пять коанов в порядке создания.
func Koans() []models.Koan {
	return []models.Koan{
		{
			ID:     koanMu,
			Text:   "A monk asked Joshu, \"Has a dog Buddha-nature or not?\"\n\nJoshu answered, \"Mu.\"",
			Source: "The Gateless Gate",
			Author: "Joshu",
		},
		{
			ID:     koanFlag,
			Text:   "Two monks were arguing about a flag. One said, \"The flag is moving.\"\n\nThe other said, \"The wind is moving.\"\n\nThe sixth patriarch happened to be passing by. He told them, \"Not the wind, not the flag; mind is moving.\"",
			Source: "The Gateless Gate",
			Author: "Huineng",
		},
		{
			ID:     koanYunmen,
			Text:   "A student asked Yunmen, \"What is the Buddha?\"\n\nYunmen answered, \"A dried shit-stick.\"",
			Source: "The Blue Cliff Record",
			Author: "Yunmen",
		},
		{
			ID:     koanCup,
			Text:   "Nan-in, a Japanese master during the Meiji era, received a university professor who came to inquire about Zen.\n\nNan-in served tea. He poured his visitor's cup full, and then kept on pouring.\n\nThe professor watched the overflow until he no longer could restrain himself. \"It is overfull. No more will go in!\"\n\n\"Like this cup,\" Nan-in said, \"you are full of your own opinions and speculations. How can I show you Zen unless you first empty your cup?\"",
			Source: "101 Zen Stories",
			Author: "Nan-in",
		},
		{
			ID:     koanWood,
			Text:   "Before enlightenment, chop wood, carry water.\n\nAfter enlightenment, chop wood, carry water.",
			Source: "Zen Proverb",
			Author: "Unknown",
		},
	}
}

// Comments — комментарии в порядке создания; Date проставляет Run.
//
// comment-8 оставлен как в исходных данных: он принадлежит koan-4,
// а ссылается на comment-4 из koan-2 и поэтому собирается как сирота.
func Comments() []models.Comment {
	return []models.Comment{
		{
			ID:     "comment-1",
			Text:   "The word \"Mu\" means \"no\" or \"nothing,\" but it's not a simple negation. It points beyond yes and no.",
			Author: "user_123",
			KoanID: koanMu,
			Votes:  models.Votes{Up: 15, Down: 2},
		},
		{
			ID:       "comment-2",
			Text:     "Exactly! It's a response that transcends dualistic thinking.",
			Author:   "user_456",
			KoanID:   koanMu,
			ParentID: models.StringPtr("comment-1"),
			Votes:    models.Votes{Up: 8},
		},
		{
			ID:       "comment-3",
			Text:     "I've been meditating on this for months. Still don't get it.",
			Author:   "user_789",
			KoanID:   koanMu,
			ParentID: models.StringPtr("comment-1"),
			Votes:    models.Votes{Up: 5, Down: 1},
		},
		{
			ID:     "comment-4",
			Text:   "This koan beautifully illustrates how our perception shapes reality.",
			Author: "user_321",
			KoanID: koanFlag,
			Votes:  models.Votes{Up: 12, Down: 1},
		},
		{
			ID:       "comment-5",
			Text:     "The flag, wind, and mind are all interconnected. Nothing exists independently.",
			Author:   "user_654",
			KoanID:   koanFlag,
			ParentID: models.StringPtr("comment-4"),
			Votes:    models.Votes{Up: 7},
		},
		{
			ID:     "comment-6",
			Text:   "Yunmen's response is shocking but profound. It breaks our conceptual understanding of what Buddha is.",
			Author: "user_987",
			KoanID: koanYunmen,
			Votes:  models.Votes{Up: 10, Down: 3},
		},
		{
			ID:     "comment-7",
			Text:   "This is one of my favorites. It reminds me to approach learning with humility.",
			Author: "user_111",
			KoanID: koanCup,
			Votes:  models.Votes{Up: 20},
		},
		{
			ID:       "comment-8",
			Text:     "Same here! I think about this whenever I feel stuck in my practice.",
			Author:   "user_222",
			KoanID:   koanCup,
			ParentID: models.StringPtr("comment-4"),
			Votes:    models.Votes{Up: 6},
		},
		{
			ID:     "comment-9",
			Text:   "Enlightenment doesn't change what you do, it changes how you do it.",
			Author: "user_333",
			KoanID: koanWood,
			Votes:  models.Votes{Up: 18, Down: 1},
		},
	}
}

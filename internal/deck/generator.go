package deck

import (
	"github.com/google/uuid"

	"flipmatch/internal/dependencies/random"
)

// Generator builds shuffled, paired decks. Inject a seeded random.Source
// to make generation reproducible under test.
type Generator struct {
	rng random.Source
}

// NewGenerator creates a Generator over the given random source.
func NewGenerator(rng random.Source) *Generator {
	return &Generator{rng: rng}
}

// Generate builds a deck of 2*pairs cards for the difficulty, using faces
// from the resolved theme. Unknown theme ids fall back to the default
// theme. If the theme has fewer faces than pairs, faces are reused in
// cycle so the deck is never short; duplicate-face pairs still have
// distinct pair ids, so match semantics are unaffected.
func (g *Generator) Generate(d Difficulty, themeID string) Deck {
	return g.FromTheme(d, ThemeByID(themeID))
}

// FromTheme is Generate with an explicit theme, bypassing id resolution.
func (g *Generator) FromTheme(d Difficulty, theme Theme) Deck {
	pairs := d.Pairs()

	// Pick pair faces from a shuffled copy of the theme so every game sees
	// a different selection.
	faces := make([]string, len(theme.Faces))
	copy(faces, theme.Faces)
	g.shuffleStrings(faces)

	cards := make([]Card, 0, pairs*2)
	for i := 0; i < pairs; i++ {
		face := faces[i%len(faces)]
		pairID := uuid.NewString()
		for j := 0; j < 2; j++ {
			cards = append(cards, Card{
				ID:     uuid.NewString(),
				PairID: pairID,
				Value:  face,
			})
		}
	}

	// Fisher-Yates over the paired cards.
	for i := len(cards) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}

	return Deck{Cards: cards}
}

func (g *Generator) shuffleStrings(s []string) {
	for i := len(s) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

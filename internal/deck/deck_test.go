package deck

import (
	"testing"

	"flipmatch/internal/dependencies/random"
)

func TestGenerate_DeckIntegrity(t *testing.T) {
	gen := NewGenerator(random.NewSeeded(1))

	for _, d := range Difficulties() {
		deck := gen.Generate(d, DefaultThemeID)

		if deck.Len() != d.CardCount() {
			t.Errorf("%s: expected %d cards, got %d", d, d.CardCount(), deck.Len())
		}

		// Every pairId must appear exactly twice, every id exactly once.
		pairCounts := map[string]int{}
		ids := map[string]bool{}
		for _, c := range deck.Cards {
			pairCounts[c.PairID]++
			if ids[c.ID] {
				t.Errorf("%s: duplicate card id %s", d, c.ID)
			}
			ids[c.ID] = true
			if c.Flipped || c.Matched {
				t.Errorf("%s: freshly generated card %s is not face-down", d, c.ID)
			}
		}
		if len(pairCounts) != d.Pairs() {
			t.Errorf("%s: expected %d pairs, got %d", d, d.Pairs(), len(pairCounts))
		}
		for pairID, n := range pairCounts {
			if n != 2 {
				t.Errorf("%s: pair %s appears %d times, want 2", d, pairID, n)
			}
		}

		// The two cards of a pair must share a face.
		faces := map[string]string{}
		for _, c := range deck.Cards {
			if prev, ok := faces[c.PairID]; ok && prev != c.Value {
				t.Errorf("%s: pair %s has faces %q and %q", d, c.PairID, prev, c.Value)
			}
			faces[c.PairID] = c.Value
		}
	}
}

func TestGenerate_SeededReproducibility(t *testing.T) {
	a := NewGenerator(random.NewSeeded(42)).Generate(Medium, "foods")
	b := NewGenerator(random.NewSeeded(42)).Generate(Medium, "foods")

	// Ids are random, but the face layout must be identical for a seed.
	for i := range a.Cards {
		if a.Cards[i].Value != b.Cards[i].Value {
			t.Fatalf("position %d: faces differ (%q vs %q) for identical seeds",
				i, a.Cards[i].Value, b.Cards[i].Value)
		}
	}
}

func TestGenerate_ShuffleSpreadsPositions(t *testing.T) {
	// A fixed face should land in many distinct board positions across
	// generations. Not a rigorous uniformity test, but it catches a
	// broken or missing shuffle.
	const runs = 200
	face := ThemeByID(DefaultThemeID).Faces[0]
	positions := map[int]bool{}

	for seed := int64(0); seed < runs; seed++ {
		deck := NewGenerator(random.NewSeeded(seed)).Generate(Hard, DefaultThemeID)
		for i, c := range deck.Cards {
			if c.Value == face {
				positions[i] = true
				break
			}
		}
	}

	// Hard has 24 positions; 200 runs should hit most of them.
	if len(positions) < 15 {
		t.Errorf("first card of fixed face only ever landed in %d distinct positions", len(positions))
	}
}

func TestThemeByID_FallsBackToDefault(t *testing.T) {
	theme := ThemeByID("no-such-theme")
	if theme.ID != DefaultThemeID {
		t.Errorf("expected fallback to %q, got %q", DefaultThemeID, theme.ID)
	}
}

func TestThemes_CoverLargestDifficulty(t *testing.T) {
	for _, theme := range Themes() {
		if len(theme.Faces) < Hard.Pairs() {
			t.Errorf("theme %s has %d faces, need at least %d", theme.ID, len(theme.Faces), Hard.Pairs())
		}
	}
}

func TestFromTheme_PadsShortTheme(t *testing.T) {
	// A theme with fewer faces than pairs cycles its faces rather than
	// producing a short deck. Reused faces still get distinct pair ids.
	short := Theme{ID: "tiny", Name: "Tiny", Faces: []string{"A", "B"}}
	deck := NewGenerator(random.NewSeeded(7)).FromTheme(Easy, short)

	if deck.Len() != Easy.CardCount() {
		t.Fatalf("expected %d cards, got %d", Easy.CardCount(), deck.Len())
	}
	pairIDs := map[string]int{}
	for _, c := range deck.Cards {
		pairIDs[c.PairID]++
		if c.Value != "A" && c.Value != "B" {
			t.Fatalf("unexpected face %q", c.Value)
		}
	}
	if len(pairIDs) != Easy.Pairs() {
		t.Fatalf("expected %d distinct pair ids, got %d", Easy.Pairs(), len(pairIDs))
	}
	for _, n := range pairIDs {
		if n != 2 {
			t.Fatalf("pair id shared by %d cards", n)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	cases := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"easy", Easy, false},
		{"MEDIUM", Medium, false},
		{" hard ", Hard, false},
		{"nightmare", Easy, true},
	}
	for _, c := range cases {
		got, err := ParseDifficulty(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseDifficulty(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDifficulty(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseDifficulty(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDeck_ByIDAndAllMatched(t *testing.T) {
	gen := NewGenerator(random.NewSeeded(3))
	deck := gen.Generate(Easy, DefaultThemeID)

	if deck.AllMatched() {
		t.Fatal("fresh deck reports all matched")
	}

	for i := range deck.Cards {
		card, ok := deck.ByID(deck.Cards[i].ID)
		if !ok {
			t.Fatalf("card %s not found by id", deck.Cards[i].ID)
		}
		card.Matched = true
	}

	if !deck.AllMatched() {
		t.Fatal("deck with every card matched reports unmatched")
	}
	if got := len(deck.Unmatched()); got != 0 {
		t.Fatalf("expected 0 unmatched, got %d", got)
	}

	if _, ok := deck.ByID("missing"); ok {
		t.Error("ByID found a card for an unknown id")
	}
}

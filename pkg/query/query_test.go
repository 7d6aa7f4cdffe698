package query

import (
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	result := Build("bdr:test123", "autograph letter")

	want := []string{
		`rel_is_member_of_collection_ssim:"bdr:test123"`,
		`genre_local:"autograph letter"`,
		`mods_role_creator_ssim:"Lovecraft, H.P. (Howard Phillips)"`,
		`mods_access_condition_rights_text_tsim:"No Copyright - United States."`,
		`mods_access_condition_restriction_text_tsim:"Collection is open for research."`,
	}

	for _, w := range want {
		if !strings.Contains(result, w) {
			t.Errorf("Build() = %q, missing %q", result, w)
		}
	}

	if got := strings.Count(result, " AND "); got != 4 {
		t.Errorf("Expected 4 AND separators, got %d", got)
	}

	if result != strings.Join(want, " AND ") {
		t.Errorf("Predicates out of order: %q", result)
	}
}

func TestBuild_AllGenres(t *testing.T) {
	for _, genre := range Genres() {
		t.Run(genre, func(t *testing.T) {
			result := Build(LovecraftCollection, genre)

			if !strings.Contains(result, `genre_local:"`+genre+`"`) {
				t.Errorf("Query missing genre predicate: %q", result)
			}
			if !strings.HasPrefix(result, `rel_is_member_of_collection_ssim:"bdr:jyhg75bu"`) {
				t.Errorf("Query should start with collection predicate: %q", result)
			}
		})
	}
}

func TestPredicate_NoEscaping(t *testing.T) {
	got := Predicate(FieldGenre, `say "hi"`)
	want := `genre_local:"say "hi""`

	if got != want {
		t.Errorf("Predicate() = %q, want %q", got, want)
	}
}

func TestGenres(t *testing.T) {
	want := []string{
		"autograph letter",
		"autograph letter signed",
		"autograph note signed",
		"typed letter",
		"typed letter signed",
	}

	got := Genres()
	if len(got) != len(want) {
		t.Fatalf("Genres() returned %d terms, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Genres()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Callers get a copy.
	got[0] = "changed"
	if Genres()[0] != "autograph letter" {
		t.Error("Genres() should return a copy")
	}
}

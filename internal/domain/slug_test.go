package domain

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"POLO OVERSIZE NEGRO BDU", "polo-oversize-negro-bdu"},
		{"Polo  Básico   (Edición Limitada)", "polo-basico-edicion-limitada"},
		{"  --Hoodie Ñandú--  ", "hoodie-nandu"},
		{"ÁÉÍÓÚ", "aeiou"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.name); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSlugify_AccentsNormalizeToSameSlug(t *testing.T) {
	a := Slugify("POLO MÚSICA")
	b := Slugify("POLO MUSICA")
	if a != b {
		t.Fatalf("accented and plain names produced different slugs: %q vs %q", a, b)
	}
}

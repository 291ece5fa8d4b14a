package naming_test

import (
	"errors"
	"testing"

	"napcon/internal/naming"
)

func TestParseValidNames(t *testing.T) {
	cases := []struct {
		name string
		want naming.Source
	}{
		{
			name: "2023_StudentOutcomeLevel_Yr3_Northside.csv",
			want: naming.Source{Name: "2023_StudentOutcomeLevel_Yr3_Northside.csv", TestYear: "2023", YearLevel: "Yr3", Campus: "Northside"},
		},
		{
			name: "/exports/2024_StudentOutcomeLevel_Yr9_West Campus.csv",
			want: naming.Source{Name: "2024_StudentOutcomeLevel_Yr9_West Campus.csv", TestYear: "2024", YearLevel: "Yr9", Campus: "West Campus"},
		},
		{
			name: "2022_StudentOutcomeLevel_yr5_St-Marys.csv",
			want: naming.Source{Name: "2022_StudentOutcomeLevel_yr5_St-Marys.csv", TestYear: "2022", YearLevel: "yr5", Campus: "St-Marys"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := naming.Parse(tc.name)
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Parse(%q) = %+v, want %+v", tc.name, got, tc.want)
			}
		})
	}
}

func TestParseRejectsNonConformingNames(t *testing.T) {
	for _, name := range []string{
		"StudentOutcomeLevel_2023_Yr3_North.csv",
		"2023_StudentOutcomeLevel_Yr3.csv",
		"2023_StudentOutcomeLevel_Year3_North.csv",
		"2023_StudentOutcomeLevel_Yr3_North_Annex.csv",
		"2023_StudentOutcomeLevel_Yr3_North.CSV",
		"23_StudentOutcomeLevel_Yr3_North.csv",
		"2023_Outcomes_Yr3_North.csv",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := naming.Parse(name)
			if !errors.Is(err, naming.ErrInvalidFilename) {
				t.Fatalf("expected ErrInvalidFilename, got %v", err)
			}
		})
	}
}

func TestParseLenientKeepsPositionalTokens(t *testing.T) {
	got, err := naming.ParseLenient("2023.v2_Outcomes_Yr3_North_Annex.csv")
	if err != nil {
		t.Fatalf("ParseLenient returned error: %v", err)
	}
	want := naming.Source{Name: "2023.v2_Outcomes_Yr3_North_Annex.csv", TestYear: "2023", YearLevel: "Yr3", Campus: "North"}
	if got != want {
		t.Fatalf("ParseLenient = %+v, want %+v", got, want)
	}

	if _, err := naming.ParseLenient("2023_Yr3.csv"); !errors.Is(err, naming.ErrInvalidFilename) {
		t.Fatalf("expected ErrInvalidFilename for short names, got %v", err)
	}
}

func TestIsCandidate(t *testing.T) {
	if !naming.IsCandidate("a.csv") {
		t.Fatal("expected .csv to be a candidate")
	}
	for _, name := range []string{"a.CSV", "a.csv.bak", "a.xlsx"} {
		if naming.IsCandidate(name) {
			t.Fatalf("expected %q to be ignored", name)
		}
	}
}

package language

import (
	"testing"
)

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// 2-letter codes pass through
		{"en", "en"},
		{"EN", "en"},
		// terminology and bibliographic codes
		{"eng", "en"},
		{"fra", "fr"},
		{"fre", "fr"},
		{"deu", "de"},
		{"ger", "de"},
		{"zho", "zh"},
		{"chi", "zh"},
		{"dut", "nl"},
		{"jpn", "ja"},
		// tags
		{"en-US", "en"},
		{"pt-BR", "pt"},
		// names
		{"english", "en"},
		{"French", "fr"},
		{"GERMAN", "de"},
		// unknown 2-letter passes through
		{"xx", "xx"},
		{"", ""},
		{" ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := ToISO2(tt.input); result != tt.expected {
				t.Fatalf("ToISO2(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestToISO3(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "eng"},
		{"fre", "fra"},
		{"de-AT", "deu"},
		{"Spanish", "spa"},
		{"", "und"},
		{"xx", "und"},
	}
	for _, tt := range tests {
		if result := ToISO3(tt.input); result != tt.expected {
			t.Fatalf("ToISO3(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"ger", "German"},
		{"ja", "Japanese"},
		{"", "Unknown"},
		{"xx", "XX"},
	}
	for _, tt := range tests {
		if result := DisplayName(tt.input); result != tt.expected {
			t.Fatalf("DisplayName(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"en", "eng", true},
		{"en-GB", "en-US", true},
		{"English", "en", true},
		{"fre", "fra", true},
		{"de", "en", false},
		{"", "", false},
		{"en", "", false},
		{"xx", "XX", true},
		{"xx", "en", false},
	}
	for _, tt := range tests {
		if got := Match(tt.a, tt.b); got != tt.want {
			t.Fatalf("Match(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestExtractFromTags(t *testing.T) {
	if got := ExtractFromTags(map[string]string{"LANGUAGE": " ENG\u0000"}); got != "eng" {
		t.Fatalf("unexpected language %q", got)
	}
	if got := ExtractFromTags(map[string]string{"title": "Commentary"}); got != "" {
		t.Fatalf("expected empty language, got %q", got)
	}
	if got := ExtractFromTags(nil); got != "" {
		t.Fatalf("expected empty language, got %q", got)
	}
}

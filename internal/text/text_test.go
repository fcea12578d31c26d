package text

import (
	"reflect"
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "HELLO", "hello"},
		{"removes numbers and symbols", "Hello, World! 123", "hello world "},
		{"keeps spaces", "a b  c", "a b  c"},
		{"empty", "", ""},
		{"drops tabs and newlines", "a\tb\nc", "abc"},
		{"drops non ascii letters", "café über", "caf ber"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanText_Idempotent(t *testing.T) {
	inputs := []string{
		"Hello, World! 123",
		"  MiXeD   case\tand\nlines ",
		"ÅÄÖ åäö",
		"already clean text",
	}

	for _, in := range inputs {
		once := CleanText(in)
		if twice := CleanText(once); twice != once {
			t.Errorf("CleanText not idempotent for %q: %q then %q", in, once, twice)
		}
		for _, r := range once {
			if !(r >= 'a' && r <= 'z') && r != ' ' {
				t.Errorf("CleanText(%q) kept %q", in, r)
			}
		}
	}
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"splits by comma", "Hello World,This is a test", []string{"hello world", "this is a test"}},
		{"splits by newline", "Hello World\nThis is a test", []string{"hello world", "this is a test"}},
		{"cleans and collapses", "Hello  World! 123, 456 Test...", []string{"hello world", "test"}},
		{"filters empty", "Hello World,, , \n,,,Test", []string{"hello world", "test"}},
		{"collapses spaces", "Hello   World", []string{"hello world"}},
		{"crlf line endings", "one\r\ntwo\r\n", []string{"one", "two"}},
		{"only delimiters", ",,\n\n,", []string{}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCSV(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCSV(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseCSV_NeverReturnsEmptyStrings(t *testing.T) {
	in := strings.Repeat("  ,\n 42 ,!!,\t", 10) + "a  b,,c"
	for _, s := range ParseCSV(in) {
		if s == "" {
			t.Fatal("ParseCSV returned an empty sentence")
		}
		if strings.Contains(s, "  ") || strings.TrimSpace(s) != s {
			t.Errorf("sentence %q is not collapsed", s)
		}
	}
}

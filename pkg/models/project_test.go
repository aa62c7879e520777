package models

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestStringList_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"array", `["Go","HTMX"]`, []string{"Go", "HTMX"}},
		{"csv string", `"Go, HTMX ,,"`, []string{"Go", "HTMX"}},
		{"empty string", `""`, []string{}},
		{"null", `null`, nil},
		{"number", `42`, nil},
		{"object", `{"a":1}`, nil},
		{"mixed array", `["Go", 1, null]`, []string{"Go", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got StringList
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.in, err)
			}
			if len(got) != len(tt.want) || !slices.Equal([]string(got), tt.want) {
				t.Errorf("Unmarshal(%s) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestProject_DecodeVariants(t *testing.T) {
	t.Parallel()

	raw := `{"_id":"abc","technologies":"Go, SQL","image":"http://a/b.png"}`
	var p Project
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if p.ResolveID() != "abc" {
		t.Errorf("ResolveID() = %q, want %q", p.ResolveID(), "abc")
	}
	if p.TitleOr("(No title)") != "(No title)" {
		t.Errorf("TitleOr() = %q, want fallback", p.TitleOr("(No title)"))
	}
	if !slices.Equal([]string(p.Technologies), []string{"Go", "SQL"}) {
		t.Errorf("Technologies = %v", p.Technologies)
	}
	if p.Image != "http://a/b.png" {
		t.Errorf("Image = %q", p.Image)
	}
}

func TestProject_NumericIDs(t *testing.T) {
	t.Parallel()

	var ps []Project
	raw := `[{"id":1,"title":"X"},{"id":"2","title":"Y"},{"_id":12345678901234567890},{"id":null,"_id":"z"}]`
	if err := json.Unmarshal([]byte(raw), &ps); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	got := make([]string, len(ps))
	for i, p := range ps {
		got[i] = p.ResolveID()
	}
	want := []string{"1", "2", "12345678901234567890", "z"}
	if !slices.Equal(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
	if ps[0].TitleOr("") != "X" {
		t.Errorf("title = %q", ps[0].TitleOr(""))
	}
}

func TestProject_UnsupportedIDReadsAsMissing(t *testing.T) {
	t.Parallel()

	var p Project
	if err := json.Unmarshal([]byte(`{"id":{"$oid":"x"},"_id":"fallback","title":"T"}`), &p); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if p.ID != "" || p.ResolveID() != "fallback" {
		t.Errorf("ID = %q, ResolveID() = %q", p.ID, p.ResolveID())
	}
}

func TestProject_ResolveIDPrefersID(t *testing.T) {
	t.Parallel()

	p := Project{ID: "1", LegacyID: "legacy"}
	if got := p.ResolveID(); got != "1" {
		t.Errorf("ResolveID() = %q, want %q", got, "1")
	}
}

func TestProject_EmptyTitleIsKept(t *testing.T) {
	t.Parallel()

	var p Project
	if err := json.Unmarshal([]byte(`{"title":""}`), &p); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if got := p.TitleOr("(No title)"); got != "" {
		t.Errorf("TitleOr() = %q, want empty title", got)
	}
}

func TestProjectInput_OmitsBlankRepository(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(ProjectInput{Title: "X", Technologies: []string{}, Images: []string{}})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if _, ok := m["repository"]; ok {
		t.Errorf("repository should be omitted, got %s", data)
	}
	if _, ok := m["images"]; !ok {
		t.Errorf("images should always be sent, got %s", data)
	}
}

func TestParseCSVAndJoin(t *testing.T) {
	t.Parallel()

	got := ParseCSV(" a, b ,, c ")
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("ParseCSV = %v", got)
	}
	if JoinCSV(got) != "a, b, c" {
		t.Errorf("JoinCSV = %q", JoinCSV(got))
	}
	if len(ParseCSV("")) != 0 {
		t.Error("ParseCSV(\"\") should be empty")
	}
}

func TestUser_ID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user User
		want string
	}{
		{"id", User{"id": "u1", "_id": "x"}, "u1"},
		{"legacy", User{"_id": "m1"}, "m1"},
		{"empty id falls back", User{"id": "", "_id": "m2"}, "m2"},
		{"numeric", User{"id": float64(7)}, "7"},
		{"none", User{}, ""},
		{"nil map", nil, ""},
	}
	for _, tt := range tests {
		if got := tt.user.ID(); got != tt.want {
			t.Errorf("%s: ID() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

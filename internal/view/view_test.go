package view

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/itson-folio/folio/internal/ui"
	"github.com/itson-folio/folio/pkg/models"
)

func decode(t *testing.T, raw string) models.Project {
	t.Helper()
	var p models.Project
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return p
}

func TestProjectToView(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ViewModel
	}{
		{
			name: "full project",
			raw:  `{"id":"1","title":"X","images":["http://a/b.png"],"technologies":["Go"]}`,
			want: ViewModel{ID: "1", Title: "X", RepositoryLabel: NoRepoLabel, Image: "http://a/b.png", Tags: []string{"Go"}},
		},
		{
			name: "no image fields",
			raw:  `{"id":"2","title":"Y"}`,
			want: ViewModel{ID: "2", Title: "Y", RepositoryLabel: NoRepoLabel},
		},
		{
			name: "missing title and legacy id",
			raw:  `{"_id":"abc","description":"d"}`,
			want: ViewModel{ID: "abc", Title: UntitledText, Description: "d", RepositoryLabel: NoRepoLabel},
		},
		{
			name: "null title falls back",
			raw:  `{"id":"3","title":null}`,
			want: ViewModel{ID: "3", Title: UntitledText, RepositoryLabel: NoRepoLabel},
		},
		{
			name: "repository link",
			raw:  `{"id":"4","title":"R","repository":"https://github.com/x/y"}`,
			want: ViewModel{ID: "4", Title: "R", RepositoryURL: "https://github.com/x/y", RepositoryLabel: RepoLabel},
		},
		{
			name: "singular image fallback",
			raw:  `{"id":"5","title":"I","image":"https://cdn/x.jpg"}`,
			want: ViewModel{ID: "5", Title: "I", RepositoryLabel: NoRepoLabel, Image: "https://cdn/x.jpg"},
		},
		{
			name: "invalid first image drops the image",
			raw:  `{"id":"6","title":"I","images":["not a url"],"image":"https://cdn/x.jpg"}`,
			want: ViewModel{ID: "6", Title: "I", RepositoryLabel: NoRepoLabel},
		},
		{
			name: "csv technologies",
			raw:  `{"id":"7","title":"T","technologies":"Go, Redis,,"}`,
			want: ViewModel{ID: "7", Title: "T", RepositoryLabel: NoRepoLabel, Tags: []string{"Go", "Redis"}},
		},
		{
			name: "empty technologies give no tag row",
			raw:  `{"id":"8","title":"T","technologies":[]}`,
			want: ViewModel{ID: "8", Title: "T", RepositoryLabel: NoRepoLabel},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectToView(decode(t, tt.raw))
			if got.ID != tt.want.ID || got.Title != tt.want.Title ||
				got.Description != tt.want.Description ||
				got.RepositoryURL != tt.want.RepositoryURL ||
				got.RepositoryLabel != tt.want.RepositoryLabel ||
				got.Image != tt.want.Image {
				t.Errorf("ProjectToView = %+v, want %+v", got, tt.want)
			}
			if strings.Join(got.Tags, "|") != strings.Join(tt.want.Tags, "|") || (tt.want.Tags == nil) != (got.Tags == nil) {
				t.Errorf("Tags = %#v, want %#v", got.Tags, tt.want.Tags)
			}
		})
	}
}

func TestProjectToView_Pure(t *testing.T) {
	p := decode(t, `{"id":"1","title":"X","technologies":["Go"]}`)
	a := ProjectToView(p)
	b := ProjectToView(p)
	if a.Title != b.Title || len(a.Tags) != len(b.Tags) {
		t.Error("repeated calls must agree")
	}
	a.Tags[0] = "changed"
	if p.Technologies[0] != "Go" {
		t.Error("view model must not alias the project")
	}
}

func TestIsValidURL(t *testing.T) {
	for s, want := range map[string]bool{
		"":                    false,
		"http://a/b.png":      true,
		"https://cdn.x/y.jpg": true,
		"/relative/path.png":  false,
		"not a url":           false,
		"data:image/png;x":    true,
	} {
		if got := IsValidURL(s); got != want {
			t.Errorf("IsValidURL(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestRenderer_List(t *testing.T) {
	r := NewRenderer(ui.NewTheme(ui.ThemeConfig{NoColor: true}), 0)

	if got := r.List(nil); got != EmptyText {
		t.Errorf("empty list = %q", got)
	}

	out := r.List(ProjectsToViews([]models.Project{
		decode(t, `{"id":"1","title":"X","images":["http://a/b.png"],"technologies":["Go"]}`),
		decode(t, `{"id":"2"}`),
	}))
	for _, want := range []string{"X", "[Go]", "http://a/b.png", UntitledText, NoRepoLabel, "id: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "Image:") != 1 {
		t.Errorf("only the first card has an image:\n%s", out)
	}
}

func TestRenderer_Error(t *testing.T) {
	r := NewRenderer(ui.NewTheme(ui.ThemeConfig{NoColor: true}), 0)
	if got := r.Error("boom"); got != "Error loading projects: boom" {
		t.Errorf("Error = %q", got)
	}
}

func TestRenderer_Detail(t *testing.T) {
	r := NewRenderer(ui.NewTheme(ui.ThemeConfig{NoColor: true}), 60)
	out, err := r.Detail(decode(t, `{"id":"9","title":"Folio","description":"A **portfolio** client","technologies":["Go","Redis"],"repository":"https://github.com/x/folio"}`))
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	for _, want := range []string{"Folio", "portfolio", "Go", "Redis", "github.com/x/folio"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q:\n%s", want, out)
		}
	}
}

func TestDetailMarkdown_NoRepository(t *testing.T) {
	md := DetailMarkdown(ViewModel{Title: "T", RepositoryLabel: NoRepoLabel})
	if !strings.Contains(md, "**Repository:** —") {
		t.Errorf("markdown = %q", md)
	}
	if strings.Contains(md, "Image") || strings.Contains(md, "Technologies") {
		t.Errorf("optional sections should be absent: %q", md)
	}
}

package packager

import (
	"testing"

	"github.com/vsxtools/vsce/internal/manifest"
)

func TestRewriteMarkdown(t *testing.T) {
	doc := `# Title
[rel](docs/a.md "Guide") [abs](http://x.y/z) [mail](mailto:a@b.c) [anchor](#usage)
![img](./images/shot.png)
<img width="10" src="media/demo.gif">
`
	got, err := rewriteMarkdown("README.md", []byte(doc), "https://c.example/base", "https://i.example/base")
	if err != nil {
		t.Fatal(err)
	}
	want := `# Title
[rel](https://c.example/base/docs/a.md "Guide") [abs](http://x.y/z) [mail](mailto:a@b.c) [anchor](#usage)
![img](https://i.example/base/images/shot.png)
<img width="10" src="https://i.example/base/media/demo.gif">
`
	if string(got) != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestBaseURLs(t *testing.T) {
	m := &manifest.Manifest{Repository: &manifest.Repository{URL: "git+https://github.com/acme/widget.git"}}

	content, images := baseURLs(Options{GitHubBranch: "main"}, m)
	if content != "https://github.com/acme/widget/blob/main" || images != "https://github.com/acme/widget/raw/main" {
		t.Errorf("inferred = %q, %q", content, images)
	}

	content, images = baseURLs(Options{BaseContentURL: "https://c/", BaseImagesURL: "https://i"}, m)
	if content != "https://c" || images != "https://i" {
		t.Errorf("explicit = %q, %q", content, images)
	}

	content, images = baseURLs(Options{BaseContentURL: "https://c"}, &manifest.Manifest{})
	if content != "https://c" || images != "https://c" {
		t.Errorf("images fallback = %q, %q", content, images)
	}
}

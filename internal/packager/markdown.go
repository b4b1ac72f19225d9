package packager

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/vsxtools/vsce/internal/manifest"
)

var (
	markdownLink = regexp.MustCompile(`(!?)\[([^\]]*)\]\(([^)\s]+)([^)]*)\)`)
	htmlImage    = regexp.MustCompile(`(<img\s[^>]*?src=")([^"]+)(")`)
)

// baseURLs resolves the content and image prefixes for relative links.
// Explicit options win; a GitHub repository fills in whatever is missing.
func baseURLs(opts Options, m *manifest.Manifest) (content, images string) {
	content = strings.TrimRight(opts.BaseContentURL, "/")
	images = strings.TrimRight(opts.BaseImagesURL, "/")

	if slug, ok := m.Repository.GitHubSlug(); ok {
		branch := opts.GitHubBranch
		if branch == "" {
			branch = "HEAD"
		}
		if content == "" {
			content = fmt.Sprintf("https://github.com/%s/blob/%s", slug, branch)
		}
		if images == "" {
			images = fmt.Sprintf("https://github.com/%s/raw/%s", slug, branch)
		}
	}

	if images == "" {
		images = content
	}
	return content, images
}

// isRelativeLink reports whether link points into the project.
func isRelativeLink(link string) bool {
	if link == "" || strings.HasPrefix(link, "#") {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

func joinURL(base, link string) string {
	link = strings.TrimPrefix(link, "./")
	link = strings.TrimLeft(link, "/")
	return base + "/" + link
}

// rewriteMarkdown makes relative links in a markdown document absolute.
// name is the file name, used in the error for a link that cannot be
// resolved because no base URL is known.
func rewriteMarkdown(name string, doc []byte, contentBase, imagesBase string) ([]byte, error) {
	var rewriteErr error

	resolve := func(link string, image bool) string {
		if !isRelativeLink(link) || rewriteErr != nil {
			return link
		}
		base := contentBase
		if image {
			base = imagesBase
		}
		if base == "" {
			rewriteErr = fmt.Errorf("couldn't detect the repository where this extension is published; the link %q will be broken in %s (set --baseContentUrl or a GitHub repository in package.json)", link, name)
			return link
		}
		return joinURL(base, link)
	}

	out := markdownLink.ReplaceAllStringFunc(string(doc), func(s string) string {
		sub := markdownLink.FindStringSubmatch(s)
		bang, text, link, title := sub[1], sub[2], sub[3], sub[4]
		return fmt.Sprintf("%s[%s](%s%s)", bang, text, resolve(link, bang == "!"), title)
	})
	out = htmlImage.ReplaceAllStringFunc(out, func(s string) string {
		sub := htmlImage.FindStringSubmatch(s)
		return sub[1] + resolve(sub[2], true) + sub[3]
	})

	if rewriteErr != nil {
		return nil, rewriteErr
	}
	return []byte(out), nil
}

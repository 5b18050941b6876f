package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const roadmapPage = `<html><body>
<nav><ul><li>Home</li><li>Docs</li></ul></nav>
<ul>
  <li>✅ Mainnet launch</li>
  <li>✅ Token factory</li>
  <li>⏳ NFT marketplace beta</li>
  <li>🔄 Mobile wallet</li>
  <li>Some unmarked note</li>
</ul>
</body></html>`

const whitepaperPage = `<html><body>
<h2>Menu</h2>
<h2>Executive Summary</h2>
<p>Thronos is a layer one network focused on accessible tooling for builders and communities.</p>
<p>short</p>
<h3>Consensus</h3>
<p>Block production alternates between validator sets selected by stake weight every epoch boundary.</p>
<h3>Tokenomics</h3>
<div>not a paragraph</div>
<h2>Ecosystem</h2>
<p>The ecosystem spans a token factory, an NFT marketplace and a smart contract deployment portal.</p>
</body></html>`

func parse(t *testing.T, page string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestRoadmapItems(t *testing.T) {
	sc := New("https://example.test")
	items := sc.RoadmapItems(parse(t, roadmapPage))

	require.Equal(t, []string{
		"✅ Mainnet launch",
		"✅ Token factory",
		"⏳ NFT marketplace beta",
		"🔄 Mobile wallet",
	}, items)
}

func TestWhitepaperSections(t *testing.T) {
	sc := New("https://example.test")
	sections := sc.WhitepaperSections(parse(t, whitepaperPage))

	require.Len(t, sections, 3)
	require.Equal(t, "Executive Summary", sections[0].Title)
	require.Contains(t, sections[0].Body, "layer one network")
	require.NotContains(t, sections[0].Body, "short")

	require.Equal(t, "Consensus", sections[1].Title)
	require.Equal(t, "Ecosystem", sections[2].Title)
}

func TestWhitepaperSkipsEmptySections(t *testing.T) {
	sc := New("https://example.test")
	sections := sc.WhitepaperSections(parse(t, whitepaperPage))

	for _, s := range sections {
		require.NotEqual(t, "Tokenomics", s.Title)
		require.NotEqual(t, "Menu", s.Title)
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/roadmap" {
			w.Write([]byte(roadmapPage))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	sc := New(srv.URL)

	doc, err := sc.Fetch(context.Background(), "/roadmap")
	require.NoError(t, err)
	require.NotEmpty(t, sc.RoadmapItems(doc))

	_, err = sc.Fetch(context.Background(), "/missing")
	require.Error(t, err)
}

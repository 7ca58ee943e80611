// Package contracts holds trimmed copies of real public API responses.
// Client and normalizer tests replay them to catch schema drift.
package contracts

// DevToArticlesContract is GET https://dev.to/api/articles?tag=webdev&per_page=2.
const DevToArticlesContract = `[
  {
    "type_of": "article",
    "id": 1893412,
    "title": "Container Queries Are Ready for Production",
    "description": "A practical look at @container in real layouts.",
    "readable_publish_date": "Jun 18",
    "slug": "container-queries-are-ready-for-production-4k2p",
    "path": "/jdoe/container-queries-are-ready-for-production-4k2p",
    "url": "https://dev.to/jdoe/container-queries-are-ready-for-production-4k2p",
    "comments_count": 14,
    "public_reactions_count": 212,
    "positive_reactions_count": 212,
    "canonical_url": "https://dev.to/jdoe/container-queries-are-ready-for-production-4k2p",
    "created_at": "2024-06-18T08:11:02Z",
    "published_at": "2024-06-18T09:00:00Z",
    "last_comment_at": "2024-06-20T16:44:10Z",
    "reading_time_minutes": 7,
    "tag_list": ["css", "webdev", "frontend"],
    "tags": "css, webdev, frontend",
    "user": {"name": "Jane Doe", "username": "jdoe"}
  },
  {
    "type_of": "article",
    "id": 1890077,
    "title": "Shipping a Vite Plugin",
    "description": "",
    "url": "https://dev.to/asmith/shipping-a-vite-plugin-1b9c",
    "comments_count": 0,
    "positive_reactions_count": 9,
    "canonical_url": "https://asmith.dev/vite-plugin",
    "published_at": "2024-06-15T12:30:00Z",
    "reading_time_minutes": 0,
    "tag_list": [],
    "user": {"name": "Alex Smith", "username": "asmith"}
  }
]`

// HackerNewsTopStoriesContract is GET /v0/topstories.json, truncated.
const HackerNewsTopStoriesContract = `[40710032, 40709918, 40708001]`

// HackerNewsItemContracts are GET /v0/item/<id>.json for the ids above: a
// link story, a text-only Ask HN and a job posting.
var HackerNewsItemContracts = map[string]string{
	"40710032": `{"by":"pclark","descendants":188,"id":40710032,"kids":[40710301],"score":642,"time":1718700000,"title":"The CSS :has() selector is now in every browser","type":"story","url":"https://web.dev/blog/has-baseline"}`,
	"40709918": `{"by":"throwaway42","descendants":57,"id":40709918,"score":120,"text":"What do you use for <i>frontend</i> testing these days?<p>Curious about Playwright vs Cypress &amp; friends.","time":1718695000,"title":"Ask HN: Frontend testing in 2024?","type":"story"}`,
	"40708001": `{"by":"acme","id":40708001,"score":1,"time":1718690000,"title":"Acme (YC S21) is hiring a Go engineer","type":"job","url":"https://acme.example/jobs"}`,
}

// GitHubReposContract is GET https://api.github.com/users/<user>/repos?sort=updated.
const GitHubReposContract = `[
  {
    "id": 712345678,
    "node_id": "R_kgDOKnFzTg",
    "name": "design-tokens",
    "full_name": "someone/design-tokens",
    "private": false,
    "owner": {"login": "someone", "id": 1234, "type": "User"},
    "html_url": "https://github.com/someone/design-tokens",
    "description": "Tokens and a CSS build step for my sites",
    "fork": false,
    "created_at": "2023-10-30T18:01:11Z",
    "updated_at": "2024-06-01T07:20:00Z",
    "pushed_at": "2024-05-30T21:45:09Z",
    "stargazers_count": 41,
    "watchers_count": 41,
    "language": "TypeScript",
    "forks_count": 3,
    "archived": false,
    "open_issues_count": 2,
    "license": {"key": "mit", "name": "MIT License", "spdx_id": "MIT"},
    "topics": ["css", "design-systems"],
    "default_branch": "main"
  },
  {
    "id": 698765432,
    "name": "dotfiles",
    "full_name": "someone/dotfiles",
    "owner": {"login": "someone"},
    "html_url": "https://github.com/someone/dotfiles",
    "description": null,
    "fork": true,
    "created_at": "2023-09-01T00:00:00Z",
    "updated_at": "2023-09-01T00:00:00Z",
    "pushed_at": null,
    "stargazers_count": 0,
    "forks_count": 0,
    "archived": false,
    "open_issues_count": 0,
    "license": null,
    "topics": []
  }
]`

// AtomFeedContract is a trimmed Atom feed as served by most static blogs.
const AtomFeedContract = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Frontend Notes</title>
  <link href="https://notes.example/"/>
  <updated>2024-06-10T10:00:00Z</updated>
  <id>https://notes.example/</id>
  <entry>
    <title>Scroll-driven animations</title>
    <link href="https://notes.example/scroll-driven-animations/"/>
    <id>https://notes.example/scroll-driven-animations/</id>
    <updated>2024-06-10T10:00:00Z</updated>
    <published>2024-06-09T08:00:00Z</published>
    <author><name>Sam Lee</name></author>
    <category term="css"/>
    <summary type="html">&lt;p&gt;Animating on &lt;em&gt;scroll&lt;/em&gt; without JavaScript.&lt;/p&gt;</summary>
  </entry>
</feed>`

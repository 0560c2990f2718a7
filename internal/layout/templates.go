package layout

const baseTemplate = `{{define "base"}}<!DOCTYPE html>
<html lang="{{with .Site.Language}}{{.}}{{else}}en{{end}}">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{block "title" .}}{{.Site.Title}}{{end}}</title>
  {{- with .Site.Description}}
  <meta name="description" content="{{.}}">
  {{- end}}
  {{- with .Nav.FeedURL}}
  <link rel="alternate" type="application/rss+xml" title="{{$.Site.Title}}" href="{{.}}">
  {{- end}}
  {{- with .Theme.AssetURL}}{{with call . "styles.main"}}
  <link rel="stylesheet" href="{{.}}">
  {{- end}}{{end}}
  {{- with .Style}}
  <style>{{.}}</style>
  {{- end}}
</head>
<body>
  <header class="site-header">
    <a class="site-title" href="{{.Nav.ListingURL}}">{{.Site.Title}}</a>
    <nav class="site-nav">
      <a href="{{.Nav.ListingURL}}">Articles</a>
      {{- with .Nav.FeedURL}}
      <a href="{{.}}">Feed</a>
      {{- end}}
    </nav>
  </header>
  <main class="site-main">
{{block "content" .}}{{end}}
  </main>
  <footer class="site-footer">
    {{- with .Site.Author}}
    <span class="site-author">{{.}}</span>
    {{- end}}
    <span class="site-generated">{{date .GeneratedAt "2006"}}</span>
  </footer>
</body>
</html>
{{end}}`

var defaultViewTemplates = map[string]string{
	"listing": `{{define "content"}}
    <section class="article-list">
      {{- if .Items}}
      <ul>
        {{- range .Items}}
        <li class="article-list__item">
          <a href="{{.URL}}">{{.Title}}</a>
          <time datetime="{{date .Date "2006-01-02"}}">{{date .Date "January 2, 2006"}}</time>
          {{- with .Description}}
          <p>{{.}}</p>
          {{- end}}
          {{- if .Tags}}
          <span class="article-list__tags">{{join .Tags ", "}}</span>
          {{- end}}
        </li>
        {{- end}}
      </ul>
      {{- else}}
      <p class="article-list__empty">Nothing published yet.</p>
      {{- end}}
    </section>
{{end}}`,

	"article": `{{define "title"}}{{.Article.Title}} · {{.Site.Title}}{{end}}
{{define "content"}}
    <article class="article">
      <header class="article__header">
        <h1>{{.Article.Title}}</h1>
        <time datetime="{{date .Article.Date "2006-01-02"}}">{{date .Article.Date "January 2, 2006"}}</time>
        {{- if .Article.Authors}}
        <span class="article__authors">{{join .Article.Authors ", "}}</span>
        {{- end}}
      </header>
      <div class="article__body">
{{.Article.Content}}
      </div>
      {{- if .Article.Tags}}
      <footer class="article__tags">{{join .Article.Tags ", "}}</footer>
      {{- end}}
    </article>
{{end}}`,

	"error": `{{define "title"}}{{.Error.Title}} · {{.Site.Title}}{{end}}
{{define "content"}}
    <section class="error-page">
      <h1>{{.Error.Title}}</h1>
      <p>{{.Error.Message}}</p>
      <p><a href="{{.Nav.ListingURL}}">Back to articles</a></p>
    </section>
{{end}}`,
}

package application

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	celebrity "github.com/celebnet/backend/internal/modules/celebrity/domain"
)

const profileHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}} Profile</title>
<style>
  body { font-family: sans-serif; margin: 40px; color: #333; }
  h1 { color: #1a202c; font-size: 28px; margin-bottom: 10px; }
  h2 { color: #2d3748; font-size: 22px; margin-top: 20px; margin-bottom: 10px; border-bottom: 1px solid #eee; padding-bottom: 5px; }
  p { margin-bottom: 8px; line-height: 1.6; }
  .section { margin-bottom: 25px; }
  .social-link { margin-right: 15px; display: inline-block; }
  img { max-width: 200px; border-radius: 50%; display: block; margin: 0 auto 20px; }
  ul { list-style: disc; margin-left: 20px; }
</style>
</head>
<body>
{{- if .ImageSrc}}
<img src="{{.ImageSrc}}" alt="{{.Name}}">
{{- end}}
<h1>{{.Name}}</h1>
<p><strong>Category:</strong> {{.Categories}}</p>
<p><strong>Country:</strong> {{.Country}}</p>
{{- if .Fanbase}}
<p><strong>Fanbase:</strong> {{.Fanbase}}</p>
{{- end}}
{{- if .Description}}
<div class="section">
<h2>About</h2>
<p>{{.Description}}</p>
</div>
{{- end}}
{{- if .HasSocial}}
<div class="section">
<h2>Social &amp; Media</h2>
{{- with .Instagram}}<p class="social-link"><strong>Instagram:</strong> @{{.}}</p>{{end}}
{{- with .YouTube}}<p class="social-link"><strong>YouTube:</strong> <a href="{{.}}">{{.}}</a></p>{{end}}
{{- with .Spotify}}<p class="social-link"><strong>Spotify:</strong> {{.}}</p>{{end}}
{{- with .IMDb}}<p class="social-link"><strong>IMDb:</strong> <a href="https://www.imdb.com/name/{{.}}/">{{.}}</a></p>{{end}}
</div>
{{- end}}
{{- if .Topics}}
<div class="section">
<h2>Setlist / Topics</h2>
<ul>
{{- range .Topics}}
<li>{{.}}</li>
{{- end}}
</ul>
</div>
{{- end}}
</body>
</html>
`

var profileTemplate = template.Must(template.New("profile").Parse(profileHTML))

type profileView struct {
	Name        string
	ImageSrc    template.URL
	Categories  string
	Country     string
	Fanbase     string
	Description template.HTML
	Instagram   string
	YouTube     string
	Spotify     string
	IMDb        string
	Topics      []string
	HasSocial   bool
}

// renderHTML fills the profile template. Optional fields that are empty are
// left out. imageSrc must already be a data URI or empty.
func renderHTML(c *celebrity.Celebrity, imageSrc string, policy *bluemonday.Policy) ([]byte, error) {
	v := profileView{
		Name:       c.Name,
		ImageSrc:   template.URL(imageSrc),
		Categories: strings.Join(c.Category, ", "),
		Country:    c.Country,
		Instagram:  deref(c.InstagramHandle),
		YouTube:    deref(c.YoutubeChannel),
		Spotify:    deref(c.SpotifyID),
		IMDb:       deref(c.IMDbID),
		Topics:     c.Topics,
	}
	if c.FanbaseCount > 0 {
		v.Fanbase = groupThousands(c.FanbaseCount)
	}
	if d := strings.TrimSpace(deref(c.Description)); d != "" {
		v.Description = template.HTML(policy.Sanitize(d))
	}
	v.HasSocial = v.Instagram != "" || v.YouTube != "" || v.Spotify != "" || v.IMDb != ""

	var buf bytes.Buffer
	if err := profileTemplate.Execute(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

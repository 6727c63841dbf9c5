package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// StringList accepts either a JSON string or an array of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = splitNonEmpty([]string{one})
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = splitNonEmpty(many)
	return nil
}

func splitNonEmpty(in []string) StringList {
	out := StringList{}
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ProfileDraft is a model-generated profile used to prefill the create form.
type ProfileDraft struct {
	Name                         string     `json:"name"`
	Category                     StringList `json:"category"`
	Country                      string     `json:"country"`
	Description                  *string    `json:"description,omitempty"`
	ProfileImageURL              *string    `json:"profileImageUrl,omitempty"`
	InstagramHandle              *string    `json:"instagramHandle,omitempty"`
	YoutubeChannel               *string    `json:"youtubeChannel,omitempty"`
	SpotifyID                    *string    `json:"spotifyId,omitempty"`
	IMDbID                       *string    `json:"imdbId,omitempty"`
	FanbaseCount                 *int64     `json:"fanbaseCount,omitempty"`
	SampleSetlistOrKeynoteTopics StringList `json:"sampleSetlistOrKeynoteTopics,omitempty"`
}

// ParseProfileDraft decodes a model response. It returns nil when the text is
// not a JSON object or lacks name, category or country. Optional fields of the
// wrong shape are dropped individually.
func ParseProfileDraft(text string) *ProfileDraft {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil || fields == nil {
		return nil
	}

	d := &ProfileDraft{
		Name:                         deref(textField(fields["name"])),
		Category:                     listField(fields["category"]),
		Country:                      deref(textField(fields["country"])),
		Description:                  textField(fields["description"]),
		ProfileImageURL:              textField(fields["profileImageUrl"]),
		InstagramHandle:              textField(fields["instagramHandle"]),
		YoutubeChannel:               textField(fields["youtubeChannel"]),
		SpotifyID:                    textField(fields["spotifyId"]),
		IMDbID:                       textField(fields["imdbId"]),
		FanbaseCount:                 countField(fields["fanbaseCount"]),
		SampleSetlistOrKeynoteTopics: listField(fields["sampleSetlistOrKeynoteTopics"]),
	}
	if d.Name == "" || d.Country == "" || len(d.Category) == 0 {
		return nil
	}
	return d
}

// textField accepts a string, or a number or boolean as its literal text.
func textField(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	var out string
	switch v := v.(type) {
	case string:
		out = strings.TrimSpace(v)
	case json.Number:
		out = v.String()
	case bool:
		out = strconv.FormatBool(v)
	}
	if out == "" {
		return nil
	}
	return &out
}

func listField(raw json.RawMessage) StringList {
	if len(raw) == 0 {
		return nil
	}
	var l StringList
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil
	}
	return l
}

// countField accepts a number or a numeric string.
func countField(raw json.RawMessage) *int64 {
	if len(raw) == 0 {
		return nil
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	switch v := v.(type) {
	case json.Number:
		return parseCount(v)
	case string:
		return parseCount(json.Number(strings.TrimSpace(v)))
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseCount(n json.Number) *int64 {
	if n == "" {
		return nil
	}
	if v, err := n.Int64(); err == nil && v >= 0 {
		return &v
	}
	if f, err := n.Float64(); err == nil && f >= 0 && f < math.MaxInt64 {
		v := int64(f)
		return &v
	}
	return nil
}

// StripCodeFence removes a surrounding markdown code fence, if any.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 && !strings.ContainsAny(text[:i], "{[") {
		text = text[i+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

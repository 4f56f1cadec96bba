package site

import "strings"

type Category int

const (
	Unrecognized Category = iota
	VideoPlatform
	Newsletter
	MessagingChannel
	VideoShareA
	VideoShareB
	VideoShareC
	GenericBlog
)

var categoryNames = map[Category]string{
	Unrecognized:     "unknown",
	VideoPlatform:    "youtube",
	Newsletter:       "substack",
	MessagingChannel: "telegram",
	VideoShareA:      "bitchute",
	VideoShareB:      "odysee",
	VideoShareC:      "rumble",
	GenericBlog:      "blog",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// markers are checked in order; the first rule with a matching substring wins.
var markers = []struct {
	category Category
	needles  []string
}{
	{VideoPlatform, []string{"youtube.com", "youtu.be"}},
	{Newsletter, []string{"substack.com"}},
	{MessagingChannel, []string{"t.me", "telegram.me"}},
	{VideoShareB, []string{"odysee.com"}},
	{VideoShareA, []string{"bitchute.com"}},
	{VideoShareC, []string{"rumble.com"}},
	{GenericBlog, []string{"http"}},
}

// Classify maps a URL to a site category by substring matching over the
// lower-cased URL.
func Classify(url string) Category {
	lower := strings.ToLower(url)
	for _, m := range markers {
		for _, needle := range m.needles {
			if strings.Contains(lower, needle) {
				return m.category
			}
		}
	}
	return Unrecognized
}

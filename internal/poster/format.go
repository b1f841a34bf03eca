package poster

import "unicode/utf8"

const (
	// XLimit is the X post length limit in characters.
	XLimit = 280
	// BlueskyLimit is the Bluesky post length limit in characters.
	BlueskyLimit = 300

	// quoteOverhead is the quote marks, ellipsis and attribution prefix plus two characters of slack.
	quoteOverhead = 11
	// elidedOverhead is the length of `"..."` and the attribution prefix with no quote text left.
	elidedOverhead = 9
)

// Format renders `"<quote>"` followed by a blank line and `- <gameName>`.
// When the result exceeds limit characters the quote is cut and closed with `..."`.
// A game name too long to leave room for any quote text is cut as well, so
// the result never exceeds a positive limit.
func Format(quote, gameName string, limit int) string {
	post := `"` + quote + `"` + "\n\n- " + gameName
	if limit <= 0 || utf8.RuneCountInString(post) <= limit {
		return post
	}
	if limit < elidedOverhead {
		return prefixRunes(post, limit)
	}

	keep := limit - utf8.RuneCountInString(gameName) - quoteOverhead
	if keep <= 0 {
		return `"..."` + "\n\n- " + prefixRunes(gameName, limit-elidedOverhead)
	}
	return `"` + prefixRunes(quote, keep) + `..."` + "\n\n- " + gameName
}

func prefixRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

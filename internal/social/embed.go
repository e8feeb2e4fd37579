package social

import (
	"fmt"
	"html"
)

func instagramEmbed(permalink string) string {
	return fmt.Sprintf(
		`<blockquote class="instagram-media" data-instgrm-permalink="%s" data-instgrm-version="14"></blockquote>`,
		html.EscapeString(permalink))
}

func youtubeEmbed(videoID, title string) string {
	return fmt.Sprintf(
		`<iframe src="https://www.youtube.com/embed/%s" title="%s" frameborder="0" allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen></iframe>`,
		html.EscapeString(videoID), html.EscapeString(title))
}

package social

import "context"

// TikTokSource is a placeholder: the display API needs an approved app, so it
// contributes nothing to the feed.
type TikTokSource struct{}

func NewTikTokSource() *TikTokSource {
	return &TikTokSource{}
}

func (s *TikTokSource) Platform() Platform { return PlatformTikTok }

// Configured is always false so a missing TikTok contribution never counts as a failure.
func (s *TikTokSource) Configured() bool { return false }

func (s *TikTokSource) Fetch(context.Context) ([]Item, error) {
	return nil, nil
}

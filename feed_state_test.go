package ion

import "testing"

func TestFeedState_String(t *testing.T) {
	cases := map[FeedState]string{
		FeedLoading:   "loading",
		FeedHealthy:   "healthy",
		FeedDegraded:  "degraded",
		FeedEmpty:     "empty",
		FeedState(-1): "unknown",
	}
	for s, want := range cases {
		if s.String() != want {
			t.Errorf("FeedState(%d): expected %q, got %q", int32(s), want, s.String())
		}
	}
}

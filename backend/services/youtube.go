package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"
)

// Video is one recommendation as the front end consumes it.
type Video struct {
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	VideoID   string `json:"videoId"`
	URL       string `json:"url"`
}

const (
	// MaxVideoResults caps results per interest and across a whole request.
	MaxVideoResults = 5

	youtubeMaxRetries = 3
	youtubeSearchURL  = "https://www.googleapis.com/youtube/v3/search"
	youtubeWatchURL   = "https://www.youtube.com/watch?v="
)

// YouTubeClient queries the YouTube search API with a pool of API keys and a
// per-interest TTL cache. The rotation cursor advances only on quota errors,
// guarded by the client mutex.
type YouTubeClient struct {
	BaseURL string // overridable for tests; defaults to the real API
	TTL     time.Duration
	Log     *logrus.Logger

	client *http.Client

	mu     sync.Mutex
	keys   []string
	cursor int
	cache  map[string]videoCacheEntry
}

type videoCacheEntry struct {
	videos  []Video
	fetched time.Time
}

func NewYouTubeClient(keys []string, ttl time.Duration, log *logrus.Logger) *YouTubeClient {
	return &YouTubeClient{
		BaseURL: youtubeSearchURL,
		TTL:     ttl,
		Log:     log,
		client:  &http.Client{Timeout: 10 * time.Second},
		keys:    keys,
		cache:   make(map[string]videoCacheEntry),
	}
}

// VideosForInterest returns up to MaxVideoResults videos for one interest,
// ASCII-only titles, from cache when fresh. Quota-exhausted keys rotate to
// the next key in the pool, bounded to youtubeMaxRetries attempts; any other
// failure returns an empty slice rather than an error.
func (yc *YouTubeClient) VideosForInterest(interest string) []Video {
	if cached, ok := yc.cached(interest); ok {
		return cached
	}

	for attempt := 0; attempt < youtubeMaxRetries; attempt++ {
		key := yc.currentKey()
		if key == "" {
			break
		}

		resp, err := yc.client.Get(yc.searchURL(interest, key))
		if err != nil {
			yc.Log.WithError(err).Warn("youtube search request failed")
			break
		}

		if resp.StatusCode == http.StatusForbidden {
			resp.Body.Close()
			yc.Log.Warn("youtube api quota exceeded, rotating key")
			yc.rotateKey()
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			yc.Log.WithField("status", resp.StatusCode).Warn("unexpected youtube api response")
			break
		}

		videos, err := parseSearchResponse(resp.Body)
		resp.Body.Close()
		if err != nil {
			yc.Log.WithError(err).Warn("failed to decode youtube response")
			break
		}

		yc.store(interest, videos)
		return videos
	}
	return []Video{}
}

func (yc *YouTubeClient) searchURL(interest, key string) string {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("maxResults", strconv.Itoa(MaxVideoResults))
	q.Set("q", interest)
	q.Set("type", "video")
	q.Set("videoDuration", "medium")
	q.Set("fields", "items(id/videoId,snippet/title,snippet/thumbnails/high/url)")
	q.Set("key", key)
	return yc.BaseURL + "?" + q.Encode()
}

func (yc *YouTubeClient) currentKey() string {
	yc.mu.Lock()
	defer yc.mu.Unlock()
	if len(yc.keys) == 0 {
		return ""
	}
	return yc.keys[yc.cursor%len(yc.keys)]
}

func (yc *YouTubeClient) rotateKey() {
	yc.mu.Lock()
	defer yc.mu.Unlock()
	if len(yc.keys) > 0 {
		yc.cursor = (yc.cursor + 1) % len(yc.keys)
	}
}

func (yc *YouTubeClient) cached(interest string) ([]Video, bool) {
	yc.mu.Lock()
	defer yc.mu.Unlock()
	entry, ok := yc.cache[interest]
	if !ok || time.Since(entry.fetched) > yc.TTL {
		return nil, false
	}
	return entry.videos, true
}

func (yc *YouTubeClient) store(interest string, videos []Video) {
	yc.mu.Lock()
	defer yc.mu.Unlock()
	yc.cache[interest] = videoCacheEntry{videos: videos, fetched: time.Now()}
}

func parseSearchResponse(r io.Reader) ([]Video, error) {
	var body struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
			Snippet struct {
				Title      string `json:"title"`
				Thumbnails struct {
					High struct {
						URL string `json:"url"`
					} `json:"high"`
				} `json:"thumbnails"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return nil, err
	}

	videos := make([]Video, 0, len(body.Items))
	for _, item := range body.Items {
		if !isASCII(item.Snippet.Title) {
			continue
		}
		videos = append(videos, Video{
			Title:     item.Snippet.Title,
			Thumbnail: item.Snippet.Thumbnails.High.URL,
			VideoID:   item.ID.VideoID,
			URL:       youtubeWatchURL + item.ID.VideoID,
		})
		if len(videos) >= MaxVideoResults {
			break
		}
	}
	return videos, nil
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

package twitter

import (
	"cashtag-mentions/models/entities"
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"time"
)

const (
	usernamePath      = "/2/users/by/username/%s"
	userTweetsPath    = "/2/users/%s/tweets"
	lookupTimeout     = 15 * time.Second
	timelineTimeout   = 30 * time.Second
	clientHTTPTimeout = 30 * time.Second
	maxResultsLimit   = 100
	minResultsLimit   = 5
	rateLimitHeader   = "x-rate-limit-reset"
	tweetFields       = "created_at"
	pagedTweetFields  = "created_at,referenced_tweets"
)

var (
	ErrBearerTokenMissing = errors.New("twitter bearer token is missing")
	ErrMalformedResponse  = errors.New("twitter response is malformed")
	ErrUserNotFound       = errors.New("twitter user not found")
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode     int
	Message        string
	Body           []byte
	RateLimitReset string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("twitter api error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

type Config struct {
	BearerToken string
	BaseURL     string
	MaxResults  int
	Backoff     Backoff
}

type Service interface {
	ResolveAccount(ctx context.Context, handle string) (string, error)
	FetchPosts(ctx context.Context, userID string, window entities.TimeWindow) iter.Seq2[entities.Post, error]
	FetchAllPosts(ctx context.Context, userID string, window entities.TimeWindow) iter.Seq2[entities.Post, error]
}

type Impl struct {
	baseURL     string
	bearerToken string
	maxResults  int
	backoff     Backoff
	client      *http.Client
	now         func() time.Time
	sleep       func(ctx context.Context, d time.Duration) error
}

type apiError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

type userResponse struct {
	Data struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
	Errors []apiError `json:"errors"`
}

type tweet struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

type timelineResponse struct {
	Data []tweet `json:"data"`
	Meta struct {
		ResultCount int    `json:"result_count"`
		NextToken   string `json:"next_token"`
	} `json:"meta"`
}

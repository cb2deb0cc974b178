package twitter

import (
	"cashtag-mentions/models/constants"
	"cashtag-mentions/models/entities"
	"cashtag-mentions/utils/dates"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
)

func New(cfg Config) (*Impl, error) {
	if strings.TrimSpace(cfg.BearerToken) == "" {
		return nil, ErrBearerTokenMissing
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 || maxResults > maxResultsLimit {
		maxResults = maxResultsLimit
	}

	return &Impl{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		bearerToken: cfg.BearerToken,
		maxResults:  max(maxResults, minResultsLimit),
		backoff:     cfg.Backoff.withDefaults(),
		client: &http.Client{
			Timeout: clientHTTPTimeout,
		},
		now:   time.Now,
		sleep: sleepContext,
	}, nil
}

// ResolveAccount returns the opaque user id behind a handle.
func (service *Impl) ResolveAccount(ctx context.Context, handle string) (string, error) {
	handle = constants.NormalizeHandle(handle)
	path := fmt.Sprintf(usernamePath, url.PathEscape(handle))

	var result userResponse
	if err := service.get(ctx, path, nil, lookupTimeout, &result); err != nil {
		return "", err
	}

	if result.Data.ID == "" {
		if len(result.Errors) > 0 {
			return "", fmt.Errorf("%w: %s", ErrUserNotFound, result.Errors[0].Detail)
		}
		return "", fmt.Errorf("%w: missing data.id", ErrMalformedResponse)
	}

	log.Debug().
		Str(constants.LogTwitterName, handle).
		Str(constants.LogTwitterID, result.Data.ID).
		Msg("Account resolved")

	return result.Data.ID, nil
}

// FetchPosts reads a single page of the user timeline within the window.
func (service *Impl) FetchPosts(ctx context.Context, userID string, window entities.TimeWindow) iter.Seq2[entities.Post, error] {
	return func(yield func(entities.Post, error) bool) {
		var result timelineResponse
		err := service.get(ctx, fmt.Sprintf(userTweetsPath, url.PathEscape(userID)),
			service.timelineQuery(window, false), timelineTimeout, &result)
		if err != nil {
			yield(entities.Post{}, err)
			return
		}

		for _, item := range result.Data {
			if !yield(mapTweetToEntity(item), nil) {
				return
			}
		}
	}
}

// FetchAllPosts follows next_token until the timeline is exhausted. Pages are
// requested lazily as the sequence is consumed and a rate limited page is
// retried after the backoff delay.
func (service *Impl) FetchAllPosts(ctx context.Context, userID string, window entities.TimeWindow) iter.Seq2[entities.Post, error] {
	return func(yield func(entities.Post, error) bool) {
		path := fmt.Sprintf(userTweetsPath, url.PathEscape(userID))
		query := service.timelineQuery(window, true)

		for page := 1; ; page++ {
			var result timelineResponse
			if err := service.getWithBackoff(ctx, path, query, &result); err != nil {
				yield(entities.Post{}, err)
				return
			}

			log.Debug().
				Str(constants.LogTwitterID, userID).
				Int(constants.LogPageNumber, page).
				Int(constants.LogTweetNumber, len(result.Data)).
				Msg("Timeline page read")

			for _, item := range result.Data {
				if !yield(mapTweetToEntity(item), nil) {
					return
				}
			}

			if result.Meta.NextToken == "" {
				return
			}
			query.Set("pagination_token", result.Meta.NextToken)
		}
	}
}

func (service *Impl) timelineQuery(window entities.TimeWindow, paginated bool) url.Values {
	query := url.Values{}
	query.Set("max_results", strconv.Itoa(service.maxResults))
	query.Set("start_time", dates.ToWireTimestamp(window.Start))
	query.Set("end_time", dates.ToWireTimestamp(window.End))
	query.Set("tweet.fields", tweetFields)
	if paginated {
		query.Set("tweet.fields", pagedTweetFields)
		query.Set("exclude", "replies")
	}

	return query
}

func (service *Impl) getWithBackoff(ctx context.Context, path string, query url.Values, result any) error {
	for {
		err := service.get(ctx, path, query, timelineTimeout, result)

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.IsRateLimited() {
			return err
		}

		now := service.now()
		wait := service.backoff.Delay(parseRateLimitReset(apiErr.RateLimitReset), now)
		log.Warn().
			Str(constants.LogWait, wait.String()).
			Msgf("Rate limited, retrying %s", humanize.RelTime(now.Add(wait), now, "ago", "from now"))

		if errSleep := service.sleep(ctx, wait); errSleep != nil {
			return errSleep
		}
	}
}

func (service *Impl) get(ctx context.Context, path string, query url.Values, timeout time.Duration, result any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := service.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+service.bearerToken)

	resp, err := service.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch data: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{
			StatusCode:     resp.StatusCode,
			Message:        http.StatusText(resp.StatusCode),
			Body:           body,
			RateLimitReset: resp.Header.Get(rateLimitHeader),
		}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return nil
}

func mapTweetToEntity(raw tweet) entities.Post {
	post := entities.Post{
		ID:   raw.ID,
		Text: raw.Text,
	}

	if createdAt, err := dates.StringToDate(raw.CreatedAt); err == nil {
		post.CreatedAt = createdAt
	}

	return post
}

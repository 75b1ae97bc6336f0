package daggithub

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/devmatteini/dag/log"
	"github.com/devmatteini/dag/models"
	"github.com/google/go-github/v26/github"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const (
	// DefaultTimeout bounds the release lookup. Asset downloads are not bounded.
	DefaultTimeout = 5 * time.Second

	rawMediaType = "application/vnd.github.raw"
)

type Client struct {
	GitHub  *github.Client
	HTTP    *http.Client
	Timeout time.Duration
}

// NewClient creates a client for the GitHub API at apiURL (github.com when
// empty). A non-empty token is sent as a bearer token on every request.
func NewClient(ctx context.Context, token, apiURL string) (*Client, error) {
	httpClient := &http.Client{}
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
	}

	gh := github.NewClient(httpClient)
	if apiURL != "" {
		u, err := url.Parse(strings.TrimRight(apiURL, "/") + "/")
		if err != nil {
			return nil, errors.Wrapf(err, "invalid API url %q", apiURL)
		}
		gh.BaseURL = u
	}

	return &Client{
		GitHub:  gh,
		HTTP:    httpClient,
		Timeout: DefaultTimeout,
	}, nil
}

// GetRelease fetches the release with the given tag, or the latest release
// when tag is empty.
// DOCS:
// - https://docs.github.com/en/rest/releases/releases#get-the-latest-release
// - https://docs.github.com/en/rest/releases/releases#get-a-release-by-tag-name
func (c *Client) GetRelease(ctx context.Context, repository models.Repository, tag models.Tag) (models.Release, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		release *github.RepositoryRelease
		err     error
	)
	if tag == "" {
		log.G(ctx).Debugf("Fetching latest release of %s", repository)
		release, _, err = c.GitHub.Repositories.GetLatestRelease(ctx, repository.Owner, repository.Name)
	} else {
		log.G(ctx).Debugf("Fetching release %s of %s", tag, repository)
		release, _, err = c.GitHub.Repositories.GetReleaseByTag(ctx, repository.Owner, repository.Name, tag.String())
	}
	if err != nil {
		return models.Release{}, mapError(err)
	}

	return toRelease(repository, release)
}

// DownloadAssetStream opens the raw content of asset. The returned size is
// -1 when the server did not send a Content-Length.
// DOCS: https://docs.github.com/en/rest/releases/assets#get-a-release-asset
func (c *Client) DownloadAssetStream(ctx context.Context, asset models.Asset) (io.ReadCloser, int64, error) {
	req, err := c.GitHub.NewRequest(http.MethodGet, asset.DownloadURL, nil)
	if err != nil {
		return nil, 0, &HTTPError{Err: err}
	}
	req.Header.Set("Accept", rawMediaType)

	log.G(ctx).Debugf("Downloading %s from %s", asset.Name, asset.DownloadURL)
	resp, err := c.HTTP.Do(req.WithContext(ctx))
	if err != nil {
		return nil, 0, &HTTPError{Err: err}
	}
	if err := github.CheckResponse(resp); err != nil {
		resp.Body.Close()
		return nil, 0, mapError(err)
	}

	return resp.Body, resp.ContentLength, nil
}

func mapError(err error) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		if errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
			return ErrRepositoryOrReleaseNotFound
		}
		return &HTTPError{StatusCode: statusOf(errResp.Response), Err: err}
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &HTTPError{StatusCode: statusOf(rateErr.Response), Err: err}
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &HTTPError{StatusCode: statusOf(abuseErr.Response), Err: err}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &DecodeError{Err: err}
	}

	return &HTTPError{Err: err}
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

func toRelease(repository models.Repository, release *github.RepositoryRelease) (models.Release, error) {
	if release.TagName == nil {
		return models.Release{}, &DecodeError{Err: errors.New("missing field `tag_name`")}
	}
	if release.Assets == nil {
		return models.Release{}, &DecodeError{Err: errors.New("missing field `assets`")}
	}

	assets := make([]models.Asset, 0, len(release.Assets))
	for i, a := range release.Assets {
		if a.Name == nil || a.BrowserDownloadURL == nil {
			return models.Release{}, &DecodeError{Err: errors.Errorf("asset %d: missing field `name` or `browser_download_url`", i)}
		}
		assets = append(assets, models.Asset{
			Name:        a.GetName(),
			DownloadURL: a.GetBrowserDownloadURL(),
			Size:        int64(a.GetSize()),
			ContentType: a.GetContentType(),
		})
	}

	return models.Release{
		Repository: repository,
		Tag:        models.Tag(release.GetTagName()),
		Assets:     assets,
	}, nil
}

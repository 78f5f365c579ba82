package sakaisvc

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/lms"
)

// "direct" read endpoints of a Sakai-style LMS.
const (
	sitesEndpoint         = "/direct/site.json"
	assignmentsEndpoint   = "/direct/assignment/my.json"
	announcementsEndpoint = "/direct/announcement/user.json"
)

type client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

var _ lms.Client = (*client)(nil)

// NewClient builds the LMS client once at process start; it holds no session
// state, the cookie is passed in on every call.
func NewClient(conf *core.Config) *client {
	return &client{
		baseURL:   strings.TrimRight(conf.LMS.BaseURL, "/"),
		userAgent: conf.LMS.UserAgent,
		http:      &http.Client{Timeout: conf.LMS.Timeout},
	}
}

// get issues a single GET with the stored cookie attached verbatim.
// No retries: one failed request fails the whole collection fetch.
func (c *client) get(ctx context.Context, cookie, path string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrapf(err, "building request %s", path)
	}
	req.Header.Set("Cookie", cookie)
	req.Header.Set("User-Agent", c.userAgent)

	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "calling LMS %s", path)
	}
	defer func() { _ = res.Body.Close() }()

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return lms.ErrAuthFailed
	case res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices:
		return &lms.APIError{Status: res.StatusCode, StatusText: http.StatusText(res.StatusCode)}
	}

	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		return errors.Wrapf(err, "decoding LMS response %s", path)
	}
	return nil
}

func (c *client) FetchSites(ctx context.Context, cookie string) ([]lms.Site, error) {
	var payload struct {
		Sites []lms.Site `json:"site_collection"`
	}
	if err := c.get(ctx, cookie, sitesEndpoint, &payload); err != nil {
		return nil, err
	}
	return payload.Sites, nil
}

func (c *client) FetchAssignments(ctx context.Context, cookie string) ([]lms.Assignment, error) {
	var payload struct {
		Assignments []lms.Assignment `json:"assignment_collection"`
	}
	if err := c.get(ctx, cookie, assignmentsEndpoint, &payload); err != nil {
		return nil, err
	}
	return payload.Assignments, nil
}

func (c *client) FetchAnnouncements(ctx context.Context, cookie string) ([]lms.Announcement, error) {
	var payload struct {
		Announcements []lms.Announcement `json:"announcement_collection"`
	}
	if err := c.get(ctx, cookie, announcementsEndpoint, &payload); err != nil {
		return nil, err
	}
	return payload.Announcements, nil
}

func (c *client) TestConnection(ctx context.Context, cookie string) error {
	_, err := c.FetchSites(ctx, cookie)
	return err
}

package omnivox

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"omnivox-backend/internal/components/telemetry"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// Options configures how the portal is reached, it doubles as the
// `omnivox.json5` config format.
type Options struct {
	// base url of the general services subsystem
	PortalUrl string `json:"portal_url"`
	// base url of the schedule (LEA) subsystem
	LeaUrl            string  `json:"lea_url"`
	UserAgent         string  `json:"user_agent"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	CloudflareBypass  bool    `json:"cloudflare_bypass"`
}

func DefaultOptions() Options {
	return Options{
		PortalUrl:         "https://vaniercollege.omnivox.ca",
		LeaUrl:            "https://vaniercollege-estd.omnivox.ca/estd",
		UserAgent:         "omnivox-backend/1.0 (+schedule scraper)",
		TimeoutSeconds:    30,
		RequestsPerSecond: 2,
	}
}

// withDefaults fills in every zero field from DefaultOptions.
func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o.PortalUrl == "" {
		o.PortalUrl = defaults.PortalUrl
	}
	if o.LeaUrl == "" {
		o.LeaUrl = defaults.LeaUrl
	}
	if o.UserAgent == "" {
		o.UserAgent = defaults.UserAgent
	}
	if o.TimeoutSeconds <= 0 {
		o.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if o.RequestsPerSecond <= 0 {
		o.RequestsPerSecond = defaults.RequestsPerSecond
	}
	o.PortalUrl = strings.TrimSuffix(o.PortalUrl, "/")
	o.LeaUrl = strings.TrimSuffix(o.LeaUrl, "/")
	return o
}

func (o Options) validate() error {
	for _, raw := range []string{o.PortalUrl, o.LeaUrl} {
		parsed, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid base url %q: %w", raw, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("invalid base url %q: must be absolute", raw)
		}
	}
	return nil
}

type noRedirectKeyType int

var noRedirectKey noRedirectKeyType

// withoutRedirects marks requests made with ctx to return 3xx responses
// as-is instead of following them.
func withoutRedirects(ctx context.Context) context.Context {
	return context.WithValue(ctx, noRedirectKey, true)
}

var honorNoRedirect = resty.RedirectPolicyFunc(func(req *http.Request, _ []*http.Request) error {
	noRedirect, _ := req.Context().Value(noRedirectKey).(bool)
	if noRedirect {
		return http.ErrUseLastResponse
	}
	return nil
})

// client is an http client bound to a single cookie jar.
type client struct {
	http *resty.Client
	jar  *cookieJar
	opts Options
	tel  telemetry.API
}

func newClient(opts Options, jar *cookieJar, tel telemetry.API) *client {
	httpClient := resty.New()
	httpClient.SetCookieJar(jar)
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	httpClient.SetHeader("user-agent", opts.UserAgent)
	httpClient.SetRedirectPolicy(honorNoRedirect, resty.FlexibleRedirectPolicy(10))
	httpClient.SetTimeout(time.Duration(opts.TimeoutSeconds) * time.Second)

	// max burst >= rps just means that no requests will be dropped
	burst := max(int(opts.RequestsPerSecond), 1)
	rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel, "PasswordEtu")

	return &client{
		http: httpClient,
		jar:  jar,
		opts: opts,
		tel:  tel,
	}
}

func (c *client) portalUrl(ref string) string {
	return joinUrl(c.opts.PortalUrl, ref)
}

func (c *client) leaUrl(parts ...string) string {
	return joinUrl(c.opts.LeaUrl, parts...)
}

// joinUrl appends path segments to base, a segment that is already an
// absolute url replaces everything before it.
func joinUrl(base string, parts ...string) string {
	out := base
	for _, p := range parts {
		parsed, err := url.Parse(p)
		if err == nil && parsed.IsAbs() {
			out = p
			continue
		}
		out = strings.TrimSuffix(out, "/") + "/" + strings.TrimPrefix(p, "/")
	}
	return out
}

// send performs a request without looking at the response status.
func (c *client) send(ctx context.Context, method, endpoint string, form map[string]string) (*resty.Response, error) {
	req := c.http.R().SetContext(ctx)
	if form != nil {
		req.SetFormData(form)
	}

	res, err := req.Execute(method, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, endpoint, err)
	}
	return res, nil
}

// request is send, but HTTP error statuses are treated as transport failures.
func (c *client) request(ctx context.Context, method, endpoint string, form map[string]string) (*resty.Response, error) {
	res, err := c.send(ctx, method, endpoint, form)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() >= 400 {
		return res, fmt.Errorf("%w: %s %s: %s", ErrTransport, method, endpoint, res.Status())
	}
	return res, nil
}

func (c *client) get(ctx context.Context, endpoint string) (*resty.Response, error) {
	return c.request(ctx, resty.MethodGet, endpoint, nil)
}

func (c *client) post(ctx context.Context, endpoint string, form map[string]string) (*resty.Response, error) {
	if form == nil {
		form = map[string]string{}
	}
	return c.request(ctx, resty.MethodPost, endpoint, form)
}

func parseDocument(res *resty.Response) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrPortalShape, res.Request.URL, err)
	}
	return doc, nil
}

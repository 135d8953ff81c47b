package omnivox

import (
	"context"
	"fmt"
	"omnivox-backend/internal/components/assert"
	"omnivox-backend/internal/components/telemetry"

	"github.com/go-resty/resty/v2"
)

const (
	report_portal_login = "portal.login"
)

const (
	loginPath    = "/intr/Module/Identification/Login/Login.aspx?ReturnUrl=/intr"
	homepagePath = "/intr/"
)

// Portal is the entrypoint into the Omnivox portal, it is safe to share
// between goroutines as it holds no session state.
type Portal struct {
	opts Options
	tel  telemetry.API
}

func NewPortal(opts Options, tel telemetry.API) (Portal, error) {
	assert.NotNil(tel)

	opts = opts.withDefaults()
	err := opts.validate()
	if err != nil {
		return Portal{}, err
	}

	return Portal{
		opts: opts,
		tel:  telemetry.NewScopedAPI("omnivox", tel),
	}, nil
}

func (p Portal) newClient(jar *cookieJar) *client {
	return newClient(p.opts, jar, p.tel)
}

// Login signs in with a student id and password.
//
// A rejected login is an expected outcome and is not an error: Login returns
// a nil *Session and a nil error. Errors are reserved for transport failures
// and pages that no longer look the way we expect.
func (p Portal) Login(ctx context.Context, identifier, secret string) (*Session, error) {
	jar := newCookieJar()
	client := p.newClient(jar)
	loginUrl := client.portalUrl(loginPath)

	res, err := client.get(ctx, loginUrl)
	if err != nil {
		p.tel.ReportBroken(report_portal_login, fmt.Errorf("login page request: %w", err))
		return nil, err
	}
	doc, err := parseDocument(res)
	if err != nil {
		p.tel.ReportBroken(report_portal_login, fmt.Errorf("parse login page: %w", err))
		return nil, err
	}

	k, ok := doc.Find("input[name='k']").Attr("value")
	if !ok {
		err := fmt.Errorf("%w: login form has no 'k' token", ErrPortalShape)
		p.tel.ReportBroken(report_portal_login, err)
		return nil, err
	}

	res, err = client.send(withoutRedirects(ctx), resty.MethodPost, loginUrl, map[string]string{
		"NoDA":               identifier,
		"PasswordEtu":        secret,
		"TypeIdentification": "Etudiant",
		"k":                  k,
	})
	if err != nil {
		p.tel.ReportBroken(report_portal_login, fmt.Errorf("login request: %w", err))
		return nil, err
	}
	// a redirect is the only signal of success, anything else (usually the form
	// rendered again) counts as rejected credentials
	if res.StatusCode() < 300 || res.StatusCode() >= 400 {
		p.tel.ReportWarning(
			report_portal_login,
			fmt.Errorf("login rejected with status %d", res.StatusCode()),
		)
		return nil, nil
	}

	res, err = client.post(withoutRedirects(ctx), client.portalUrl(homepagePath), nil)
	if err != nil {
		p.tel.ReportBroken(report_portal_login, fmt.Errorf("homepage request: %w", err))
		return nil, err
	}
	homepage, err := parseDocument(res)
	if err != nil {
		p.tel.ReportBroken(report_portal_login, fmt.Errorf("parse homepage: %w", err))
		return nil, err
	}

	return &Session{
		portal:   p,
		jar:      jar,
		homepage: homepage,
	}, nil
}

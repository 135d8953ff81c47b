package omnivox

import (
	"fmt"
	"net/http"
	"omnivox-backend/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_session_schedule_page = "session.schedule-page"
)

const (
	userNameSelector     = "#ovx10_user_text"
	scheduleLinkSelector = "#ctl00_partOffreServices_offreV2_HOR"
)

// Session is an authenticated login, it owns its cookies and the landing page
// the portal showed right after login.
type Session struct {
	portal   Portal
	jar      *cookieJar
	homepage *goquery.Document
}

// UserFullName is the name displayed on the landing page, it is empty if the
// portal did not render it.
func (s *Session) UserFullName() string {
	return htmlutil.Text(s.homepage.Find(userNameSelector))
}

// Cookies returns a copy of the session's credentials.
func (s *Session) Cookies() []*http.Cookie {
	return s.jar.Cookies(nil)
}

// SchedulePage creates the gateway into the schedule subsystem. The page gets
// its own copy of the session's cookies, neither side sees later changes made
// by the other.
func (s *Session) SchedulePage() (*SchedulePage, error) {
	reference, ok := s.homepage.Find(scheduleLinkSelector).Attr("href")
	if !ok || reference == "" {
		s.portal.tel.ReportBroken(report_session_schedule_page, ErrNavigationNotFound)
		return nil, fmt.Errorf("%w: %s", ErrNavigationNotFound, scheduleLinkSelector)
	}
	return newSchedulePage(s.portal, s.jar.Clone(), reference), nil
}

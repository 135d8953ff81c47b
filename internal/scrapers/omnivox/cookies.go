package omnivox

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"
)

// cookieJar is a flat name -> value credential store. Unlike net/http/cookiejar
// it ignores domains and paths, every stored cookie is sent to both subsystems.
//
// It implements http.CookieJar so the http client keeps it current across
// redirect chains.
type cookieJar struct {
	mutex   sync.Mutex
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{cookies: map[string]*http.Cookie{}}
}

func expired(c *http.Cookie, now time.Time) bool {
	if c.MaxAge < 0 {
		return true
	}
	return !c.Expires.IsZero() && c.Expires.Before(now)
}

func (j *cookieJar) SetCookies(_ *url.URL, cookies []*http.Cookie) {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	now := time.Now()
	for _, c := range cookies {
		if expired(c, now) {
			delete(j.cookies, c.Name)
			continue
		}
		j.cookies[c.Name] = &http.Cookie{Name: c.Name, Value: c.Value}
	}
}

func (j *cookieJar) Cookies(_ *url.URL) []*http.Cookie {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	out := make([]*http.Cookie, 0, len(j.cookies))
	for _, c := range j.cookies {
		copied := *c
		out = append(out, &copied)
	}
	slices.SortFunc(out, func(a, b *http.Cookie) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

func (j *cookieJar) Get(name string) (string, bool) {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	c, ok := j.cookies[name]
	if !ok {
		return "", false
	}
	return c.Value, true
}

// Clone takes a snapshot, the two jars share nothing afterwards.
func (j *cookieJar) Clone() *cookieJar {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	clone := newCookieJar()
	for name, c := range j.cookies {
		copied := *c
		clone.cookies[name] = &copied
	}
	return clone
}

package omnivox

import (
	"context"
	"fmt"
	"omnivox-backend/internal/components/assert"
	"omnivox-backend/internal/components/telemetry"
	"omnivox-backend/pkg/htmlutil"
	"slices"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_schedule_page_fetch    = "schedule_page.fetch"
	report_schedule_page_schedule = "schedule_page.schedule"
)

const (
	selectionPagePath = "hrre/horaire.ovx"
	scheduleDir       = "hrre"
	semesterSelector  = "select[name='AnSession']"
	// the portal expects the literal button label, '+' included
	confirmMarker = "Obtain+my+schedule"
)

type pageState int

const (
	pageUninitialized pageState = iota
	pageDiscovered
)

type discovery struct {
	semesters []Semester
	// the selection form's action, resolved against the schedule subsystem
	requestUrl string
}

// SchedulePage wraps the schedule request page of the schedule subsystem.
//
// Semesters and the form endpoint are discovered on first use and reused
// afterwards, schedules are cached per semester id for the lifetime of the page.
// Operations on a page are serialized, each is a sequence of blocking requests.
type SchedulePage struct {
	mutex     sync.Mutex
	client    *client
	tel       telemetry.API
	reference string

	state     pageState
	discovery discovery
	cache     map[string]Schedule
}

func newSchedulePage(portal Portal, jar *cookieJar, reference string) *SchedulePage {
	assert.NotEmptyStr(reference)
	return &SchedulePage{
		client:    portal.newClient(jar),
		tel:       portal.tel,
		reference: reference,
		state:     pageUninitialized,
		cache:     map[string]Schedule{},
	}
}

// Fetch (re)discovers the available semesters and the schedule request endpoint.
// It is called implicitly on first use, calling it explicitly forces rediscovery.
func (p *SchedulePage) Fetch(ctx context.Context) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.fetch(ctx)
}

func (p *SchedulePage) fetch(ctx context.Context) error {
	fetchError := func(stage string, err error) error {
		err = fmt.Errorf("%s: %w", stage, err)
		p.tel.ReportBroken(report_schedule_page_fetch, err, p.reference)
		return err
	}

	res, err := p.client.get(ctx, p.client.portalUrl(p.reference))
	if err != nil {
		return fetchError("schedule reference request", err)
	}
	doc, err := parseDocument(res)
	if err != nil {
		return fetchError("parse schedule reference", err)
	}
	bridge, err := resolveScriptRedirect(doc.Find("body"))
	if err != nil {
		return fetchError("resolve bridge redirect", err)
	}

	// this is where the schedule subsystem picks up the session, the bridge
	// url carries a one-time token
	_, err = p.client.get(ctx, p.client.leaUrl(bridge))
	if err != nil {
		return fetchError("bridge request", err)
	}

	res, err = p.client.get(ctx, p.client.leaUrl(selectionPagePath))
	if err != nil {
		return fetchError("selection page request", err)
	}
	doc, err = parseDocument(res)
	if err != nil {
		return fetchError("parse selection page", err)
	}

	var semesters []Semester
	doc.Find(semesterSelector).ChildrenFiltered("option").Each(func(_ int, option *goquery.Selection) {
		_, selected := option.Attr("selected")
		semesters = append(semesters, Semester{
			Id:      option.AttrOr("value", ""),
			Name:    htmlutil.Text(option),
			Current: selected,
		})
	})
	if len(semesters) == 0 {
		return fetchError("read semesters", fmt.Errorf("%w: no semester options", ErrPortalShape))
	}

	action := doc.Find("form").First().AttrOr("action", "")
	if action == "" {
		return fetchError("read form action", fmt.Errorf("%w: selection form has no action", ErrPortalShape))
	}

	p.discovery = discovery{
		semesters:  semesters,
		requestUrl: p.client.leaUrl(scheduleDir, action),
	}
	p.state = pageDiscovered
	p.tel.ReportCount("schedule_page.semesters", int64(len(semesters)))

	return nil
}

func (p *SchedulePage) ensureDiscovered(ctx context.Context) error {
	if p.state != pageUninitialized {
		return nil
	}
	return p.fetch(ctx)
}

func (p *SchedulePage) requestUrl() (string, error) {
	if p.state == pageUninitialized {
		return "", ErrNotDiscovered
	}
	return p.discovery.requestUrl, nil
}

// CurrentSemester returns the semester the portal preselects, ok is false if
// no semester is marked as current.
func (p *SchedulePage) CurrentSemester(ctx context.Context) (semester Semester, ok bool, err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	err = p.ensureDiscovered(ctx)
	if err != nil {
		return Semester{}, false, err
	}
	for _, s := range p.discovery.semesters {
		if s.Current {
			return s, true, nil
		}
	}
	return Semester{}, false, nil
}

// Semesters returns every semester offered, in the order the portal lists them.
func (p *SchedulePage) Semesters(ctx context.Context) ([]Semester, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	err := p.ensureDiscovered(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(p.discovery.semesters), nil
}

// Schedule returns the schedule of a semester, it is only fetched once per
// semester unless force is true, in which case the cached entry is replaced.
func (p *SchedulePage) Schedule(ctx context.Context, semester Semester, force bool) (Schedule, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	err := p.ensureDiscovered(ctx)
	if err != nil {
		return Schedule{}, err
	}
	return p.schedule(ctx, semester, force)
}

// Schedules returns the schedule of every discovered semester, fetched one
// after the other.
func (p *SchedulePage) Schedules(ctx context.Context, force bool) ([]Schedule, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	err := p.ensureDiscovered(ctx)
	if err != nil {
		return nil, err
	}

	schedules := make([]Schedule, 0, len(p.discovery.semesters))
	for _, semester := range p.discovery.semesters {
		schedule, err := p.schedule(ctx, semester, force)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	return schedules, nil
}

// CachedSchedule looks up a previously fetched schedule without touching the network.
func (p *SchedulePage) CachedSchedule(semesterId string) (Schedule, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	cached, ok := p.cache[semesterId]
	if !ok {
		return Schedule{}, false
	}
	return cached.clone(), true
}

func (p *SchedulePage) schedule(ctx context.Context, semester Semester, force bool) (Schedule, error) {
	if !force {
		cached, ok := p.cache[semester.Id]
		if ok {
			return cached.clone(), nil
		}
	}

	scheduleError := func(stage string, err error) error {
		err = fmt.Errorf("%s: %w", stage, err)
		p.tel.ReportBroken(report_schedule_page_schedule, err, semester.Id)
		return err
	}

	requestUrl, err := p.requestUrl()
	if err != nil {
		return Schedule{}, scheduleError("resolve request url", err)
	}

	res, err := p.client.post(ctx, requestUrl, map[string]string{
		"AnSession": semester.Id,
		"Confirm":   confirmMarker,
	})
	if err != nil {
		return Schedule{}, scheduleError("schedule request", err)
	}
	doc, err := parseDocument(res)
	if err != nil {
		return Schedule{}, scheduleError("parse schedule request", err)
	}
	resultsPath, err := resolveScriptRedirect(doc.Find("body"))
	if err != nil {
		return Schedule{}, scheduleError("resolve results redirect", err)
	}

	res, err = p.client.get(ctx, p.client.leaUrl(scheduleDir, resultsPath))
	if err != nil {
		return Schedule{}, scheduleError("results request", err)
	}
	doc, err = parseDocument(res)
	if err != nil {
		return Schedule{}, scheduleError("parse results", err)
	}

	courses, err := translateSchedule(doc)
	if err != nil {
		return Schedule{}, scheduleError("translate results", err)
	}
	if len(courses) == 0 {
		p.tel.ReportWarning(report_schedule_page_schedule, "semester has no courses", semester.Id)
	}
	p.tel.ReportCount("schedule_page.courses", int64(len(courses)))

	schedule := Schedule{
		Semester: semester,
		Courses:  courses,
	}
	p.cache[semester.Id] = schedule
	return schedule.clone(), nil
}

package omnivox

import (
	"fmt"
	"omnivox-backend/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	noResultsSelector = ".tbAvertissement"
	courseTableIndex  = 3
	headerRows        = 3
	footerRows        = 1
	// the first cell is a row counter, the last cell holds the teacher
	courseCells = 5
)

// tableRows returns the rows of a table without descending into nested tables.
// The html5 parser always wraps rows in a row group (tbody) even if the markup does not.
func tableRows(table *goquery.Selection) *goquery.Selection {
	return table.ChildrenFiltered("thead, tbody, tfoot").ChildrenFiltered("tr")
}

// translateSchedule reads the courses from a schedule results page.
//
// A row with fewer cells than expected fails the whole translation with
// ErrMalformedRow rather than returning a partial schedule.
func translateSchedule(doc *goquery.Document) ([]Course, error) {
	if doc.Find(noResultsSelector).Length() > 0 {
		return []Course{}, nil
	}

	table := doc.Find(".tbContenantPageLayout table table").Eq(courseTableIndex)
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: course table not found", ErrPortalShape)
	}

	rows := tableRows(table)
	courses := []Course{}
	for i := headerRows; i < rows.Length()-footerRows; i++ {
		cells := rows.Eq(i).ChildrenFiltered("td")
		if cells.Length() < courseCells {
			return nil, fmt.Errorf(
				"%w: row %d has %d cells, expected %d",
				ErrMalformedRow, i, cells.Length(), courseCells,
			)
		}
		courses = append(courses, Course{
			Number:  htmlutil.FirstText(cells.Eq(1), "span"),
			Section: htmlutil.FirstText(cells.Eq(2), "span"),
			Title:   htmlutil.FirstText(cells.Eq(3), "span"),
			Teacher: htmlutil.FirstText(cells.Eq(4), "a"),
		})
	}

	return courses, nil
}

package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{in: "  Jane   Doe \n", expected: "Jane Doe"},
		{in: "Intro to\tX", expected: "Intro to X"},
		{in: "\x00345-102-MQ\x07", expected: "345-102-MQ"},
		{in: "", expected: ""},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, CleanText(test.in))
	}
}

func TestFirstText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<table><tr>
			<td><span> first </span><span>second</span></td>
			<td></td>
		</tr></table>
	`))
	if err != nil {
		t.Fatal(err)
	}

	cells := doc.Find("td")
	require.Equal(t, "first", FirstText(cells.Eq(0), "span"))
	require.Equal(t, "", FirstText(cells.Eq(1), "span"))
	require.Equal(t, "", Text(doc.Find("#missing")))
}

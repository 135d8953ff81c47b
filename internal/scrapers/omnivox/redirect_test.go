package omnivox

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestScriptRedirectTarget(t *testing.T) {
	testCases := []struct {
		script   string
		expected string
	}{
		{script: `window.location.replace("foo/bar.ovx")`, expected: "foo/bar.ovx"},
		{script: `window.location.replace('foo/bar.ovx');`, expected: "foo/bar.ovx"},
		{script: `Redirect('Login/Bridge.ovx?token=abc&lang=en', 1)`, expected: "Login/Bridge.ovx?token=abc&lang=en"},
	}

	for _, test := range testCases {
		target, err := scriptRedirectTarget(test.script)
		if err != nil {
			t.Fatal(test.script, err)
		}
		require.Equal(t, test.expected, target, test.script)
	}
}

func TestScriptRedirectTargetMalformed(t *testing.T) {
	scripts := []string{
		``,
		`location.href = 'foo/bar.ovx'`,
		`window.location.replace()`,
		`window.location.replace(42)`,
		`window.location.replace(target)`,
		`var x = go('a')`,
		`window.location.replace('unterminated`,
		`window.location.replace('a.ovx'); alert(1)`,
	}

	for _, script := range scripts {
		_, err := scriptRedirectTarget(script)
		require.True(t, errors.Is(err, ErrMalformedRedirect), "%q: %v", script, err)
	}
}

func TestResolveScriptRedirect(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><body onload="window.location.replace('hrre/resultat.ovx?AnSession=20241')"></body></html>`,
	))
	if err != nil {
		t.Fatal(err)
	}
	target, err := resolveScriptRedirect(doc.Find("body"))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "hrre/resultat.ovx?AnSession=20241", target)

	doc, err = goquery.NewDocumentFromReader(strings.NewReader(`<html><body></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	_, err = resolveScriptRedirect(doc.Find("body"))
	require.True(t, errors.Is(err, ErrMalformedRedirect), err)
}

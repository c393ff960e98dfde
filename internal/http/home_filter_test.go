package handlers_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHomeFilterIntents(t *testing.T) {
	app, _, _ := newTestApp(t)

	// unfiltered view shows the whole catalog
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("home expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "All Sarees") {
		t.Fatal("missing default heading")
	}

	// compound category selector narrows to the one Kanchipuram saree
	resp, err = app.Test(httptest.NewRequest("GET", "/?category=silk-kanchipuram", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("filtered home expected 200, got %d", resp.StatusCode)
	}
	body, _ = io.ReadAll(resp.Body)
	page := string(body)
	if !strings.Contains(page, "Kanchipuram Collection") {
		t.Fatal("missing subcategory heading")
	}
	if !strings.Contains(page, "Showing <strong>1</strong>") {
		t.Fatal("expected exactly one matching saree")
	}

	// sidebar route form of the same intent
	resp, err = app.Test(httptest.NewRequest("GET", "/category/silk", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("category route expected 200, got %d", resp.StatusCode)
	}

	// price + sort combination
	resp, err = app.Test(httptest.NewRequest("GET", "/?price=under-3000&sort=price-low", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("price filter expected 200, got %d", resp.StatusCode)
	}

	// occasion and fabric selectors
	resp, err = app.Test(httptest.NewRequest("GET", "/?occasion=Wedding&fabric=Pure+Silk", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("occasion/fabric expected 200, got %d", resp.StatusCode)
	}
}

func TestHomeRejectsBadSelectors(t *testing.T) {
	app, _, _ := newTestApp(t)

	cases := []string{
		"/?category=%3Cscript%3E",
		"/?category=no-such-category",
		"/?sort=bogus",
		"/?price=%3B%20DROP%20TABLE",
		"/?occasion=123%21",
		"/?fabric=%3Cb%3E",
	}
	for _, url := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", url, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != 400 {
			t.Fatalf("%s expected 400, got %d", url, resp.StatusCode)
		}
	}
}

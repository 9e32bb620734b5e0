package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dakshpokar/UnifiedWebInsights/internal/adapters/fetch"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAcquire(t *testing.T) {
	ctx := context.Background()

	Convey("Given a page server", t, func() {
		var gotUserAgent string
		page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserAgent = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte("<html><body>hello</body></html>"))
		}))
		defer page.Close()

		client := fetch.New()

		Convey("When the page is acquired", func() {
			snapshot, err := client.Acquire(ctx, page.URL)

			Convey("Then the snapshot carries the markup and fetch metadata", func() {
				So(err, ShouldBeNil)
				So(snapshot.HTML, ShouldEqual, "<html><body>hello</body></html>")
				So(snapshot.StatusCode, ShouldEqual, http.StatusOK)
				So(snapshot.FinalURL, ShouldEqual, page.URL)
				So(snapshot.FetchedAt.IsZero(), ShouldBeFalse)
				So(snapshot.Screenshot, ShouldBeEmpty)
			})

			Convey("And the request presents as a browser", func() {
				So(gotUserAgent, ShouldContainSubstring, "Mozilla/5.0")
			})
		})
	})

	Convey("Given a URL with no scheme", t, func() {
		client := fetch.New()
		_, err := client.Acquire(ctx, "example.com/page")

		Convey("Then acquisition fails up front", func() {
			So(err, ShouldWrap, fetch.ErrInvalidURL)
		})
	})

	Convey("Given a page that answers with an error status", t, func() {
		page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer page.Close()

		client := fetch.New()
		_, err := client.Acquire(ctx, page.URL)

		Convey("Then the status surfaces as ErrBadStatus", func() {
			So(err, ShouldWrap, fetch.ErrBadStatus)
		})
	})

	Convey("Given an oversized page body", t, func() {
		page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			for i := 0; i < 100; i++ {
				_, _ = w.Write(make([]byte, 1024))
			}
		}))
		defer page.Close()

		client := fetch.New(fetch.WithMaxBodyBytes(4096))
		snapshot, err := client.Acquire(ctx, page.URL)

		Convey("Then the markup is truncated at the cap", func() {
			So(err, ShouldBeNil)
			So(snapshot.HTML, ShouldHaveLength, 4096)
		})
	})

	Convey("Given a configured renderer service", t, func() {
		page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer page.Close()

		Convey("When the renderer works", func(c C) {
			renderer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				c.So(r.URL.Query().Get("url"), ShouldNotBeEmpty)
				_, _ = w.Write([]byte(`{"screenshot":"aGVsbG8="}`))
			}))
			defer renderer.Close()

			client := fetch.New(fetch.WithRendererURL(renderer.URL))
			snapshot, err := client.Acquire(ctx, page.URL)

			Convey("Then the snapshot carries the screenshot", func() {
				So(err, ShouldBeNil)
				So(snapshot.Screenshot, ShouldEqual, "aGVsbG8=")
			})
		})

		Convey("When the renderer is down", func() {
			renderer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "renderer crashed", http.StatusInternalServerError)
			}))
			defer renderer.Close()

			client := fetch.New(fetch.WithRendererURL(renderer.URL))
			snapshot, err := client.Acquire(ctx, page.URL)

			Convey("Then acquisition still succeeds without a screenshot", func() {
				So(err, ShouldBeNil)
				So(snapshot.HTML, ShouldNotBeEmpty)
				So(snapshot.Screenshot, ShouldBeEmpty)
			})
		})
	})
}

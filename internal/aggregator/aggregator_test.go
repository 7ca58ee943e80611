package aggregator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/gauthierbraillon/folio/internal/content"
)

type fakeSource struct {
	origin content.Origin
	items  []content.Item
	err    error
	delay  time.Duration
	panics bool
}

func (f *fakeSource) Origin() content.Origin { return f.origin }

func (f *fakeSource) Fetch(ctx context.Context) ([]content.Item, error) {
	if f.panics {
		panic("boom")
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.items, f.err
}

func item(id string, origin content.Origin) content.Item {
	return content.Item{ID: id, Title: id, Origin: origin}
}

func ids(items []content.Item) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.ID)
	}
	return out
}

func TestAC200_Merge_ExcludesOnlyTheFailedOrigin(t *testing.T) {
	static := []content.Item{item("local-a", content.OriginLocal), item("local-b", content.OriginLocal)}
	outcomes := []Outcome{
		Succeeded(content.OriginDevTo, []content.Item{item("devto-1", content.OriginDevTo)}),
		Failed(content.OriginHackerNews, errors.New("connection refused")),
		Succeeded(content.OriginGitHub, []content.Item{item("github-1", content.OriginGitHub), item("github-2", content.OriginGitHub)}),
	}

	agg := Merge(static, outcomes)

	want := []string{"local-a", "local-b", "devto-1", "github-1", "github-2"}
	if diff := cmp.Diff(want, ids(agg.Items)); diff != "" {
		t.Errorf("aggregate mismatch (-want +got):\n%s", diff)
	}
	if len(agg.Failures) != 1 || agg.Failures[0].Origin != content.OriginHackerNews {
		t.Fatalf("user should be told Hacker News failed, got %+v", agg.Failures)
	}
	if !strings.Contains(agg.Failures[0].Error(), "connection refused") {
		t.Errorf("failure should keep its cause, got %v", agg.Failures[0])
	}
}

func TestAC201_Merge_DropsDuplicateIDsKeepingFirst(t *testing.T) {
	static := []content.Item{{ID: "x", Title: "authored"}}
	outcomes := []Outcome{Succeeded(content.OriginDevTo, []content.Item{{ID: "x", Title: "remote"}, {ID: "y"}})}

	agg := Merge(static, outcomes)

	if len(agg.Items) != 2 {
		t.Fatalf("duplicate id should be dropped, got %v", ids(agg.Items))
	}
	if agg.Items[0].Title != "authored" {
		t.Errorf("authored content should win over remote duplicates, got %q", agg.Items[0].Title)
	}
}

func TestAC201_Notice_NamesFailedOriginsInRegistrationOrder(t *testing.T) {
	agg := Merge(nil, []Outcome{
		Failed(content.OriginRSS, errors.New("timeout")),
		Succeeded(content.OriginDevTo, nil),
		Failed(content.OriginGitHub, errors.New("rate limited")),
	})

	want := "Some content could not be loaded (rss, github). Everything else is still available."
	if got := agg.Notice(); got != want {
		t.Errorf("notice should follow registration order\nwant %q\ngot  %q", want, got)
	}
}

func TestAC202_Merge_EmptyInputsGiveEmptyAggregate(t *testing.T) {
	agg := Merge(nil, nil)
	if agg.Items == nil || len(agg.Items) != 0 {
		t.Errorf("empty aggregate should be an empty, non-nil slice, got %v", agg.Items)
	}
	if agg.Partial() || agg.Notice() != "" {
		t.Error("nothing failed, so there should be no notice")
	}
}

func TestAC203_Collect_IsolatesFailuresTimeoutsAndPanics(t *testing.T) {
	defer goleak.VerifyNone(t)

	static := []content.Item{item("local-a", content.OriginLocal)}
	agg := New(static, WithSourceTimeout(50*time.Millisecond))
	agg.AddSource(&fakeSource{origin: content.OriginDevTo, items: []content.Item{item("devto-1", content.OriginDevTo)}, delay: 10 * time.Millisecond})
	agg.AddSource(&fakeSource{origin: content.OriginHackerNews, delay: time.Second})
	agg.AddSource(&fakeSource{origin: content.OriginGitHub, panics: true})
	agg.AddSource(&fakeSource{origin: content.OriginRSS, items: []content.Item{item("rss-1", content.OriginRSS)}})

	start := time.Now()
	result := agg.Collect(context.Background())
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("slow source should be cut off by the timeout, took %v", elapsed)
	}

	if diff := cmp.Diff([]string{"local-a", "devto-1", "rss-1"}, ids(result.Items)); diff != "" {
		t.Errorf("aggregate mismatch (-want +got):\n%s", diff)
	}
	if len(result.Failures) != 2 {
		t.Fatalf("expected 2 failed origins, got %+v", result.Failures)
	}
	if !errors.Is(result.Failures[0], context.DeadlineExceeded) {
		t.Errorf("timed out source should report a deadline error, got %v", result.Failures[0])
	}
	notice := result.Notice()
	if !strings.Contains(notice, "github") || !strings.Contains(notice, "hackernews") {
		t.Errorf("notice should name the failed origins, got %q", notice)
	}
}

func TestAC204_Collect_OrderIndependentOfCompletion(t *testing.T) {
	defer goleak.VerifyNone(t)

	agg := New(nil)
	agg.AddSource(&fakeSource{origin: content.OriginDevTo, items: []content.Item{item("devto-1", content.OriginDevTo)}, delay: 30 * time.Millisecond})
	agg.AddSource(&fakeSource{origin: content.OriginGitHub, items: []content.Item{item("github-1", content.OriginGitHub)}})

	result := agg.Collect(context.Background())

	if diff := cmp.Diff([]string{"devto-1", "github-1"}, ids(result.Items)); diff != "" {
		t.Errorf("merge order should follow registration, not completion (-want +got):\n%s", diff)
	}
}

func TestAC205_Collect_WithoutSourcesReturnsStatic(t *testing.T) {
	static := []content.Item{item("local-a", content.OriginLocal)}
	result := New(static).Collect(context.Background())
	if len(result.Items) != 1 || result.Partial() {
		t.Errorf("static collection should be usable on its own, got %+v", result)
	}
}
